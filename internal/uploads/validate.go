package uploads

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Reason codes for resume rejection. Each maps to a specific remedial
// message in the UI.
const (
	ReasonFileSize   = "file_size"
	ReasonFileType   = "file_type"
	ReasonFileExt    = "file_ext"
	ReasonFileName   = "filename"
	ReasonSuspicious = "suspicious"
)

// ValidationError is a terminal rejection; it never reaches storage.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var allowedMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

var suspiciousPatterns = []string{
	".exe", ".bat", ".cmd", ".com", ".scr", ".pif",
	".vbs", ".js", ".jar", ".zip", ".rar",
}

var fileNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._\-\s]+$`)

// Resume describes an uploaded file as received at the ingestion boundary.
type Resume struct {
	FileName    string
	ContentType string
	Size        int64
}

// ValidateResume applies the upload allow-list. Suspicious extension
// patterns are checked first so a disguised executable is reported as such
// even when its declared MIME type is also wrong.
func ValidateResume(r Resume, maxBytes int64) error {
	lower := strings.ToLower(r.FileName)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			return &ValidationError{
				Code:    ReasonSuspicious,
				Message: "file name contains a disallowed pattern",
			}
		}
	}

	if _, ok := allowedMimeTypes[r.ContentType]; !ok {
		return &ValidationError{
			Code:    ReasonFileType,
			Message: "only PDF and Word documents are accepted",
		}
	}

	ext := strings.ToLower(filepath.Ext(r.FileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return &ValidationError{
			Code:    ReasonFileExt,
			Message: "file extension must be .pdf, .doc or .docx",
		}
	}

	if !fileNamePattern.MatchString(r.FileName) {
		return &ValidationError{
			Code:    ReasonFileName,
			Message: "file name contains invalid characters",
		}
	}

	if maxBytes > 0 && r.Size > maxBytes {
		return &ValidationError{
			Code:    ReasonFileSize,
			Message: fmt.Sprintf("file exceeds the %d byte limit", maxBytes),
		}
	}

	return nil
}
