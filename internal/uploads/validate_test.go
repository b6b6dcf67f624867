package uploads

import (
	"errors"
	"strings"
	"testing"
)

const maxBytes = 5 * 1024 * 1024

func TestValidateResumeAcceptsAllowedFiles(t *testing.T) {
	cases := []Resume{
		{FileName: "resume.pdf", ContentType: "application/pdf", Size: 1024},
		{FileName: "Asha Rao CV.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 2048},
		{FileName: "cv.doc", ContentType: "application/msword", Size: maxBytes},
	}
	for _, c := range cases {
		if err := ValidateResume(c, maxBytes); err != nil {
			t.Fatalf("%s: expected accept, got %v", c.FileName, err)
		}
	}
}

func TestValidateResumeRejections(t *testing.T) {
	cases := []struct {
		name     string
		resume   Resume
		wantCode string
	}{
		{
			name:     "executable",
			resume:   Resume{FileName: "malware.exe", ContentType: "application/pdf", Size: 100},
			wantCode: ReasonSuspicious,
		},
		{
			name:     "disguised archive",
			resume:   Resume{FileName: "resume.zip.pdf", ContentType: "application/pdf", Size: 100},
			wantCode: ReasonSuspicious,
		},
		{
			name:     "wrong mime type",
			resume:   Resume{FileName: "resume.pdf", ContentType: "image/png", Size: 100},
			wantCode: ReasonFileType,
		},
		{
			name:     "wrong extension",
			resume:   Resume{FileName: "resume.txt", ContentType: "application/pdf", Size: 100},
			wantCode: ReasonFileExt,
		},
		{
			name:     "invalid characters",
			resume:   Resume{FileName: "resume$$.pdf", ContentType: "application/pdf", Size: 100},
			wantCode: ReasonFileName,
		},
		{
			name:     "too large",
			resume:   Resume{FileName: "resume.pdf", ContentType: "application/pdf", Size: maxBytes + 1},
			wantCode: ReasonFileSize,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateResume(tc.resume, maxBytes)
			if err == nil {
				t.Fatalf("expected rejection")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, verr.Code)
			}
		})
	}
}

func TestValidateResumeLongSpacedName(t *testing.T) {
	name := strings.Repeat("a", 50) + " final version.pdf"
	err := ValidateResume(Resume{FileName: name, ContentType: "application/pdf", Size: 10}, maxBytes)
	if err != nil {
		t.Fatalf("expected accept, got %v", err)
	}
}
