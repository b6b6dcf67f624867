package careers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerPair is one question/answer entry from the opaque jobSpecificAnswers
// JSON blob, in the order the applicant's form produced it.
type AnswerPair struct {
	Question string
	Answer   string
}

// ParseAnswers decodes the answers blob preserving object key order, which a
// plain map unmarshal would lose. The order determines which QuestionN column
// each answer lands in.
func ParseAnswers(raw string) ([]AnswerPair, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse answers: expected JSON object, got %v", tok)
	}

	var pairs []AnswerPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse answers: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse answers: non-string key %v", keyTok)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("parse answers: value for %q: %w", key, err)
		}
		pairs = append(pairs, AnswerPair{Question: key, Answer: answerString(val)})
	}
	return pairs, nil
}

func answerString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
