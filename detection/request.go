package detection

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/validation"
)

// Policy holds request parsing options.
type Policy struct {
	// CaseInsensitiveLanguage accepts "tamil" or "TAMIL" as "Tamil".
	CaseInsensitiveLanguage bool
}

var (
	errUnsupportedLanguage = "Unsupported language. Supported languages: " + strings.Join(SupportedLanguages, ", ")
	errUnsupportedFormat   = "Unsupported audio format. Only MP3 is supported."
)

// ParseRequest decodes and validates a request body. Fields are checked in
// the order language, audioFormat, audioBase64 and the first failure is
// returned; the audio itself is not decoded here.
func ParseRequest(body []byte, p Policy) (*Request, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.MalformedBody("empty body")
	}
	if trimmed[0] != '{' {
		return nil, errors.MalformedBody("must be a JSON object")
	}

	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, errors.Validation(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type.Kind()))
		}
		return nil, errors.MalformedBody(err.Error())
	}

	if p.CaseInsensitiveLanguage {
		req.Language = canonicalLanguage(req.Language)
	}

	if fields := validation.Check(&req); len(fields) > 0 {
		return nil, fieldError(fields[0])
	}
	return &req, nil
}

// fieldError maps the first broken rule to the client facing error.
func fieldError(f validation.FieldError) error {
	switch {
	case f.Tag == "required":
		return errors.MissingField(f.Field)
	case f.Field == "language":
		return unsupported("language", errUnsupportedLanguage)
	case f.Field == "audioFormat":
		return unsupported("audioFormat", errUnsupportedFormat)
	default:
		return errors.Validation(f.Field, f.Message)
	}
}

func unsupported(field, message string) *errors.AppError {
	return errors.New(errors.ErrCodeValidation, message, http.StatusUnprocessableEntity).WithDetail("field", field)
}

func canonicalLanguage(lang string) string {
	trimmed := strings.TrimSpace(lang)
	for _, l := range SupportedLanguages {
		if strings.EqualFold(l, trimmed) {
			return l
		}
	}
	return lang
}
