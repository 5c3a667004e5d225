package publish

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"

	"promptfeed/internal/domain"
)

// PublishRequest is the raw POST /api/publish body.
type PublishRequest struct {
	ImageURL json.RawMessage `json:"imageUrl"`
	Prompt   json.RawMessage `json:"prompt"`
}

// PublishInput holds trimmed, NFC-normalised values ready for insert.
type PublishInput struct {
	ImageURL string
	Prompt   string
}

// Validate checks presence, then type, then emptiness. An empty prompt is allowed.
func (r PublishRequest) Validate() (PublishInput, error) {
	if isAbsent(r.ImageURL) {
		return PublishInput{}, domain.MissingField("imageUrl")
	}
	if isAbsent(r.Prompt) {
		return PublishInput{}, domain.MissingField("prompt")
	}
	imageURL, ok := stringValue(r.ImageURL)
	if !ok {
		return PublishInput{}, domain.NotAString("imageUrl")
	}
	prompt, ok := stringValue(r.Prompt)
	if !ok {
		return PublishInput{}, domain.NotAString("prompt")
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return PublishInput{}, domain.InvalidValue("imageUrl", "imageUrl cannot be empty")
	}
	return PublishInput{
		ImageURL: imageURL,
		Prompt:   norm.NFC.String(strings.TrimSpace(prompt)),
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func stringValue(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}
