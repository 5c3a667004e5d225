package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"promptfeed/internal/imagegen"
)

func TestGenerate(t *testing.T) {
	app := newTestApp(newMemSQL())
	gen := app.Generator.(*stubGenerator)

	rec := doRequest(app.Generate, http.MethodPost, "/api/generate", `{"prompt": "a fox in snow"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"imageUrl":"https://img.example/generated.png"}` {
		t.Fatalf("unexpected body: %s", got)
	}
	if gen.prompt != "a fox in snow" {
		t.Fatalf("prompt not forwarded verbatim: %q", gen.prompt)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"empty prompt", imagegen.ErrPromptRequired, http.StatusBadRequest, "Prompt is required"},
		{"no key", imagegen.ErrNotConfigured, http.StatusInternalServerError, "OpenAI API key is not configured. Please add OPENAI_API_KEY to your environment variables."},
		{"upstream", &imagegen.UpstreamError{Status: http.StatusTooManyRequests, Message: "Rate limit exceeded"}, http.StatusTooManyRequests, "Rate limit exceeded"},
		{"wrapped upstream", fmt.Errorf("call: %w", &imagegen.UpstreamError{Status: http.StatusBadRequest, Message: "content policy"}), http.StatusBadRequest, "content policy"},
		{"no image", imagegen.ErrNoImage, http.StatusInternalServerError, "Failed to generate image"},
		{"transport", errors.New("dial tcp: timeout"), http.StatusInternalServerError, "Failed to generate image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(newMemSQL())
			app.Generator = &stubGenerator{err: tt.err}

			rec := doRequest(app.Generate, http.MethodPost, "/api/generate", `{"prompt": ""}`)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			assertErrorBody(t, rec.Body.Bytes(), tt.want)
		})
	}
}
