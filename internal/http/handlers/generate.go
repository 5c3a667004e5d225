package handlers

import (
	"errors"
	"net/http"

	"promptfeed/internal/imagegen"
	"promptfeed/internal/metrics"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate serves POST /api/generate. Provider failures keep their status and message.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	url, err := a.Generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		var upstream *imagegen.UpstreamError
		switch {
		case errors.Is(err, imagegen.ErrPromptRequired):
			a.Metrics.ImageGenerated(metrics.ResultInvalid)
			a.error(w, http.StatusBadRequest, "Prompt is required")
		case errors.Is(err, imagegen.ErrNotConfigured):
			a.Metrics.ImageGenerated(metrics.ResultError)
			a.error(w, http.StatusInternalServerError, "OpenAI API key is not configured. Please add OPENAI_API_KEY to your environment variables.")
		case errors.As(err, &upstream):
			a.Metrics.ImageGenerated(metrics.ResultError)
			a.log(r).Warn().Int("upstream_status", upstream.Status).Str("upstream_message", upstream.Message).Msg("image provider rejected request")
			a.error(w, upstream.Status, upstream.Message)
		default:
			a.Metrics.ImageGenerated(metrics.ResultError)
			a.log(r).Error().Err(err).Msg("generate image failed")
			a.error(w, http.StatusInternalServerError, "Failed to generate image")
		}
		return
	}
	a.Metrics.ImageGenerated(metrics.ResultOK)
	a.json(w, http.StatusOK, map[string]string{"imageUrl": url})
}
