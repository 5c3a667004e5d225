package handlers

import (
	"net/http"

	"promptfeed/internal/domain"
	"promptfeed/internal/publish"
)

// Publish serves POST /api/publish.
func (a *App) Publish(w http.ResponseWriter, r *http.Request) {
	var req publish.PublishRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	in, err := req.Validate()
	if err != nil {
		a.validationError(w, err)
		return
	}
	img, err := a.Publisher.Publish(r.Context(), in)
	if err != nil {
		a.log(r).Error().Err(err).Msg("publish image failed")
		a.error(w, http.StatusInternalServerError, "Failed to publish image")
		return
	}
	a.Metrics.ImagePublished()
	a.json(w, http.StatusCreated, img)
}

type savePostRequest struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
}

// SavePost serves POST /api/posts. The author is the session user, if any.
func (a *App) SavePost(w http.ResponseWriter, r *http.Request) {
	var req savePostRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	var userID *string
	if uid := sessionUserID(r); uid != "" {
		userID = &uid
	}
	if err := a.Posts.Save(r.Context(), req.ImageURL, req.Prompt, userID); err != nil {
		if _, ok := domain.AsValidation(err); ok {
			a.validationError(w, err)
			return
		}
		a.log(r).Error().Err(err).Msg("save post failed")
		a.error(w, http.StatusInternalServerError, "Failed to save post")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}

// ListPosts serves GET /api/posts.
func (a *App) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Posts.Recent(r.Context())
	if err != nil {
		a.log(r).Error().Err(err).Msg("list posts failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"posts": posts})
}
