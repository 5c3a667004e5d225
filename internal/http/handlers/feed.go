package handlers

import (
	"errors"
	"net/http"

	"promptfeed/internal/domain"
	"promptfeed/internal/feed"
	"promptfeed/internal/metrics"
)

// ListFeed serves GET /api/feed?page=&limit=.
func (a *App) ListFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := feed.ParseFeedParams(q.Get("page"), q.Get("limit"))
	if err != nil {
		a.validationError(w, err)
		return
	}
	page, err := a.Feed.ListFeed(r.Context(), params)
	if err != nil {
		a.log(r).Error().Err(err).Int("page", params.Page).Int("limit", params.Limit).Msg("list feed failed")
		a.error(w, http.StatusInternalServerError, "Failed to fetch feed")
		return
	}
	a.Metrics.FeedPageServed()
	a.json(w, http.StatusOK, page)
}

const msgUpdateFailed = "Failed to update hearts"

// UpdateHearts serves PUT /api/feed with body {id, hearts}.
func (a *App) UpdateHearts(w http.ResponseWriter, r *http.Request) {
	var req feed.HeartsRequest
	if err := decode(w, r, &req); err != nil {
		// an unreadable body falls through to the generic update failure
		a.Metrics.HeartsUpdated(metrics.ResultError)
		a.log(r).Warn().Err(err).Msg("decode hearts update")
		a.error(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}
	update, err := req.Validate()
	if err != nil {
		a.Metrics.HeartsUpdated(metrics.ResultInvalid)
		a.validationError(w, err)
		return
	}
	img, err := a.Feed.UpdateHearts(r.Context(), update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.Metrics.HeartsUpdated(metrics.ResultNotFound)
			a.error(w, http.StatusNotFound, "Image not found")
			return
		}
		a.Metrics.HeartsUpdated(metrics.ResultError)
		a.log(r).Error().Err(err).Int64("image_id", update.ID).Msg("update hearts failed")
		a.error(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}
	a.Metrics.HeartsUpdated(metrics.ResultOK)
	a.json(w, http.StatusOK, img)
}

func (a *App) validationError(w http.ResponseWriter, err error) {
	if v, ok := domain.AsValidation(err); ok {
		a.error(w, http.StatusBadRequest, v.Message)
		return
	}
	a.error(w, http.StatusBadRequest, msgInvalidBody)
}
