package handlers

import (
	"errors"
	"net/http"
	"time"

	"promptfeed/internal/domain"
	"promptfeed/internal/middleware"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn serves POST /api/auth/signin. Unknown emails are registered on first use.
func (a *App) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	session, err := a.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if _, ok := domain.AsValidation(err); ok {
			a.validationError(w, err)
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			a.error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		a.log(r).Error().Err(err).Msg("sign in failed")
		a.error(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	a.json(w, http.StatusOK, session)
}

type sessionUserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionResponse struct {
	User      sessionUserDTO `json:"user"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Session serves GET /api/auth/session for a bearer token.
func (a *App) Session(w http.ResponseWriter, r *http.Request) {
	claims, err := a.Auth.ParseToken(middleware.BearerToken(r))
	if err != nil {
		a.error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	resp := sessionResponse{
		User: sessionUserDTO{ID: claims.Subject, Email: claims.Email, Name: claims.Name},
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	a.json(w, http.StatusOK, resp)
}

func sessionUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
