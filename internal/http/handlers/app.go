package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"promptfeed/internal/auth"
	"promptfeed/internal/feed"
	"promptfeed/internal/metrics"
	"promptfeed/internal/publish"
)

const maxBodyBytes = 1 << 20

const msgInvalidBody = "Invalid request body"

// ImageGenerator turns a prompt into a hosted image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Pinger reports store reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	Feed      *feed.Service
	Publisher *publish.Service
	Posts     *publish.PostService
	Generator ImageGenerator
	Auth      *auth.Service
	Metrics   *metrics.Metrics
	DB        Pinger
	Logger    zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

// log prefers the request-scoped logger set by the request id middleware.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

// decode reads a single JSON value from a bounded body.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON body")
	}
	return nil
}
