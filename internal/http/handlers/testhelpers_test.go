package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"promptfeed/internal/adapter/repo"
	"promptfeed/internal/auth"
	"promptfeed/internal/domain"
	"promptfeed/internal/events"
	"promptfeed/internal/feed"
	"promptfeed/internal/metrics"
	"promptfeed/internal/pgxtest"
	"promptfeed/internal/publish"
	"promptfeed/internal/sqlinline"
)

// memSQL answers the sqlinline statements from in-memory tables.
type memSQL struct {
	mu     sync.Mutex
	images map[int64]domain.PublishedImage
	posts  []domain.Post
	users  map[string]domain.User
	nextID int64
	fail   error
	writes int
}

func newMemSQL() *memSQL {
	return &memSQL{images: map[int64]domain.PublishedImage{}, users: map[string]domain.User{}}
}

func (m *memSQL) seed(n int) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		m.nextID++
		m.images[m.nextID] = domain.PublishedImage{
			ID:        m.nextID,
			ImageURL:  fmt.Sprintf("https://img.example/%d.png", m.nextID),
			Prompt:    fmt.Sprintf("prompt %d", m.nextID),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
}

func imageValues(img domain.PublishedImage) []any {
	return []any{img.ID, img.ImageURL, img.Prompt, img.Hearts, img.CreatedAt}
}

func (m *memSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return pgconn.CommandTag{}, m.fail
	}
	if query != sqlinline.QInsertPost {
		return pgconn.CommandTag{}, fmt.Errorf("unsupported exec: %s", query)
	}
	m.nextID++
	p := domain.Post{ID: m.nextID, ImageURL: args[0].(string), Prompt: args[1].(string), CreatedAt: time.Now().UTC()}
	if uid, ok := args[2].(*string); ok && uid != nil {
		v := *uid
		p.UserID = &v
	}
	m.posts = append(m.posts, p)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (m *memSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	switch query {
	case sqlinline.QListPublishedImages:
		offset, limit := args[0].(int), args[1].(int)
		all := make([]domain.PublishedImage, 0, len(m.images))
		for _, img := range m.images {
			all = append(all, img)
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].ID > all[j].ID
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
		rows := pgxtest.NewRows()
		for i := offset; i < len(all) && i < offset+limit; i++ {
			rows.Data = append(rows.Data, imageValues(all[i]))
		}
		return rows, nil
	case sqlinline.QListRecentPosts:
		rows := pgxtest.NewRows()
		for i := len(m.posts) - 1; i >= 0 && len(rows.Data) < args[0].(int); i-- {
			p := m.posts[i]
			uid := sql.NullString{}
			if p.UserID != nil {
				uid = sql.NullString{String: *p.UserID, Valid: true}
			}
			rows.Data = append(rows.Data, []any{p.ID, p.ImageURL, p.Prompt, p.CreatedAt, uid})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unsupported query: %s", query)
}

func (m *memSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return pgxtest.ErrRow(m.fail)
	}
	switch query {
	case sqlinline.QCountPublishedImages:
		return pgxtest.NewRow(int64(len(m.images)))
	case sqlinline.QSelectPublishedImage:
		img, ok := m.images[args[0].(int64)]
		if !ok {
			return pgxtest.ErrRow(pgx.ErrNoRows)
		}
		return pgxtest.NewRow(imageValues(img)...)
	case sqlinline.QSetImageHearts:
		m.writes++
		img, ok := m.images[args[0].(int64)]
		if !ok {
			return pgxtest.ErrRow(pgx.ErrNoRows)
		}
		img.Hearts = args[1].(int64)
		m.images[img.ID] = img
		return pgxtest.NewRow(imageValues(img)...)
	case sqlinline.QInsertPublishedImage:
		m.nextID++
		img := domain.PublishedImage{ID: m.nextID, ImageURL: args[0].(string), Prompt: args[1].(string), CreatedAt: time.Now().UTC()}
		m.images[img.ID] = img
		return pgxtest.NewRow(imageValues(img)...)
	case sqlinline.QSelectUserByEmail:
		u, ok := m.users[args[0].(string)]
		if !ok {
			return pgxtest.ErrRow(pgx.ErrNoRows)
		}
		return pgxtest.NewRow(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	case sqlinline.QInsertUser:
		m.nextID++
		u := domain.User{ID: fmt.Sprint(m.nextID), Email: args[0].(string), Name: args[1].(string), PasswordHash: args[2].(string), CreatedAt: time.Now().UTC()}
		m.users[u.Email] = u
		return pgxtest.NewRow(u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt)
	}
	return pgxtest.ErrRow(fmt.Errorf("unsupported query: %s", query))
}

type stubGenerator struct {
	url    string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.url, g.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var errStoreDown = errors.New("store down")

func newTestApp(db *memSQL) *App {
	images := repo.NewImageRepository(db)
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	return &App{
		Feed:      feed.NewService(images),
		Publisher: publish.NewService(images, events.Noop{}, zerolog.Nop()),
		Posts:     publish.NewPostService(repo.NewPostRepository(db)),
		Generator: &stubGenerator{url: "https://img.example/generated.png"},
		Auth:      auth.NewService(repo.NewUserRepository(db), hasher, auth.NewTokenIssuer("test-secret", time.Hour)),
		Metrics:   metrics.New(),
		Logger:    zerolog.Nop(),
	}
}

func doRequest(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
