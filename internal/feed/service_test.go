package feed

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptfeed/internal/domain"
)

// memImages is an in-memory domain.ImageRepository that records calls.
type memImages struct {
	mu       sync.Mutex
	images   map[int64]domain.PublishedImage
	nextID   int64
	listErr  error
	countErr error
	findErr  error
	setErr   error

	listCalls [][2]int
	setCalls  int
}

func newMemImages(n int) *memImages {
	m := &memImages{images: map[int64]domain.PublishedImage{}}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		_, _ = m.Create(context.Background(), "https://img.example/"+string(rune('a'+i%26))+".png", "prompt")
		img := m.images[m.nextID]
		img.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		m.images[m.nextID] = img
	}
	return m
}

func (m *memImages) List(_ context.Context, offset, limit int) ([]domain.PublishedImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls = append(m.listCalls, [2]int{offset, limit})
	if m.listErr != nil {
		return nil, m.listErr
	}
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
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memImages) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.images)), nil
}

func (m *memImages) FindByID(_ context.Context, id int64) (*domain.PublishedImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	img, ok := m.images[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &img, nil
}

func (m *memImages) SetHearts(_ context.Context, id, hearts int64) (*domain.PublishedImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setErr != nil {
		return nil, m.setErr
	}
	img, ok := m.images[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	img.Hearts = hearts
	m.images[id] = img
	return &img, nil
}

func (m *memImages) Create(_ context.Context, imageURL, prompt string) (*domain.PublishedImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	img := domain.PublishedImage{ID: m.nextID, ImageURL: imageURL, Prompt: prompt, CreatedAt: time.Now().UTC()}
	m.images[img.ID] = img
	return &img, nil
}

func TestListFeedQueriesExpectedWindow(t *testing.T) {
	tests := []struct {
		page, limit  int
		offset, take int
	}{
		{page: 1, limit: 10, offset: 0, take: 10},
		{page: 2, limit: 5, offset: 5, take: 5},
	}
	for _, tt := range tests {
		store := newMemImages(12)
		svc := NewService(store)

		_, err := svc.ListFeed(context.Background(), FeedParams{Page: tt.page, Limit: tt.limit})
		require.NoError(t, err)
		require.Len(t, store.listCalls, 1)
		assert.Equal(t, [2]int{tt.offset, tt.take}, store.listCalls[0])
	}
}

func TestListFeedUnaddressablePageIsEmpty(t *testing.T) {
	store := newMemImages(3)
	params, err := ParseFeedParams(strconv.Itoa(math.MaxInt), "10")
	require.NoError(t, err)

	page, err := NewService(store).ListFeed(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, store.listCalls, "store must not see an overflowing offset")
	require.NotNil(t, page.Images)
	assert.Empty(t, page.Images)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, math.MaxInt, page.Page)
	assert.Equal(t, int64(1), page.TotalPages)
}

func TestListFeedClampedLimitReachesStore(t *testing.T) {
	store := newMemImages(3)
	params, err := ParseFeedParams("1", "500")
	require.NoError(t, err)

	_, err = NewService(store).ListFeed(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 50}, store.listCalls[0])
}

func TestListFeedNewestFirst(t *testing.T) {
	store := newMemImages(12)
	page, err := NewService(store).ListFeed(context.Background(), FeedParams{Page: 1, Limit: 5})
	require.NoError(t, err)

	require.Len(t, page.Images, 5)
	for i := 1; i < len(page.Images); i++ {
		assert.True(t, page.Images[i-1].CreatedAt.After(page.Images[i].CreatedAt))
	}
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(3), page.TotalPages)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(3), TotalPages(25, 10))
	assert.Equal(t, int64(3), TotalPages(15, 5))
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 50))
}

func TestListFeedEmptyStore(t *testing.T) {
	page, err := NewService(newMemImages(0)).ListFeed(context.Background(), FeedParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.NotNil(t, page.Images)
	assert.Empty(t, page.Images)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, int64(0), page.TotalPages)
}

func TestListFeedPageBeyondEnd(t *testing.T) {
	page, err := NewService(newMemImages(3)).ListFeed(context.Background(), FeedParams{Page: 9, Limit: 10})
	require.NoError(t, err)
	require.NotNil(t, page.Images)
	assert.Empty(t, page.Images)
	assert.Equal(t, int64(3), page.Total)
}

func TestListFeedStoreFailure(t *testing.T) {
	listFail := newMemImages(2)
	listFail.listErr = errors.New("connection refused")
	countFail := newMemImages(2)
	countFail.countErr = errors.New("connection refused")

	for _, store := range []*memImages{listFail, countFail} {
		page, err := NewService(store).ListFeed(context.Background(), FeedParams{Page: 1, Limit: 10})
		assert.Nil(t, page)
		assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
	}
}

func TestUpdateHeartsSetsAbsoluteValue(t *testing.T) {
	store := newMemImages(2)
	store.images[1] = withHearts(store.images[1], 40)
	before := store.images[1]

	img, err := NewService(store).UpdateHearts(context.Background(), HeartsUpdate{ID: 1, Hearts: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), img.Hearts)
	assert.Equal(t, before.ID, img.ID)
	assert.Equal(t, before.ImageURL, img.ImageURL)
	assert.Equal(t, before.Prompt, img.Prompt)
	assert.True(t, before.CreatedAt.Equal(img.CreatedAt))
}

func TestUpdateHeartsZero(t *testing.T) {
	store := newMemImages(1)
	store.images[1] = withHearts(store.images[1], 5)

	img, err := NewService(store).UpdateHearts(context.Background(), HeartsUpdate{ID: 1, Hearts: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(0), img.Hearts)
}

func TestUpdateHeartsIdempotent(t *testing.T) {
	store := newMemImages(1)
	svc := NewService(store)
	req := HeartsUpdate{ID: 1, Hearts: 9}

	first, err := svc.UpdateHearts(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.UpdateHearts(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, *first, *second)
}

func TestUpdateHeartsNotFoundSkipsWrite(t *testing.T) {
	store := newMemImages(1)

	img, err := NewService(store).UpdateHearts(context.Background(), HeartsUpdate{ID: 404, Hearts: 1})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "image", nf.Resource)
	assert.Equal(t, 0, store.setCalls)
}

func TestUpdateHeartsRowVanishedBeforeWrite(t *testing.T) {
	store := newMemImages(1)
	store.setErr = domain.ErrNotFound

	_, err := NewService(store).UpdateHearts(context.Background(), HeartsUpdate{ID: 1, Hearts: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateHeartsStoreFailure(t *testing.T) {
	findFail := newMemImages(1)
	findFail.findErr = errors.New("timeout")
	setFail := newMemImages(1)
	setFail.setErr = errors.New("timeout")

	for _, store := range []*memImages{findFail, setFail} {
		_, err := NewService(store).UpdateHearts(context.Background(), HeartsUpdate{ID: 1, Hearts: 1})
		assert.ErrorIs(t, err, domain.ErrUpdateFailed)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	}
}

// Two clients that read the same base value and each send base+1 lose one
// of the hearts. The absolute-set contract allows this.
func TestUpdateHeartsConcurrentLastWriteWins(t *testing.T) {
	store := newMemImages(1)
	store.images[1] = withHearts(store.images[1], 10)
	svc := NewService(store)

	base, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateHearts(context.Background(), HeartsUpdate{ID: 1, Hearts: base.Hearts + 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := store.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(11), final.Hearts, "two likes from a stale base collapse into one")
}

func withHearts(img domain.PublishedImage, hearts int64) domain.PublishedImage {
	img.Hearts = hearts
	return img
}
