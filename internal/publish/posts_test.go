package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptfeed/internal/domain"
)

type fakePosts struct {
	saved   []domain.Post
	limit   int
	list    []domain.Post
	saveErr error
	listErr error
}

func (f *fakePosts) Create(_ context.Context, imageURL, prompt string, userID *string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, domain.Post{ImageURL: imageURL, Prompt: prompt, UserID: userID})
	return nil
}

func (f *fakePosts) ListRecent(_ context.Context, limit int) ([]domain.Post, error) {
	f.limit = limit
	return f.list, f.listErr
}

func TestPostServiceSave(t *testing.T) {
	posts := &fakePosts{}
	svc := NewPostService(posts)
	uid := "7"

	require.NoError(t, svc.Save(context.Background(), "https://x/a.png", "a cat", &uid))
	require.Len(t, posts.saved, 1)
	assert.Equal(t, "7", *posts.saved[0].UserID)

	require.NoError(t, svc.Save(context.Background(), "https://x/b.png", "a dog", nil))
	assert.Nil(t, posts.saved[1].UserID)
}

func TestPostServiceSaveRequiresBothFields(t *testing.T) {
	svc := NewPostService(&fakePosts{})
	for _, in := range [][2]string{{"", "p"}, {"u", ""}, {" ", " "}} {
		err := svc.Save(context.Background(), in[0], in[1], nil)
		require.Error(t, err)
		assert.Equal(t, "Image URL and prompt are required", err.Error())
	}
}

func TestPostServiceSaveFailure(t *testing.T) {
	err := NewPostService(&fakePosts{saveErr: errors.New("boom")}).Save(context.Background(), "u", "p", nil)
	assert.ErrorIs(t, err, ErrPostSaveFailed)
}

func TestPostServiceRecent(t *testing.T) {
	posts := &fakePosts{}
	got, err := NewPostService(posts).Recent(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, domain.RecentPostsLimit, posts.limit)

	_, err = NewPostService(&fakePosts{listErr: errors.New("boom")}).Recent(context.Background())
	assert.ErrorIs(t, err, ErrPostListFailed)
}
