package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/kevo-dev/Portfolio2/internal/kvstore"
	"github.com/kevo-dev/Portfolio2/internal/model"
)

func TestComments_RoundTripByTitle(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(kvstore.NewMemory())

	got, err := repo.GetComments(ctx, "Rust in the kernel")
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(got))

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	comments := []model.Comment{
		{ID: "2", UserName: "ada", Text: "newer", Timestamp: ts.Add(time.Minute)},
		{ID: "1", UserName: model.AnonymousReader, Text: "older", Timestamp: ts},
	}
	assert.Equal(t, nil, repo.SaveComments(ctx, "Rust in the kernel", comments))

	got, err = repo.GetComments(ctx, "Rust in the kernel")
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(got))
	assert.Equal(t, "newer", got[0].Text)
	assert.Equal(t, true, got[1].Timestamp.Equal(ts))
}

func TestComments_CorruptThreadIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	store.Set(ctx, "blog-comments-Broken", "{not json")

	got, err := NewCommentRepository(store).GetComments(ctx, "Broken")
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(got))
}

func TestUserName_ScopedByVisitor(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(kvstore.NewMemory())

	name, err := repo.GetUserName(ctx, "visitor-a")
	assert.Equal(t, nil, err)
	assert.Equal(t, "", name)

	assert.Equal(t, nil, repo.SetUserName(ctx, "visitor-a", "Ada"))

	name, _ = repo.GetUserName(ctx, "visitor-a")
	assert.Equal(t, "Ada", name)
	name, _ = repo.GetUserName(ctx, "visitor-b")
	assert.Equal(t, "", name)
}
