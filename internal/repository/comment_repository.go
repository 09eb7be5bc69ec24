package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kevo-dev/Portfolio2/internal/kvstore"
	"github.com/kevo-dev/Portfolio2/internal/model"
)

const (
	commentsKeyPrefix = "blog-comments-"
	userNameKeyPrefix = "blog-username:"
)

// CommentRepository keeps reader comments keyed by article title, since
// article ids do not survive a feed refresh.
type CommentRepository struct {
	store kvstore.Store
}

func NewCommentRepository(store kvstore.Store) *CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) GetComments(ctx context.Context, title string) ([]model.Comment, error) {
	raw, err := r.store.Get(ctx, commentsKeyPrefix+title)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var comments []model.Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		slog.Warn("discarding unreadable comment thread", "title", title, "error", err)
		return nil, nil
	}
	return comments, nil
}

func (r *CommentRepository) SaveComments(ctx context.Context, title string, comments []model.Comment) error {
	raw, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}
	return r.store.Set(ctx, commentsKeyPrefix+title, string(raw))
}

// GetUserName returns the remembered display name for visitor, or "".
func (r *CommentRepository) GetUserName(ctx context.Context, visitor string) (string, error) {
	name, err := r.store.Get(ctx, userNameKeyPrefix+visitor)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", nil
	}
	return name, err
}

func (r *CommentRepository) SetUserName(ctx context.Context, visitor, name string) error {
	return r.store.Set(ctx, userNameKeyPrefix+visitor, name)
}
