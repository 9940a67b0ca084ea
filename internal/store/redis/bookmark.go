package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Read returns the stored bookmark set. A missing key is an empty set.
func (s *Store) Read(ctx context.Context) ([]domain.Bookmark, error) {
	data, err := s.client.Get(ctx, s.BookmarksKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Bookmark{}, nil
		}
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	var bookmarks []domain.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmarks: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	return bookmarks, nil
}

// Write replaces the stored set with a single SET. Bookmarks never expire.
func (s *Store) Write(ctx context.Context, bookmarks []domain.Bookmark) error {
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	data, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}

	if err := s.client.Set(ctx, s.BookmarksKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}
