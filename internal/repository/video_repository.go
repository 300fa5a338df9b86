// Package repository defines the persistence contracts consumed by the
// use case layer. Implementations live under internal/infra.
package repository

import (
	"context"
	"time"

	"vid-catalog/internal/domain/entity"
)

// VideoRepository is the key-addressed record store backing the catalogue.
// Records are identified by their URL: Upsert and UpsertBatch insert new
// records or overwrite existing ones with the same URL.
type VideoRepository interface {
	// Upsert inserts or updates a single record, keyed by URL. Idempotent.
	Upsert(ctx context.Context, video *entity.Video) error
	// UpsertBatch inserts or updates records in a single transaction.
	UpsertBatch(ctx context.Context, videos []*entity.Video) error
	// ListByWindow returns records published within [start, end], newest
	// first. channelName scopes the query when non-empty. limit bounds the
	// result when positive; limit <= 0 means unbounded.
	ListByWindow(ctx context.Context, start, end time.Time, channelName string, limit int) ([]*entity.Video, error)
	// ListByURLs returns the records whose URL is in urls, newest first.
	ListByURLs(ctx context.Context, urls []string) ([]*entity.Video, error)
	// Search returns records whose title or description matches the keyword.
	Search(ctx context.Context, keyword string) ([]*entity.Video, error)
	// ListChannelNames returns the distinct channel names in the catalogue.
	ListChannelNames(ctx context.Context) ([]string, error)
	// DeleteByChannel removes every record belonging to the channel.
	DeleteByChannel(ctx context.Context, channelName string) error
	// DeleteOlderThan removes records published before cutoff and reports
	// how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// Clear removes all records. Intended for non-production use only.
	Clear(ctx context.Context) error
}
