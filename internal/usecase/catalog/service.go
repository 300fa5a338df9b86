package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"vid-catalog/internal/domain/entity"
	"vid-catalog/internal/feed"
	"vid-catalog/internal/repository"
)

// Relative window bounds. Feed requests for "everything recent" are capped
// at two days; channel feeds default to one week.
const (
	MaxHoursAgo     = 48
	DefaultFeedDays = 7
)

// Service implements the catalogue query and ingestion use cases on top of
// an injected video repository. It holds no mutable state of its own and is
// safe for concurrent use.
type Service struct {
	Repo repository.VideoRepository

	// MaxBatchSize caps bulk ingestion; zero means DefaultMaxBatchSize.
	MaxBatchSize int

	// Now supplies the per-request clock; nil means time.Now. The clock is
	// sampled once per request so merge and sort observe a stable window.
	Now func() time.Time
}

// Window is a closed time interval scoping a catalogue query.
type Window struct {
	Start time.Time
	End   time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) maxBatchSize() int {
	if s.MaxBatchSize > 0 {
		return s.MaxBatchSize
	}
	return DefaultMaxBatchSize
}

// ResolveWindow turns request-level time parameters into a concrete window.
// Explicit bounds are used verbatim. A relative hoursAgo is clamped to
// [0, 48] before the window is computed; a relative days shorthand defaults
// to 7 days when absent. The current time is captured exactly once.
func (s *Service) ResolveWindow(explicitStart, explicitEnd *time.Time, hoursAgo, days *int) Window {
	if explicitStart != nil && explicitEnd != nil {
		return Window{Start: *explicitStart, End: *explicitEnd}
	}

	now := s.now()

	if hoursAgo != nil {
		hours := *hoursAgo
		if hours < 0 {
			hours = 0
		}
		if hours > MaxHoursAgo {
			hours = MaxHoursAgo
		}
		return Window{Start: now.Add(-time.Duration(hours) * time.Hour), End: now}
	}

	d := DefaultFeedDays
	if days != nil {
		d = *days
	}
	return Window{Start: now.Add(-time.Duration(d) * 24 * time.Hour), End: now}
}

// FetchAndMerge retrieves the records of the window across the given
// channel scopes and returns them sorted by publish time descending.
//
// Without channel scopes a single unscoped store query honors the limit
// directly. With scopes, one query runs per channel (concurrently), the
// results are concatenated in channel order, stable-sorted globally, and
// only then truncated — so the limit never favors one channel over another.
// A failing channel query fails the whole request; no partial merge is
// returned.
func (s *Service) FetchAndMerge(ctx context.Context, w Window, channels []string, limit int) ([]*entity.Video, error) {
	if len(channels) == 0 {
		videos, err := s.Repo.ListByWindow(ctx, w.Start, w.End, "", limit)
		if err != nil {
			return nil, fmt.Errorf("list by window: %w", err)
		}
		return videos, nil
	}

	perChannel := make([][]*entity.Video, len(channels))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range channels {
		g.Go(func() error {
			videos, err := s.Repo.ListByWindow(gctx, w.Start, w.End, name, limit)
			if err != nil {
				return fmt.Errorf("list channel %q: %w", name, err)
			}
			perChannel[i] = videos
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]*entity.Video, 0, 64)
	for _, videos := range perChannel {
		merged = append(merged, videos...)
	}

	// Stable keeps per-channel retrieval order for equal publish times.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].DatePublished.After(merged[j].DatePublished)
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// QueryInput carries the parameters of a structured window query.
type QueryInput struct {
	Start    time.Time
	End      time.Time
	Channels []string
	Limit    int
}

// Query returns the merged, ordered records of an explicit window.
func (s *Service) Query(ctx context.Context, in QueryInput) ([]*entity.Video, error) {
	return s.FetchAndMerge(ctx, Window{Start: in.Start, End: in.End}, in.Channels, in.Limit)
}

// ChannelFeed renders the recent records of one channel as a feed document.
// days <= 0 falls back to the default of 7.
func (s *Service) ChannelFeed(ctx context.Context, channelName string, days, limit int) (string, error) {
	if channelName == "" {
		return "", ErrChannelRequired
	}

	var daysArg *int
	if days > 0 {
		daysArg = &days
	}
	w := s.ResolveWindow(nil, nil, nil, daysArg)

	videos, err := s.FetchAndMerge(ctx, w, []string{channelName}, limit)
	if err != nil {
		return "", err
	}
	return feed.Encode(channelName, videos)
}

// RecentFeed renders the records of every channel published within the last
// hoursAgo hours (clamped to 48) as a feed document.
func (s *Service) RecentFeed(ctx context.Context, hoursAgo int) (string, error) {
	w := s.ResolveWindow(nil, nil, &hoursAgo, nil)

	videos, err := s.FetchAndMerge(ctx, w, nil, 0)
	if err != nil {
		return "", err
	}
	return feed.Encode("recent videos", videos)
}

// Put validates and upserts a single record.
func (s *Service) Put(ctx context.Context, video *entity.Video) error {
	if err := video.Validate(); err != nil {
		return err
	}
	if err := s.Repo.Upsert(ctx, video); err != nil {
		return fmt.Errorf("upsert video: %w", err)
	}
	return nil
}

// PutBatch validates and upserts a batch of records. Batches above the
// configured cap are rejected whole with a BatchTooLargeError; nothing is
// applied partially.
func (s *Service) PutBatch(ctx context.Context, videos []*entity.Video) error {
	if max := s.maxBatchSize(); len(videos) > max {
		return &BatchTooLargeError{Size: len(videos), Max: max}
	}
	for _, v := range videos {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := s.Repo.UpsertBatch(ctx, videos); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	return nil
}

// IngestFeed decodes a feed document, upserts the decoded records, and
// returns the stored records re-read by URL. Decode failures reject the
// ingestion without touching the store.
func (s *Service) IngestFeed(ctx context.Context, document string) ([]*entity.Video, error) {
	videos, err := feed.Decode(document)
	if err != nil {
		return nil, err
	}
	if err := s.PutBatch(ctx, videos); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(videos))
	for _, v := range videos {
		urls = append(urls, v.URL)
	}
	stored, err := s.Repo.ListByURLs(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("list by urls: %w", err)
	}
	return stored, nil
}

// DeleteChannel removes every record of the channel.
func (s *Service) DeleteChannel(ctx context.Context, channelName string) error {
	if channelName == "" {
		return ErrChannelRequired
	}
	if err := s.Repo.DeleteByChannel(ctx, channelName); err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

// ListChannelNames returns the distinct channel names in the catalogue.
func (s *Service) ListChannelNames(ctx context.Context) ([]string, error) {
	names, err := s.Repo.ListChannelNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channel names: %w", err)
	}
	return names, nil
}

// Search returns records whose title or description matches the keyword.
func (s *Service) Search(ctx context.Context, keyword string) ([]*entity.Video, error) {
	if keyword == "" {
		return nil, ErrKeywordRequired
	}
	videos, err := s.Repo.Search(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	return videos, nil
}

// PruneOlderThan deletes records published before now-retention and reports
// how many were removed. Used by the retention worker.
func (s *Service) PruneOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention)
	deleted, err := s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return deleted, nil
}

// Clear removes all records. Only wired on non-production routes.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.Repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear videos: %w", err)
	}
	return nil
}
