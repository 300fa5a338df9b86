// Package postgres provides the PostgreSQL implementation of the video
// repository. Upserts are keyed by the record URL via ON CONFLICT.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"vid-catalog/internal/domain/entity"
	"vid-catalog/internal/repository"
)

const videoColumns = `channel_name, title, date_published, date_lastupdated,
channel_url, source, url, duration, description, img_src, iframe_src, views`

const upsertQuery = `
INSERT INTO videos (` + videoColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (url) DO UPDATE SET
    channel_name     = EXCLUDED.channel_name,
    title            = EXCLUDED.title,
    date_published   = EXCLUDED.date_published,
    date_lastupdated = EXCLUDED.date_lastupdated,
    channel_url      = EXCLUDED.channel_url,
    source           = EXCLUDED.source,
    duration         = EXCLUDED.duration,
    description      = EXCLUDED.description,
    img_src          = EXCLUDED.img_src,
    iframe_src       = EXCLUDED.iframe_src,
    views            = EXCLUDED.views`

type VideoRepo struct{ db *sql.DB }

func NewVideoRepo(db *sql.DB) repository.VideoRepository {
	return &VideoRepo{db: db}
}

func upsertArgs(v *entity.Video) []any {
	return []any{
		v.ChannelName, v.Title, v.DatePublished, v.DateLastUpdated,
		v.ChannelURL, v.Source, v.URL, v.Duration, v.Description,
		v.ImgSrc, v.IframeSrc, v.Views,
	}
}

func scanVideo(rows *sql.Rows) (*entity.Video, error) {
	var v entity.Video
	if err := rows.Scan(
		&v.ChannelName, &v.Title, &v.DatePublished, &v.DateLastUpdated,
		&v.ChannelURL, &v.Source, &v.URL, &v.Duration, &v.Description,
		&v.ImgSrc, &v.IframeSrc, &v.Views,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVideos(rows *sql.Rows, op string) ([]*entity.Video, error) {
	defer func() { _ = rows.Close() }()

	videos := make([]*entity.Video, 0, 100)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (repo *VideoRepo) Upsert(ctx context.Context, video *entity.Video) error {
	if _, err := repo.db.ExecContext(ctx, upsertQuery, upsertArgs(video)...); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

// UpsertBatch writes all records inside one transaction so a failing batch
// leaves the catalogue untouched.
func (repo *VideoRepo) UpsertBatch(ctx context.Context, videos []*entity.Video) error {
	if len(videos) == 0 {
		return nil
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("UpsertBatch: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return fmt.Errorf("UpsertBatch: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, v := range videos {
		if _, err := stmt.ExecContext(ctx, upsertArgs(v)...); err != nil {
			return fmt.Errorf("UpsertBatch: exec %q: %w", v.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("UpsertBatch: commit: %w", err)
	}
	return nil
}

func (repo *VideoRepo) ListByWindow(ctx context.Context, start, end time.Time, channelName string, limit int) ([]*entity.Video, error) {
	query := `
SELECT ` + videoColumns + `
FROM videos
WHERE date_published >= $1 AND date_published <= $2`
	args := []any{start, end}

	if channelName != "" {
		query += fmt.Sprintf(" AND channel_name = $%d", len(args)+1)
		args = append(args, channelName)
	}
	query += " ORDER BY date_published DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByWindow: %w", err)
	}
	return collectVideos(rows, "ListByWindow")
}

func (repo *VideoRepo) ListByURLs(ctx context.Context, urls []string) ([]*entity.Video, error) {
	if len(urls) == 0 {
		return []*entity.Video{}, nil
	}

	query := `
SELECT ` + videoColumns + `
FROM videos
WHERE url = ANY($1)
ORDER BY date_published DESC`

	rows, err := repo.db.QueryContext(ctx, query, pq.Array(urls))
	if err != nil {
		return nil, fmt.Errorf("ListByURLs: %w", err)
	}
	return collectVideos(rows, "ListByURLs")
}

func (repo *VideoRepo) Search(ctx context.Context, keyword string) ([]*entity.Video, error) {
	const query = `
SELECT ` + videoColumns + `
FROM videos
WHERE title       ILIKE $1
   OR description ILIKE $1
ORDER BY date_published DESC`
	param := "%" + keyword + "%"

	rows, err := repo.db.QueryContext(ctx, query, param)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	return collectVideos(rows, "Search")
}

func (repo *VideoRepo) ListChannelNames(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT channel_name FROM videos ORDER BY channel_name`

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListChannelNames: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := make([]string, 0, 16)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("ListChannelNames: Scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (repo *VideoRepo) DeleteByChannel(ctx context.Context, channelName string) error {
	const query = `DELETE FROM videos WHERE channel_name = $1`
	if _, err := repo.db.ExecContext(ctx, query, channelName); err != nil {
		return fmt.Errorf("DeleteByChannel: %w", err)
	}
	return nil
}

func (repo *VideoRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM videos WHERE date_published < $1`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: rows affected: %w", err)
	}
	return deleted, nil
}

func (repo *VideoRepo) Clear(ctx context.Context) error {
	const query = `DELETE FROM videos`
	if _, err := repo.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("Clear: %w", err)
	}
	return nil
}
