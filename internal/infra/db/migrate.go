package db

import "database/sql"

// MigrateUp creates the videos table and its indexes. All statements are
// idempotent so the migration can run at every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS videos (
    id               SERIAL PRIMARY KEY,
    channel_name     TEXT NOT NULL,
    title            TEXT NOT NULL,
    date_published   TIMESTAMPTZ NOT NULL,
    date_lastupdated TIMESTAMPTZ NOT NULL,
    channel_url      TEXT NOT NULL DEFAULT '',
    source           TEXT NOT NULL DEFAULT '',
    url              TEXT NOT NULL UNIQUE,
    duration         DOUBLE PRECISION NOT NULL DEFAULT 0,
    description      TEXT NOT NULL DEFAULT '',
    img_src          TEXT NOT NULL DEFAULT '',
    iframe_src       TEXT NOT NULL DEFAULT '',
    views            BIGINT NOT NULL DEFAULT -1
)`); err != nil {
		return err
	}

	indexes := []string{
		// every window query orders by date_published DESC
		`CREATE INDEX IF NOT EXISTS idx_videos_date_published ON videos(date_published DESC)`,
		// channel-scoped window queries and channel deletion
		`CREATE INDEX IF NOT EXISTS idx_videos_channel_name ON videos(channel_name)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE search; ignore failures when the
	// extension is unavailable or the role lacks privileges.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_videos_title_gin ON videos USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_description_gin ON videos USING gin(description gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = db.Exec(idx)
	}

	return nil
}

// MigrateDown drops the videos table. Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	_, err := db.Exec(`DROP TABLE IF EXISTS videos CASCADE`)
	return err
}
