package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"vid-catalog/internal/domain/entity"
	pg "vid-catalog/internal/infra/adapter/persistence/postgres"
)

var videoCols = []string{
	"channel_name", "title", "date_published", "date_lastupdated",
	"channel_url", "source", "url", "duration", "description",
	"img_src", "iframe_src", "views",
}

func testVideo(title string, published time.Time) *entity.Video {
	return &entity.Video{
		ChannelName:     "test_channel",
		Title:           title,
		DatePublished:   published,
		DateLastUpdated: published,
		ChannelURL:      "http://localhost/channel/test_channel",
		Source:          "rumble.com",
		URL:             "http://localhost/video/" + title,
		Duration:        60,
		Description:     "desc",
		ImgSrc:          "http://localhost/img.png",
		IframeSrc:       "http://localhost/iframe",
		Views:           100,
	}
}

func videoRow(v *entity.Video) *sqlmock.Rows {
	return sqlmock.NewRows(videoCols).AddRow(
		v.ChannelName, v.Title, v.DatePublished, v.DateLastUpdated,
		v.ChannelURL, v.Source, v.URL, v.Duration, v.Description,
		v.ImgSrc, v.IframeSrc, v.Views,
	)
}

func TestVideoRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	v := testVideo("t1", time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO videos")).
		WithArgs(
			v.ChannelName, v.Title, v.DatePublished, v.DateLastUpdated,
			v.ChannelURL, v.Source, v.URL, v.Duration, v.Description,
			v.ImgSrc, v.IframeSrc, v.Views,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewVideoRepo(db)
	if err := repo.Upsert(context.Background(), v); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_UpsertBatch_Transactional(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	videos := []*entity.Video{testVideo("t1", now), testVideo("t2", now)}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO videos"))
	for range videos {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	repo := pg.NewVideoRepo(db)
	if err := repo.UpsertBatch(context.Background(), videos); err != nil {
		t.Fatalf("UpsertBatch err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_UpsertBatch_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewVideoRepo(db)
	if err := repo.UpsertBatch(context.Background(), nil); err != nil {
		t.Fatalf("UpsertBatch err=%v", err)
	}
	// no statements expected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_ListByWindow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := testVideo("t1", now)

	mock.ExpectQuery("FROM videos").
		WithArgs(now.Add(-time.Hour), now).
		WillReturnRows(videoRow(want))

	repo := pg.NewVideoRepo(db)
	got, err := repo.ListByWindow(context.Background(), now.Add(-time.Hour), now, "", 0)
	if err != nil {
		t.Fatalf("ListByWindow err=%v", err)
	}
	if diff := cmp.Diff([]*entity.Video{want}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_ListByWindow_ChannelAndLimit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := testVideo("t1", now)

	mock.ExpectQuery("channel_name = \\$3").
		WithArgs(now.Add(-time.Hour), now, "test_channel", 5).
		WillReturnRows(videoRow(want))

	repo := pg.NewVideoRepo(db)
	got, err := repo.ListByWindow(context.Background(), now.Add(-time.Hour), now, "test_channel", 5)
	if err != nil {
		t.Fatalf("ListByWindow err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestVideoRepo_Search(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("ILIKE").
		WithArgs("%cats%").
		WillReturnRows(videoRow(testVideo("cats compilation", now)))

	repo := pg.NewVideoRepo(db)
	got, err := repo.Search(context.Background(), "cats")
	if err != nil || len(got) != 1 {
		t.Fatalf("Search err=%v len=%d", err, len(got))
	}
}

func TestVideoRepo_ListChannelNames(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT DISTINCT channel_name").
		WillReturnRows(sqlmock.NewRows([]string{"channel_name"}).
			AddRow("a_channel").AddRow("b_channel"))

	repo := pg.NewVideoRepo(db)
	got, err := repo.ListChannelNames(context.Background())
	if err != nil {
		t.Fatalf("ListChannelNames err=%v", err)
	}
	if diff := cmp.Diff([]string{"a_channel", "b_channel"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestVideoRepo_DeleteByChannel(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM videos WHERE channel_name = $1")).
		WithArgs("test_channel").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := pg.NewVideoRepo(db)
	if err := repo.DeleteByChannel(context.Background(), "test_channel"); err != nil {
		t.Fatalf("DeleteByChannel err=%v", err)
	}
}

func TestVideoRepo_DeleteOlderThan(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cutoff := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM videos WHERE date_published < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	repo := pg.NewVideoRepo(db)
	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan err=%v", err)
	}
	if deleted != 42 {
		t.Errorf("deleted = %d, want 42", deleted)
	}
}
