package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/simonhull/trackmeta"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "nested", "catalog.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func snapshot(path, albumArtists, album string, disc, track int) *trackmeta.ReadOnlyTrack {
	return &trackmeta.ReadOnlyTrack{
		FilePath:           path,
		FileType:           trackmeta.TrackFileTypeFLAC24,
		Title:              "Title " + path,
		Artist:             "Artist",
		Album:              album,
		AlbumArtists:       albumArtists,
		Year:               2021,
		TrackNumber:        track,
		DiscNumber:         disc,
		Duration:           183250 * time.Millisecond,
		Bitrate:            2116,
		SampleRate:         96000,
		MusicBrainzTrackID: "b1a9c0b7-6e5d-4f3a-8c2b-1a0f9e8d7c6b",
		HasFrontCover:      true,
		FrontCoverWidth:    600,
		FrontCoverHeight:   600,
		AlbumArt:           []byte{0xFF, 0xD8},
		CoverMIMEType:      "image/jpeg",
		Source:             "nas",
		Updated:            "2024-03-09",
	}
}

func TestCatalog_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	in := snapshot("/music/a.flac", "Band", "Record", 1, 1)
	if err := c.Upsert(ctx, in); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := c.Get(ctx, "/music/a.flac")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.FileType != in.FileType {
		t.Errorf("FileType = %v, want %v", got.FileType, in.FileType)
	}
	if got.Title != in.Title || got.Album != in.Album || got.AlbumArtists != in.AlbumArtists {
		t.Errorf("text fields = %q/%q/%q", got.Title, got.Album, got.AlbumArtists)
	}
	if got.Duration != in.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, in.Duration)
	}
	if got.SampleRate != 96000 || got.Bitrate != 2116 || got.Year != 2021 {
		t.Errorf("numbers = %d/%d/%d", got.SampleRate, got.Bitrate, got.Year)
	}
	if !got.HasFrontCover || got.FrontCoverWidth != 600 || got.CoverMIMEType != "image/jpeg" {
		t.Errorf("cover = %v %d %q", got.HasFrontCover, got.FrontCoverWidth, got.CoverMIMEType)
	}
	if got.AlbumArt != nil {
		t.Error("cover bytes should not be stored")
	}
	if got.Source != "nas" || got.Updated != "2024-03-09" {
		t.Errorf("stamps = %q/%q", got.Source, got.Updated)
	}

	// Replace
	in.Title = "Retitled"
	in.Updated = "2024-03-10"
	if err := c.Upsert(ctx, in); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	got, err = c.Get(ctx, "/music/a.flac")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Retitled" || got.Updated != "2024-03-10" {
		t.Errorf("after replace = %q/%q", got.Title, got.Updated)
	}

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestCatalog_GetMissing(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Get(context.Background(), "/nope.flac")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestCatalog_List(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	other := snapshot("/music/z.flac", "Another", "First", 1, 1)
	other.Source = "usb"

	tracks := []*trackmeta.ReadOnlyTrack{
		snapshot("/music/c.flac", "Band", "Record", 2, 1),
		snapshot("/music/b.flac", "Band", "Record", 1, 2),
		snapshot("/music/a.flac", "Band", "Record", 1, 1),
		other,
	}
	if err := c.UpsertAll(ctx, tracks); err != nil {
		t.Fatalf("UpsertAll() error = %v", err)
	}

	all, err := c.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"/music/z.flac", "/music/a.flac", "/music/b.flac", "/music/c.flac"}
	if len(all) != len(want) {
		t.Fatalf("List() returned %d tracks, want %d", len(all), len(want))
	}
	for i, p := range want {
		if all[i].FilePath != p {
			t.Errorf("List()[%d] = %q, want %q", i, all[i].FilePath, p)
		}
	}

	nas, err := c.List(ctx, "nas")
	if err != nil {
		t.Fatal(err)
	}
	if len(nas) != 3 {
		t.Errorf("List(nas) returned %d tracks, want 3", len(nas))
	}
}

func TestCatalog_Delete(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	if err := c.Upsert(ctx, snapshot("/music/a.flac", "Band", "Record", 1, 1)); err != nil {
		t.Fatal(err)
	}

	deleted, err := c.Delete(ctx, "/music/a.flac")
	if err != nil || !deleted {
		t.Errorf("Delete() = %v, %v; want true, nil", deleted, err)
	}
	deleted, err = c.Delete(ctx, "/music/a.flac")
	if err != nil || deleted {
		t.Errorf("second Delete() = %v, %v; want false, nil", deleted, err)
	}

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestCatalog_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Upsert(ctx, snapshot("/music/a.flac", "Band", "Record", 1, 1)); err != nil {
		t.Fatal(err)
	}
	c.Close()

	c, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()

	n, err := c.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Count() = %d after reopen, want 1", n)
	}
}
