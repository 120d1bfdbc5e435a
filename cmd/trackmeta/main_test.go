package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/disiqueira/gotree/v3"
	log "github.com/sirupsen/logrus"

	"github.com/simonhull/trackmeta"
	"github.com/simonhull/trackmeta/internal/catalog"
	"github.com/simonhull/trackmeta/internal/native/nativetest"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func quietLogger() *log.Entry {
	l := log.New()
	l.SetOutput(&bytes.Buffer{})
	return log.NewEntry(l)
}

func TestCollectAudioFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"a.flac", "b.MP3", "notes.txt", ".hidden/c.flac", "sub/d.opus", "sub/e.m4a", "sub/f.aif",
	} {
		touch(t, filepath.Join(root, name))
	}

	got, err := collectAudioFiles(root)
	if err != nil {
		t.Fatalf("collectAudioFiles() error = %v", err)
	}

	var rel []string
	for _, p := range got {
		r, _ := filepath.Rel(root, p)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"a.flac", "b.MP3", "sub/d.opus", "sub/e.m4a", "sub/f.aif"}
	if !slices.Equal(rel, want) {
		t.Errorf("collectAudioFiles() = %v, want %v", rel, want)
	}
}

func TestScanInto(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lib := nativetest.NewLibrary()

	good1 := filepath.Join(dir, "01.flac")
	good2 := filepath.Join(dir, "02.flac")
	bad := filepath.Join(dir, "03.flac")
	for _, p := range []string{good1, good2, bad} {
		touch(t, p)
	}
	lib.AddFile(good1, nativetest.Track{FileType: int32(trackmeta.TrackFileTypeFLAC16), Title: "One", TrackNumber: 1})
	lib.AddFile(good2, nativetest.Track{FileType: int32(trackmeta.TrackFileTypeFLAC16), Title: "Two", TrackNumber: 2})
	lib.AddFile(bad, nativetest.Track{})

	cat, err := catalog.Open(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	res, err := scanInto(ctx, cat, []string{good1, good2, bad}, "test", quietLogger(), trackmeta.WithLibrary(lib))
	if err != nil {
		t.Fatalf("scanInto() error = %v", err)
	}
	if res.Found != 3 || res.Stored != 2 || res.Skipped != 1 {
		t.Errorf("scanInto() = %+v, want found 3, stored 2, skipped 1", res)
	}

	stored, err := cat.Get(ctx, good2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Title != "Two" || stored.Source != "test" {
		t.Errorf("stored = %q/%q", stored.Title, stored.Source)
	}
	if lib.LiveHandles() != 0 || lib.LiveBuffers() != 0 {
		t.Errorf("leaked handles=%d buffers=%d", lib.LiveHandles(), lib.LiveBuffers())
	}
}

func TestScanInto_MissingFileStops(t *testing.T) {
	dir := t.TempDir()
	lib := nativetest.NewLibrary()

	cat, err := catalog.Open(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cat.Close()

	_, err = scanInto(context.Background(), cat, []string{filepath.Join(dir, "gone.flac")}, "", quietLogger(), trackmeta.WithLibrary(lib))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRenderTree(t *testing.T) {
	tracks := []*trackmeta.ReadOnlyTrack{
		{AlbumArtists: "Band", Album: "Record", Year: 2020, DiscNumber: 1, TrackNumber: 1, Title: "Intro", FileType: trackmeta.TrackFileTypeFLAC16},
		{AlbumArtists: "Band", Album: "Record", Year: 2020, DiscNumber: 1, TrackNumber: 2, Title: "Song", FileType: trackmeta.TrackFileTypeFLAC16},
		{Artist: "Solo", DiscNumber: 1, TrackNumber: 7, Title: "Loose", FileType: trackmeta.TrackFileTypeMP3CBR},
	}

	out := renderTree("catalog.db", tracks)

	for _, want := range []string{
		"catalog.db", "Band", "Record (2020)", "1-01 Intro [FLAC 16-bit]", "1-02 Song",
		"Solo", "Unknown Album", "1-07 Loose [MP3 CBR]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Band") != 1 {
		t.Errorf("album artist repeated:\n%s", out)
	}
}

func atom(typ string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	buf := make([]byte, 8, 8+len(body))
	binary.BigEndian.PutUint32(buf, uint32(8+len(body)))
	copy(buf[4:], typ)
	return append(buf, body...)
}

func TestAddAtoms(t *testing.T) {
	data := bytes.Join([][]byte{
		atom("ftyp", []byte("M4A \x00\x00\x00\x00")),
		atom("moov",
			atom("mvhd", make([]byte, 12)),
			atom("trak", atom("mdia", atom("mdhd", make([]byte, 4)))),
			atom("udta", atom("meta", make([]byte, 4), atom("ilst"))),
		),
		atom("free", make([]byte, 3)),
	}, nil)

	tree := gotree.New("song.m4a")
	addAtoms(tree, bytes.NewReader(data), 0, int64(len(data)))
	out := tree.Print()

	for _, want := range []string{"ftyp (size: 16, offset: 0)", "moov", "mvhd", "trak", "mdia", "mdhd", "ilst", "free"} {
		if !strings.Contains(out, want) {
			t.Errorf("atom tree missing %q:\n%s", want, out)
		}
	}
}

func TestAddAtoms_BadSize(t *testing.T) {
	data := atom("moov")
	binary.BigEndian.PutUint32(data, 4) // smaller than the header

	tree := gotree.New("broken.m4a")
	addAtoms(tree, bytes.NewReader(data), 0, int64(len(data)))

	if out := tree.Print(); !strings.Contains(out, "bad size") {
		t.Errorf("expected bad size node:\n%s", out)
	}
}

func TestCoverFileName(t *testing.T) {
	tests := []struct {
		path, mime, want string
	}{
		{"music/song.flac", "image/jpeg", "music/song.cover.jpg"},
		{"song.mp3", "image/png", "song.cover.png"},
		{"song.ogg", "", "song.cover.bin"},
	}
	for _, tt := range tests {
		if got := coverFileName(tt.path, tt.mime); got != tt.want {
			t.Errorf("coverFileName(%q, %q) = %q, want %q", tt.path, tt.mime, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	entry := newLogger(log.DebugLevel, false)

	if entry.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", entry.Logger.GetLevel())
	}
	if entry.Data["module"] != "cli" {
		t.Errorf("module field = %v", entry.Data["module"])
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "trackmeta "+trackmeta.Version) {
		t.Errorf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "gotag") {
		t.Errorf("engines missing from %q", out.String())
	}
}

func TestShowCommand_Unsupported(t *testing.T) {
	t.Setenv("TRACKMETA_ENGINE", "gotag")
	path := filepath.Join(t.TempDir(), "noise.flac")
	touch(t, path)

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", path})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("Execute() error = %v, want unsupported format", err)
	}
}
