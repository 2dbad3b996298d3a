package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 5, 2, 0, time.Local)
	tests := []struct {
		code string
		want string
	}{
		{"", "20240307_090502.pdf"},
		{"E-12", "20240307_090502_E-12.pdf"},
		{" a/b c ", "20240307_090502_ab_c.pdf"},
	}
	for _, tt := range tests {
		if got := FileName(now, tt.code); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestPersistCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Documents", "Inspections")
	data := []byte("%PDF-1.7\n")
	path, err := Persist(data, dir, "report.pdf")
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if path != filepath.Join(dir, "report.pdf") {
		t.Fatalf("path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("content = %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestPersistCollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	want := []string{"r.pdf", "r_2.pdf", "r_3.pdf"}
	for i, name := range want {
		path, err := Persist([]byte{byte(i)}, dir, "r.pdf")
		if err != nil {
			t.Fatalf("Persist #%d: %v", i, err)
		}
		if filepath.Base(path) != name {
			t.Fatalf("Persist #%d wrote %q, want %q", i, filepath.Base(path), name)
		}
	}
	first, _ := os.ReadFile(filepath.Join(dir, "r.pdf"))
	if !bytes.Equal(first, []byte{0}) {
		t.Fatal("first file was overwritten")
	}
}

func TestPersistFailures(t *testing.T) {
	t.Run("directory is a file", func(t *testing.T) {
		parent := t.TempDir()
		blocker := filepath.Join(parent, "blocker")
		if err := os.WriteFile(blocker, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		path, err := Persist([]byte("x"), blocker, "r.pdf")
		if !errors.Is(err, ErrPersist) {
			t.Fatalf("err = %v, want ErrPersist", err)
		}
		if path != "" {
			t.Fatalf("path = %q on failure", path)
		}
	})
	t.Run("name with separator", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := Persist([]byte("x"), dir, "../r.pdf"); !errors.Is(err, ErrPersist) {
			t.Fatalf("err = %v, want ErrPersist", err)
		}
		assertNoTempFiles(t, dir)
	})
	t.Run("target is a directory", func(t *testing.T) {
		dir := t.TempDir()
		// Every candidate name is an existing directory; the search gives up
		// and the temp file must be removed.
		if err := os.Mkdir(filepath.Join(dir, "r.pdf"), 0o750); err != nil {
			t.Fatal(err)
		}
		for i := 2; i <= maxCollisions+1; i++ {
			if err := os.Mkdir(filepath.Join(dir, "r_"+strconv.Itoa(i)+".pdf"), 0o750); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := Persist([]byte("x"), dir, "r.pdf"); !errors.Is(err, ErrPersist) {
			t.Fatalf("err = %v, want ErrPersist", err)
		}
		assertNoTempFiles(t, dir)
	})
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}
