package strip

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestDirStoreSingleUse(t *testing.T) {
	s, err := newDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	data := []byte("strip bytes")
	if err := s.Put("final.jpeg", data); err != nil {
		t.Fatal(err)
	}
	got, err := s.Take("final.jpeg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("read back %q, want %q", got, data)
	}
	// the first download consumed the artifact
	if _, err := s.Take("final.jpeg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second take: %v, want ErrNotFound", err)
	}
}

func TestDirStoreUnknownName(t *testing.T) {
	s, err := newDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Take("nope.jpeg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown take: %v, want ErrNotFound", err)
	}
}

func TestDirStoreRejectsTraversal(t *testing.T) {
	s, err := newDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"", ".", "..", "../evil.jpeg", filepath.Join("a", "b.jpeg")} {
		if err := s.Put(name, []byte("x")); !errors.Is(err, ErrBadName) {
			t.Fatalf("put %q: %v, want ErrBadName", name, err)
		}
		if _, err := s.Take(name); !errors.Is(err, ErrBadName) {
			t.Fatalf("take %q: %v, want ErrBadName", name, err)
		}
	}
}

func TestDirStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	if _, err := newDirStore(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := newDirStore(dir); err != nil { // existing dir is fine
		t.Fatal(err)
	}
}
