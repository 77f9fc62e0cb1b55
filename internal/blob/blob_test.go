package blob

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func TestSaveOpenRemove(t *testing.T) {
	s := NewStore(t.TempDir())

	rel, err := s.Save("report final.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(rel, Prefix+"/") || !strings.HasSuffix(rel, "_report_final.pdf") {
		t.Errorf("path = %q", rel)
	}

	f, err := s.Open(rel)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != "content" {
		t.Errorf("content = %q", data)
	}

	if err := s.Remove(rel); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Open(rel); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open after remove = %v", err)
	}
	if err := s.Remove(rel); err != nil {
		t.Errorf("second Remove = %v", err)
	}
}

func TestSaveUsesDistinctNames(t *testing.T) {
	s := NewStore(t.TempDir())
	a, err := s.Save("same.txt", strings.NewReader("a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Save("same.txt", strings.NewReader("b"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("both uploads stored at %q", a)
	}
}

func TestSaveRejectsLongPaths(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save(strings.Repeat("x", MaxPathLength)+".txt", strings.NewReader(""))
	if !errors.Is(err, ErrPathTooLong) {
		t.Fatalf("Save long name = %v, want ErrPathTooLong", err)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, rel := range []string{"", "../secret", "/etc/passwd", "media/../../x"} {
		if _, err := s.Open(rel); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Open(%q) = %v, want ErrInvalidPath", rel, err)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"a.txt":          "a.txt",
		"dir/b.txt":      "b.txt",
		`C:\docs\c.txt`:  "c.txt",
		"with space.png": "with_space.png",
		"..":             "upload",
		"":               "upload",
	}
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
