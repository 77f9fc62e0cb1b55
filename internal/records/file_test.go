package records

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emilianohg/taskdesk/internal/blob"
	"github.com/emilianohg/taskdesk/internal/models"
	"github.com/emilianohg/taskdesk/internal/testsupport"
	"github.com/emilianohg/taskdesk/internal/validation"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

func countBlobs(t *testing.T, blobs *blob.Store) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(blobs.Root(), filepath.FromSlash(blob.Prefix)))
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func TestCreateFileStampsAuthenticatedViewer(t *testing.T) {
	m, db, _ := newManager(t)
	alice := testsupport.User(t, db, "alice", false)

	f := &models.File{Name: "notes.txt"}
	if err := m.CreateFile(member(alice), f, Upload{Name: "notes.txt", Content: stringsReader("hello")}); err != nil {
		t.Fatal(err)
	}
	if f.CreatedBy == nil || *f.CreatedBy != alice {
		t.Errorf("created by = %v", f.CreatedBy)
	}

	_, content, err := m.OpenFile(member(alice), f.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer content.Close()
	data, _ := io.ReadAll(content)
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
}

func TestCreateFileAnonymousLeavesCreatedByUnset(t *testing.T) {
	m, _, _ := newManager(t)

	f := &models.File{Name: "notes.txt"}
	if err := m.CreateFile(models.Anonymous, f, Upload{Name: "notes.txt", Content: stringsReader("x")}); err != nil {
		t.Fatal(err)
	}
	if f.CreatedBy != nil {
		t.Errorf("created by = %d, want nil", *f.CreatedBy)
	}
}

func TestCreateFileRemovesBlobWhenInsertFails(t *testing.T) {
	m, db, blobs := newManager(t)
	alice := testsupport.User(t, db, "alice", false)

	// task 999 violates the foreign key
	f := &models.File{Name: "notes.txt", TaskID: ptr(int64(999))}
	if err := m.CreateFile(member(alice), f, Upload{Name: "notes.txt", Content: stringsReader("x")}); err == nil {
		t.Fatal("expected insert failure")
	}
	if n := countBlobs(t, blobs); n != 0 {
		t.Errorf("%d blobs left behind", n)
	}

	long := &models.File{Name: strings.Repeat("n", validation.MaxFileName+1)}
	if err := m.CreateFile(member(alice), long, Upload{Name: "n.txt", Content: stringsReader("x")}); !errors.Is(err, validation.ErrTooLong) {
		t.Fatalf("long name = %v", err)
	}
	if n := countBlobs(t, blobs); n != 0 {
		t.Errorf("%d blobs left behind", n)
	}
}

func TestUpdateFileReplacesContent(t *testing.T) {
	m, db, blobs := newManager(t)
	alice := testsupport.User(t, db, "alice", false)

	f := &models.File{Name: "notes.txt"}
	if err := m.CreateFile(member(alice), f, Upload{Name: "v1.txt", Content: stringsReader("v1")}); err != nil {
		t.Fatal(err)
	}
	old := f.Path

	if err := m.UpdateFile(member(alice), f, &Upload{Name: "v2.txt", Content: stringsReader("v2")}); err != nil {
		t.Fatal(err)
	}
	if f.Path == old {
		t.Fatal("path not replaced")
	}
	if _, err := blobs.Open(old); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("old blob = %v", err)
	}

	f.Name = "renamed.txt"
	if err := m.UpdateFile(member(alice), f, nil); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetFile(member(alice), f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "renamed.txt" || got.Path != f.Path {
		t.Errorf("file = %+v", got)
	}
}

func TestFileVisibilityOnDelete(t *testing.T) {
	m, db, blobs := newManager(t)
	alice := testsupport.User(t, db, "alice", false)
	bob := testsupport.User(t, db, "bob", false)

	f := &models.File{Name: "notes.txt"}
	if err := m.CreateFile(member(alice), f, Upload{Name: "notes.txt", Content: stringsReader("x")}); err != nil {
		t.Fatal(err)
	}

	if err := m.DeleteFile(member(bob), f.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("bob delete = %v", err)
	}
	if err := m.DeleteFile(member(alice), f.ID); err != nil {
		t.Fatal(err)
	}
	if n := countBlobs(t, blobs); n != 0 {
		t.Errorf("%d blobs after delete", n)
	}
}
