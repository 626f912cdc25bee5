package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir(), DefaultSubDirs())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return store
}

func TestStoreSaveAndDelete(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(KindImage, "photo.png", strings.NewReader("fake png"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/uploads/projects/images/photo.png" {
		t.Errorf("Save returned %q", url)
	}

	fullPath, err := store.FullPath(url)
	if err != nil {
		t.Fatalf("FullPath: %v", err)
	}
	if _, err := os.Stat(fullPath); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	store.Delete(url)
	if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
		t.Error("Delete left the file on disk")
	}

	// second delete of the same URL must be a silent no-op
	store.Delete(url)
}

func TestStoreSaveRejectsBadExtensionBeforeWrite(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(KindImage, "malware.exe", strings.NewReader("MZ")); err == nil {
		t.Fatal("Save accepted a .exe upload as image")
	}

	// the rejected upload must not have touched the filesystem
	imagesDir := filepath.Join(store.basePath, "projects", "images")
	entries, err := os.ReadDir(imagesDir)
	if err == nil && len(entries) != 0 {
		t.Errorf("rejected upload left %d files behind", len(entries))
	}
}

func TestStoreDeleteIgnoresForeignURLs(t *testing.T) {
	store := newTestStore(t)

	// none of these may panic or touch anything outside the root
	store.Delete("https://example.com/remote.png")
	store.Delete("/etc/passwd")
	store.Delete("/uploads/../../etc/passwd")
	store.Delete("")
}

func TestStoreFullPathRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	tests := []string{
		"/uploads/../secret.txt",
		"/uploads/../../etc/passwd",
		"/elsewhere/file.png",
		"relative/file.png",
	}
	for _, url := range tests {
		if _, err := store.FullPath(url); err == nil {
			t.Errorf("FullPath(%q) accepted a path outside the upload root", url)
		}
	}
}

func TestStoreSaveRejectsUnknownKind(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save(Kind("archive"), "a.zip", strings.NewReader("zip")); err == nil {
		t.Fatal("Save accepted an unregistered kind")
	}
}
