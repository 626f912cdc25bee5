package media

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Kind identifies what is being uploaded; each kind maps to a fixed
// subdirectory under the upload root and carries its own extension
// allow-list.
type Kind string

const (
	KindImage        Kind = "image"
	KindVideo        Kind = "video"
	KindCV           Kind = "cv"
	KindContactImage Kind = "contact-image"
	KindContactVideo Kind = "contact-video"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/uploads/"

// Store defines the interface for saving and deleting uploaded files
type Store interface {
	// Save validates the extension for the kind, writes the data under
	// the kind's subdirectory and returns the public-facing URL
	// ("/uploads/<subpath>"). Nothing is written when validation fails.
	Save(kind Kind, filename string, data io.Reader) (string, error)
	// Delete removes the file behind a public URL. URLs outside the
	// upload root and files already gone from disk are ignored.
	Delete(publicURL string)
	// FullPath resolves a public URL to an absolute filesystem path,
	// rejecting anything escaping the upload root.
	FullPath(publicURL string) (string, error)
	// EnsureDir makes sure a kind's directory exists
	EnsureDir(kind Kind) (string, error)
}

// LocalStorage implements the Store interface using the local filesystem
type LocalStorage struct {
	basePath  string          // absolute path to the upload root
	subDirMap map[Kind]string // maps Kind to slash-separated subdirectory
}

// NewLocalStorage creates a new local filesystem store rooted at
// basePath. subDirs maps each kind to its subdirectory (slash form).
func NewLocalStorage(basePath string, subDirs map[Kind]string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid upload root '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload root '%s': %w", absBasePath, err)
	}

	for kind, subDir := range subDirs {
		fullPath := filepath.Join(absBasePath, filepath.FromSlash(subDir))
		if !strings.HasPrefix(filepath.Clean(fullPath), absBasePath) {
			return nil, fmt.Errorf("invalid subdirectory configuration: '%s' for kind '%s' resolves outside upload root", subDir, kind)
		}
	}

	log.Printf("media.store: Initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{
		basePath:  absBasePath,
		subDirMap: subDirs,
	}, nil
}

func (ls *LocalStorage) kindDir(kind Kind) (string, error) {
	subDir, ok := ls.subDirMap[kind]
	if !ok {
		return "", fmt.Errorf("unknown upload kind '%s'", kind)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(subDir)), nil
}

// EnsureDir creates the directory for the kind if it doesn't exist
func (ls *LocalStorage) EnsureDir(kind Kind) (string, error) {
	dirPath, err := ls.kindDir(kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure directory '%s': %w", dirPath, err)
	}
	return dirPath, nil
}

// Save validates and writes an upload, returning its public URL.
// The extension check runs before any filesystem work.
func (ls *LocalStorage) Save(kind Kind, filename string, data io.Reader) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	if err := ValidateExtension(kind, filename); err != nil {
		return "", err
	}

	targetDir, err := ls.EnsureDir(kind)
	if err != nil {
		return "", err
	}

	fullSavePath := filepath.Join(targetDir, filename)
	if !strings.HasPrefix(filepath.Clean(fullSavePath), targetDir) {
		return "", fmt.Errorf("invalid filename '%s'", filename)
	}

	outFile, err := os.Create(fullSavePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, data); err != nil {
		outFile.Close()
		os.Remove(fullSavePath)
		return "", fmt.Errorf("failed to write data to '%s': %w", fullSavePath, err)
	}

	relativePath, err := filepath.Rel(ls.basePath, fullSavePath)
	if err != nil {
		return "", fmt.Errorf("internal error calculating relative path: %w", err)
	}

	log.Printf("media.store: Saved upload to %s", fullSavePath)
	return PublicPrefix + filepath.ToSlash(relativePath), nil
}

// Delete removes the file behind a public URL. Deletion failures are
// swallowed: the enclosing operation must never fail because a physical
// file is already gone.
func (ls *LocalStorage) Delete(publicURL string) {
	fullPath, err := ls.FullPath(publicURL)
	if err != nil {
		return
	}
	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		log.Printf("media.store: failed to delete '%s': %v", fullPath, err)
		return
	}
	if err == nil {
		log.Printf("media.store: Deleted upload %s", fullPath)
	}
}

// FullPath resolves a public "/uploads/..." URL to an absolute path and
// performs the traversal check.
func (ls *LocalStorage) FullPath(publicURL string) (string, error) {
	if !strings.HasPrefix(publicURL, PublicPrefix) {
		return "", fmt.Errorf("'%s' is not a managed upload URL", publicURL)
	}
	relative := path.Clean(strings.TrimPrefix(publicURL, PublicPrefix))

	fullPath := filepath.Join(ls.basePath, filepath.FromSlash(relative))
	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", publicURL, err)
	}
	if !strings.HasPrefix(absFullPath, ls.basePath) {
		return "", fmt.Errorf("invalid path: access denied for '%s'", publicURL)
	}
	return absFullPath, nil
}

// DefaultSubDirs returns the canonical kind-to-subdirectory mapping.
func DefaultSubDirs() map[Kind]string {
	return map[Kind]string{
		KindImage:        "projects/images",
		KindVideo:        "projects/videos",
		KindCV:           "cvs",
		KindContactImage: "contact/images",
		KindContactVideo: "contact/videos",
	}
}
