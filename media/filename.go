package media

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
}

// ValidateExtension checks a filename's extension against the kind's
// allow-list. CV uploads accept only PDF.
func ValidateExtension(kind Kind, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	var ok bool
	switch kind {
	case KindImage, KindContactImage:
		ok = allowedImageExtensions[ext]
	case KindVideo, KindContactVideo:
		ok = allowedVideoExtensions[ext]
	case KindCV:
		ok = ext == ".pdf"
	default:
		return fmt.Errorf("unknown upload kind '%s'", kind)
	}
	if !ok {
		return fmt.Errorf("extension '%s' is not allowed for %s uploads", ext, kind)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SecureFilename strips any directory components from an uploaded
// filename and replaces everything outside [A-Za-z0-9_.-] with an
// underscore. Returns "" when nothing safe remains.
func SecureFilename(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" || base == "." || base == ".." {
		return ""
	}
	return base
}

// UniqueFilename builds a collision-resistant name for contact uploads:
// a unix timestamp plus a short random token, keeping the original
// (lowercased) extension.
func UniqueFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), token, ext)
}

// CVFilename is the fixed per-user CV name; re-uploads overwrite by
// filename collision after the prior row and file are removed.
func CVFilename(userID uint) string {
	return fmt.Sprintf("cv_%d.pdf", userID)
}

const slideKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenSlideKey generates an opaque key correlating a carousel slide with
// its grouped sub-entries.
func GenSlideKey() string {
	b := make([]byte, 4)
	for i := range b {
		b[i] = slideKeyAlphabet[rand.Intn(len(slideKeyAlphabet))]
	}
	return fmt.Sprintf("s%d%s", time.Now().Unix(), string(b))
}
