package media

import (
	"strings"
	"testing"
)

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		filename string
		wantErr  bool
	}{
		{"png image", KindImage, "photo.PNG", false},
		{"webp image", KindImage, "photo.webp", false},
		{"executable as image", KindImage, "malware.exe", true},
		{"video as image", KindImage, "clip.mp4", true},
		{"mp4 video", KindVideo, "clip.mp4", false},
		{"ogg video", KindContactVideo, "clip.ogg", false},
		{"pdf as video", KindVideo, "cv.pdf", true},
		{"pdf cv", KindCV, "cv.pdf", false},
		{"docx cv", KindCV, "cv.docx", true},
		{"no extension", KindImage, "photo", true},
		{"unknown kind", Kind("archive"), "a.zip", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtension(tt.kind, tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtension(%s, %q) error = %v, wantErr %v", tt.kind, tt.filename, err, tt.wantErr)
			}
		})
	}
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "photo.png", "photo.png"},
		{"spaces replaced", "my photo.png", "my_photo.png"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\temp\shot.png`, "C_temp_shot.png"},
		{"unicode replaced", "fotografía.png", "fotograf_a.png"},
		{"dotfile rejected", "...", ""},
		{"nothing safe", "¿¿¿", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecureFilename(tt.in); got != tt.want {
				t.Errorf("SecureFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCVFilename(t *testing.T) {
	if got := CVFilename(7); got != "cv_7.pdf" {
		t.Errorf("CVFilename(7) = %q", got)
	}
}

func TestUniqueFilenameKeepsExtension(t *testing.T) {
	got := UniqueFilename("Clip.MP4")
	if !strings.HasSuffix(got, ".mp4") {
		t.Errorf("UniqueFilename = %q, want .mp4 suffix", got)
	}
	if got == UniqueFilename("Clip.MP4") {
		t.Error("two generated names collided")
	}
}

func TestGenSlideKeyFormat(t *testing.T) {
	key := GenSlideKey()
	if !strings.HasPrefix(key, "s") || len(key) < 6 {
		t.Errorf("GenSlideKey() = %q, want s-prefixed opaque key", key)
	}
}
