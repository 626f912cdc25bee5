package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultProjectImagesSubDir = "projects/images"
	DefaultProjectVideosSubDir = "projects/videos"
	DefaultCVSubDir            = "cvs"
	DefaultContactImagesSubDir = "contact/images"
	DefaultContactVideosSubDir = "contact/videos"
)

const (
	defaultTokenTTLSeconds  = 3600
	defaultMaxContentLength = 16 * 1024 * 1024
	defaultMailPort         = 587
	defaultMailTimeoutSecs  = 15
)

type Config struct {
	// database path
	DatabasePath string

	// token signing
	SecretKey string
	JWTSecret string
	TokenTTL  time.Duration

	// upload storage configuration
	UploadsDir        string // primary root for every uploaded file
	ProjectImagesPath string // full-calculated path for project images
	ProjectVideosPath string // full-calculated path for project videos
	CVPath            string // full-calculated path for CV files
	ContactImagesPath string // full-calculated path for contact page images
	ContactVideosPath string // full-calculated path for contact page videos

	// request limits
	MaxContentLength int64

	// outbound mail
	MailServer       string
	MailPort         int
	MailUseTLS       bool
	MailUseSSL       bool
	MailUsername     string
	MailPassword     string
	MailTimeout      time.Duration
	ContactDestEmail string

	// cross-origin request origins allowed on /api and /uploads
	AllowedOrigins []string

	// optional first-run admin seed
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(valStr)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	}
	log.Printf("Warning: Invalid %s '%s'. Using default %v.", envVar, valStr, defaultVal)
	return defaultVal
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "portfolio.db")

	uploadsDir := getEnvOrDefault("UPLOADS_DIR", filepath.Join(".", "uploads"))
	absUploadsDir, err := filepath.Abs(uploadsDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for uploads dir '%s': %w", uploadsDir, err)
	}

	secret := getEnvOrDefault("SECRET_KEY", "dev-secret")
	jwtSecret := getEnvOrDefault("JWT_SECRET_KEY", secret)

	ttlSecs := getEnvIntOrDefault("JWT_EXPIRES_SECONDS", defaultTokenTTLSeconds)

	maxBody := int64(getEnvIntOrDefault("MAX_CONTENT_LENGTH", defaultMaxContentLength))

	mailTimeoutSecs := getEnvIntOrDefault("MAIL_TIMEOUT", defaultMailTimeoutSecs)

	origins := []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := Config{
		DatabasePath:      dbPath,
		SecretKey:         secret,
		JWTSecret:         jwtSecret,
		TokenTTL:          time.Duration(ttlSecs) * time.Second,
		UploadsDir:        absUploadsDir,
		ProjectImagesPath: filepath.Join(absUploadsDir, filepath.FromSlash(DefaultProjectImagesSubDir)),
		ProjectVideosPath: filepath.Join(absUploadsDir, filepath.FromSlash(DefaultProjectVideosSubDir)),
		CVPath:            filepath.Join(absUploadsDir, DefaultCVSubDir),
		ContactImagesPath: filepath.Join(absUploadsDir, filepath.FromSlash(DefaultContactImagesSubDir)),
		ContactVideosPath: filepath.Join(absUploadsDir, filepath.FromSlash(DefaultContactVideosSubDir)),
		MaxContentLength:  maxBody,
		MailServer:        os.Getenv("MAIL_SERVER"),
		MailPort:          getEnvIntOrDefault("MAIL_PORT", defaultMailPort),
		MailUseTLS:        getEnvBoolOrDefault("MAIL_USE_TLS", true),
		MailUseSSL:        getEnvBoolOrDefault("MAIL_USE_SSL", false),
		MailUsername:      os.Getenv("MAIL_USERNAME"),
		MailPassword:      os.Getenv("MAIL_PASSWORD"),
		MailTimeout:       time.Duration(mailTimeoutSecs) * time.Second,
		ContactDestEmail:  os.Getenv("CONTACT_DEST_EMAIL"),
		AllowedOrigins:    origins,
		AdminName:         os.Getenv("ADMIN_NAME"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}

	return cfg, nil
}
