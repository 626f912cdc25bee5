package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/portfoliobackend/config"
	"github.com/camden-git/portfoliobackend/database"
	"github.com/camden-git/portfoliobackend/handlers"
	"github.com/camden-git/portfoliobackend/mailer"
	"github.com/camden-git/portfoliobackend/media"
	"github.com/camden-git/portfoliobackend/models"
	"github.com/camden-git/portfoliobackend/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{
		cfg.ProjectImagesPath,
		cfg.ProjectVideosPath,
		cfg.CVPath,
		cfg.ContactImagesPath,
		cfg.ContactVideosPath,
		filepath.Dir(cfg.DatabasePath),
	}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	uploadStore, err := media.NewLocalStorage(cfg.UploadsDir, media.DefaultSubDirs())
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize upload store: %v", err)
	}

	userRepo := repository.NewGormUserRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	cvRepo := repository.NewGormCVRepository(db)
	socialRepo := repository.NewGormSocialLinkRepository(db)
	contactRepo := repository.NewGormContactPageRepository(db)

	seedAdminUser(userRepo, cfg)

	mailClient := mailer.New(cfg)

	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, uploadStore)
	cvHandler := handlers.NewCVHandler(cvRepo, uploadStore)
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, mailClient, cfg.ContactDestEmail)
	socialHandler := handlers.NewSocialHandler(socialRepo)
	contactHandler := handlers.NewContactHandler(contactRepo, uploadStore)

	requireAuth := handlers.AuthMiddleware(userRepo, []byte(cfg.JWTSecret))

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)
	r.Use(handlers.MaxBodySize(cfg.MaxContentLength))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.Ping)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Put("/change-password", authHandler.ChangePassword)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/public", categoryHandler.ListPublic)
			r.Get("/{categoryID}/detail", categoryHandler.Detail)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", categoryHandler.ListOwn)
				r.Post("/", categoryHandler.Create)
				r.Put("/reorder", categoryHandler.Reorder)
				r.Post("/{categoryID}/media", categoryHandler.AddMedia)
				r.Delete("/{categoryID}", categoryHandler.Delete)
				r.Put("/media/{mediaID}", categoryHandler.ReplaceMedia)
				r.Patch("/media/{mediaID}/meta", categoryHandler.PatchMeta)
				r.Delete("/media/{mediaID}", categoryHandler.DeleteMedia)
			})
		})

		r.Route("/cv", func(r chi.Router) {
			r.Get("/download", cvHandler.Download)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", cvHandler.Upload)
				r.Delete("/", cvHandler.Delete)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Options("/", messageHandler.Preflight)
			r.Post("/", messageHandler.Create)
		})

		r.Route("/socials", func(r chi.Router) {
			r.Get("/public", socialHandler.ListPublic)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", socialHandler.Upsert)
				r.Delete("/{platform}", socialHandler.Delete)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Get("/public", contactHandler.GetPublic)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", contactHandler.GetAdmin)
				r.Post("/", contactHandler.Update)
				r.Put("/blocks", contactHandler.UpdateBlocks)
				r.Post("/upload-image", contactHandler.UploadImage)
				r.Post("/upload-video", contactHandler.UploadVideo)
			})
		})
	})

	r.Get("/uploads/*", handlers.UploadsServer(cfg.UploadsDir))
	r.Get("/", handlers.Index)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	log.Printf("Starting server on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("FATAL: Server failed: %v", err)
	}
}

// seedAdminUser creates the initial admin account from the environment
// when the users table is empty. Deployments that seed by hand can
// leave the ADMIN_* variables unset.
func seedAdminUser(userRepo repository.UserRepository, cfg config.Config) {
	count, err := userRepo.Count()
	if err != nil {
		log.Printf("Warning: could not count users for admin seed: %v", err)
		return
	}
	if count > 0 {
		return
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Printf("Info: users table is empty and no ADMIN_EMAIL/ADMIN_PASSWORD set; skipping admin seed")
		return
	}

	admin := models.User{Name: cfg.AdminName, Email: cfg.AdminEmail}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		log.Printf("Warning: failed to hash admin seed password: %v", err)
		return
	}
	if err := userRepo.Create(&admin); err != nil {
		log.Printf("Warning: failed to create admin seed user: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", cfg.AdminEmail)
}
