package main

import (
	"log"
	"net/http"

	"jobly/auth"
	"jobly/config"
	"jobly/db"
	"jobly/db/mongo"
	"jobly/db/postgres"
	"jobly/handlers"
	"jobly/middleware"
	"jobly/repository"
	"jobly/routes"
	"jobly/utils"
)

func main() {
	// Load config from .env or system environment
	cfg := config.LoadConfig()

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	var companyRepo repository.CompanyRepository
	var jobRepo repository.JobRepository
	var userRepo repository.UserRepository

	switch cfg.DBType {
	case string(db.Postgres):
		if err := db.RunMigrations(cfg.PostgresURL); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			log.Fatalf("postgres connect failed: %v", err)
		}
		defer pg.Disconnect()

		companyRepo = repository.NewPostgresCompanyRepo(pg.Conn)
		jobRepo = repository.NewPostgresJobRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)

	case string(db.Mongo):
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			log.Fatalf("mongo connect failed: %v", err)
		}
		defer mg.Disconnect()

		companyRepo = repository.NewMongoCompanyRepo(mg.Client)
		jobRepo = repository.NewMongoJobRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)

	default:
		log.Fatalf("DB_TYPE %q not supported", cfg.DBType)
	}

	// Photo storage is optional; without it the upload endpoint reports
	// itself unconfigured instead of blocking startup.
	var photoStorage *utils.R2Storage
	storage, err := utils.NewR2Storage(utils.R2Config{
		Bucket:          cfg.R2Bucket,
		AccountID:       cfg.R2AccountID,
		PublicBaseURL:   cfg.R2PublicURL,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
	})
	if err != nil {
		log.Printf("photo storage disabled: %v", err)
	} else {
		photoStorage = storage
	}

	mw := middleware.New(tokens)
	router := routes.New(
		&handlers.CompanyHandler{Repo: companyRepo},
		&handlers.JobHandler{Repo: jobRepo},
		&handlers.UserHandler{Repo: userRepo, Hasher: hasher, Tokens: tokens},
		&handlers.PhotoHandler{Repo: userRepo, Storage: photoStorage},
		mw,
	)

	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
