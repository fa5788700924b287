package main

import (
	"io"
	"log"
	"os"

	"github.com/sajhahub/sajha-hub-backend/internal/config"
	"github.com/sajhahub/sajha-hub-backend/internal/logging"
	"github.com/sajhahub/sajha-hub-backend/internal/oracle/gemini"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/minio"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/postgres"
	redisstore "github.com/sajhahub/sajha-hub-backend/internal/repository/redis"
	"github.com/sajhahub/sajha-hub-backend/internal/service"
	transport "github.com/sajhahub/sajha-hub-backend/internal/transport/http"
	"github.com/sajhahub/sajha-hub-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr, logging.Timeouts{})
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	redisClient := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()
	sessions := redisstore.NewSessionStore(redisClient, cfg.SessionTTL)

	minioClient, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect minio: %v", err)
	}
	storage := minio.NewStorage(minioClient, cfg.MinIOPublicURL)

	oracle := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
	})

	listingRepo := postgres.NewListingRepo(db)
	partnerRepo := postgres.NewPartnerRepo(db)
	blogRepo := postgres.NewBlogRepo(db)
	accountRepo := postgres.NewAccountRepo(db)

	tokens := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(accountRepo, sessions, tokens, cfg.GoogleAudience, cfg.DefaultCity)
	sessionService := service.NewSessionService(sessions, cfg.DefaultCity)
	listingService := service.NewListingService(listingRepo, sessions, storage, service.ListingServiceConfig{
		Bucket:        cfg.MinIOBucketListing,
		PublicBaseURL: cfg.MinIOPublicURL,
		ListingTTL:    cfg.ListingTTL,
	})
	partnerService := service.NewPartnerService(partnerRepo)
	assistService := service.NewAssistService(oracle)
	dealService := service.NewDealService(oracle, sessions)
	blogService := service.NewBlogService(blogRepo, sessions, assistService)
	paymentService := service.NewPaymentService(sessions, cfg.PaymentProcessingDelay)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterPages(e)
	transport.RegisterSwagger(e)
	transport.RegisterAuth(e, authService)
	transport.RegisterSessions(e, authService, sessionService)
	transport.RegisterListings(e, authService, listingService)
	transport.RegisterPartners(e, partnerService)
	if cfg.EnableDeals {
		transport.RegisterDeals(e, dealService)
	}
	if cfg.EnableAssist {
		transport.RegisterAssist(e, authService, assistService)
	}
	transport.RegisterBlogs(e, authService, blogService)
	if cfg.EnablePayments {
		transport.RegisterPayments(e, authService, paymentService)
	}

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
