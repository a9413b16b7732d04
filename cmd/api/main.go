package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shopuploads/internal/config"
	"shopuploads/internal/database"
	"shopuploads/internal/domain"
	"shopuploads/internal/domain/upload"
	"shopuploads/internal/middleware"
	applog "shopuploads/internal/pkg/logger"
	"shopuploads/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := applog.New(cfg.LogFile)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		log.Fatal(err)
	}

	mongoClient, err := database.ConnectMongo(context.Background(), cfg.Mongo.URI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	blobs, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	metadataRepo := upload.NewMetadataRepository(mongoClient.Database(cfg.Mongo.Database))
	productRepo := repository.NewProductRepository(db)

	service := upload.NewService(blobs, metadataRepo, productRepo, logger)
	handler := upload.NewHandler(service, logger, cfg.LogFile, cfg.Backend())

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.RequestLogger(logger))
	r.LoadHTMLGlob("templates/*.html")

	upload.RegisterRoutes(r, handler)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
