package main

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/layer-3/clickcha/adapters/events"
	"github.com/layer-3/clickcha/adapters/store"
	"github.com/layer-3/clickcha/config"
	"github.com/layer-3/clickcha/layout"
	"github.com/layer-3/clickcha/render"
	"github.com/layer-3/clickcha/service"
	"github.com/layer-3/clickcha/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Parse Redis URL and create client
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(opts)

	// Initialize Watermill Redis publisher for lifecycle events
	wmLogger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		wmLogger,
	)
	if err != nil {
		logger.Fatal("Failed to create Redis publisher", zap.Error(err))
	}

	captchaStore := store.NewRedisStore(redisClient)
	eventPub := events.NewWatermillPublisher(publisher)

	generator := layout.NewGenerator(layout.Config{
		Width:       cfg.CaptchaWidth,
		Height:      cfg.CaptchaHeight,
		MinFontSize: cfg.MinFontSize,
		MaxFontSize: cfg.MaxFontSize,
		MaxRotation: cfg.MaxRotationAngle,
	})

	renderer := render.New(render.Config{
		Width:        cfg.CaptchaWidth,
		Height:       cfg.CaptchaHeight,
		ImagesDir:    cfg.ImagesDir,
		FontsDir:     cfg.FontsDir,
		BaseFontSize: cfg.BaseFontSize,
	}, logger)

	captchaService := service.NewCaptchaService(service.Config{
		Tolerance:   cfg.ClickTolerance,
		TTL:         cfg.CaptchaExpiration,
		ImageWidth:  cfg.CaptchaWidth,
		ImageHeight: cfg.CaptchaHeight,
	}, captchaStore, renderer, eventPub, generator, logger)

	// Setup Gin router
	router := http.SetupRouter(http.RouterConfig{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
	}, captchaService)

	logger.Info("starting server", zap.String("addr", cfg.ListenAddr))

	// Start server
	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
	}
	return zapCfg.Build()
}
