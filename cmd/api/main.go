package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/address-dedupe/app/config"
	"github.com/address-dedupe/app/controllers"
	"github.com/address-dedupe/app/services"
	"github.com/address-dedupe/internal/dedupe"
	"github.com/address-dedupe/internal/external"
	"github.com/address-dedupe/internal/language"
	"github.com/address-dedupe/internal/normalizer"
	"github.com/address-dedupe/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	cfg, err := config.Load(viper.GetString("dedupe.config_path"))
	if err != nil {
		logger.Fatal("Failed to load dedupe config", zap.Error(err))
	}
	opts, err := cfg.Options()
	if err != nil {
		logger.Fatal("Invalid dedupe policy", zap.Error(err))
	}

	logger.Info("Starting Address Dedupe Service",
		zap.String("expander", cfg.Expander.Backend),
		zap.String("cache", cfg.Cache.Backend))

	// 3. Khởi tạo dictionaries dùng chung; resolver luôn dùng lexicon của rules
	if err := normalizer.Setup(); err != nil {
		logger.Fatal("Failed to load expansion dictionaries", zap.Error(err))
	}
	defer normalizer.Teardown()

	// 4. Khởi tạo expander theo backend
	expander, parser, teardown := initExpander(cfg, logger)
	defer teardown()

	if cfg.Expander.CacheSize > 0 {
		cached, err := normalizer.NewCachedExpander(expander, cfg.Expander.CacheSize)
		if err != nil {
			logger.Fatal("Failed to create expansion cache", zap.Error(err))
		}
		expander = cached
	}

	engine := dedupe.NewEngine(expander, language.NewResolver(normalizer.Shared()), logger)

	// 5. Khởi tạo verdict cache
	verdictCache := initVerdictCache(cfg, logger)
	if verdictCache != nil {
		defer verdictCache.Close()
	}

	// 6. Khởi tạo service và controller
	dedupeService := services.NewDedupeService(engine, verdictCache, parser, opts, cfg.Expander.Backend, logger)
	dedupeController := controllers.NewDedupeController(dedupeService, logger)

	// 7. Khởi tạo Gin router
	if viper.GetString("app.env") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	routes.SetupAllRoutes(router, dedupeController)

	// 8. Khởi động server
	port := viper.GetString("app.port")
	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		logger.Info("Address Dedupe Service starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Teardown chỉ chạy sau khi mọi request đang xử lý đã xong
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initExpander trả về expander, parser (nil với backend rules) và hàm teardown
func initExpander(cfg *config.DedupeCfg, logger *zap.Logger) (dedupe.Expander, services.AddressParser, func()) {
	switch cfg.Expander.Backend {
	case config.ExpanderLibpostal:
		lp, err := external.NewLibpostalExpander()
		if err != nil {
			logger.Fatal("Failed to initialize libpostal", zap.Error(err))
		}
		if err := lp.Setup(); err != nil {
			logger.Fatal("Failed to set up libpostal", zap.Error(err))
		}
		return lp, lp, lp.Teardown
	default:
		return normalizer.Shared(), nil, func() {}
	}
}

// initVerdictCache khởi tạo cache theo backend; nil khi tắt cache
func initVerdictCache(cfg *config.DedupeCfg, logger *zap.Logger) services.IVerdictCache {
	newRedis := func() *services.RedisVerdictCache {
		rc, err := services.NewRedisVerdictCache(viper.GetString("redis.url"), cfg.Cache.TTL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
		}
		return rc
	}

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return services.NewMemoryVerdictCache(cfg.Cache.Size, cfg.Cache.TTL)
	case config.CacheRedis:
		return newRedis()
	case config.CacheHybrid:
		local := services.NewMemoryVerdictCache(cfg.Cache.Size, cfg.Cache.TTL)
		return services.NewHybridVerdictCache(local, newRedis(), logger)
	default:
		return nil
	}
}

// loadConfig load configuration từ file và env vars
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("dedupe.config_path", "./config/dedupe.yaml")
	viper.SetDefault("redis.url", "redis://localhost:6379")

	viper.AutomaticEnv()
	bindEnv("app.port", "APP_PORT")
	bindEnv("app.env", "APP_ENV")
	bindEnv("dedupe.config_path", "DEDUPE_CONFIG")
	bindEnv("redis.url", "REDIS_URL")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

func bindEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		log.Printf("Warning: Cannot bind %s: %v", env, err)
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	var zapCfg zap.Config
	if viper.GetString("app.env") == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}
