package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/config"
	dbpkg "github.com/abdur-rahman-shawl/youngminds-sessions/internal/db"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/logger"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/notify"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/routes"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/validators"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	var sink notify.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink := notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("notifications on kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	} else {
		sink = notify.NewLogSink(log)
		log.Info("notifications on log sink")
	}

	validators.RegisterHHMM()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, rdb, sink)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
