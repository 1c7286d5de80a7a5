package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/artfolio/pictor"
	"github.com/artfolio/pictor/app"
)

func main() {
	configFileName := "config.json"
	if len(os.Args) > 1 {
		configFileName = os.Args[1]
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	config, err := app.LoadConfig(configFileName)
	if err != nil {
		logger.Error("failed to load config", "file", configFileName, "err", err)
		os.Exit(1)
	}
	config.Print()

	a := app.New(config, logger)
	if err := a.InitDB(context.Background()); err != nil {
		logger.Error("database init failed", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	var db pictor.Querier
	if a.DbPool != nil {
		db = a.DbPool
	}

	originClient := &http.Client{
		Timeout: time.Duration(config.OriginTimeoutSec) * time.Second,
	}
	service := pictor.New(db, originClient, logger, config)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	service.RegisterRoutes(r.Group("/api"))
	r.GET("/healthz", service.GetHealth)

	logger.Info("pictor listening", "addr", config.ListenAddr)
	if err := r.Run(config.ListenAddr); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
