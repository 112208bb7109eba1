package main

import (
	"time"

	"go.uber.org/zap"

	"mailintel/config"
	"mailintel/internal/api"
	"mailintel/internal/assist"
	"mailintel/internal/db"
	"mailintel/internal/digest"
	redisclient "mailintel/internal/redis"
	"mailintel/internal/repository"
	"mailintel/internal/service"
	"mailintel/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting digest API service...")

	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	analysisRepo := repository.NewAnalysisRepository(dbConn)
	prefsRepo := repository.NewPreferencesRepository(dbConn)

	// Digest aggregator with optional assist-generated narrative
	var aggOpts []digest.Option
	if cfg.Assist.BaseURL != "" {
		aggOpts = append(aggOpts, digest.WithNarrative(assist.NewClient(cfg.Assist, log)))
	}
	aggregator := digest.NewAggregator(log, aggOpts...)

	digestSvc := service.NewDigestService(
		analysisRepo,
		aggregator,
		rdb,
		time.Duration(cfg.Digest.CacheTTLSeconds)*time.Second,
		log,
	)

	router := api.NewRouter(
		api.NewDigestHandler(digestSvc, cfg.Digest.DefaultHours),
		api.NewAnalysisQueryHandler(analysisRepo),
		api.NewPreferencesHandler(prefsRepo, digestSvc),
		cfg.JWT.Secret,
	)

	log.Info("API listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("API server failed", zap.Error(err))
	}
}
