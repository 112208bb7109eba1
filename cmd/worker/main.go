package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mailintel/config"
	"mailintel/internal/analysis"
	"mailintel/internal/assist"
	"mailintel/internal/db"
	"mailintel/internal/mq"
	"mailintel/internal/mqhandler"
	redisclient "mailintel/internal/redis"
	"mailintel/internal/repository"
	"mailintel/internal/service"
	"mailintel/pkg/logger"
	"mailintel/pkg/util"
)

func main() {
	// Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting analysis worker...")

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	deduper := util.NewDeduperWithLogger(rdb, time.Hour, log)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Repositories
	analysisRepo := repository.NewAnalysisRepository(dbConn)
	prefsRepo := repository.NewPreferencesRepository(dbConn)

	// Init analyzer: keyword corpus + optional assist client
	corpus, err := analysis.LoadCorpus(cfg.Analysis.CorpusFile)
	if err != nil {
		log.Fatal("failed to load corpus", zap.Error(err))
	}

	opts := []analysis.Option{
		analysis.WithAssistTimeout(time.Duration(cfg.Assist.TimeoutSeconds) * time.Second),
	}
	if cfg.Assist.BaseURL != "" {
		log.Info("Assist service enabled", zap.String("base_url", cfg.Assist.BaseURL))
		opts = append(opts, analysis.WithAssist(assist.NewClient(cfg.Assist, log)))
	} else {
		log.Info("Assist service disabled, rule-based analysis only")
	}
	analyzer := analysis.NewAnalyzer(corpus, log, opts...)

	// Init publisher for email.analyzed events
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	analyzeSvc := service.NewAnalyzeService(analyzer, analysisRepo, prefsRepo, publisher, log)
	analyzeHandler := mqhandler.NewEmailReceivedAnalyzeHandler(analyzeSvc, deduper, log)

	// Consumer for analysis
	log.Info("Initializing analyze consumer", zap.String("queue", "email.received.analyze.q"))
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "email.received.analyze.q", "email.received", log)
	if err != nil {
		log.Fatal("failed to init analyze consumer", zap.Error(err))
	}
	consumer.SetHandler(analyzeHandler.HandleEmailReceived)
	go func() {
		log.Info("Starting analyze consumer")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("analyze consumer failed", zap.Error(err))
		}
	}()
	defer consumer.Close()

	// Prometheus metrics endpoint
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.Server.MetricsPort, nil); err != nil {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	log.Info("Worker is ready to process messages")

	// Keep worker running
	select {}
}
