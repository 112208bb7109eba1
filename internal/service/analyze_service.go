package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"mailintel/internal/analysis"
	"mailintel/internal/model"
	"mailintel/internal/mq"
	"mailintel/internal/repository"
	"mailintel/pkg/metrics"
)

type AnalyzeService struct {
	analyzer     *analysis.Analyzer
	analysisRepo *repository.AnalysisRepository
	prefsRepo    *repository.PreferencesRepository
	publisher    *mq.Publisher
	logger       *zap.Logger
}

func NewAnalyzeService(
	analyzer *analysis.Analyzer,
	analysisRepo *repository.AnalysisRepository,
	prefsRepo *repository.PreferencesRepository,
	publisher *mq.Publisher,
	logger *zap.Logger,
) *AnalyzeService {
	return &AnalyzeService{
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
		prefsRepo:    prefsRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// HandleEmailReceived analyzes an incoming email and stores the result.
// This method is idempotent: an email that already has a stored analysis
// is skipped, so redelivered events have the same effect as one delivery.
func (s *AnalyzeService) HandleEmailReceived(ctx context.Context, raw json.RawMessage) error {
	var p mq.EmailReceivedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}

	// 幂等性检查：已经分析过的邮件直接返回
	exists, err := s.analysisRepo.Exists(ctx, p.EmailID)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug("Email already analyzed, skipping",
			zap.String("email_id", p.EmailID),
		)
		return nil
	}

	prefs, err := s.prefsRepo.GetByUserID(ctx, p.UserID)
	if err != nil {
		return err
	}

	email := model.EmailSummary{
		ID:      p.EmailID,
		Subject: p.Subject,
		From:    p.From,
		Snippet: p.Snippet,
		Date:    p.ReceivedAt,
		IsRead:  p.IsRead,
	}

	result := s.analyzer.Analyze(ctx, email, prefs)
	metrics.RecordEmailAnalyzed(string(result.Priority), string(result.Category))

	if err := s.analysisRepo.Save(ctx, p.UserID, email, result); err != nil {
		return err
	}

	s.logger.Info("Email analyzed",
		zap.String("email_id", p.EmailID),
		zap.Int("user_id", p.UserID),
		zap.String("priority", string(result.Priority)),
		zap.String("category", string(result.Category)),
		zap.Int("urgency_score", result.UrgencyScore),
	)

	// 发布分析完成事件；失败只记日志，分析结果已经落库
	analyzed := mq.EmailAnalyzedPayload{
		EmailID:        p.EmailID,
		UserID:         p.UserID,
		Priority:       string(result.Priority),
		Category:       string(result.Category),
		UrgencyScore:   result.UrgencyScore,
		ActionRequired: result.ActionRequired,
	}
	if err := s.publisher.Publish(ctx, "email.analyzed", analyzed); err != nil {
		s.logger.Error("Failed to publish email.analyzed event",
			zap.String("email_id", p.EmailID),
			zap.Error(err),
		)
	}

	return nil
}
