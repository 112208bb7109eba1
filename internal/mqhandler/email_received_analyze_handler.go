package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"mailintel/internal/mq"
	"mailintel/internal/service"
	"mailintel/pkg/util"
)

// EmailReceivedAnalyzeHandler consumes email.received events and drives
// the analysis service, with redis-side dedup in front of the service's
// own idempotency check.
type EmailReceivedAnalyzeHandler struct {
	svc     *service.AnalyzeService
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewEmailReceivedAnalyzeHandler(svc *service.AnalyzeService, deduper *util.Deduper, logger *zap.Logger) *EmailReceivedAnalyzeHandler {
	return &EmailReceivedAnalyzeHandler{
		svc:     svc,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *EmailReceivedAnalyzeHandler) HandleEmailReceived(ctx context.Context, raw json.RawMessage) error {
	var p mq.EmailReceivedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal email received payload", zap.Error(err))
		return err
	}

	// 去重：同一封邮件的重复投递直接跳过
	if h.deduper != nil && !h.deduper.AcquireOnce(ctx, "analyze", p.EmailID) {
		return nil
	}

	h.logger.Info("Processing email analysis",
		zap.String("email_id", p.EmailID),
		zap.Int("user_id", p.UserID),
		zap.String("subject", p.Subject),
	)

	return h.svc.HandleEmailReceived(ctx, raw)
}
