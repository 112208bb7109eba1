package digest

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"mailintel/internal/model"
	"mailintel/pkg/metrics"
)

// Top-list caps. Lists are stable-sorted by urgency score descending
// before capping, so ties keep their batch order.
const (
	maxUrgent         = 5
	maxHighPriority   = 8
	maxActionRequired = 10

	defaultNarrativeTimeout = 10 * time.Second
)

// NarrativeClient is the optional assistant for digest prose. Same
// discipline as per-email assist: failure falls back to rule-based text.
type NarrativeClient interface {
	DigestNarrative(ctx context.Context, summary model.DigestSummary) (string, error)
}

// Aggregator builds morning digests from completed per-email analyses.
// It must only run after every analysis in the batch has resolved.
type Aggregator struct {
	narrative NarrativeClient
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Aggregator)

func WithNarrative(c NarrativeClient) Option {
	return func(a *Aggregator) { a.narrative = c }
}

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func NewAggregator(logger *zap.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		timeout: defaultNarrativeTimeout,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build computes the digest for a batch covering [from, to]. Counts are
// derived from the batch itself, so summary totals always reconcile with
// the underlying analyses.
func (a *Aggregator) Build(ctx context.Context, batch []model.AnalyzedEmail, from, to time.Time) model.MorningDigest {
	summary := summarize(batch)

	sorted := make([]model.AnalyzedEmail, len(batch))
	copy(sorted, batch)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Analysis.UrgencyScore > sorted[j].Analysis.UrgencyScore
	})

	insights, recommendations := a.narrate(ctx, summary, sorted)

	metrics.RecordDigestGenerated()

	return model.MorningDigest{
		GeneratedAt: a.now(),
		DateRange:   model.DateRange{From: from, To: to},
		Summary:     summary,
		UrgentEmails: takeWhere(sorted, maxUrgent, func(e model.AnalyzedEmail) bool {
			return e.Analysis.Priority == model.PriorityUrgent
		}),
		HighPriorityEmails: takeWhere(sorted, maxHighPriority, func(e model.AnalyzedEmail) bool {
			return e.Analysis.Priority == model.PriorityHigh
		}),
		ActionRequiredEmails: takeWhere(sorted, maxActionRequired, func(e model.AnalyzedEmail) bool {
			return e.Analysis.ActionRequired
		}),
		BusinessInsights: insights,
		Recommendations:  recommendations,
	}
}

func summarize(batch []model.AnalyzedEmail) model.DigestSummary {
	s := model.DigestSummary{
		TotalEmails: len(batch),
		CategoryCounts: map[model.Category]int{
			model.CategoryUrgent:   0,
			model.CategoryStandard: 0,
			model.CategoryFollowUp: 0,
			model.CategoryAdmin:    0,
			model.CategorySpam:     0,
		},
	}

	for _, e := range batch {
		switch e.Analysis.Priority {
		case model.PriorityUrgent:
			s.UrgentCount++
		case model.PriorityHigh:
			s.HighCount++
		case model.PriorityMedium:
			s.MediumCount++
		case model.PriorityLow:
			s.LowCount++
		}
		if e.Analysis.ActionRequired {
			s.ActionRequiredCount++
		}
		s.CategoryCounts[e.Analysis.Category]++
	}

	return s
}

// narrate tries the assistant first, then falls back to rule-based text.
// Assistant output without recognizable insight/recommendation markers is
// treated as a failure, not returned empty.
func (a *Aggregator) narrate(ctx context.Context, summary model.DigestSummary, sorted []model.AnalyzedEmail) ([]string, []string) {
	if a.narrative != nil {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		text, err := a.narrative.DigestNarrative(callCtx, summary)
		cancel()
		if err == nil {
			if insights, recommendations, ok := parseNarrative(text); ok {
				return insights, recommendations
			}
			a.logger.Warn("Assistant digest narrative had no recognizable sections, using rule-based text")
		} else {
			a.logger.Warn("Assistant digest narrative failed, using rule-based text", zap.Error(err))
		}
		metrics.RecordAssistFallback()
	}

	return ruleInsights(summary, sorted)
}

func takeWhere(sorted []model.AnalyzedEmail, limit int, keep func(model.AnalyzedEmail) bool) []model.AnalyzedEmail {
	out := []model.AnalyzedEmail{}
	for _, e := range sorted {
		if !keep(e) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}
