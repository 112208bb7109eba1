package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mailintel/internal/model"
	"mailintel/pkg/metrics"
)

const (
	defaultAssistTimeout = 5 * time.Second
	batchWorkers         = 8
)

// Analyzer turns an EmailSummary into an EmailAnalysis. The rule-based
// path is a pure function of the email, the preferences and the corpus;
// the optional assistant only ever adds a bounded network call in front
// of it, never a new failure mode for the caller.
type Analyzer struct {
	corpus  *Corpus
	assist  AssistClient
	timeout time.Duration
	logger  *zap.Logger

	// now is swappable for tests; the recency bonus depends on it.
	now func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAssist attaches a remote assistant. Pass nil to force the rule path.
func WithAssist(c AssistClient) Option {
	return func(a *Analyzer) { a.assist = c }
}

// WithAssistTimeout bounds each assistant call.
func WithAssistTimeout(d time.Duration) Option {
	return func(a *Analyzer) { a.timeout = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func NewAnalyzer(corpus *Corpus, logger *zap.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		corpus:  corpus,
		timeout: defaultAssistTimeout,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces exactly one analysis for the email, assisted when an
// assistant is configured and healthy, rule-based otherwise. Assistant
// failures are logged and absorbed; they never reach the caller.
func (a *Analyzer) Analyze(ctx context.Context, email model.EmailSummary, prefs *model.UserEmailPreferences) model.EmailAnalysis {
	text := strings.ToLower(email.Subject + " " + email.Snippet)
	sctx := ScoreContext{
		From:       email.From,
		Subject:    email.Subject,
		ReceivedAt: email.Date,
		Now:        a.now(),
		IsRead:     email.IsRead,
		Prefs:      prefs,
	}

	start := time.Now()

	if a.assist != nil && (prefs == nil || prefs.AssistEnabled) {
		if result, err := a.attemptAssisted(ctx, text); err == nil {
			reconciled := a.corpus.reconcile(email.ID, text, result, sctx)
			metrics.RecordAnalysisLatency("assisted", time.Since(start))
			return reconciled
		} else {
			metrics.RecordAssistFallback()
			a.logger.Warn("Assistant analysis failed, falling back to rules",
				zap.String("email_id", email.ID),
				zap.Error(err),
			)
		}
	}

	result := a.ruleBased(email.ID, text, sctx)
	metrics.RecordAnalysisLatency("rule", time.Since(start))
	return result
}

// attemptAssisted runs the remote call with a bounded timeout and treats
// an incomplete response the same as a transport failure.
func (a *Analyzer) attemptAssisted(ctx context.Context, text string) (*AssistResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.assist.AnalyzeEmail(callCtx, text)
	if err != nil {
		return nil, err
	}
	if !result.Complete() {
		return nil, ErrIncompleteAssistResult
	}
	return result, nil
}

// ruleBased is the deterministic fallback path. Invoking it twice on
// identical inputs yields an identical analysis.
func (a *Analyzer) ruleBased(id, text string, sctx ScoreContext) model.EmailAnalysis {
	score := a.corpus.Score(text, sctx)
	category := a.corpus.Categorize(sctx.Subject, text, sctx.Prefs)
	relevance, businessHits := a.corpus.BusinessRelevance(text, sctx.Prefs)
	sentiment := a.corpus.SentimentOf(text)
	actionRequired := a.corpus.ActionRequired(text)
	jobValue := ExtractJobValue(text)

	sig := Signals{
		SpamHit:       category == model.CategorySpam,
		UrgentHit:     a.corpus.hasUrgentTerm(text),
		FollowUpHit:   a.corpus.isFollowUp(sctx.Subject, text),
		AdminHit:      containsAny(text, a.corpus.AdminTerms),
		BusinessHits:  businessHits,
		ActionVerbHit: actionRequired,
	}

	return model.EmailAnalysis{
		ID:                id,
		Priority:          PriorityForScore(score),
		Category:          category,
		UrgencyScore:      score,
		ActionRequired:    actionRequired,
		SuggestedActions:  SuggestActions(category, actionRequired, relevance, jobValue),
		Reasoning:         BuildReasoning(sig, category, relevance, sentiment),
		BusinessRelevance: relevance,
		Sentiment:         sentiment,
		CustomerType:      a.corpus.CustomerType(sctx.From, text),
		EstimatedJobValue: jobValue,
	}
}

// AnalyzeBatch analyzes every email concurrently with a bounded worker
// pool. Output order matches input order. Per-email analyses hold no
// shared state, so a cancelled batch simply stops scheduling new work;
// already-finished entries are safe to discard.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, emails []model.EmailSummary, prefs *model.UserEmailPreferences) []model.EmailAnalysis {
	results := make([]model.EmailAnalysis, len(emails))

	sem := make(chan struct{}, batchWorkers)
	var wg sync.WaitGroup
	for i := range emails {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = a.Analyze(ctx, emails[i], prefs)
		}(i)
	}
	wg.Wait()

	return results
}
