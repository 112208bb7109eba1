package analysis

import (
	"context"
	"strings"

	"mailintel/internal/model"
)

// AssistClient is the optional remote analysis collaborator. A nil client
// means the rule-based path runs unconditionally.
type AssistClient interface {
	AnalyzeEmail(ctx context.Context, text string) (*AssistResult, error)
}

// AssistResult is the structured analysis an assistant returns. Required
// fields are pointers so a missing field is distinguishable from a zero
// value; a missing required field counts as assistant failure.
type AssistResult struct {
	UrgencyScore      *int     `json:"urgencyScore"`
	Category          *string  `json:"category"`
	ActionRequired    *bool    `json:"actionRequired"`
	SuggestedActions  []string `json:"suggestedActions"`
	Reasoning         *string  `json:"reasoning"`
	BusinessRelevance *int     `json:"businessRelevance"`
	Sentiment         *string  `json:"sentiment"`
}

// Complete reports whether every required field is present and carries a
// recognizable value. Anything less triggers the fallback path.
func (r *AssistResult) Complete() bool {
	if r == nil {
		return false
	}
	if r.UrgencyScore == nil || r.Category == nil || r.ActionRequired == nil ||
		r.Reasoning == nil || r.BusinessRelevance == nil || r.Sentiment == nil {
		return false
	}
	if len(r.SuggestedActions) == 0 {
		return false
	}
	if !validCategory(*r.Category) || !validSentiment(*r.Sentiment) {
		return false
	}
	return true
}

func validCategory(s string) bool {
	switch model.Category(s) {
	case model.CategoryUrgent, model.CategoryStandard, model.CategoryFollowUp,
		model.CategoryAdmin, model.CategorySpam:
		return true
	}
	return false
}

func validSentiment(s string) bool {
	switch model.Sentiment(s) {
	case model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative:
		return true
	}
	return false
}

// reconcile merges an assistant result with the local preference overrides.
// Overrides only ever raise or lower the remote urgency score; category,
// sentiment and the rest of the assistant's judgment stand as returned.
// Priority is re-derived from the reconciled score so the monotonic
// score-to-priority invariant holds on both paths.
func (c *Corpus) reconcile(id, text string, r *AssistResult, sctx ScoreContext) model.EmailAnalysis {
	score := *r.UrgencyScore
	if sctx.Prefs != nil {
		score += overrideBonus(sctx.Prefs.SenderPriorities, sctx.From)
		score += overrideBonus(sctx.Prefs.SubjectPatterns, sctx.Subject)
		for _, kw := range sctx.Prefs.UrgentKeywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				score += userUrgentWeight
			}
		}
	}
	score = clampScore(score)

	relevance := clampScore(*r.BusinessRelevance)

	return model.EmailAnalysis{
		ID:                id,
		Priority:          PriorityForScore(score),
		Category:          model.Category(*r.Category),
		UrgencyScore:      score,
		ActionRequired:    *r.ActionRequired,
		SuggestedActions:  dedupeCap(r.SuggestedActions, maxSuggestedActions),
		Reasoning:         *r.Reasoning,
		BusinessRelevance: relevance,
		Sentiment:         model.Sentiment(*r.Sentiment),
		CustomerType:      c.CustomerType(sctx.From, text),
		EstimatedJobValue: ExtractJobValue(text),
	}
}
