package analysis

import (
	"strings"
	"time"

	"mailintel/internal/model"
)

// Urgency scale. Everything the scorer produces lands in [0, ScaleMax].
const (
	ScaleMax = 100

	urgentThreshold = 80
	highThreshold   = 60
	mediumThreshold = 30
)

// Context bonuses.
const (
	senderUrgentBonus = 40
	senderHighBonus   = 25
	senderLowPenalty  = -20

	recencyWindow = 2 * time.Hour
	recencyBonus  = 10
	unreadBonus   = 5

	// Weight applied per hit of a user-supplied urgent keyword.
	userUrgentWeight = 25
)

// ScoreContext carries the non-textual signals that feed the urgency score.
type ScoreContext struct {
	From       string
	Subject    string
	ReceivedAt time.Time
	Now        time.Time
	IsRead     bool
	Prefs      *model.UserEmailPreferences
}

// Score computes the urgency signal for the given lower-cased text.
// Matching is plain case-insensitive substring search with no tokenization
// or stemming; duplicate hits across corpora stack additively. That keeps
// the keyword tables literal and the behavior predictable, at the cost of
// matching inside longer words.
func (c *Corpus) Score(text string, sctx ScoreContext) int {
	score := 0

	for term, weight := range c.UrgentTerms {
		if strings.Contains(text, term) {
			score += weight
		}
	}

	if sctx.Prefs != nil {
		for _, kw := range sctx.Prefs.UrgentKeywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				score += userUrgentWeight
			}
		}
		score += overrideBonus(sctx.Prefs.SenderPriorities, sctx.From)
		score += overrideBonus(sctx.Prefs.SubjectPatterns, sctx.Subject)
	}

	// 收到后两小时内的邮件加新鲜度分；零值时间视为"不新鲜"
	if !sctx.ReceivedAt.IsZero() {
		age := sctx.Now.Sub(sctx.ReceivedAt)
		if age >= 0 && age <= recencyWindow {
			score += recencyBonus
		}
	}

	if !sctx.IsRead {
		score += unreadBonus
	}

	return clampScore(score)
}

// overrideBonus returns the tier bonus for matching override patterns.
// Patterns match as case-insensitive substrings of the value. When several
// patterns match, the strongest tier wins (urgent > high > low), keeping
// the result independent of map iteration order.
func overrideBonus(overrides map[string]model.PriorityOverride, value string) int {
	if len(overrides) == 0 {
		return 0
	}
	lower := strings.ToLower(value)
	var hasUrgent, hasHigh, hasLow bool
	for pattern, tier := range overrides {
		if pattern == "" || !strings.Contains(lower, strings.ToLower(pattern)) {
			continue
		}
		switch tier {
		case model.OverrideUrgent:
			hasUrgent = true
		case model.OverrideHigh:
			hasHigh = true
		case model.OverrideLow:
			hasLow = true
		}
	}
	switch {
	case hasUrgent:
		return senderUrgentBonus
	case hasHigh:
		return senderHighBonus
	case hasLow:
		return senderLowPenalty
	}
	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > ScaleMax {
		return ScaleMax
	}
	return score
}

// PriorityForScore maps a clamped urgency score onto the four priority
// bands. It is monotonic: a higher score never yields a lower tier.
func PriorityForScore(score int) model.Priority {
	switch {
	case score >= urgentThreshold:
		return model.PriorityUrgent
	case score >= highThreshold:
		return model.PriorityHigh
	case score >= mediumThreshold:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
