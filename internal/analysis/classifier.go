package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"mailintel/internal/model"
)

// Business relevance scale: starts at the midpoint, each business-term hit
// moves it up, clamped to [0, 100].
const (
	relevanceBase        = 50
	relevancePerHit      = 10
	relevanceBusinessBar = 60 // at or above counts as business-relevant for digest ratios
)

// Plausibility bounds for extracted job values. Amounts outside the range
// are treated as parsing noise and discarded.
const (
	jobValueMin = 50
	jobValueMax = 1_000_000
)

var currencyPattern = regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]{1,2})?)`)

// Signals records which rule families fired during classification. The
// action/reasoning generator consumes it so its output stays in lockstep
// with the classification itself.
type Signals struct {
	SpamHit       bool
	UrgentHit     bool
	FollowUpHit   bool
	AdminHit      bool
	BusinessHits  int
	ActionVerbHit bool
}

// Categorize applies the fixed precedence order: spam, urgent, follow-up,
// admin, standard. Only the first matching rule decides the category;
// spam pre-empts everything, including co-occurring urgent keywords.
func (c *Corpus) Categorize(subject, text string, prefs *model.UserEmailPreferences) model.Category {
	if c.isSpam(text, prefs) {
		return model.CategorySpam
	}
	if c.hasUrgentTerm(text) {
		return model.CategoryUrgent
	}
	if c.isFollowUp(subject, text) {
		return model.CategoryFollowUp
	}
	if containsAny(text, c.AdminTerms) {
		return model.CategoryAdmin
	}
	return model.CategoryStandard
}

func (c *Corpus) isSpam(text string, prefs *model.UserEmailPreferences) bool {
	if containsAny(text, c.SpamTerms) {
		return true
	}
	if prefs != nil {
		for _, kw := range prefs.SpamKeywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

func (c *Corpus) hasUrgentTerm(text string) bool {
	for term := range c.UrgentTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func (c *Corpus) isFollowUp(subject, text string) bool {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(subject)), "re:") {
		return true
	}
	return containsAny(text, c.FollowUpPhrases)
}

// BusinessRelevance estimates how pertinent the text is to core business
// operations, counting built-in and user-supplied business terms.
func (c *Corpus) BusinessRelevance(text string, prefs *model.UserEmailPreferences) (int, int) {
	hits := countHits(text, c.BusinessTerms)
	if prefs != nil {
		for _, kw := range prefs.BusinessKeywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				hits++
			}
		}
	}
	relevance := relevanceBase + hits*relevancePerHit
	if relevance > ScaleMax {
		relevance = ScaleMax
	}
	if relevance < 0 {
		relevance = 0
	}
	return relevance, hits
}

// SentimentOf is a simple majority vote of positive vs negative word hits;
// a tie (including zero hits) is neutral.
func (c *Corpus) SentimentOf(text string) model.Sentiment {
	pos := countHits(text, c.PositiveWords)
	neg := countHits(text, c.NegativeWords)
	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// ActionRequired is a bare keyword-presence test against the action-verb
// list. It is not negation-aware: "no action required" still flags true.
// That coarseness is intentional and documented; a parse would cost far
// more than the occasional false positive here.
func (c *Corpus) ActionRequired(text string) bool {
	return containsAny(text, c.ActionVerbs)
}

// CustomerType guesses business vs residential from the sender address and
// the text. Best-effort only; when neither hint family fires it reports
// unknown rather than guessing.
func (c *Corpus) CustomerType(from, text string) model.CustomerType {
	combined := strings.ToLower(from) + " " + text
	business := countHits(combined, c.BusinessHints)
	residential := countHits(combined, c.ResidentialHints)
	switch {
	case business > residential:
		return model.CustomerBusiness
	case residential > business:
		return model.CustomerResidential
	default:
		return model.CustomerUnknown
	}
}

// ExtractJobValue pulls the largest plausible currency amount out of the
// text. Returns nil when nothing within bounds is found, so callers can
// tell "not found" apart from "found zero".
func ExtractJobValue(text string) *model.JobValue {
	matches := currencyPattern.FindAllStringSubmatch(text, -1)
	best := 0.0
	found := false
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if amount < jobValueMin || amount > jobValueMax {
			continue
		}
		if !found || amount > best {
			best = amount
			found = true
		}
	}
	if !found {
		return nil
	}
	return &model.JobValue{Amount: best, Currency: "USD"}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func countHits(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}
