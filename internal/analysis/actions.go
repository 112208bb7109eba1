package analysis

import (
	"strings"

	"mailintel/internal/model"
)

const maxSuggestedActions = 3

// SuggestActions maps classification outputs to a short, ordered,
// de-duplicated action list, capped at three entries.
func SuggestActions(category model.Category, actionRequired bool, relevance int, jobValue *model.JobValue) []string {
	var actions []string

	switch category {
	case model.CategorySpam:
		actions = append(actions, "Mark as spam and block the sender")
	case model.CategoryUrgent:
		actions = append(actions,
			"Respond within the hour",
			"Call the customer directly",
		)
	case model.CategoryFollowUp:
		actions = append(actions, "Send a status update")
	case model.CategoryAdmin:
		actions = append(actions, "File for bookkeeping")
	}

	if actionRequired && category != model.CategorySpam {
		actions = append(actions, "Reply with the requested confirmation or answer")
	}
	if relevance >= relevanceBusinessBar && category != model.CategorySpam {
		actions = append(actions, "Prepare a quote or job estimate")
	}
	if jobValue != nil && category != model.CategorySpam {
		actions = append(actions, "Review the quoted amount before committing")
	}

	if len(actions) == 0 {
		actions = append(actions, "Review during the next admin block")
	}

	return dedupeCap(actions, maxSuggestedActions)
}

// BuildReasoning concatenates the explanation for every triggered rule,
// period-separated. When nothing triggered it falls back to a neutral
// statement so the field is never empty.
func BuildReasoning(sig Signals, category model.Category, relevance int, sentiment model.Sentiment) string {
	var parts []string

	if sig.SpamHit {
		parts = append(parts, "Matches known spam indicators")
	}
	if sig.UrgentHit && category != model.CategorySpam {
		parts = append(parts, "Contains urgent keywords that suggest a time-sensitive issue")
	}
	if sig.FollowUpHit && category == model.CategoryFollowUp {
		parts = append(parts, "Appears to follow up on an earlier conversation")
	}
	if sig.AdminHit && category == model.CategoryAdmin {
		parts = append(parts, "Looks like an administrative or automated notification")
	}
	if sig.ActionVerbHit {
		parts = append(parts, "Requires an action or response")
	}
	if relevance >= relevanceBusinessBar {
		parts = append(parts, "High business relevance for trade operations")
	}
	if sentiment == model.SentimentNegative {
		parts = append(parts, "Negative tone detected; handle with care")
	}

	if len(parts) == 0 {
		return "Standard email - review when convenient."
	}
	return strings.Join(parts, ". ") + "."
}

func dedupeCap(actions []string, limit int) []string {
	seen := make(map[string]bool, len(actions))
	out := make([]string, 0, limit)
	for _, a := range actions {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}
