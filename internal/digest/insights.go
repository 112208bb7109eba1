package digest

import (
	"fmt"
	"strings"

	"mailintel/internal/model"
)

// Thresholds for the rule-based narrative.
const (
	heavyVolume      = 20
	actionBacklog    = 5
	businessRatioBar = 0.5
	negativeRatioBar = 0.3
	relevantBar      = 60
)

// ruleInsights derives digest prose from batch ratios. Deterministic, so
// it doubles as the fallback whenever the assistant misbehaves.
func ruleInsights(summary model.DigestSummary, batch []model.AnalyzedEmail) ([]string, []string) {
	var insights, recommendations []string

	if summary.TotalEmails == 0 {
		insights = append(insights, "No email activity in this period.")
		return insights, recommendations
	}

	if summary.UrgentCount > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d urgent email(s) need attention before anything else.", summary.UrgentCount))
		recommendations = append(recommendations,
			"Work through the urgent list first; call rather than email where a site visit may be needed.")
	}

	if summary.TotalEmails >= heavyVolume {
		insights = append(insights, fmt.Sprintf(
			"Heavy inbox volume (%d emails); triage by priority tier rather than arrival order.", summary.TotalEmails))
	}

	business := 0
	negative := 0
	for _, e := range batch {
		if e.Analysis.BusinessRelevance >= relevantBar {
			business++
		}
		if e.Analysis.Sentiment == model.SentimentNegative {
			negative++
		}
	}
	total := float64(summary.TotalEmails)

	if float64(business)/total > businessRatioBar {
		insights = append(insights, fmt.Sprintf(
			"Most of today's email (%d of %d) is directly business-relevant - likely quotes, jobs or invoices.",
			business, summary.TotalEmails))
		recommendations = append(recommendations,
			"Block out time for quoting and job scheduling today.")
	}

	if float64(negative)/total > negativeRatioBar {
		insights = append(insights, fmt.Sprintf(
			"%d email(s) carry a negative tone; customer satisfaction may need attention.", negative))
		recommendations = append(recommendations,
			"Personally respond to the unhappy customers before they escalate.")
	}

	if summary.ActionRequiredCount > actionBacklog {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d emails are waiting on a response; clear the backlog in one sitting.", summary.ActionRequiredCount))
	}

	if summary.CategoryCounts[model.CategorySpam] > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Review and block %d suspected spam sender(s).", summary.CategoryCounts[model.CategorySpam]))
	}

	if len(insights) == 0 {
		insights = append(insights, "A quiet period - nothing stands out in the batch.")
	}

	return insights, recommendations
}

// parseNarrative extracts bullet lists from assistant prose. The contract
// is loose on purpose: an INSIGHTS: and a RECOMMENDATIONS: header, each
// followed by "-" bullets. ok is false when neither section parsed, which
// callers treat as assistant failure.
func parseNarrative(text string) (insights, recommendations []string, ok bool) {
	section := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "INSIGHTS"):
			section = "insights"
		case strings.HasPrefix(upper, "RECOMMENDATIONS"):
			section = "recommendations"
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
			item := strings.TrimSpace(strings.TrimLeft(line, "-* "))
			if item == "" {
				continue
			}
			switch section {
			case "insights":
				insights = append(insights, item)
			case "recommendations":
				recommendations = append(recommendations, item)
			}
		}
	}
	ok = len(insights) > 0 || len(recommendations) > 0
	return insights, recommendations, ok
}
