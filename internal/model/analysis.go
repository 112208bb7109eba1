package model

// Priority is the four-band triage tier derived from the urgency score.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Category is the precedence-ordered keyword classification of an email.
type Category string

const (
	CategoryUrgent   Category = "urgent"
	CategoryStandard Category = "standard"
	CategoryFollowUp Category = "follow-up"
	CategoryAdmin    Category = "admin"
	CategorySpam     Category = "spam"
)

// Sentiment is the majority vote of positive vs negative word hits.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CustomerType 客户类型（商业/住宅），启发式推断，未知时为 unknown
type CustomerType string

const (
	CustomerBusiness    CustomerType = "business"
	CustomerResidential CustomerType = "residential"
	CustomerUnknown     CustomerType = "unknown"
)

// JobValue is a best-effort currency extraction. A nil *JobValue means
// "not found"; it is never conflated with a found value of zero.
type JobValue struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// EmailAnalysis is the per-email output of the analysis engine. The
// rule-based path is deterministic: same input, same preferences, same
// corpus always yields an identical value.
type EmailAnalysis struct {
	ID                string       `json:"id"`
	Priority          Priority     `json:"priority"`
	Category          Category     `json:"category"`
	UrgencyScore      int          `json:"urgencyScore"`
	ActionRequired    bool         `json:"actionRequired"`
	SuggestedActions  []string     `json:"suggestedActions"`
	Reasoning         string       `json:"reasoning"`
	BusinessRelevance int          `json:"businessRelevance"`
	Sentiment         Sentiment    `json:"sentiment"`
	CustomerType      CustomerType `json:"customerType"`
	EstimatedJobValue *JobValue    `json:"estimatedJobValue,omitempty"`
}

// AnalyzedEmail pairs an email with its analysis, as consumed by the
// digest aggregator.
type AnalyzedEmail struct {
	Email    EmailSummary  `json:"email"`
	Analysis EmailAnalysis `json:"analysis"`
}
