package model

import "time"

// EmailSummary is the read-only input handed to the analysis engine.
// It mirrors the payload produced by the mail integration.
type EmailSummary struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	From    string    `json:"from"`
	Snippet string    `json:"snippet"`
	Date    time.Time `json:"date"`
	IsRead  bool      `json:"isRead"`
}

// PriorityOverride 用户为发件人/主题配置的优先级档位
type PriorityOverride string

const (
	OverrideUrgent PriorityOverride = "urgent"
	OverrideHigh   PriorityOverride = "high"
	OverrideLow    PriorityOverride = "low"
)

// UserEmailPreferences carries per-user tuning for the analyzer.
// The engine reads it and never mutates it.
type UserEmailPreferences struct {
	UrgentKeywords   []string `json:"urgentKeywords"`
	BusinessKeywords []string `json:"businessKeywords"`
	SpamKeywords     []string `json:"spamKeywords"`

	// SenderPriorities maps a sender-address substring to an override tier.
	SenderPriorities map[string]PriorityOverride `json:"senderPriorities"`
	// SubjectPatterns maps a subject substring to an override tier.
	SubjectPatterns map[string]PriorityOverride `json:"subjectPatterns"`

	// Digest scheduling and analysis toggles.
	DigestHour    int  `json:"digestHour"`
	DigestEnabled bool `json:"digestEnabled"`
	AssistEnabled bool `json:"assistEnabled"`
	AnalyzeOnSync bool `json:"analyzeOnSync"`
}
