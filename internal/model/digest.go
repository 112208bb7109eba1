package model

import "time"

// DateRange 摘要覆盖的时间窗口
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DigestSummary holds the counts for a digest batch. Category counts
// always sum to TotalEmails.
type DigestSummary struct {
	TotalEmails         int              `json:"totalEmails"`
	UrgentCount         int              `json:"urgentCount"`
	HighCount           int              `json:"highCount"`
	MediumCount         int              `json:"mediumCount"`
	LowCount            int              `json:"lowCount"`
	ActionRequiredCount int              `json:"actionRequiredCount"`
	CategoryCounts      map[Category]int `json:"categoryCounts"`
}

// MorningDigest is the aggregate report over a batch of analyses.
// Top lists are sorted by urgency score descending and capped.
type MorningDigest struct {
	GeneratedAt          time.Time       `json:"generatedAt"`
	DateRange            DateRange       `json:"dateRange"`
	Summary              DigestSummary   `json:"summary"`
	UrgentEmails         []AnalyzedEmail `json:"urgentEmails"`
	HighPriorityEmails   []AnalyzedEmail `json:"highPriorityEmails"`
	ActionRequiredEmails []AnalyzedEmail `json:"actionRequiredEmails"`
	BusinessInsights     []string        `json:"businessInsights"`
	Recommendations      []string        `json:"recommendations"`
}
