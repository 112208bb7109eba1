package mq

import "time"

// 邮件收到事件的 payload，由邮件集成服务发布
type EmailReceivedPayload struct {
	EmailID    string    `json:"email_id"`
	UserID     int       `json:"user_id"`
	Subject    string    `json:"subject"`
	From       string    `json:"from"`
	Snippet    string    `json:"snippet"`
	ReceivedAt time.Time `json:"received_at"`
	IsRead     bool      `json:"is_read"`
}

// 分析完成事件的 payload
type EmailAnalyzedPayload struct {
	EmailID        string `json:"email_id"`
	UserID         int    `json:"user_id"`
	Priority       string `json:"priority"`
	Category       string `json:"category"`
	UrgencyScore   int    `json:"urgency_score"`
	ActionRequired bool   `json:"action_required"`
}
