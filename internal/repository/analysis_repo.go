package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mailintel/internal/model"
)

type AnalysisRepository struct {
	db *pgxpool.Pool
}

func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save upserts the analysis for an email. Re-analysis of the same email
// overwrites the previous row, so the stored analysis always reflects the
// most recent run.
func (r *AnalysisRepository) Save(ctx context.Context, userID int, email model.EmailSummary, a model.EmailAnalysis) error {
	actions, err := json.Marshal(a.SuggestedActions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggested actions: %w", err)
	}

	var jobValue *float64
	if a.EstimatedJobValue != nil {
		jobValue = &a.EstimatedJobValue.Amount
	}

	query := `
        INSERT INTO email_analyses (
            email_id, user_id, subject, from_addr, snippet, received_at, is_read,
            priority, category, urgency_score, action_required, suggested_actions,
            reasoning, business_relevance, sentiment, customer_type, job_value,
            analyzed_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
        ON CONFLICT (email_id) DO UPDATE SET
            priority = EXCLUDED.priority,
            category = EXCLUDED.category,
            urgency_score = EXCLUDED.urgency_score,
            action_required = EXCLUDED.action_required,
            suggested_actions = EXCLUDED.suggested_actions,
            reasoning = EXCLUDED.reasoning,
            business_relevance = EXCLUDED.business_relevance,
            sentiment = EXCLUDED.sentiment,
            customer_type = EXCLUDED.customer_type,
            job_value = EXCLUDED.job_value,
            is_read = EXCLUDED.is_read,
            analyzed_at = NOW()
    `
	_, err = r.db.Exec(ctx, query,
		email.ID, userID, email.Subject, email.From, email.Snippet, email.Date, email.IsRead,
		string(a.Priority), string(a.Category), a.UrgencyScore, a.ActionRequired, actions,
		a.Reasoning, a.BusinessRelevance, string(a.Sentiment), string(a.CustomerType), jobValue,
	)
	return err
}

// Exists reports whether an analysis is already stored for the email.
func (r *AnalysisRepository) Exists(ctx context.Context, emailID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM email_analyses WHERE email_id = $1)`, emailID,
	).Scan(&exists)
	return exists, err
}

// ListInRange returns every analyzed email for a user inside [from, to],
// oldest first.
func (r *AnalysisRepository) ListInRange(ctx context.Context, userID int, from, to time.Time) ([]model.AnalyzedEmail, error) {
	query := `
        SELECT email_id, subject, from_addr, snippet, received_at, is_read,
               priority, category, urgency_score, action_required, suggested_actions,
               reasoning, business_relevance, sentiment, customer_type, job_value
        FROM email_analyses
        WHERE user_id = $1 AND received_at >= $2 AND received_at <= $3
        ORDER BY received_at ASC
    `
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnalyzedEmails(rows)
}

// ListRecent returns the latest analyses for a user, newest first.
func (r *AnalysisRepository) ListRecent(ctx context.Context, userID, limit int) ([]model.AnalyzedEmail, error) {
	query := `
        SELECT email_id, subject, from_addr, snippet, received_at, is_read,
               priority, category, urgency_score, action_required, suggested_actions,
               reasoning, business_relevance, sentiment, customer_type, job_value
        FROM email_analyses
        WHERE user_id = $1
        ORDER BY received_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAnalyzedEmails(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAnalyzedEmails(rows pgxRows) ([]model.AnalyzedEmail, error) {
	items := []model.AnalyzedEmail{}

	for rows.Next() {
		var (
			item        model.AnalyzedEmail
			priority    string
			category    string
			sentiment   string
			customer    string
			actionsJSON []byte
			jobValue    *float64
		)

		err := rows.Scan(
			&item.Email.ID,
			&item.Email.Subject,
			&item.Email.From,
			&item.Email.Snippet,
			&item.Email.Date,
			&item.Email.IsRead,
			&priority,
			&category,
			&item.Analysis.UrgencyScore,
			&item.Analysis.ActionRequired,
			&actionsJSON,
			&item.Analysis.Reasoning,
			&item.Analysis.BusinessRelevance,
			&sentiment,
			&customer,
			&jobValue,
		)
		if err != nil {
			return nil, err
		}

		item.Analysis.ID = item.Email.ID
		item.Analysis.Priority = model.Priority(priority)
		item.Analysis.Category = model.Category(category)
		item.Analysis.Sentiment = model.Sentiment(sentiment)
		item.Analysis.CustomerType = model.CustomerType(customer)
		if jobValue != nil {
			item.Analysis.EstimatedJobValue = &model.JobValue{Amount: *jobValue, Currency: "USD"}
		}
		if len(actionsJSON) > 0 {
			if err := json.Unmarshal(actionsJSON, &item.Analysis.SuggestedActions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal suggested actions: %w", err)
			}
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
