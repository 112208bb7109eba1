package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailintel/internal/model"
)

// fakeRows drives scanAnalyzedEmails without a live database.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.idx-1]
	for i, d := range dest {
		switch d := d.(type) {
		case *string:
			*d = row[i].(string)
		case *int:
			*d = row[i].(int)
		case *bool:
			*d = row[i].(bool)
		case *time.Time:
			*d = row[i].(time.Time)
		case *[]byte:
			if row[i] == nil {
				*d = nil
			} else {
				*d = row[i].([]byte)
			}
		case **float64:
			if row[i] == nil {
				*d = nil
			} else {
				v := row[i].(float64)
				*d = &v
			}
		}
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func sampleRow(id string, jobValue any) []any {
	return []any{
		id, "Quote request", "jane@gmail.com", "need a quote", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), false,
		"high", "standard", 65, true, []byte(`["Prepare a quote or job estimate"]`),
		"High business relevance for trade operations.", 70, "neutral", "residential", jobValue,
	}
}

func TestScanAnalyzedEmails(t *testing.T) {
	rows := &fakeRows{rows: [][]any{sampleRow("em-1", 2400.0), sampleRow("em-2", nil)}}

	items, err := scanAnalyzedEmails(rows)
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "em-1", first.Email.ID)
	assert.Equal(t, "em-1", first.Analysis.ID)
	assert.Equal(t, model.PriorityHigh, first.Analysis.Priority)
	assert.Equal(t, model.CategoryStandard, first.Analysis.Category)
	assert.Equal(t, model.CustomerResidential, first.Analysis.CustomerType)
	assert.Equal(t, []string{"Prepare a quote or job estimate"}, first.Analysis.SuggestedActions)
	require.NotNil(t, first.Analysis.EstimatedJobValue)
	assert.Equal(t, 2400.0, first.Analysis.EstimatedJobValue.Amount)

	// null job_value stays nil, not zero
	assert.Nil(t, items[1].Analysis.EstimatedJobValue)
}

func TestScanAnalyzedEmailsEmpty(t *testing.T) {
	items, err := scanAnalyzedEmails(&fakeRows{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestScanAnalyzedEmailsBadActionsJSON(t *testing.T) {
	row := sampleRow("em-3", nil)
	row[10] = []byte(`{not json`)

	_, err := scanAnalyzedEmails(&fakeRows{rows: [][]any{row}})
	assert.Error(t, err)
}
