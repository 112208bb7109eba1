package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailintel/internal/model"
)

func TestCategorizePrecedence(t *testing.T) {
	corpus := DefaultCorpus()

	tests := []struct {
		name    string
		subject string
		text    string
		want    model.Category
	}{
		{
			name: "spam beats urgent",
			text: "urgent! click here now to claim your prize",
			want: model.CategorySpam,
		},
		{
			name: "urgent beats follow-up",
			text: "following up on the urgent repair",
			want: model.CategoryUrgent,
		},
		{
			name: "follow-up beats admin",
			text: "just checking in on that invoice",
			want: model.CategoryFollowUp,
		},
		{
			name: "admin when nothing stronger fires",
			text: "your monthly statement is attached",
			want: model.CategoryAdmin,
		},
		{
			name: "standard fallback",
			text: "lovely weather we are having",
			want: model.CategoryStandard,
		},
		{
			name:    "reply subject is a follow-up",
			subject: "Re: bathroom renovation",
			text:    "sounds good to me",
			want:    model.CategoryFollowUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := corpus.Categorize(tt.subject, tt.text, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategorizeUserSpamKeywords(t *testing.T) {
	corpus := DefaultCorpus()
	prefs := &model.UserEmailPreferences{SpamKeywords: []string{"timeshare"}}

	got := corpus.Categorize("", "amazing timeshare deal, urgent response needed", prefs)
	assert.Equal(t, model.CategorySpam, got)
}

func TestBusinessRelevance(t *testing.T) {
	corpus := DefaultCorpus()

	rel, hits := corpus.BusinessRelevance("nothing commercial here", nil)
	assert.Equal(t, relevanceBase, rel)
	assert.Equal(t, 0, hits)

	rel, hits = corpus.BusinessRelevance("quote for the install job on site", nil)
	assert.Equal(t, 4, hits)
	assert.Equal(t, relevanceBase+4*relevancePerHit, rel)

	prefs := &model.UserEmailPreferences{BusinessKeywords: []string{"rooftop unit"}}
	rel, hits = corpus.BusinessRelevance("rooftop unit needs a service call", prefs)
	assert.Equal(t, 2, hits)
	assert.Equal(t, relevanceBase+2*relevancePerHit, rel)
}

func TestBusinessRelevanceClampsAtScale(t *testing.T) {
	corpus := DefaultCorpus()

	text := "quote estimate invoice contract job site install repair maintenance booking schedule project tender payment deposit"
	rel, _ := corpus.BusinessRelevance(text, nil)
	assert.Equal(t, ScaleMax, rel)
}

func TestSentimentOf(t *testing.T) {
	corpus := DefaultCorpus()

	assert.Equal(t, model.SentimentPositive, corpus.SentimentOf("thanks, great work"))
	assert.Equal(t, model.SentimentNegative, corpus.SentimentOf("very disappointed, this is unacceptable"))
	assert.Equal(t, model.SentimentNeutral, corpus.SentimentOf("the meter reading is attached"))
	// tie votes resolve neutral
	assert.Equal(t, model.SentimentNeutral, corpus.SentimentOf("thanks but i am disappointed"))
}

func TestActionRequired(t *testing.T) {
	corpus := DefaultCorpus()

	assert.True(t, corpus.ActionRequired("please confirm the booking"))
	assert.False(t, corpus.ActionRequired("fyi only"))
	// keyword presence only, negation is not parsed
	assert.True(t, corpus.ActionRequired("no action required on your part"))
}

func TestCustomerType(t *testing.T) {
	corpus := DefaultCorpus()

	assert.Equal(t, model.CustomerBusiness,
		corpus.CustomerType("admin@acme-property.com", "strata committee approved the works"))
	assert.Equal(t, model.CustomerResidential,
		corpus.CustomerType("jane@gmail.com", "the tap in my house is dripping"))
	assert.Equal(t, model.CustomerUnknown,
		corpus.CustomerType("someone@example.net", "hello"))
}

func TestExtractJobValue(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{name: "plain amount", text: "the quote comes to $1,250.50 all up", want: f(1250.50)},
		{name: "largest wins", text: "deposit $500 now, balance $4,500 on completion", want: f(4500)},
		{name: "space after sign", text: "roughly $ 900 for labor", want: f(900)},
		{name: "below floor discarded", text: "a $5 call-out fee", want: nil},
		{name: "above ceiling discarded", text: "we are not a $2,000,000 outfit", want: nil},
		{name: "no amount", text: "send through your best price", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJobValue(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, got.Amount)
			assert.Equal(t, "USD", got.Currency)
		})
	}
}

func f(v float64) *float64 { return &v }
