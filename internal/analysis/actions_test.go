package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mailintel/internal/model"
)

func TestSuggestActionsSpamIsTerminal(t *testing.T) {
	jv := &model.JobValue{Amount: 5000, Currency: "USD"}

	got := SuggestActions(model.CategorySpam, true, 90, jv)
	assert.Equal(t, []string{"Mark as spam and block the sender"}, got)
}

func TestSuggestActionsUrgent(t *testing.T) {
	got := SuggestActions(model.CategoryUrgent, true, 40, nil)
	assert.Equal(t, []string{
		"Respond within the hour",
		"Call the customer directly",
		"Reply with the requested confirmation or answer",
	}, got)
}

func TestSuggestActionsCapsAtThree(t *testing.T) {
	jv := &model.JobValue{Amount: 5000, Currency: "USD"}

	// urgent + action + relevance + job value would be five entries uncapped
	got := SuggestActions(model.CategoryUrgent, true, 80, jv)
	assert.Len(t, got, maxSuggestedActions)
	assert.Equal(t, "Respond within the hour", got[0])
}

func TestSuggestActionsDefault(t *testing.T) {
	got := SuggestActions(model.CategoryStandard, false, 50, nil)
	assert.Equal(t, []string{"Review during the next admin block"}, got)
}

func TestSuggestActionsDeterministic(t *testing.T) {
	first := SuggestActions(model.CategoryFollowUp, true, 70, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, SuggestActions(model.CategoryFollowUp, true, 70, nil))
	}
}

func TestBuildReasoningJoinsTriggeredRules(t *testing.T) {
	sig := Signals{UrgentHit: true, ActionVerbHit: true}

	got := BuildReasoning(sig, model.CategoryUrgent, 70, model.SentimentNegative)
	assert.Equal(t,
		"Contains urgent keywords that suggest a time-sensitive issue. "+
			"Requires an action or response. "+
			"High business relevance for trade operations. "+
			"Negative tone detected; handle with care.",
		got)
}

func TestBuildReasoningSpamSuppressesUrgent(t *testing.T) {
	sig := Signals{SpamHit: true, UrgentHit: true}

	got := BuildReasoning(sig, model.CategorySpam, 50, model.SentimentNeutral)
	assert.Equal(t, "Matches known spam indicators.", got)
}

func TestBuildReasoningFallback(t *testing.T) {
	got := BuildReasoning(Signals{}, model.CategoryStandard, 50, model.SentimentNeutral)
	assert.Equal(t, "Standard email - review when convenient.", got)
}

func TestDedupeCap(t *testing.T) {
	in := []string{"a", "b", "a", "c", "d"}
	assert.Equal(t, []string{"a", "b", "c"}, dedupeCap(in, 3))
	assert.Equal(t, []string{"a", "b", "c", "d"}, dedupeCap(in, 10))
	assert.Empty(t, dedupeCap(nil, 3))
}
