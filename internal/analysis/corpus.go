package analysis

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Corpus holds the weighted keyword tables the scorer and classifier run
// against. Weights live on the 0-100 urgency scale. A Corpus is built once
// at startup and treated as immutable afterwards, so it is safe to share
// across goroutines.
type Corpus struct {
	// UrgentTerms maps a term to the weight it adds to the urgency score.
	UrgentTerms map[string]int

	BusinessTerms   []string
	SpamTerms       []string
	AdminTerms      []string
	FollowUpPhrases []string
	ActionVerbs     []string
	PositiveWords   []string
	NegativeWords   []string

	// Sender/content hints for the best-effort customer type heuristic.
	BusinessHints    []string
	ResidentialHints []string
}

// DefaultCorpus returns the built-in keyword tables, tuned for trade
// businesses (plumbing, electrical, HVAC and similar).
func DefaultCorpus() *Corpus {
	return &Corpus{
		UrgentTerms: map[string]int{
			"urgent":       35,
			"emergency":    40,
			"asap":         30,
			"immediately":  30,
			"critical":     30,
			"right away":   25,
			"today":        15,
			"power outage": 35,
			"no power":     35,
			"no heat":      35,
			"no hot water": 30,
			"burst pipe":   40,
			"flooding":     40,
			"gas leak":     45,
			"leak":         25,
			"not working":  20,
			"broken":       20,
			"deadline":     20,
			"overdue":      20,
		},
		BusinessTerms: []string{
			"quote", "estimate", "invoice", "contract", "job", "site",
			"install", "installation", "repair", "maintenance", "service call",
			"booking", "schedule", "project", "tender", "purchase order",
			"payment", "deposit",
		},
		SpamTerms: []string{
			"unsubscribe", "viagra", "lottery", "winner", "congratulations you",
			"free money", "click here now", "limited time offer", "act now",
			"100% free", "earn extra cash", "crypto opportunity",
		},
		AdminTerms: []string{
			"invoice", "receipt", "statement", "notification", "automated",
			"do not reply", "no-reply", "newsletter", "password reset",
			"verification", "confirmation number", "terms of service",
		},
		FollowUpPhrases: []string{
			"following up", "follow up", "checking in", "circling back",
			"any update", "just wanted to check", "bumping this",
		},
		ActionVerbs: []string{
			"please", "can you", "could you", "confirm", "approve", "review",
			"sign", "submit", "respond", "reply", "call me", "send me",
			"let me know", "get back to", "action required",
		},
		PositiveWords: []string{
			"thanks", "thank you", "great", "appreciate", "happy", "excellent",
			"perfect", "pleased", "good job", "well done",
		},
		NegativeWords: []string{
			"unhappy", "disappointed", "frustrated", "angry", "complaint",
			"terrible", "unacceptable", "refund", "cancel", "poor", "worst",
			"still waiting",
		},
		BusinessHints: []string{
			"pty", "ltd", "llc", "inc", "corp", "company", "office",
			"property management", "strata", "builder", "contractor",
		},
		ResidentialHints: []string{
			"my house", "my home", "our home", "my apartment", "my flat",
			"landlord", "tenant", "gmail.com", "hotmail.com", "outlook.com",
			"yahoo.com",
		},
	}
}

// CorpusFile is the yaml shape for operator-supplied corpus overrides.
// Entries add to (or, for urgent terms, re-weight) the built-in tables.
type CorpusFile struct {
	UrgentTerms     map[string]int `yaml:"urgent_terms"`
	BusinessTerms   []string       `yaml:"business_terms"`
	SpamTerms       []string       `yaml:"spam_terms"`
	AdminTerms      []string       `yaml:"admin_terms"`
	FollowUpPhrases []string       `yaml:"follow_up_phrases"`
	ActionVerbs     []string       `yaml:"action_verbs"`
	PositiveWords   []string       `yaml:"positive_words"`
	NegativeWords   []string       `yaml:"negative_words"`
}

// LoadCorpus returns the default corpus merged with the overrides file at
// path. An empty path returns the defaults unchanged.
func LoadCorpus(path string) (*Corpus, error) {
	c := DefaultCorpus()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var f CorpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode corpus file: %w", err)
	}

	c.merge(&f)
	return c, nil
}

// merge folds the override file into the built-in tables. Matching always
// runs against lowercased text, so override terms are lowercased here;
// otherwise an operator entry like "Power Outage" would never match.
func (c *Corpus) merge(f *CorpusFile) {
	for term, weight := range f.UrgentTerms {
		c.UrgentTerms[strings.ToLower(term)] = weight
	}
	c.BusinessTerms = append(c.BusinessTerms, lowered(f.BusinessTerms)...)
	c.SpamTerms = append(c.SpamTerms, lowered(f.SpamTerms)...)
	c.AdminTerms = append(c.AdminTerms, lowered(f.AdminTerms)...)
	c.FollowUpPhrases = append(c.FollowUpPhrases, lowered(f.FollowUpPhrases)...)
	c.ActionVerbs = append(c.ActionVerbs, lowered(f.ActionVerbs)...)
	c.PositiveWords = append(c.PositiveWords, lowered(f.PositiveWords)...)
	c.NegativeWords = append(c.NegativeWords, lowered(f.NegativeWords)...)
}

func lowered(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}
