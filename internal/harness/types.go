package harness

import "github.com/roach88/fedeck/internal/deck"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	Target deck.Format `json:"target"`

	// Deck is the generated deck text.
	Deck string `json:"deck"`

	Report *deck.Report `json:"report"`

	// Errors contains one message per failed assertion.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult(target deck.Format) *Result {
	return &Result{
		Pass:   true,
		Target: target,
		Errors: []string{},
	}
}

// AddError records a failed assertion and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
