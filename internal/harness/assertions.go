package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	// Deck is the generated deck, printed with line numbers for context.
	Deck string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Deck != "" {
		fmt.Fprintf(&buf, "\nDeck:\n")
		for i, line := range strings.Split(strings.TrimSuffix(e.Deck, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %4d  %s\n", i+1, line)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns one
// message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertDeckContains:
		return assertDeckContains(result.Deck, a)
	case AssertDeckNotContains:
		return assertDeckNotContains(result.Deck, a)
	case AssertLineCount:
		return assertCount(a, result.Report.Lines, result.Deck)
	case AssertElementCount:
		return assertCount(a, result.Report.Elements, result.Deck)
	case AssertSkippedCount:
		return assertCount(a, len(result.Report.Skipped), result.Deck)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertDeckContains(text string, a Assertion) error {
	if strings.Contains(text, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("deck contains %q", a.Text),
		Actual:   "not found",
		Deck:     text,
	}
}

func assertDeckNotContains(text string, a Assertion) error {
	idx := strings.Index(text, a.Text)
	if idx < 0 {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("deck does not contain %q", a.Text),
		Actual:   fmt.Sprintf("found on line %d", strings.Count(text[:idx], "\n")+1),
		Deck:     text,
	}
}

func assertCount(a Assertion, actual int, text string) error {
	if actual == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%d", a.Count),
		Actual:   fmt.Sprintf("%d", actual),
		Deck:     text,
	}
}
