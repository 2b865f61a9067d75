// Package harness runs deck scenarios: a model file, a target format and a
// list of assertions on the generated deck.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: portal_abaqus
//	description: "Rectangular portal beam in Abaqus"
//	model: ../models/portal.yaml
//	target: abaqus
//	assertions:
//	  - type: deck_contains
//	    text: "*BEAM SECTION, SECTION=RECTANGULAR"
//	  - type: element_count
//	    count: 1
//
// The model path is resolved relative to the scenario file. Models may be
// CUE, YAML or JSON; see compiler.LoadModel.
//
// # Assertion Types
//
//   - deck_contains: the deck contains text
//   - deck_not_contains: the deck does not contain text
//   - line_count: the deck has exactly count lines
//   - element_count: exactly count element records were written
//   - skipped_count: exactly count elements were skipped as unsupported
//
// # Golden Decks
//
// RunWithGolden compares the generated deck against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
