// Package deck lowers a structural model into solver input decks.
//
// Generation is a two-phase protocol. Resolve builds an immutable Plan from
// the model: it binds every element-properties record to its section,
// material and resolved element sets, and lists the ad-hoc sets that must be
// synthesized for properties given as explicit element lists. Plan.Commit
// inserts those sets into the model's registry. Emit then walks the plan and
// writes text; it never touches the registry.
//
// # Lowering grid
//
// Each target format implements Lowering once. The driver classifies the
// section kind of every property into a Family (beam, truss, shell, solid)
// and calls the matching Emit method for each element:
//
//	            beam   truss  shell  solid
//	abaqus       x      x      x      x
//	opensees     x      x     4-node  -
//	sofistik     x      x     4-node 8-node
//	ansys        -      -      -      -
//
// Cells marked "-" return ErrUnsupported. The driver logs them and records a
// Skip in the Report; they are never fatal. Lookup failures (unknown section
// kind, missing set, missing geometry value) abort the whole run.
//
// # Determinism
//
// Output depends only on the model. Generating the same model twice yields
// byte-identical decks: synthesized sets are reused on the second run rather
// than registered again.
package deck
