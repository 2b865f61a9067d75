package compiler

import (
	_ "embed"

	"cuelang.org/go/cue"
)

//go:embed schema.cue
var schemaSource string

// SchemaSource returns the CUE schema model files are checked against.
func SchemaSource() string { return schemaSource }

// modelSchema compiles the #Model definition in ctx. Values can only be
// unified with definitions built by the same context.
func modelSchema(ctx *cue.Context) (cue.Value, error) {
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return schema.LookupPath(cue.ParsePath("#Model")), nil
}
