// Package compiler turns model documents into ir.Model values.
//
// Model files are CUE, YAML or JSON. All three are decoded through CUE and
// unified with the embedded schema (schema.cue), so type errors carry
// source positions. CompileModel builds the model; ValidateModel checks the
// references and geometry the deck generator relies on and reports every
// problem at once.
package compiler
