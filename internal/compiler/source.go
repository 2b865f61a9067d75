package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/roach88/fedeck/internal/ir"
)

// LoadModel reads and compiles a model from path, which may be a .cue file,
// a directory holding a CUE package, or a .yaml, .yml or .json file.
func LoadModel(path string) (*ir.Model, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	ctx := cuecontext.New()
	if info.IsDir() {
		v, err := loadInstance(ctx, path, ".")
		if err != nil {
			return nil, err
		}
		return CompileModel(v)
	}

	if filepath.Ext(path) == ".cue" {
		v, err := loadInstance(ctx, filepath.Dir(path), filepath.Base(path))
		if err != nil {
			return nil, err
		}
		return CompileModel(v)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return CompileSource(ctx, path, data)
}

// CompileSource compiles an in-memory model document. The format is chosen
// by the extension of filename.
func CompileSource(ctx *cue.Context, filename string, data []byte) (*ir.Model, error) {
	var v cue.Value
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".cue":
		v = ctx.CompileBytes(data, cue.Filename(filename))
	case ".yaml", ".yml":
		f, err := cueyaml.Extract(filename, data)
		if err != nil {
			return nil, formatCUEError(err)
		}
		v = ctx.BuildFile(f)
	case ".json":
		expr, err := cuejson.Extract(filename, data)
		if err != nil {
			return nil, formatCUEError(err)
		}
		v = ctx.BuildExpr(expr)
	default:
		return nil, &CompileError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported model format %q (want .cue, .yaml, .yml or .json)", ext),
		}
	}
	return CompileModel(v)
}

func loadInstance(ctx *cue.Context, dir, arg string) (cue.Value, error) {
	instances := load.Instances([]string{arg}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return cue.Value{}, &CompileError{Field: "load", Message: "no CUE instances loaded from " + dir}
	}
	inst := instances[0]
	if inst.Err != nil {
		return cue.Value{}, formatCUEError(inst.Err)
	}
	v := ctx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return v, nil
}
