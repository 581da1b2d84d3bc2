package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclConfigFile is the decoding target for a config file. Every attribute is
// optional and overrides the base config only when present.
type hclConfigFile struct {
	GridSize        *int     `hcl:"grid_size,optional"`
	TickIntervalMS  *int     `hcl:"tick_interval_ms,optional"`
	SeedProbability *float64 `hcl:"seed_probability,optional"`
	Seed            *int64   `hcl:"seed,optional"`
	LogLevel        *string  `hcl:"log_level,optional"`
	LogFormat       *string  `hcl:"log_format,optional"`
}

// LoadFile reads an HCL config file on top of base and validates the result.
func LoadFile(path string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file, path, base)
}

// Parse decodes HCL source on top of base. filename is only used in
// diagnostics.
func Parse(src []byte, filename string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(file, filename, base)
}

func decode(file *hcl.File, name string, base Config) (Config, error) {
	var parsed hclConfigFile
	diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to decode config %s: %w", name, diags)
	}

	c := base
	if parsed.GridSize != nil {
		c.GridSize = *parsed.GridSize
	}
	if parsed.TickIntervalMS != nil {
		c.TickIntervalMS = *parsed.TickIntervalMS
	}
	if parsed.SeedProbability != nil {
		c.SeedProbability = *parsed.SeedProbability
	}
	if parsed.Seed != nil {
		c.Seed = *parsed.Seed
	}
	if parsed.LogLevel != nil {
		c.LogLevel = *parsed.LogLevel
	}
	if parsed.LogFormat != nil {
		c.LogFormat = *parsed.LogFormat
	}
	if err := c.Validate(); err != nil {
		return base, fmt.Errorf("invalid config %s: %w", name, err)
	}
	return c, nil
}

// evalContext exposes the built-in defaults as `defaults.<attribute>`.
func evalContext() *hcl.EvalContext {
	d := DefaultConfig()
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"grid_size":        cty.NumberIntVal(int64(d.GridSize)),
				"tick_interval_ms": cty.NumberIntVal(int64(d.TickIntervalMS)),
				"seed_probability": cty.NumberFloatVal(d.SeedProbability),
				"seed":             cty.NumberIntVal(d.Seed),
				"log_level":        cty.StringVal(d.LogLevel),
				"log_format":       cty.StringVal(d.LogFormat),
			}),
		},
	}
}
