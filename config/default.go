package config

import _ "embed"

// DefaultConfigYAML is the embedded default configuration, compiled into the
// binary so a bare `budgetly` invocation works without any config file.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
