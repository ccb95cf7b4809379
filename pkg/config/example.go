package config

import (
	_ "embed"
)

//go:embed embedded/rxr.example.toml
var exampleConfig []byte

// ExampleConfig returns a complete example configuration file.
func ExampleConfig() string {
	return string(exampleConfig)
}
