package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Defaults baked in at build time, e.g.
//
//	go build -ldflags "-X github.com/arthur-debert/rxr/pkg/config.compiledConfig=/etc/rxr/rxr.toml"
var (
	compiledConfig  = ""
	compiledDataDir = ""
	compiledTempDir = ""
)

// Compiled returns the fragment of defaults compiled into the binary.
func Compiled() Fragment {
	return compiledFragment(map[string]interface{}{
		"config":   compiledConfig,
		"data_dir": compiledDataDir,
		"temp_dir": compiledTempDir,
	})
}

func compiledFragment(values map[string]interface{}) Fragment {
	k := koanf.New(keyDelim)
	_ = k.Load(confmap.Provider(values, keyDelim), nil)

	return Fragment{
		Config:  optional(k.String("config")),
		DataDir: optional(k.String("data_dir")),
		TempDir: optional(k.String("temp_dir")),
	}
}
