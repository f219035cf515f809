package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config fields whose GOPHID_* variable is set. Unset
// variables leave the current value alone. Malformed values panic, the same
// way a broken JSON file or bad flag does.
//
// opts is a test seam; production code reads the process environment.
func parseEnv(config *Config, opts ...env.Options) {
	var err error
	if len(opts) > 0 {
		err = env.ParseWithOptions(config, opts[0])
	} else {
		err = env.Parse(config)
	}
	if err != nil {
		panic(err)
	}
}
