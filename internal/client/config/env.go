package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays cfg with GOPHID_CLIENT_* variables. Unset variables keep
// the current value. Malformed values panic, like the other loaders.
func parseEnv(cfg *Config, opts ...env.Options) {
	var err error
	if len(opts) > 0 {
		err = env.ParseWithOptions(cfg, opts[0])
	} else {
		err = env.Parse(cfg)
	}
	if err != nil {
		panic(err)
	}
}
