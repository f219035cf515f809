package config

import "time"

// Config holds runtime settings for the gophid CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the identity gRPC endpoint.
//   - RequestTimeout: upper bound for a single RPC.
//   - SessionDSN: SQLite file the signed-in session is kept in.
type Config struct {
	ServerEndpointAddr string        `env:"GOPHID_CLIENT_SERVER_ADDR"`
	RequestTimeout     time.Duration `env:"GOPHID_CLIENT_REQUEST_TIMEOUT"`
	SessionDSN         string        `env:"GOPHID_CLIENT_SESSION_DSN"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.SessionDSN = "session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
