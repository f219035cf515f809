package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("overlays set variables only", func(t *testing.T) {
		var c Config
		c.LoadDefaults()

		parseEnv(&c, env.Options{Environment: map[string]string{
			"GOPHID_STORAGE":                   "memory",
			"GOPHID_ACCESS_TOKEN_TTL":          "15m",
			"GOPHID_PASSWORD_HASH_CONCURRENCY": "4",
			"GOPHID_MAIL_TRANSPORT":            "s3",
		}})

		assert.Equal(t, StorageMemory, c.Storage)
		assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
		assert.Equal(t, 4, c.PasswordHashConcurrency)
		assert.Equal(t, MailTransportS3, c.MailTransport)

		// untouched
		assert.Equal(t, ":50051", c.EndpointAddrGRPC)
		assert.Equal(t, 24*time.Hour, c.VerificationTokenValidityDuration)
	})

	t.Run("malformed value panics", func(t *testing.T) {
		var c Config
		require.Panics(t, func() {
			parseEnv(&c, env.Options{Environment: map[string]string{
				"GOPHID_PASSWORD_HASH_COST": "ten",
			}})
		})
	})
}
