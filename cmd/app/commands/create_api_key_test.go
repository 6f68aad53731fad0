package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/allisson/go-pwdhash"
	"github.com/stretchr/testify/require"
)

func TestRunCreateAPIKey(t *testing.T) {
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateAPIKey(logger, &out, "billing", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "API key created successfully!")
		require.Contains(t, out.String(), "Client name: billing")
		require.Contains(t, out.String(), "billing:")
	})

	t.Run("json-output-verifiable-credential", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateAPIKey(logger, &out, "billing", "json")
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, "billing", result["name"])

		// The credential secret must verify against the config entry hash.
		name, secret, found := strings.Cut(result["api_key"], ":")
		require.True(t, found)
		require.Equal(t, "billing", name)

		_, hash, found := strings.Cut(result["config_entry"], ":")
		require.True(t, found)

		hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
		require.NoError(t, err)
		ok, err := hasher.Verify([]byte(secret), hash)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("empty-name", func(t *testing.T) {
		err := RunCreateAPIKey(logger, &bytes.Buffer{}, "  ", "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "name is required")
	})

	t.Run("name-with-colon", func(t *testing.T) {
		err := RunCreateAPIKey(logger, &bytes.Buffer{}, "bad:name", "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must not contain colons")
	})

	t.Run("name-with-semicolon", func(t *testing.T) {
		err := RunCreateAPIKey(logger, &bytes.Buffer{}, "bad;name", "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must not contain colons")
	})
}
