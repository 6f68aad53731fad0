package commands

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/allisson/go-pwdhash"
)

// RunCreateAPIKey generates a new API key credential for the given client
// name. It prints the Bearer credential ("name:secret") handed to the client
// and the "name:hash" entry to append to the API_KEYS configuration. The
// plain secret is shown only once and never stored.
func RunCreateAPIKey(logger *slog.Logger, writer io.Writer, name string, format string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(name, ":; \t") {
		return fmt.Errorf("name must not contain colons, semicolons, or whitespace, got: %q", name)
	}

	logger.Info("creating new API key", slog.String("name", name))

	plainSecret, hashedSecret, err := generateAPIKeySecret()
	if err != nil {
		return fmt.Errorf("failed to generate API key secret: %w", err)
	}

	apiKey := fmt.Sprintf("%s:%s", name, plainSecret)
	configEntry := fmt.Sprintf("%s:%s", name, hashedSecret)

	if format == "json" {
		outputAPIKeyJSON(writer, name, apiKey, configEntry)
	} else {
		outputAPIKeyText(writer, name, apiKey, configEntry)
	}

	logger.Info("API key created successfully", slog.String("name", name))
	return nil
}

// generateAPIKeySecret creates a 32-byte random secret and its Argon2id hash.
// The plain secret is base64-encoded for easy transmission.
func generateAPIKeySecret() (plainSecret string, hashedSecret string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random secret: %w", err)
	}
	plainSecret = base64.URLEncoding.EncodeToString(randomBytes)

	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to create password hasher: %w", err)
	}

	hashedSecret, err = hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return plainSecret, hashedSecret, nil
}

// outputAPIKeyText outputs the result in human-readable text format.
func outputAPIKeyText(writer io.Writer, name string, apiKey string, configEntry string) {
	_, _ = fmt.Fprintln(writer, "\nAPI key created successfully!")
	_, _ = fmt.Fprintf(writer, "Client name: %s\n", name)
	_, _ = fmt.Fprintf(writer, "API key (send as 'Authorization: Bearer <key>'): %s\n", apiKey)
	_, _ = fmt.Fprintf(writer, "Config entry (append to API_KEYS): %s\n", configEntry)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The API key is shown only once. Store it securely.")
}

// outputAPIKeyJSON outputs the result in JSON format for machine consumption.
func outputAPIKeyJSON(writer io.Writer, name string, apiKey string, configEntry string) {
	result := map[string]string{
		"name":         name,
		"api_key":      apiKey,
		"config_entry": configEntry,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
