package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("LINKEDIN_CLIENT_ID", "env-id")
	t.Setenv("LINKEDIN_CLIENT_SECRET", "env-secret")
	t.Setenv("AIPPLY_AUTH_TIMEOUT", "90s")
	t.Setenv("AIPPLY_PROFILE_FILE", "env-profile.json")

	cfg := FromEnv()

	assert.Equal(t, "env-id", cfg.LinkedInClientID)
	assert.Equal(t, "env-secret", cfg.LinkedInClientSecret)
	assert.Equal(t, "90s", cfg.AuthTimeout)
	assert.Equal(t, "env-profile.json", cfg.ProfileFile)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"linkedin_client_id": "file-id",
		"linkedin_client_secret": "file-secret",
		"profile_file": "file-profile.json"
	}`), 0o644))

	t.Setenv("LINKEDIN_CLIENT_ID", "env-id")
	t.Setenv("LINKEDIN_CLIENT_SECRET", "")
	t.Setenv("AIPPLY_PROFILE_FILE", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.LinkedInClientID, "environment wins")
	assert.Equal(t, "file-secret", cfg.LinkedInClientSecret, "file fills the gaps")
	assert.Equal(t, "file-profile.json", cfg.ProfileFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_NoFileUsesEnvOnly(t *testing.T) {
	t.Setenv("LINKEDIN_CLIENT_ID", "env-id")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.LinkedInClientID)
}

func TestHasLinkedInCredentials(t *testing.T) {
	assert.True(t, (&Config{LinkedInClientID: "id", LinkedInClientSecret: "secret"}).HasLinkedInCredentials())
	assert.False(t, (&Config{LinkedInClientID: "id"}).HasLinkedInCredentials())
	assert.False(t, (&Config{LinkedInClientSecret: "secret"}).HasLinkedInCredentials())
	assert.False(t, (&Config{}).HasLinkedInCredentials())
}

func TestParsedAuthTimeout(t *testing.T) {
	fallback := 3 * time.Minute

	assert.Equal(t, 90*time.Second, (&Config{AuthTimeout: "90s"}).ParsedAuthTimeout(fallback))
	assert.Equal(t, fallback, (&Config{}).ParsedAuthTimeout(fallback))
	assert.Equal(t, fallback, (&Config{AuthTimeout: "soon"}).ParsedAuthTimeout(fallback))
	assert.Equal(t, fallback, (&Config{AuthTimeout: "-5s"}).ParsedAuthTimeout(fallback))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{RedirectURL: "http://localhost:8080/callback", AuthTimeout: "2m"}).Validate())
	assert.Error(t, (&Config{RedirectURL: "not a url"}).Validate())
	assert.Error(t, (&Config{AuthTimeout: "whenever"}).Validate())
}
