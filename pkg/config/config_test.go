package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Server.Name)
	assert.NotEmpty(t, cfg.Server.Version)
	assert.NotEmpty(t, cfg.OpenAI.ImageModel)
	assert.NotEmpty(t, cfg.OpenAI.ImageSize)

	// Load is once-per-process; repeated calls see the same instance.
	assert.Same(t, cfg, Load())
}

func TestValidate(t *testing.T) {
	t.Run("Missing Credential", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("Credential Present", func(t *testing.T) {
		cfg := &Config{}
		cfg.OpenAI.APIKey = "test-key"
		assert.NoError(t, cfg.Validate())
	})
}
