package settingsview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqvu/remindcal/internal/model"
)

func TestBuildConfigAppliesFormValues(t *testing.T) {
	base := model.AppConfig{
		Storage: model.StorageConfig{Backend: model.StorageSQLite},
		AI:      model.AIConfig{Provider: model.ProviderClaude, MaxTokens: 1024},
		Display: model.DisplayConfig{Theme: "default"},
		LogFile: "/tmp/remindcal.log",
	}

	fb := &formBindings{
		backend:     model.StorageDiskv,
		storagePath: "  /data/remindcal  ",
		provider:    model.ProviderDeepSeek,
		modelName:   "deepseek-chat",
		maxTokens:   "512",
	}

	cfg, err := fb.buildConfig(base)
	require.NoError(t, err)

	assert.Equal(t, model.StorageDiskv, cfg.Storage.Backend)
	assert.Equal(t, "/data/remindcal", cfg.Storage.Path)
	assert.Equal(t, model.ProviderDeepSeek, cfg.AI.Provider)
	assert.Equal(t, "deepseek-chat", cfg.AI.Model)
	assert.Equal(t, 512, cfg.AI.MaxTokens)

	// Fields outside the form pass through untouched.
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.Equal(t, "/tmp/remindcal.log", cfg.LogFile)
}

func TestBuildConfigRejectsBadMaxTokens(t *testing.T) {
	base := model.AppConfig{}

	for _, bad := range []string{"", "abc", "0", "-5"} {
		fb := &formBindings{maxTokens: bad}
		_, err := fb.buildConfig(base)
		assert.Error(t, err, "max tokens %q", bad)
	}

	assert.Error(t, validateMaxTokens("zero"))
	assert.NoError(t, validateMaxTokens(" 2048 "))
}

func TestStartFillsDefaults(t *testing.T) {
	m := New(80, 24)
	m.Start(model.AppConfig{})

	assert.Equal(t, model.StorageSQLite, m.fb.backend)
	assert.Equal(t, model.ProviderClaude, m.fb.provider)
	assert.Equal(t, "1024", m.fb.maxTokens)
}
