package styles

import (
	"testing"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	require.NoError(t, LoadStyles(defaultStyles))

	expectedStyles := []string{
		"Header", "Success", "Warning", "Error", "Info", "Muted", "MutedItalic",
		"RepoPath", "FilePath", "Status", "Indent", "DryRunBanner", "CommitID",
	}
	for _, name := range expectedStyles {
		t.Run(name, func(t *testing.T) {
			_, exists := StyleRegistry[name]
			assert.True(t, exists, "Style %s should exist in registry", name)
		})
	}

	assert.True(t, GetStyle("Error").GetBold())
	assert.Equal(t, 17, GetStyle("Status").GetWidth())
}

func TestGetStyleUnknown(t *testing.T) {
	assert.Equal(t, "plain", Render("NoSuchStyle", "plain"))
}

func TestLoadStylesErrors(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, LoadStyles(defaultStyles)) })

	err := LoadStyles([]byte("styles: [not a map"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	err = LoadStyles([]byte("styles:\n  Bad:\n    foreground: nowhere\n"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}
