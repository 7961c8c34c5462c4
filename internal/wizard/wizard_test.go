package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run prompts once per name; with no names there is nothing to prompt for,
// so these exercise the zero-enabled abort path (spec.md Testable Property
// 5, Scenario E) without needing to fake survey's stdin prompt at all.

func TestRun_NoNames_ReturnsZeroEnabledError(t *testing.T) {
	cfg, err := Run(nil)

	require.Error(t, err)
	assert.Equal(t, "you must enable at least one plugin", err.Error())
	assert.Empty(t, cfg.Enabled)
}

func TestRun_EmptyNames_ReturnsZeroEnabledError(t *testing.T) {
	cfg, err := Run([]string{})

	require.Error(t, err)
	assert.Equal(t, "you must enable at least one plugin", err.Error())
	assert.Empty(t, cfg.Enabled)
}
