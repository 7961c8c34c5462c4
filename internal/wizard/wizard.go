// Package wizard implements the first-run interactive prompt loop (part of
// C5): when no valid config file exists, ask the user which discovered
// plugins to enable, persist the result, and hand back a ready-to-use
// config.
package wizard

import (
	"fmt"
	"sort"

	"github.com/AlecAivazis/survey/v2"

	"github.com/ShayBox/VRC-OSC/internal/logger"
	"github.com/ShayBox/VRC-OSC/pkg/oscplugin"
)

// Run prompts once per name in names (sorted for a stable UX) and returns
// the resulting config. It returns an error — which the caller must treat as
// a fatal, non-zero-exit startup condition — if the user enables zero
// plugins. Nothing is written to any socket before this returns.
func Run(names []string) (oscplugin.HostConfig, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	cfg := oscplugin.DefaultConfig()
	for _, name := range sorted {
		enable := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Would you like to enable the %s plugin?", name),
			Default: false,
		}
		if err := survey.AskOne(prompt, &enable); err != nil {
			return oscplugin.HostConfig{}, fmt.Errorf("wizard: prompt for %s: %w", name, err)
		}
		if enable {
			cfg.Enabled = append(cfg.Enabled, name)
		}
	}

	if len(cfg.Enabled) == 0 {
		return oscplugin.HostConfig{}, fmt.Errorf("you must enable at least one plugin")
	}

	if err := cfg.Save(); err != nil {
		return oscplugin.HostConfig{}, err
	}

	logger.Config().Info().Strs("enabled", cfg.Enabled).Msg("first-run wizard complete")
	return cfg, nil
}
