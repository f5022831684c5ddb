package config

import (
	_ "embed"
)

//go:embed defaults/games.yaml
var defaultGamesYAML []byte

// DefaultSettings returns the hardcoded defaults, mirrored by defaults/games.yaml.
func DefaultSettings() Settings {
	return Settings{
		Difficulty: "all",
		Games: map[string]GameSettings{
			"dots": {
				Tolerance:        8,
				AutoAdvance:      3,
				FeedbackCooldown: 1,
			},
			"labelling": {
				Tolerance:        10,
				AutoAdvance:      3,
				FeedbackCooldown: 1,
			},
			"tracing": {
				Tolerance:        8,
				StartTolerance:   8,
				EndTolerance:     12,
				MinSamples:       10,
				AutoAdvance:      1.5,
				FeedbackCooldown: 1,
			},
			"pattern": {
				Tolerance:        15,
				Choices:          4,
				AutoAdvance:      3,
				FeedbackCooldown: 1,
			},
		},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultGamesYAML
}
