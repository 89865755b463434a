package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Messages are the player-facing strings a config can override
type Messages struct {
	Welcome       string `json:"welcome"`
	Generating    string `json:"generating"`
	Blocked       string `json:"blocked"`
	CoinCollected string `json:"coin_collected"`
	Finished      string `json:"finished"`
}

// GameConfig describes how a maze is built and played
type GameConfig struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Rows                int      `json:"rows"`
	Cols                int      `json:"cols"`
	Algorithm           string   `json:"algorithm"`
	BranchLength        int      `json:"branch_length"`
	OriginShifts        int      `json:"origin_shifts"`
	Coins               int      `json:"coins"`
	Seed                int64    `json:"seed"`
	ResetBalanceOnRegen bool     `json:"reset_balance_on_regen"`
	Messages            Messages `json:"messages"`
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Rows < MinDimension || config.Rows > MaxDimension {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d: %w",
			MinDimension, MaxDimension, config.Rows, ErrInvalidDimension)
	}
	if config.Cols < MinDimension || config.Cols > MaxDimension {
		return fmt.Errorf("config validation: cols must be between %d and %d, got %d: %w",
			MinDimension, MaxDimension, config.Cols, ErrInvalidDimension)
	}

	if config.Algorithm != "" && config.Algorithm != AlgorithmRandom && !lo.Contains(Algorithms, config.Algorithm) {
		return fmt.Errorf("config validation: algorithm %q: %w", config.Algorithm, ErrUnknownAlgorithm)
	}
	if config.BranchLength < 0 {
		return fmt.Errorf("config validation: branch_length cannot be negative, got %d", config.BranchLength)
	}
	if config.OriginShifts < 0 {
		return fmt.Errorf("config validation: origin_shifts cannot be negative, got %d", config.OriginShifts)
	}
	if config.Coins < 0 || config.Coins > config.Rows*config.Cols {
		return fmt.Errorf("config validation: coins must be between 0 and %d, got %d", config.Rows*config.Cols, config.Coins)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Finished == "" {
		return fmt.Errorf("config validation: messages.finished is required")
	}
	if config.Messages.CoinCollected != "" {
		if verbs := formatVerbs(config.Messages.CoinCollected); len(verbs) != 1 || verbs[0] != "%d" {
			return fmt.Errorf("config validation: messages.coin_collected must contain exactly one %%d for the balance, got %v", verbs)
		}
	}

	return nil
}

// DefaultConfig returns the built-in classic preset
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:         "classic",
		Description:  "A 15x15 maze with a random algorithm and a few coins",
		Rows:         15,
		Cols:         15,
		Algorithm:    AlgorithmRandom,
		BranchLength: DefaultBranchLength,
		OriginShifts: 0,
		Coins:        5,
		Messages: Messages{
			Welcome:       "Find your way to the exit!",
			Generating:    "Carving the maze...",
			Blocked:       "A wall blocks the way",
			CoinCollected: "Coin collected! Balance: %d",
			Finished:      "You escaped the maze!",
		},
	}
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" && strings.HasPrefix(filename, "configs/") {
		configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// formatVerbs lists the printf verbs in s, flags and widths included.
// Escaped percent signs are skipped.
func formatVerbs(s string) []string {
	var verbs []string
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		j := i + 1
		for j < len(s) && strings.IndexByte("+-# 0123456789.*[]", s[j]) >= 0 {
			j++
		}
		if j >= len(s) {
			verbs = append(verbs, s[i:])
			break
		}
		if s[j] != '%' || j > i+1 {
			verbs = append(verbs, s[i:j+1])
		}
		i = j
	}
	return verbs
}
