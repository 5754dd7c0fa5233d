package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GameConfig holds the tunable rules of a game, loaded from JSON files
type GameConfig struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	StartingCash          int    `json:"starting_cash"`
	PassGoSalary          int    `json:"pass_go_salary"`
	Houses                int    `json:"houses"`
	Hotels                int    `json:"hotels"`
	JailFine              int    `json:"jail_fine"`
	MaxJailRolls          int    `json:"max_jail_rolls"`
	IncomeTax             int    `json:"income_tax"`
	LuxuryTax             int    `json:"luxury_tax"`
	SchoolTax             int    `json:"school_tax"`
	BankDividend          int    `json:"bank_dividend"`
	DoctorFee             int    `json:"doctor_fee"`
	UnmortgageInterestPct int    `json:"unmortgage_interest_pct"`
	MinPlayers            int    `json:"min_players"`
	MaxPlayers            int    `json:"max_players"`
	Seed                  uint64 `json:"seed,omitempty"`
}

// Limits enforced by ValidateGameConfig
const (
	MinSeats          = 2
	MaxSeats          = 8
	MaxStartingCash   = 100000
	MaxInterestPct    = 100
	DefaultConfigName = "classic"
)

// DefaultConfig returns the classic rule set
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:                  DefaultConfigName,
		Description:           "Classic rules: $1500 start, $200 salary, 32 houses and 12 hotels",
		StartingCash:          1500,
		PassGoSalary:          200,
		Houses:                32,
		Hotels:                12,
		JailFine:              50,
		MaxJailRolls:          DefaultJailRolls,
		IncomeTax:             200,
		LuxuryTax:             75,
		SchoolTax:             150,
		BankDividend:          50,
		DoctorFee:             50,
		UnmortgageInterestPct: 10,
		MinPlayers:            MinSeats,
		MaxPlayers:            MaxSeats,
	}
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

	if config.StartingCash <= 0 || config.StartingCash > MaxStartingCash {
		return fmt.Errorf("config validation: starting_cash must be between 1 and %d, got %d", MaxStartingCash, config.StartingCash)
	}
	if config.PassGoSalary < 0 {
		return fmt.Errorf("config validation: pass_go_salary cannot be negative, got %d", config.PassGoSalary)
	}

	// The bank needs enough houses to swap back when a hotel is sold
	if config.Houses < HousesPerHotel {
		return fmt.Errorf("config validation: houses must be at least %d, got %d", HousesPerHotel, config.Houses)
	}
	if config.Hotels < 0 {
		return fmt.Errorf("config validation: hotels cannot be negative, got %d", config.Hotels)
	}

	if config.MaxJailRolls < 1 {
		return fmt.Errorf("config validation: max_jail_rolls must be at least 1, got %d", config.MaxJailRolls)
	}

	fees := map[string]int{
		"jail_fine":     config.JailFine,
		"income_tax":    config.IncomeTax,
		"luxury_tax":    config.LuxuryTax,
		"school_tax":    config.SchoolTax,
		"bank_dividend": config.BankDividend,
		"doctor_fee":    config.DoctorFee,
	}
	for name, amount := range fees {
		if amount < 0 {
			return fmt.Errorf("config validation: %s cannot be negative, got %d", name, amount)
		}
	}

	if config.UnmortgageInterestPct < 0 || config.UnmortgageInterestPct > MaxInterestPct {
		return fmt.Errorf("config validation: unmortgage_interest_pct must be between 0 and %d, got %d",
			MaxInterestPct, config.UnmortgageInterestPct)
	}

	if config.MinPlayers < MinSeats {
		return fmt.Errorf("config validation: min_players must be at least %d, got %d", MinSeats, config.MinPlayers)
	}
	if config.MaxPlayers < config.MinPlayers || config.MaxPlayers > MaxSeats {
		return fmt.Errorf("config validation: max_players must be between min_players (%d) and %d, got %d",
			config.MinPlayers, MaxSeats, config.MaxPlayers)
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	dir := "configs"
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		dir = configDir
	}
	configPath := filepath.Join(dir, configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configName, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}

	return &config, nil
}

// UnmortgageCost returns what it costs to lift a mortgage of the given value
func (c *GameConfig) UnmortgageCost(mortgageValue int) int {
	// interest rounds up to the next dollar
	return mortgageValue + (mortgageValue*c.UnmortgageInterestPct+99)/100
}
