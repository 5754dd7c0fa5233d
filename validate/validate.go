// Command validate provides a small CLI that validates rule set JSON files
// in the ../configs directory. It checks:
//   - JSON structure, rejecting unknown fields
//   - Presence of every required field, so a missing key is not silently zero
//   - The engine's own rule validation (cash, fees, seats, building supply)
//   - A fixed seed, which makes every game roll the same dice
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/monopoly-engine/game/engine"
)

// requiredFields are the keys every rule set must spell out
var requiredFields = []string{
	"name",
	"description",
	"starting_cash",
	"pass_go_salary",
	"houses",
	"hotels",
	"jail_fine",
	"max_jail_rolls",
	"income_tax",
	"luxury_tax",
	"school_tax",
	"bank_dividend",
	"doctor_fee",
	"unmortgage_interest_pct",
	"min_players",
	"max_players",
}

// ValidationResult captures the outcome of validating a single file.
// Info holds the summary lines printed for valid files; Warnings do not make
// a file invalid.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single rule set file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	missing := []string{}
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	for _, field := range missing {
		result.fail("Missing required field: %s", field)
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid field: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
	}

	if config.Seed != 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Fixed seed %d: every game rolls the same dice", config.Seed))
	}

	if result.Valid {
		result.Info = append(result.Info,
			fmt.Sprintf("✓ Name: %s", config.Name),
			fmt.Sprintf("✓ Seats: %d-%d", config.MinPlayers, config.MaxPlayers),
			fmt.Sprintf("✓ Cash: $%d start, $%d salary", config.StartingCash, config.PassGoSalary),
			fmt.Sprintf("✓ Bank: %d houses, %d hotels", config.Houses, config.Hotels),
		)
	}

	return result
}

// main scans the config directory (../configs unless given as an argument)
// for *.json files and validates each one, printing a concise report and
// exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Info {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Println("  ⚠️  " + warning)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
