// Command analyze prints quick, human-readable economics for the rule sets in
// the project's configs directory. For each file it reports whether the rules
// validate, then walks the color groups of the classic board: what a group
// costs to buy and fully develop, its hotel rent, and how many hotel landings
// recoup the outlay. It also flags bank building shortages.
//
// Usage:
//
//	go run ./cmd/analyze [config-dir]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/monopoly-engine/game/engine"
)

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No configs found in %s\n", dir)
		os.Exit(1)
	}
	sort.Strings(files)

	invalid := 0
	for _, path := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		if !analyzeConfig(os.Stdout, path) {
			invalid++
		}
	}

	if invalid > 0 {
		fmt.Printf("\n%d of %d configs are invalid\n", invalid, len(files))
		os.Exit(1)
	}
}

// analyzeConfig writes the report for one file and reports whether it validated
func analyzeConfig(w io.Writer, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error reading file: %v\n", err)
		return false
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Fprintf(w, "Error parsing JSON: %v\n", err)
		return false
	}

	fmt.Fprintf(w, "Name: %s\n", config.Name)
	fmt.Fprintf(w, "Seats: %d-%d, Starting cash: $%d, Go salary: $%d\n",
		config.MinPlayers, config.MaxPlayers, config.StartingCash, config.PassGoSalary)

	valid := true
	if err := engine.ValidateGameConfig(&config); err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		valid = false
	} else {
		fmt.Fprintf(w, "✅ Valid\n")
	}

	reportGroups(w, &config, engine.NewBoard())
	return valid
}

// reportGroups prints one line per color group and the bank's building supply
func reportGroups(w io.Writer, config *engine.GameConfig, board *engine.Board) {
	fmt.Fprintf(w, "\n%-11s %7s %9s %9s %10s %9s\n", "group", "deeds", "purchase", "develop", "hotel rent", "breakeven")

	housesNeeded := 0
	hotelsNeeded := 0
	affordable := []string{}
	for _, group := range engine.ColorGroups {
		eco := engine.AnalyzeGroup(board, group)
		fmt.Fprintf(w, "%-11s %7d %9d %9d %10d %9d\n",
			eco.Group, eco.Members, eco.PurchaseSum, eco.DevelopCost, eco.HotelRent, eco.BreakEven)

		housesNeeded += eco.Members * engine.HousesPerHotel
		hotelsNeeded += eco.Members
		if eco.PurchaseSum+eco.DevelopCost <= config.StartingCash {
			affordable = append(affordable, string(eco.Group))
		}
	}

	if len(affordable) > 0 {
		fmt.Fprintf(w, "Fully developable on starting cash: %s\n", strings.Join(affordable, ", "))
	} else {
		fmt.Fprintf(w, "No group can be fully developed on starting cash alone\n")
	}

	if config.Houses < housesNeeded {
		fmt.Fprintf(w, "⚠️  Housing shortage: %d houses for %d four-house lots\n", config.Houses, housesNeeded)
	}
	if config.Hotels < hotelsNeeded {
		fmt.Fprintf(w, "⚠️  Hotel shortage: %d hotels for %d streets\n", config.Hotels, hotelsNeeded)
	}

	if config.PassGoSalary > 0 {
		fmt.Fprintf(w, "Laps of salary to buy every deed: %d\n",
			(totalDeedPrice(board)+config.PassGoSalary-1)/config.PassGoSalary)
	}
}

func totalDeedPrice(board *engine.Board) int {
	total := 0
	for _, d := range board.Deeds() {
		total += d.Title().Price
	}
	return total
}
