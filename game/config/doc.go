// Package config provides rule set management for the board game engine.
//
// The config package handles:
//   - Loading rule sets from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default rule set selection
//   - Discovery and listing
//
// Configuration Format:
//
// Rule sets are stored as JSON files in the configs directory, one
// engine.GameConfig per file. A rule set fixes the starting cash, the Go
// salary, the bank's house and hotel supply, taxes and card amounts, the jail
// fine, the unmortgage interest and the allowed seat range. An optional seed
// makes dice and deck shuffles reproducible.
//
// Available Configurations:
//   - classic: the standard game, $1500 each, 32 houses and 12 hotels
//   - quick: less cash and a smaller bank, so games end sooner
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadConfig("quick")
//	defaultRules := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default is classic.json when present, otherwise the first valid file,
// otherwise the built-in classic rules. Loaded rule sets are cached until
// ReloadConfig or RefreshCache.
package config
