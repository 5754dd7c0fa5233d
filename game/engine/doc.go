// Package engine provides the rules engine for a Monopoly-style property
// trading game.
//
// The engine package implements the game mechanics including:
//   - The 40-tile board: streets, railroads, utilities, card and event tiles
//   - Dice, movement around the ring and the Go salary
//   - Buying, rent, houses and hotels, mortgages
//   - Jail, Chance and Community Chest decks
//   - Auctions for declined deeds and bankruptcy
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds every player, the board and the
// bank, while GameConfig defines the tunable rules loaded from JSON files.
// Tiles are a closed set of variants behind the Tile interface.
//
// Every mutator checks all of its preconditions before changing anything and
// returns a wrapped sentinel error when one fails, so a rejected call leaves
// the game untouched apart from its history entry. The matching CanX method
// reports the same check without side effects.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewEngine(config, 4, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := game.TakeTurn(); err != nil {
//		log.Println(err)
//	}
//	state := game.GetState()
//
// Randomness comes from a single injected RNG used for both dice and deck
// shuffles; NewSeededRNG gives reproducible games.
package engine
