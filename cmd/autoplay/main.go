// Command autoplay drives full games through the REST API with every seat
// played by the same greedy bot. It is a smoke test for a running server and
// a quick way to see how a rule set plays out: it reports who won, how many
// actions each game took and which games stalled or hit the action cap.
//
// Usage:
//
//	go run ./cmd/autoplay -url http://localhost:8080 -config classic -players 4 -games 10
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// gameResult summarises one played game
type gameResult struct {
	Actions  int
	Rejected int
	Done     bool
	Winner   int
	Stalled  bool
	Reason   string
}

type playOptions struct {
	MaxActions int
	Delay      time.Duration
	Verbose    bool
}

// playGame runs the session the client points at until the game ends, the
// strategy has nothing to do or the action cap is reached. Transport failures
// are errors; a stuck game is a stalled result.
func playGame(client *Client, strategy *GreedyStrategy, opts playOptions) (gameResult, error) {
	var result gameResult

	for result.Actions < opts.MaxActions {
		state, err := client.GetState()
		if err != nil {
			return result, err
		}
		if state.Done {
			result.Done = true
			result.Winner = state.Winner
			return result, nil
		}

		legal, err := client.LegalActions()
		if err != nil {
			return result, err
		}

		action, ok := strategy.NextAction(legal, state)
		if !ok {
			result.Stalled = true
			result.Reason = fmt.Sprintf("no move for seat %d in phase %s", legal.Seat, legal.Phase)
			return result, nil
		}

		resp, err := client.Act(action)
		if err != nil {
			return result, err
		}
		result.Actions++

		if !resp.Success {
			// the listing said it was legal, so retrying would loop forever
			result.Rejected++
			result.Stalled = true
			result.Reason = fmt.Sprintf("%s rejected: %s", action.Type, resp.Error)
			return result, nil
		}

		if opts.Verbose {
			log.Debug().
				Int("seat", legal.Seat).
				Str("action", string(action.Type)).
				Int("deed", action.DeedID).
				Int("amount", action.Amount).
				Msg(resp.Message)
		}

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}

	return result, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Rule set name (server default when empty)")
	players := flag.Int("players", 0, "Seats to play (rule set minimum when 0)")
	continueSession := flag.String("continue", "", "Play an existing session by ID instead of creating one")
	games := flag.Int("games", 1, "Games to play; the session is reset between games")
	maxActions := flag.Int("max-actions", 20000, "Maximum actions per game")
	reserve := flag.Int("reserve", 150, "Cash the bot keeps back when buying, building and bidding")
	verbose := flag.Bool("v", false, "Log every action")
	delayMs := flag.Int("delay", 0, "Delay between actions in milliseconds (0 = no delay)")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	log.Info().Str("url", *serverURL).Msg("Connecting to game server")
	client := NewClient(*serverURL)

	if *continueSession != "" {
		client.sessionID = *continueSession
		if _, err := client.GetState(); err != nil {
			log.Fatal().Err(err).Str("session", client.sessionID).Msg("Failed to resume session")
		}
		log.Info().Str("session", client.sessionID).Msg("Resuming session")
	} else {
		session, err := client.CreateSession(*configID, *players)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create session")
		}
		log.Info().
			Str("session", session.ID).
			Str("config", session.ConfigName).
			Int("players", session.Players).
			Msg("Session created")
	}

	strategy := NewGreedyStrategy(*reserve)
	opts := playOptions{
		MaxActions: *maxActions,
		Delay:      time.Duration(*delayMs) * time.Millisecond,
		Verbose:    *verbose,
	}

	wins := map[int]int{}
	finished, stalled := 0, 0
	for game := 1; game <= *games; game++ {
		if game > 1 {
			if _, err := client.Reset(); err != nil {
				log.Fatal().Err(err).Msg("Failed to reset")
			}
		}

		result, err := playGame(client, strategy, opts)
		if err != nil {
			log.Fatal().Err(err).Int("game", game).Msg("Game aborted")
		}

		event := log.Info().Int("game", game).Int("actions", result.Actions)
		switch {
		case result.Done:
			finished++
			wins[result.Winner]++
			event.Int("winner", result.Winner).Msg("Game over")
		case result.Stalled:
			stalled++
			event.Str("reason", result.Reason).Msg("Game stalled")
		default:
			event.Msg("Action cap reached")
		}
	}

	log.Info().
		Str("session", client.sessionID).
		Int("games", *games).
		Int("finished", finished).
		Int("stalled", stalled).
		Interface("wins", wins).
		Msg("Done")

	if stalled > 0 {
		os.Exit(1)
	}
}
