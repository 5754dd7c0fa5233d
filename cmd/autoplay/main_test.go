package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wricardo/monopoly-engine/api"
	"github.com/wricardo/monopoly-engine/game/config"
	"github.com/wricardo/monopoly-engine/game/engine"
	"github.com/wricardo/monopoly-engine/game/service"
	"github.com/wricardo/monopoly-engine/game/session"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(server.Close)
	return server
}

func newPlayingClient(t *testing.T, players int) *Client {
	t.Helper()
	client := NewClient(newAPIServer(t).URL + "/")
	session, err := client.CreateSession(engine.DefaultConfigName, players)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.ID == "" || client.sessionID != session.ID {
		t.Fatalf("Expected the client to track session %q, got %q", session.ID, client.sessionID)
	}
	return client
}

func TestClient_StateAndLegalActions(t *testing.T) {
	client := newPlayingClient(t, 2)

	state, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	if len(state.Players) != 2 || state.Turn != 1 {
		t.Errorf("Unexpected fresh state: %d players, turn %d", len(state.Players), state.Turn)
	}

	boardwalk, ok := state.Deed(22)
	if !ok || boardwalk.Name != "Boardwalk" || boardwalk.Price != 400 || boardwalk.HousePrice != 200 {
		t.Errorf("Expected Boardwalk pricing from the board, got %+v", boardwalk)
	}
	if _, ok := state.Deed(0); ok {
		t.Error("Deed 0 should never match a non-deed tile")
	}

	legal, err := client.LegalActions()
	if err != nil {
		t.Fatalf("LegalActions failed: %v", err)
	}
	if !legal.TakeTurn || legal.EndTurn || legal.Phase != service.PhaseAwaitingRoll {
		t.Errorf("Expected only a roll to be open, got %+v", legal)
	}
}

func TestClient_ActRejectedIsNotAnError(t *testing.T) {
	client := newPlayingClient(t, 2)

	resp, err := client.Act(service.Action{Type: service.ActionEndTurn})
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("Expected end_turn before rolling to be rejected, got %+v", resp)
	}

	if _, err := client.Act(service.Action{Type: "fly"}); err == nil {
		t.Error("Expected an unknown action to fail at the API")
	}
}

func TestClient_MissingSession(t *testing.T) {
	client := NewClient(newAPIServer(t).URL)
	client.sessionID = "nope"

	_, err := client.GetState()
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected a 404 error, got %v", err)
	}
}

func TestPlayGame(t *testing.T) {
	client := newPlayingClient(t, 2)

	result, err := playGame(client, NewGreedyStrategy(150), playOptions{MaxActions: 400})
	if err != nil {
		t.Fatalf("playGame failed: %v", err)
	}
	if result.Stalled {
		t.Fatalf("Game stalled after %d actions: %s", result.Actions, result.Reason)
	}
	if result.Actions == 0 {
		t.Error("Expected the bot to act")
	}
	if result.Done && result.Winner == 0 {
		t.Error("A finished game should name a winner")
	}

	state, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	owned := 0
	for _, p := range state.Players {
		owned += len(p.Properties)
	}
	if owned == 0 {
		t.Error("Expected some deeds to change hands")
	}
}

func TestPlayGame_ActionCap(t *testing.T) {
	client := newPlayingClient(t, 2)

	result, err := playGame(client, NewGreedyStrategy(150), playOptions{MaxActions: 3})
	if err != nil {
		t.Fatalf("playGame failed: %v", err)
	}
	if result.Actions != 3 || result.Done || result.Stalled {
		t.Errorf("Expected to stop at the cap, got %+v", result)
	}

	if _, err := client.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	state, _ := client.GetState()
	if state.Players[0].Cash != engine.DefaultConfig().StartingCash {
		t.Errorf("Expected starting cash after reset, got %d", state.Players[0].Cash)
	}
}
