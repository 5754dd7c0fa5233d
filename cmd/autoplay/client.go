package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/monopoly-engine/game/service"
)

// deedView is the slice of a board tile the bot prices decisions with.
// Non-deed tiles decode with a zero ID.
type deedView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	HousePrice int    `json:"house_price"`
	Owner      int    `json:"owner"`
}

type playerView struct {
	Number     int   `json:"number"`
	Cash       int   `json:"cash"`
	Properties []int `json:"properties"`
}

// GameState is the part of the engine state the bot reads back
type GameState struct {
	Turn          int          `json:"turn"`
	Players       []playerView `json:"players"`
	ActivePlayers []int        `json:"active_players"`
	Board         struct {
		Tiles [][]deedView `json:"tiles"`
	} `json:"board"`
	Auction *struct {
		DeedID int `json:"deed_id"`
	} `json:"auction"`
	Done    bool   `json:"done"`
	Winner  int    `json:"winner"`
	Message string `json:"message"`
}

// Deed finds a deed by id
func (s *GameState) Deed(id int) (deedView, bool) {
	for _, row := range s.Board.Tiles {
		for _, tile := range row {
			if tile.ID == id && id != 0 {
				return tile, true
			}
		}
	}
	return deedView{}, false
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	Players    int        `json:"players"`
	GameState  *GameState `json:"game_state"`
}

type ResetResponse struct {
	Message string     `json:"message"`
	State   *GameState `json:"state"`
}

type ActResponse struct {
	Success   bool       `json:"success"`
	Error     string     `json:"error"`
	Message   string     `json:"message"`
	GameState *GameState `json:"game_state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string, players int) (*SessionResponse, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"config_id": configID,
		"players":   players,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var session SessionResponse
	if err := c.do(http.MethodPost, "/api/sessions", reqBody, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = session.ID
	return &session, nil
}

func (c *Client) GetState() (*GameState, error) {
	var state GameState
	if err := c.do(http.MethodGet, c.sessionPath("state"), nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

func (c *Client) LegalActions() (*service.LegalActionsInfo, error) {
	var legal service.LegalActionsInfo
	if err := c.do(http.MethodGet, c.sessionPath("actions"), nil, &legal); err != nil {
		return nil, fmt.Errorf("legal actions: %w", err)
	}
	return &legal, nil
}

func (c *Client) Reset() (*GameState, error) {
	var resetResp ResetResponse
	if err := c.do(http.MethodPost, c.sessionPath("reset"), nil, &resetResp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resetResp.State, nil
}

// Act posts one action. A rule violation comes back as a response with
// Success false, not as an error.
func (c *Client) Act(action service.Action) (*ActResponse, error) {
	body, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("marshal action: %w", err)
	}

	var actResp ActResponse
	if err := c.do(http.MethodPost, c.sessionPath("actions"), body, &actResp); err != nil {
		return nil, fmt.Errorf("act %s: %w", action.Type, err)
	}
	return &actResp, nil
}

func (c *Client) sessionPath(suffix string) string {
	return fmt.Sprintf("/api/sessions/%s/%s", c.sessionID, suffix)
}

func (c *Client) do(method, path string, body []byte, result interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s - %s", resp.Status, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
