package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/monopoly-engine/game/engine"
	"github.com/wricardo/monopoly-engine/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Monopoly Engine",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Monopoly Engine - MCP Interface

Every tool proxies to the REST API server. Seats are numbered from 1.

AVAILABLE TOOLS:
- create_session: Start a game with a rule set and number of seats
- list_sessions / get_session: Find running games
- game_state: Players, dice, center pot and the owned deeds
- legal_actions: What the seat to move may do right now
- act: Apply one action (take_turn, buy, start_auction, bid, end_turn, ...)
- history: Paginated action log
- standings: Seats ranked by net worth
- reset_game: Restart with the same rules and seats
- list_configs: Available rule sets
- game_rules: How a turn works

Always check legal_actions before acting. A rejected action is reported with its reason
and leaves the game unchanged.`),
	)

	c.registerTools()
}

func sessionParam() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Rule set to use (optional, defaults to classic)",
				},
				"players": map[string]interface{}{
					"type":        "integer",
					"description": "Number of seats (optional, defaults to the rule set minimum)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionParam()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: players, dice, center pot and owned deeds",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionParam()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_actions",
		Description: "List the actions available to the seat to move, with the deed IDs each deed action accepts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionParam()},
			Required:   []string{"session_id"},
		},
	}, c.handleLegalActions)

	actionNames := make([]string, 0, len(service.ActionTypes))
	for _, a := range service.ActionTypes {
		actionNames = append(actionNames, string(a))
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "act",
		Description: "Apply one game action for the seat to move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionParam(),
				"type": map[string]interface{}{
					"type":        "string",
					"enum":        actionNames,
					"description": "Action to apply",
				},
				"deed_id": map[string]interface{}{
					"type":        "integer",
					"description": "Deed for buy, start_auction, build, sell, mortgage and unmortgage",
				},
				"amount": map[string]interface{}{
					"type":        "integer",
					"description": "Bid for bid, or the change for change_possible_bid",
				},
				"seat": map[string]interface{}{
					"type":        "integer",
					"description": "Seat leaving the auction for withdraw (optional)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you are taking this action",
				},
			},
			Required: []string{"session_id", "type"},
		},
	}, c.handleAct)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Restart the game with the same rules and seats",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionParam()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "history",
		Description: "Get the action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionParam(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest (asc) or newest (desc) first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "standings",
		Description: "Rank the seats by net worth",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionParam()},
			Required:   []string{"session_id"},
		},
	}, c.handleStandings)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rule sets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Explain how a turn works and the numbers of a rule set",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Rule set to describe (optional, defaults to classic)",
				},
			},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Views of the REST payloads. The board holds tiles behind an interface, so
// responses are decoded into these flat shapes instead of engine types.

type tileView struct {
	Name      string            `json:"name"`
	Kind      engine.TileKind   `json:"kind"`
	Position  engine.Position   `json:"position"`
	ID        int               `json:"id"`
	Price     int               `json:"price"`
	Owner     int               `json:"owner"`
	Mortgaged bool              `json:"mortgaged"`
	Group     engine.ColorGroup `json:"group"`
	Houses    int               `json:"houses"`
}

type stateView struct {
	ID            string           `json:"id"`
	ConfigName    string           `json:"config_name"`
	Turn          int              `json:"turn"`
	Players       []*engine.Player `json:"players"`
	ActivePlayers []int            `json:"active_players"`
	Board         struct {
		Tiles [][]tileView `json:"tiles"`
	} `json:"board"`
	Houses    int             `json:"houses"`
	Hotels    int             `json:"hotels"`
	CenterPot int             `json:"center_pot"`
	Dice      [2]int          `json:"dice"`
	TurnTaken bool            `json:"turn_taken"`
	Pending   int             `json:"pending"`
	Done      bool            `json:"done"`
	Winner    int             `json:"winner"`
	Auction   *engine.Auction `json:"auction"`
	LastCard  *engine.Card    `json:"last_card"`
	Message   string          `json:"message"`
}

func (s *stateView) tileAt(pos engine.Position) *tileView {
	if !pos.Valid() || pos.Quadrant >= len(s.Board.Tiles) || pos.Distance >= len(s.Board.Tiles[pos.Quadrant]) {
		return nil
	}
	return &s.Board.Tiles[pos.Quadrant][pos.Distance]
}

func (s *stateView) deed(id int) *tileView {
	for q := range s.Board.Tiles {
		for d := range s.Board.Tiles[q] {
			t := &s.Board.Tiles[q][d]
			if t.ID == id && t.Price > 0 {
				return t
			}
		}
	}
	return nil
}

func (s *stateView) isActive(seat int) bool {
	for _, a := range s.ActivePlayers {
		if a == seat {
			return true
		}
	}
	return false
}

type sessionView struct {
	ID             string     `json:"id"`
	ConfigName     string     `json:"config_name"`
	Players        int        `json:"players"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	GameState      *stateView `json:"game_state"`
}

type actionResultView struct {
	Success   bool                      `json:"success"`
	Error     string                    `json:"error"`
	Message   string                    `json:"message"`
	GameState *stateView                `json:"game_state"`
	Events    []engine.ActionEntry      `json:"events"`
	Legal     *service.LegalActionsInfo `json:"legal"`
}

type standingView struct {
	Seat       int  `json:"seat"`
	Cash       int  `json:"cash"`
	NetWorth   int  `json:"net_worth"`
	Properties int  `json:"properties"`
	Active     bool `json:"active"`
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

// intArg reads a numeric argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, name string) (int, bool) {
	switch v := args[name].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := map[string]interface{}{}
	if configID := stringArg(args, "config_id"); configID != "" {
		body["config_id"] = configID
	}
	if players, ok := intArg(args, "players"); ok {
		body["players"] = players
	}

	var session sessionView
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int           `json:"count"`
		Sessions []sessionView `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		if s.GameState != nil && s.GameState.Done {
			status = fmt.Sprintf("won by seat %d", s.GameState.Winner)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Seats: %d, Created: %s, %s)\n",
			s.ID, s.ConfigName, s.Players, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var session sessionView
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var state stateView
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleLegalActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var legal service.LegalActionsInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/actions"), nil, &legal); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLegalActions(&legal)), nil
}

func (c *Client) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := stringArg(args, "session_id")

	// intent is only there to make the caller state its reasoning
	action := service.Action{Type: service.ActionType(stringArg(args, "type"))}
	if action.Type == "" {
		return mcp.NewToolResultError("type is required"), nil
	}
	action.DeedID, _ = intArg(args, "deed_id")
	action.Amount, _ = intArg(args, "amount")
	action.Seat, _ = intArg(args, "seat")

	var result actionResultView
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/actions"), action, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(action, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var response struct {
		Message string     `json:"message"`
		State   *stateView `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := stringArg(args, "session_id")

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := stringArg(args, "order"); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleStandings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var response struct {
		Done        bool           `json:"done"`
		Winner      int            `json:"winner"`
		CenterPot   int            `json:"center_pot"`
		HousesBuilt int            `json:"houses_built"`
		HotelsBuilt int            `json:"hotels_built"`
		BankHouses  int            `json:"bank_houses"`
		BankHotels  int            `json:"bank_hotels"`
		Standings   []standingView `json:"standings"`
	}
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/standings"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if response.Done {
		fmt.Fprintf(&b, "Game over: seat %d wins\n\n", response.Winner)
	}
	for i, s := range response.Standings {
		status := ""
		if !s.Active {
			status = " (bankrupt)"
		}
		fmt.Fprintf(&b, "%d. Seat %d: net worth $%d, cash $%d, %d deeds%s\n",
			i+1, s.Seat, s.NetWorth, s.Cash, s.Properties, status)
	}
	fmt.Fprintf(&b, "\nCenter pot: $%d\n", response.CenterPot)
	fmt.Fprintf(&b, "Built: %d houses, %d hotels. Bank: %d houses, %d hotels",
		response.HousesBuilt, response.HotelsBuilt, response.BankHouses, response.BankHotels)

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s\n  %s\n  Starting cash: $%d, Seats: %d-%d\n\n",
			config.ConfigID, config.Description, config.StartingCash, config.MinPlayers, config.MaxPlayers)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configID := stringArg(request.GetArguments(), "config_id")
	if configID == "" {
		configID = engine.DefaultConfigName
	}

	var config engine.GameConfig
	if err := c.apiCall(ctx, "GET", "/api/configs/"+url.PathEscape(configID), nil, &config); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRules(&config)), nil
}

// Formatting helpers

func formatSessionInfo(session *sessionView) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nSeats: %d\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Players,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *stateView) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Turn: seat %d | Dice: %d+%d | Center pot: $%d | Bank: %d houses, %d hotels\n\n",
		state.Turn, state.Dice[0], state.Dice[1], state.CenterPot, state.Houses, state.Hotels)

	for _, p := range state.Players {
		marker := "  "
		if p.Number == state.Turn {
			marker = "▶ "
		}
		where := "?"
		if t := state.tileAt(p.Location); t != nil {
			where = t.Name
		}
		fmt.Fprintf(&b, "%sSeat %d: $%d at %s", marker, p.Number, p.Cash, where)
		if p.Jail > 0 {
			fmt.Fprintf(&b, " [jail, roll %d]", p.Jail)
		}
		if p.GetOutFree {
			b.WriteString(" [get out of jail free]")
		}
		if p.Cash < 0 {
			fmt.Fprintf(&b, " [owes seat %d]", p.Creditor)
		}
		if !state.isActive(p.Number) {
			b.WriteString(" [bankrupt]")
		}
		b.WriteString("\n")
		for _, id := range p.Properties {
			if d := state.deed(id); d != nil {
				fmt.Fprintf(&b, "    #%d %s%s\n", d.ID, d.Name, deedStatus(d))
			}
		}
	}

	if state.Pending != 0 {
		if d := state.deed(state.Pending); d != nil {
			fmt.Fprintf(&b, "\nPending decision: buy #%d %s for $%d or start an auction\n", d.ID, d.Name, d.Price)
		}
	}
	if a := state.Auction; a != nil {
		fmt.Fprintf(&b, "\nAuction for deed #%d: bidder to act is seat %d, possible bid $%d\n",
			a.DeedID, a.Turn, a.PossibleBid)
		for _, seat := range a.Bidders {
			if bid, ok := a.Bids[seat]; ok {
				fmt.Fprintf(&b, "  seat %d bid $%d\n", seat, bid)
			}
		}
	}
	if state.LastCard != nil {
		fmt.Fprintf(&b, "\nLast card: %s - %s\n", state.LastCard.Name, state.LastCard.Description)
	}

	if state.Done {
		fmt.Fprintf(&b, "\n🏆 GAME OVER: seat %d wins", state.Winner)
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func deedStatus(d *tileView) string {
	var parts []string
	switch {
	case d.Houses == engine.HotelLevel:
		parts = append(parts, "hotel")
	case d.Houses > 0:
		parts = append(parts, fmt.Sprintf("%d houses", d.Houses))
	}
	if d.Mortgaged {
		parts = append(parts, "mortgaged")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func formatLegalActions(legal *service.LegalActionsInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Seat %d | Phase: %s | Cash: $%d\n", legal.Seat, legal.Phase, legal.Cash)
	if legal.InJail {
		b.WriteString("In jail\n")
	}
	if legal.InDebt {
		b.WriteString("In debt: raise cash or declare bankruptcy\n")
	}
	b.WriteString("\nAvailable:\n")

	flag := func(ok bool, name string) {
		if ok {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	list := func(ids []int, name string) {
		if len(ids) > 0 {
			fmt.Fprintf(&b, "- %s: deeds %s\n", name, joinInts(ids))
		}
	}

	flag(legal.TakeTurn, "take_turn")
	flag(legal.PayFine, "pay_fine")
	flag(legal.UseCard, "use_card")
	list(legal.Buy, "buy")
	list(legal.StartAuction, "start_auction")
	list(legal.Build, "build")
	list(legal.Sell, "sell")
	list(legal.Mortgage, "mortgage")
	list(legal.Unmortgage, "unmortgage")
	if legal.MinBid > 0 {
		fmt.Fprintf(&b, "- bid: at least $%d\n", legal.MinBid)
		b.WriteString("- change_possible_bid\n")
	}
	if len(legal.Withdraw) > 0 {
		fmt.Fprintf(&b, "- withdraw: seats %s\n", joinInts(legal.Withdraw))
	}
	flag(legal.EndTurn, "end_turn")
	flag(legal.DeclareBankruptcy, "declare_bankruptcy")

	return b.String()
}

func formatActionResult(action service.Action, result *actionResultView) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s applied\n", action.Type)
	} else {
		fmt.Fprintf(&b, "✗ %s rejected: %s\n", action.Type, result.Error)
	}
	if result.Message != "" && result.Message != result.Error {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	for _, e := range result.Events {
		fmt.Fprintf(&b, "  %s\n", formatEntry(e))
	}
	if result.GameState != nil {
		b.WriteString("\n" + formatGameState(result.GameState) + "\n")
	}
	if result.Legal != nil {
		b.WriteString("\n" + formatLegalActions(result.Legal))
	}
	return b.String()
}

func formatEntry(e engine.ActionEntry) string {
	status := "✓"
	if !e.Success {
		status = "✗"
	}
	line := fmt.Sprintf("#%d seat %d %s %s [cash $%d]", e.Seq, e.Player, e.Action, status, e.Cash)
	if e.Dice != [2]int{} {
		line += fmt.Sprintf(" dice %d+%d", e.Dice[0], e.Dice[1])
	}
	if e.Message != "" {
		line += " " + e.Message
	}
	return line
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, entry := range history.Actions {
		b.WriteString(formatEntry(entry) + "\n")
	}

	return b.String()
}

func formatRules(config *engine.GameConfig) string {
	return fmt.Sprintf(`Rules: %s
%s

SETUP:
- %d to %d seats, each starting with $%d on Go. Seat 1 moves first.

A TURN:
1. take_turn rolls two dice and moves. Passing or landing on Go pays $%d.
2. Landing on an unowned deed leaves it pending: buy it at list price, or
   start_auction so every active seat can bid. You cannot end the turn while
   a deed is pending.
3. Landing on an owned deed pays rent to its owner. A full color group
   doubles base rent; houses and hotels raise it further.
4. Doubles grant another roll. A third double in a row sends you to jail.
5. Between rolls you may build, sell, mortgage and unmortgage.
6. end_turn passes to the next active seat.

JAIL:
- Roll doubles to leave, pay_fine ($%d) or use_card. After %d failed rolls
  you can no longer roll and must pay or use a card. Out of rolls the fine is
  charged even if it leaves you in debt.

TAXES AND FEES:
- Income tax $%d, luxury tax $%d, school tax $%d, doctor fee $%d.
  Taxes and fees go to the center pot, collected by landing on Free Parking.
- Bank dividend pays $%d.

BUILDING:
- Only with the full color group, evenly across the group. The bank holds
  %d houses and %d hotels; when they run out nothing more can be built.
  A hotel sold while the bank is short of houses drops to as many houses as
  the bank has, paying half the house price per level removed.
- Unmortgaging costs the mortgage value plus %d%% interest.

DEBT AND BANKRUPTCY:
- Cash below zero must be raised before ending the turn, or declare_bankruptcy
  hands everything to the creditor. The last active seat wins.
`,
		config.Name, config.Description,
		config.MinPlayers, config.MaxPlayers, config.StartingCash,
		config.PassGoSalary,
		config.JailFine, config.MaxJailRolls,
		config.IncomeTax, config.LuxuryTax, config.SchoolTax, config.DoctorFee,
		config.BankDividend,
		config.Houses, config.Hotels,
		config.UnmortgageInterestPct,
	)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
