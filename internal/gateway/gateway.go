// Package gateway is the typed client for the game server API. Every
// endpoint is one method; transport failures, non-2xx statuses and malformed
// bodies all come back through the error return, never a partial result.
// Calls are single-shot: no retries, no backoff.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sugolab/probwalk/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// sumTolerance mirrors the server-side check: custom dice probabilities must
// sum to 1 within this slack or the request is rejected locally.
const sumTolerance = 0.01

// ServerError is a non-2xx response. Message is the server's own message
// when the body carried one, else a generic fallback.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
}

// ValidationError is a client-side precondition failure; the request never
// reached the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// UserMessage extracts the text to show a player for a failed call.
func UserMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return err.Error()
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New builds a client for the server at baseURL. A timeout is always set so
// a hung server cannot wedge the turn loop forever.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("gateway"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "calling %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "server error"
		var m types.MessageResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&m); decodeErr == nil && m.Message != "" {
			msg = m.Message
		}
		c.log.Debug("request failed", zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &ServerError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// StartGame creates a new session on the server.
func (c *Client) StartGame(ctx context.Context, numPlayers int, characters []string) (types.GameSnapshot, error) {
	if numPlayers < 1 {
		return types.GameSnapshot{}, &ValidationError{Reason: "at least one player is required"}
	}
	var resp types.SnapshotResponse
	err := c.post(ctx, "/start_game", types.StartGameRequest{NumPlayers: numPlayers, Characters: characters}, &resp)
	return resp.GameSnapshot, err
}

// RollDice resolves the current player's roll server-side and returns the
// outcome message with the resulting snapshot.
func (c *Client) RollDice(ctx context.Context) (string, types.GameSnapshot, error) {
	var resp types.SnapshotResponse
	err := c.post(ctx, "/roll_dice", nil, &resp)
	return resp.Message, resp.GameSnapshot, err
}

func (c *Client) GameState(ctx context.Context) (types.GameSnapshot, error) {
	var snap types.GameSnapshot
	err := c.get(ctx, "/get_game_state", &snap)
	return snap, err
}

func (c *Client) DiceProbabilities(ctx context.Context) (map[string]float64, error) {
	var resp types.DiceProbabilitiesResponse
	err := c.get(ctx, "/get_dice_probabilities", &resp)
	return resp.Probabilities, err
}

func (c *Client) EventPositions(ctx context.Context) ([]types.EventPosition, error) {
	var resp types.EventPositionsResponse
	err := c.get(ctx, "/get_event_positions", &resp)
	return resp.EventPositions, err
}

func (c *Client) EventDescriptions(ctx context.Context) ([]types.EventDescription, error) {
	var resp types.EventDescriptionsResponse
	err := c.get(ctx, "/get_event_descriptions", &resp)
	return resp.Events, err
}

// MontyHallChoice submits the initial door pick. When the response carries
// OpenedDoor, the server is offering the switch and a second call decides.
func (c *Client) MontyHallChoice(ctx context.Context, door int) (types.MontyHallResponse, error) {
	var resp types.MontyHallResponse
	err := c.post(ctx, "/monty_hall_choice", types.MontyHallRequest{Choice: door}, &resp)
	return resp, err
}

// MontyHallSwitch completes the two-step protocol. Its reply is always
// terminal for the event.
func (c *Client) MontyHallSwitch(ctx context.Context, switchDoor bool) (string, error) {
	change := "no"
	if switchDoor {
		change = "yes"
	}
	var resp types.MontyHallResponse
	err := c.post(ctx, "/monty_hall_choice", types.MontyHallRequest{Change: change}, &resp)
	return resp.Message, err
}

func (c *Client) MazeProgress(ctx context.Context) (types.MazeProgressResponse, error) {
	var resp types.MazeProgressResponse
	err := c.get(ctx, "/maze_progress", &resp)
	return resp, err
}

func (c *Client) SubmitMazeChoice(ctx context.Context, choiceIndex int) (string, error) {
	var resp types.MessageResponse
	err := c.post(ctx, "/maze_progress", types.MazeChoiceRequest{ChoiceIndex: choiceIndex}, &resp)
	return resp.Message, err
}

func (c *Client) DiceOptions(ctx context.Context) ([]types.DiceOption, error) {
	var resp types.DiceOptionsResponse
	err := c.get(ctx, "/get_dice_options", &resp)
	return resp.DiceOptions, err
}

func (c *Client) SelectDice(ctx context.Context, index int) (string, error) {
	var resp types.MessageResponse
	err := c.post(ctx, "/select_dice", types.SelectDiceRequest{DiceIndex: index}, &resp)
	return resp.Message, err
}

func (c *Client) SlotOptions(ctx context.Context) ([]types.SlotOption, error) {
	var resp types.SlotOptionsResponse
	err := c.get(ctx, "/get_slot_options", &resp)
	return resp.SlotOptions, err
}

func (c *Client) SpinSlot(ctx context.Context, index int) (string, error) {
	var resp types.MessageResponse
	err := c.post(ctx, "/spin_slot", types.SpinSlotRequest{SlotIndex: index}, &resp)
	return resp.Message, err
}

// SetCustomDice validates the distribution locally before sending; a table
// that does not sum to 1 within the shared tolerance never hits the network.
func (c *Client) SetCustomDice(ctx context.Context, probabilities map[string]float64) (string, error) {
	sum := 0.0
	for _, p := range probabilities {
		sum += p
	}
	if math.Abs(sum-1.0) > sumTolerance {
		return "", &ValidationError{Reason: fmt.Sprintf("probabilities sum to %.3f, expected 1", sum)}
	}
	var resp types.MessageResponse
	err := c.post(ctx, "/set_custom_dice", types.CustomDiceRequest{Probabilities: probabilities}, &resp)
	return resp.Message, err
}
