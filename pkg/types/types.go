// Package types holds the wire contract between the game server and its
// clients. Field names are the JSON contract; both sides import this package
// instead of redeclaring payload shapes.
package types

// PlayerView is one player's public state as the server reports it.
type PlayerView struct {
	Name               string `json:"name"`
	Character          string `json:"character"`
	Position           int    `json:"position"`
	IsInMontyHall      bool   `json:"is_in_monty_hall"`
	IsInMaze           bool   `json:"is_in_maze"`
	NeedsDiceSelection bool   `json:"needs_dice_selection"`
}

// GameSnapshot is the full authoritative game state at a point in time.
// Clients never mutate it; every fetch replaces the previous one wholesale.
type GameSnapshot struct {
	Players            []PlayerView `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	IsOver             bool         `json:"is_over"`
	IsSlotEventActive  bool         `json:"is_slot_event_active,omitempty"`

	// SlotNextPlayerIndex is whose spin the active slot event is waiting
	// on. Only present while the event is active; clients fall back to the
	// current player when a server omits it.
	SlotNextPlayerIndex *int `json:"slot_next_player_index,omitempty"`
}

type StartGameRequest struct {
	NumPlayers int      `json:"num_players"`
	Characters []string `json:"characters"`
	MaxTurns   int      `json:"max_turns,omitempty"`
}

// SnapshotResponse is returned by the mutating turn endpoints: a server
// message plus the snapshot resulting from the action.
type SnapshotResponse struct {
	Message string `json:"message,omitempty"`
	GameSnapshot
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DiceProbabilitiesResponse struct {
	Probabilities map[string]float64 `json:"probabilities"`
}

type EventPosition struct {
	Position  int    `json:"position"`
	EventName string `json:"event_name"`
}

type EventPositionsResponse struct {
	EventPositions []EventPosition `json:"event_positions"`
}

type EventDescription struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EventDescriptionsResponse struct {
	Events []EventDescription `json:"events"`
}

// MontyHallRequest carries either the initial door choice or, on the second
// call, the switch decision ("yes"/"no"). The server tells the calls apart
// by which field is set.
type MontyHallRequest struct {
	Choice int    `json:"choice,omitempty"`
	Change string `json:"change,omitempty"`
}

// MontyHallResponse: OpenedDoor is present only when the server has opened a
// losing door and is offering the switch. Its absence means the event
// resolved in one step.
type MontyHallResponse struct {
	Message    string `json:"message"`
	OpenedDoor *int   `json:"opened_door,omitempty"`
}

type MazeChoice struct {
	Index       int     `json:"index"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
}

type MazeProgressResponse struct {
	Message string       `json:"message"`
	Choices []MazeChoice `json:"choices"`
}

type MazeChoiceRequest struct {
	ChoiceIndex int `json:"choice_index"`
}

// DiceOption: mystery dice ship without Probabilities; the distribution is
// intentionally withheld so players have to judge them by outcome.
type DiceOption struct {
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

type DiceOptionsResponse struct {
	DiceOptions []DiceOption `json:"dice_options"`
}

type SelectDiceRequest struct {
	DiceIndex int `json:"dice_index"`
}

type SlotOption struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SlotOptionsResponse struct {
	SlotOptions []SlotOption `json:"slot_options"`
}

type SpinSlotRequest struct {
	SlotIndex int `json:"slot_index"`
}

type CustomDiceRequest struct {
	Probabilities map[string]float64 `json:"probabilities"`
}
