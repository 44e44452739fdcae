package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sugolab/probwalk/pkg/types"
)

var ErrGameOver = errors.New("game is already over")
var ErrEventPending = errors.New("a pending event must be resolved before rolling")
var ErrNotInMontyHall = errors.New("no Monty Hall challenge in progress")
var ErrNotInMaze = errors.New("no maze in progress")
var ErrNoDiceSelection = errors.New("no dice selection is pending")
var ErrSlotInactive = errors.New("no slot event is active")
var ErrBadChoice = errors.New("invalid choice")
var ErrBadProbabilities = errors.New("probabilities must sum to 1")

const (
	montyRewardSteps  = 5
	montyPenaltySteps = 3
	defaultMaxTurns   = 20
)

// Distribution applied by the Dice Fog cell to the next roll.
var foggedDice = map[int]float64{
	1: 0.30, 2: 0.05, 3: 0.05, 4: 0.05, 5: 0.05, 6: 0.50,
}

type montyState struct {
	PrizeDoor    int
	PlayerChoice int // 0 until the first door is chosen
	OpenedDoor   int
	RewardSteps  int
	PenaltySteps int
}

type diceModifier struct {
	probabilities map[int]float64
	duration      int
}

type Player struct {
	Name               string
	Character          string
	Position           int
	TotalDistance      int
	Dice               *Dice // nil means the game default die
	IsInMontyHall      bool
	IsInMaze           bool
	NeedsDiceSelection bool

	monty    montyState
	maze     *Maze
	modifier *diceModifier
}

func (p *Player) move(steps int) {
	p.TotalDistance += steps
	p.Position += steps
	if p.Position < 0 {
		p.Position = 0
	}
}

// Game owns all authoritative state for one session. It is not safe for
// concurrent use; the HTTP layer serializes access.
type Game struct {
	ID                 string
	Players            []*Player
	Board              Board
	DefaultDice        Dice
	CurrentPlayerIndex int
	IsOver             bool
	IsSlotEventActive  bool
	MaxTurns           int
	StartedAt          time.Time
	Winner             string

	slotOrder   []int
	slotResults []string
	turnsTaken  int
	rng         *rand.Rand
}

// NewGame builds a session on the standard board. Missing characters fall
// back to the default avatar; maxTurns <= 0 means the default limit.
func NewGame(numPlayers int, characters []string, maxTurns int, rng *rand.Rand) *Game {
	if numPlayers < 1 {
		numPlayers = 1
	}
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	if rng == nil {
		rng = NewRNG()
	}
	players := make([]*Player, numPlayers)
	for i := range players {
		character := "default.png"
		if i < len(characters) && characters[i] != "" {
			character = characters[i]
		}
		players[i] = &Player{
			Name:      fmt.Sprintf("Player %d", i+1),
			Character: character,
		}
	}
	return &Game{
		ID:          uuid.NewString(),
		Players:     players,
		Board:       StandardBoard(),
		DefaultDice: NewDice(PredefinedDiceOptions[0].Probabilities),
		MaxTurns:    maxTurns,
		StartedAt:   time.Now(),
		rng:         rng,
	}
}

func (g *Game) CurrentPlayer() *Player {
	return g.Players[g.CurrentPlayerIndex]
}

func (g *Game) TurnsTaken() int { return g.turnsTaken }

func (g *Game) pendingFor(p *Player) bool {
	return p.IsInMontyHall || p.IsInMaze || p.NeedsDiceSelection || g.IsSlotEventActive
}

// diceFor resolves which distribution the player rolls with. When consume is
// set, a one-shot modifier ticks down.
func (g *Game) diceFor(p *Player, consume bool) Dice {
	if p.modifier != nil {
		d := NewDice(p.modifier.probabilities)
		if consume {
			p.modifier.duration--
			if p.modifier.duration <= 0 {
				p.modifier = nil
			}
		}
		return d
	}
	if p.Dice != nil {
		return *p.Dice
	}
	return g.DefaultDice
}

// movePlayer applies steps and reports whether the player reached the goal,
// which ends the game. Positions never leave [0, BoardSize-1].
func (g *Game) movePlayer(p *Player, steps int) bool {
	p.move(steps)
	if p.Position >= g.Board.Size-1 {
		p.Position = g.Board.Size - 1
		g.finish(p)
		return true
	}
	return false
}

func (g *Game) finish(winner *Player) {
	g.IsOver = true
	if winner != nil {
		g.Winner = winner.Name
	}
}

func (g *Game) leader() *Player {
	lead := g.Players[0]
	for _, p := range g.Players[1:] {
		if p.Position > lead.Position {
			lead = p
		}
	}
	return lead
}

// advanceTurn hands control to the next player, or ends the game once every
// player has taken MaxTurns turns.
func (g *Game) advanceTurn() {
	g.turnsTaken++
	if g.turnsTaken >= g.MaxTurns*len(g.Players) {
		g.finish(g.leader())
		return
	}
	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
}

// Roll plays the current player's turn: roll, move, apply the landed cell's
// event. The turn only advances if the roll left nothing pending.
func (g *Game) Roll() (string, error) {
	if g.IsOver {
		return "", ErrGameOver
	}
	p := g.CurrentPlayer()
	if g.pendingFor(p) {
		return "", ErrEventPending
	}
	steps := g.diceFor(p, true).Roll(g.rng)
	msg := fmt.Sprintf("%s rolled a %d.", p.Name, steps)
	if g.movePlayer(p, steps) {
		return msg + fmt.Sprintf("\n%s reached the goal. Congratulations!", p.Name), nil
	}
	if ev := g.Board.Cells[p.Position].Event; ev != nil {
		msg += fmt.Sprintf("\nEvent: %s.", ev.Name)
		evMsg, finished := g.applyEvent(p, ev)
		if evMsg != "" {
			msg += "\n" + evMsg
		}
		if finished {
			return msg, nil
		}
	}
	if !g.pendingFor(p) {
		g.advanceTurn()
	}
	return msg, nil
}

// applyEvent runs the landed cell's immediate effect or arms its pending
// flag. The bool reports that an event move reached the goal.
func (g *Game) applyEvent(p *Player, ev *CellEvent) (string, bool) {
	switch ev.Kind {
	case EventAdvance:
		if g.movePlayer(p, ev.Steps) {
			return fmt.Sprintf("%s surges ahead and reaches the goal!", p.Name), true
		}
		return fmt.Sprintf("Move %d cells ahead!", ev.Steps), false
	case EventSetback:
		g.movePlayer(p, -ev.Steps)
		return fmt.Sprintf("Move %d cells back!", ev.Steps), false
	case EventDiceModifier:
		p.modifier = &diceModifier{probabilities: foggedDice, duration: 1}
		return "A strange fog warps the next roll.", false
	case EventMontyHall:
		p.IsInMontyHall = true
		p.monty = montyState{
			PrizeDoor:    1 + g.rng.Intn(3),
			RewardSteps:  montyRewardSteps,
			PenaltySteps: montyPenaltySteps,
		}
		return fmt.Sprintf("%s faces the Monty Hall challenge.", p.Name), false
	case EventMaze:
		p.IsInMaze = true
		p.maze = NewMaze()
		return fmt.Sprintf("%s wanders into the probability maze.", p.Name), false
	case EventDiceSelection:
		p.NeedsDiceSelection = true
		return fmt.Sprintf("%s gets to pick a new die.", p.Name), false
	case EventSlot:
		g.IsSlotEventActive = true
		g.slotOrder = make([]int, 0, len(g.Players))
		for i := range g.Players {
			g.slotOrder = append(g.slotOrder, (g.CurrentPlayerIndex+i)%len(g.Players))
		}
		g.slotResults = g.slotResults[:0]
		return "The slot machine lights up. Everyone gets one spin.", false
	}
	return "", false
}

// MontyHallChoice handles the first step: pick a door, the host opens a
// losing one. The opened door number is returned alongside the message.
func (g *Game) MontyHallChoice(door int) (string, int, error) {
	if g.IsOver {
		return "", 0, ErrGameOver
	}
	p := g.CurrentPlayer()
	if !p.IsInMontyHall {
		return "", 0, ErrNotInMontyHall
	}
	if p.monty.PlayerChoice != 0 {
		// A door was already chosen; only the switch decision remains.
		return "", 0, ErrBadChoice
	}
	if door < 1 || door > 3 {
		return "", 0, ErrBadChoice
	}
	p.monty.PlayerChoice = door
	candidates := make([]int, 0, 2)
	for d := 1; d <= 3; d++ {
		if d != p.monty.PrizeDoor && d != p.monty.PlayerChoice {
			candidates = append(candidates, d)
		}
	}
	opened := candidates[g.rng.Intn(len(candidates))]
	p.monty.OpenedDoor = opened
	msg := fmt.Sprintf("Door %d is a dud. Do you want to switch doors?", opened)
	return msg, opened, nil
}

// MontyHallSwitch resolves the event: optionally switch to the remaining
// door, then win or lose.
func (g *Game) MontyHallSwitch(change bool) (string, error) {
	if g.IsOver {
		return "", ErrGameOver
	}
	p := g.CurrentPlayer()
	if !p.IsInMontyHall {
		return "", ErrNotInMontyHall
	}
	if p.monty.PlayerChoice == 0 {
		return "", ErrBadChoice
	}
	if change {
		p.monty.PlayerChoice = 6 - p.monty.PlayerChoice - p.monty.OpenedDoor
	}
	won := p.monty.PlayerChoice == p.monty.PrizeDoor
	reward, penalty := p.monty.RewardSteps, p.monty.PenaltySteps
	p.IsInMontyHall = false
	p.monty = montyState{}
	if won {
		msg := fmt.Sprintf("Congratulations, you won the prize! Move %d cells ahead.", reward)
		if g.movePlayer(p, reward) {
			return msg + fmt.Sprintf("\n%s reached the goal. Congratulations!", p.Name), nil
		}
		g.advanceTurn()
		return msg, nil
	}
	msg := fmt.Sprintf("Tough luck, that was a dud. Move %d cells back.", penalty)
	g.movePlayer(p, -penalty)
	g.advanceTurn()
	return msg, nil
}

// MazeProgress reports the current node and the available paths.
func (g *Game) MazeProgress() (string, []MazeOption, error) {
	if g.IsOver {
		return "", nil, ErrGameOver
	}
	p := g.CurrentPlayer()
	if !p.IsInMaze || p.maze == nil {
		return "", nil, ErrNotInMaze
	}
	msg := fmt.Sprintf("%s is at the %s. Pick the next path.", p.Name, p.maze.CurrentNode())
	return msg, p.maze.Choices(), nil
}

// SubmitMazeChoice resolves one path choice. Finishing the maze, either way,
// moves the player and ends their turn.
func (g *Game) SubmitMazeChoice(index int) (string, error) {
	if g.IsOver {
		return "", ErrGameOver
	}
	p := g.CurrentPlayer()
	if !p.IsInMaze || p.maze == nil {
		return "", ErrNotInMaze
	}
	msg, err := p.maze.MakeChoice(g.rng, index)
	if err != nil {
		return "", err
	}
	if !p.maze.Finished {
		return msg, nil
	}
	m := p.maze
	p.IsInMaze = false
	p.maze = nil
	if m.Success {
		msg += fmt.Sprintf("\n%s beat the maze and moves %d cells ahead!", p.Name, m.RewardSteps)
		if g.movePlayer(p, m.RewardSteps) {
			return msg + fmt.Sprintf("\n%s reached the goal. Congratulations!", p.Name), nil
		}
	} else {
		msg += fmt.Sprintf("\n%s got lost and moves %d cells back.", p.Name, m.PenaltySteps)
		g.movePlayer(p, -m.PenaltySteps)
	}
	g.advanceTurn()
	return msg, nil
}

// SelectDice assigns a catalog die to the current player.
func (g *Game) SelectDice(index int) (string, error) {
	if g.IsOver {
		return "", ErrGameOver
	}
	p := g.CurrentPlayer()
	if !p.NeedsDiceSelection {
		return "", ErrNoDiceSelection
	}
	options := AllDiceOptions()
	if index < 0 || index >= len(options) {
		return "", ErrBadChoice
	}
	d := NewDice(options[index].Probabilities)
	p.Dice = &d
	p.NeedsDiceSelection = false
	g.advanceTurn()
	return fmt.Sprintf("%s picked the %s.", p.Name, options[index].Name), nil
}

// SpinSlot spins for whoever is next in the slot order. Movement wraps
// around the loop and never ends the game.
func (g *Game) SpinSlot(reelIndex int) (string, error) {
	if g.IsOver {
		return "", ErrGameOver
	}
	if !g.IsSlotEventActive || len(g.slotOrder) == 0 {
		return "", ErrSlotInactive
	}
	if reelIndex < 0 || reelIndex >= len(SlotReels) {
		return "", ErrBadChoice
	}
	p := g.Players[g.slotOrder[0]]
	out := SlotReels[reelIndex].Spin(g.rng)
	p.TotalDistance += out.Steps
	p.Position = ((p.Position+out.Steps)%g.Board.Size + g.Board.Size) % g.Board.Size
	msg := fmt.Sprintf("%s spun the %s: %s (%+d cells).", p.Name, SlotReels[reelIndex].Name, out.Label, out.Steps)
	g.slotResults = append(g.slotResults, msg)
	g.slotOrder = g.slotOrder[1:]
	if len(g.slotOrder) == 0 {
		g.IsSlotEventActive = false
		msg += "\nEveryone has spun. Results:\n" + strings.Join(g.slotResults, "\n")
		g.advanceTurn()
	}
	return msg, nil
}

// SetCustomDice replaces the game default distribution after validation.
func (g *Game) SetCustomDice(probs map[int]float64) (string, error) {
	if err := ValidateProbabilities(probs); err != nil {
		return "", err
	}
	g.DefaultDice = NewDice(probs)
	return "Custom dice distribution applied.", nil
}

// DiceProbabilities is the distribution the current player would roll with,
// without consuming any one-shot modifier.
func (g *Game) DiceProbabilities() map[string]float64 {
	return g.diceFor(g.CurrentPlayer(), false).WireProbabilities()
}

func (g *Game) Snapshot() types.GameSnapshot {
	players := make([]types.PlayerView, len(g.Players))
	for i, p := range g.Players {
		players[i] = types.PlayerView{
			Name:               p.Name,
			Character:          p.Character,
			Position:           p.Position,
			IsInMontyHall:      p.IsInMontyHall,
			IsInMaze:           p.IsInMaze,
			NeedsDiceSelection: p.NeedsDiceSelection,
		}
	}
	snap := types.GameSnapshot{
		Players:            players,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		IsOver:             g.IsOver,
		IsSlotEventActive:  g.IsSlotEventActive,
	}
	if g.IsSlotEventActive && len(g.slotOrder) > 0 {
		next := g.slotOrder[0]
		snap.SlotNextPlayerIndex = &next
	}
	return snap
}

func (g *Game) EventPositions() []types.EventPosition {
	var out []types.EventPosition
	for _, cell := range g.Board.Cells {
		if cell.Event != nil {
			out = append(out, types.EventPosition{Position: cell.Position, EventName: cell.Event.Name})
		}
	}
	return out
}

// EventDescriptions lists each distinct event once, in board order.
func (g *Game) EventDescriptions() []types.EventDescription {
	seen := map[string]bool{}
	var out []types.EventDescription
	for _, cell := range g.Board.Cells {
		if cell.Event == nil || seen[cell.Event.Name] {
			continue
		}
		seen[cell.Event.Name] = true
		out = append(out, types.EventDescription{Name: cell.Event.Name, Description: cell.Event.Description})
	}
	return out
}

// DiceOptionViews is the selection catalog as served to clients; mystery
// distributions are withheld.
func DiceOptionViews() []types.DiceOption {
	options := AllDiceOptions()
	out := make([]types.DiceOption, 0, len(options))
	for _, opt := range options {
		view := types.DiceOption{Name: opt.Name, Description: opt.Description}
		if !opt.Hidden {
			view.Probabilities = make(map[string]float64, len(opt.Probabilities))
			for face, p := range opt.Probabilities {
				view.Probabilities[strconv.Itoa(face)] = p
			}
		}
		out = append(out, view)
	}
	return out
}

func SlotOptionViews() []types.SlotOption {
	out := make([]types.SlotOption, 0, len(SlotReels))
	for i, reel := range SlotReels {
		out = append(out, types.SlotOption{Index: i, Name: reel.Name, Description: reel.Description})
	}
	return out
}
