package engine

import "fmt"

// BoardSize is fixed: 40 cells, goal at cell 39.
const BoardSize = 40

type EventKind string

const (
	EventAdvance       EventKind = "advance"
	EventSetback       EventKind = "setback"
	EventDiceModifier  EventKind = "dice_modifier"
	EventMontyHall     EventKind = "monty_hall"
	EventMaze          EventKind = "maze"
	EventDiceSelection EventKind = "dice_selection"
	EventSlot          EventKind = "slot"
)

type CellEvent struct {
	Kind        EventKind
	Steps       int // advance/setback only
	Name        string
	Description string
}

type Cell struct {
	Position int
	Event    *CellEvent
}

type Board struct {
	Size  int
	Cells []Cell
}

func NewBoard(size int) Board {
	cells := make([]Cell, size)
	for i := range cells {
		cells[i].Position = i
	}
	return Board{Size: size, Cells: cells}
}

func (b *Board) AddEvent(position int, ev *CellEvent) {
	if position >= 0 && position < b.Size {
		b.Cells[position].Event = ev
	}
}

func advanceEvent(steps int) *CellEvent {
	return &CellEvent{
		Kind:        EventAdvance,
		Steps:       steps,
		Name:        fmt.Sprintf("Advance %d", steps),
		Description: fmt.Sprintf("Landing here moves you %d cells ahead.", steps),
	}
}

func setbackEvent(steps int) *CellEvent {
	return &CellEvent{
		Kind:        EventSetback,
		Steps:       steps,
		Name:        fmt.Sprintf("Back %d", steps),
		Description: fmt.Sprintf("Landing here moves you %d cells back.", steps),
	}
}

func montyHallEvent() *CellEvent {
	return &CellEvent{
		Kind:        EventMontyHall,
		Name:        "Monty Hall",
		Description: "Three doors, one prize. After you choose, a losing door is opened and you may switch.",
	}
}

func mazeEvent() *CellEvent {
	return &CellEvent{
		Kind:        EventMaze,
		Name:        "Probability Maze",
		Description: "Pick your way through the maze. Every path has its own chance of success.",
	}
}

func diceSelectionEvent() *CellEvent {
	return &CellEvent{
		Kind:        EventDiceSelection,
		Name:        "Dice Selection",
		Description: "Swap your die for one from the catalog. Some distributions are not disclosed.",
	}
}

func slotEvent() *CellEvent {
	return &CellEvent{
		Kind:        EventSlot,
		Name:        "Slot Machine",
		Description: "A machine for everyone: each player picks a reel and spins once.",
	}
}

func diceModifierEvent() *CellEvent {
	return &CellEvent{
		Kind:        EventDiceModifier,
		Name:        "Dice Fog",
		Description: "Your next roll uses a warped distribution.",
	}
}

// StandardBoard is the fixed layout every game uses.
func StandardBoard() Board {
	b := NewBoard(BoardSize)
	b.AddEvent(3, slotEvent())
	b.AddEvent(4, montyHallEvent())
	b.AddEvent(5, advanceEvent(2))
	b.AddEvent(7, montyHallEvent())
	b.AddEvent(10, setbackEvent(3))
	b.AddEvent(12, mazeEvent())
	b.AddEvent(15, diceSelectionEvent())
	b.AddEvent(20, advanceEvent(5))
	b.AddEvent(22, montyHallEvent())
	b.AddEvent(25, setbackEvent(4))
	b.AddEvent(27, diceModifierEvent())
	b.AddEvent(30, diceSelectionEvent())
	b.AddEvent(35, slotEvent())
	return b
}
