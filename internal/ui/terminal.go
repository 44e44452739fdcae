package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sugolab/probwalk/internal/board"
	"github.com/sugolab/probwalk/pkg/types"
)

// Terminal is the stdin/stdout implementation of Sink and Prompter.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

func (t *Terminal) Message(text string) {
	fmt.Fprintln(t.out, text)
}

// ReadCommand prints a prompt and reads one line. io.EOF once input ends.
func (t *Terminal) ReadCommand(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *Terminal) readInt(prompt string, min, max int) (int, error) {
	for {
		line, err := t.ReadCommand(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < min || n > max {
			fmt.Fprintf(t.out, "Enter a number between %d and %d.\n", min, max)
			continue
		}
		return n, nil
	}
}

func eventMarker(name string) byte {
	switch {
	case name == "Monty Hall":
		return 'M'
	case name == "Probability Maze":
		return '?'
	case name == "Dice Selection":
		return 'D'
	case name == "Slot Machine":
		return 'S'
	case name == "Dice Fog":
		return 'F'
	case strings.HasPrefix(name, "Advance"):
		return '+'
	case strings.HasPrefix(name, "Back"):
		return '-'
	}
	return '*'
}

// RenderBoard draws the serpentine grid: player numbers win over event
// markers, empty cells show a dot.
func (t *Terminal) RenderBoard(snap types.GameSnapshot, events []types.EventPosition) {
	marks := make([]byte, board.Cells)
	for i := range marks {
		marks[i] = '.'
	}
	for _, ev := range events {
		if board.ValidPosition(ev.Position) {
			marks[ev.Position] = eventMarker(ev.EventName)
		}
	}
	for i, p := range snap.Players {
		if board.ValidPosition(p.Position) {
			marks[p.Position] = byte('1' + i)
		}
	}

	rows := board.Cells / board.GridWidth
	grid := make([][]byte, rows)
	for r := range grid {
		grid[r] = make([]byte, board.GridWidth)
	}
	for pos := 0; pos < board.Cells; pos++ {
		r, c := board.GridCoord(pos)
		grid[r][c] = marks[pos]
	}
	for r := 0; r < rows; r++ {
		var sb strings.Builder
		for c := 0; c < board.GridWidth; c++ {
			sb.WriteByte(grid[r][c])
			sb.WriteByte(' ')
		}
		fmt.Fprintln(t.out, sb.String())
	}
	for i, p := range snap.Players {
		marker := ""
		if i == snap.CurrentPlayerIndex {
			marker = " <- up next"
		}
		fmt.Fprintf(t.out, "%d. %s at cell %d, %d steps to the goal%s\n",
			i+1, p.Name, p.Position, board.RemainingSteps(p.Position), marker)
	}
}

// RenderDiceChart prints an ASCII bar per face, the terminal stand-in for
// the probability chart.
func (t *Terminal) RenderDiceChart(probabilities map[string]float64) {
	faces := make([]string, 0, len(probabilities))
	for f := range probabilities {
		faces = append(faces, f)
	}
	sort.Slice(faces, func(i, j int) bool {
		a, aerr := strconv.Atoi(faces[i])
		b, berr := strconv.Atoi(faces[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return faces[i] < faces[j]
	})
	for _, f := range faces {
		p := probabilities[f]
		bar := strings.Repeat("#", int(p*40+0.5))
		fmt.Fprintf(t.out, "%3s %-40s %5.1f%%\n", f, bar, p*100)
	}
}

func (t *Terminal) ChooseDoor(ctx context.Context, playerName string) (int, error) {
	fmt.Fprintf(t.out, "%s, three doors stand before you.\n", playerName)
	return t.readInt("Pick a door (1-3): ", 1, 3)
}

func (t *Terminal) ChooseSwitch(ctx context.Context, openedDoor int) (bool, error) {
	for {
		line, err := t.ReadCommand(fmt.Sprintf("Door %d was a dud. Switch to the other door? (y/n): ", openedDoor))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "Answer y or n.")
	}
}

func (t *Terminal) ChooseMazePath(ctx context.Context, message string, choices []types.MazeChoice) (int, error) {
	fmt.Fprintln(t.out, message)
	for _, ch := range choices {
		fmt.Fprintf(t.out, "  %d) %s (%.0f%% chance)\n", ch.Index, ch.Description, ch.Probability*100)
	}
	return t.readInt("Which way? ", 0, len(choices)-1)
}

func (t *Terminal) ChooseDie(ctx context.Context, options []types.DiceOption) (int, error) {
	fmt.Fprintln(t.out, "Pick a die:")
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s - %s\n", i, opt.Name, opt.Description)
		if opt.Probabilities == nil {
			fmt.Fprintln(t.out, "     (distribution not disclosed)")
		}
	}
	return t.readInt("Your choice: ", 0, len(options)-1)
}

func (t *Terminal) ChooseSlot(ctx context.Context, playerName string, options []types.SlotOption) (int, error) {
	fmt.Fprintf(t.out, "%s, pick a reel to spin:\n", playerName)
	for _, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s - %s\n", opt.Index, opt.Name, opt.Description)
	}
	return t.readInt("Your choice: ", 0, len(options)-1)
}
