package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sugolab/probwalk/pkg/types"
)

func newScriptedTerminal(input string) (*Terminal, *strings.Builder) {
	var out strings.Builder
	return NewTerminal(strings.NewReader(input), &out), &out
}

func TestReadCommandTrimsAndEOFs(t *testing.T) {
	term, _ := newScriptedTerminal("  roll  \n")
	line, err := term.ReadCommand("> ")
	if err != nil || line != "roll" {
		t.Fatalf("want %q, got %q err=%v", "roll", line, err)
	}
	if _, err := term.ReadCommand("> "); err != io.EOF {
		t.Fatalf("want io.EOF after input ends, got %v", err)
	}
}

func TestChooseDoorRejectsOutOfRangeInput(t *testing.T) {
	term, out := newScriptedTerminal("4\nx\n2\n")
	door, err := term.ChooseDoor(context.Background(), "Player 1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if door != 2 {
		t.Fatalf("want door 2, got %d", door)
	}
	if !strings.Contains(out.String(), "between 1 and 3") {
		t.Fatalf("bad input should be re-prompted: %q", out.String())
	}
}

func TestChooseSwitchParsesYesNo(t *testing.T) {
	term, out := newScriptedTerminal("maybe\nY\n")
	switchDoor, err := term.ChooseSwitch(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !switchDoor {
		t.Fatalf("Y should mean switch")
	}
	if !strings.Contains(out.String(), "Door 3 was a dud") {
		t.Fatalf("prompt should name the opened door: %q", out.String())
	}

	term, _ = newScriptedTerminal("no\n")
	switchDoor, err = term.ChooseSwitch(context.Background(), 1)
	if err != nil || switchDoor {
		t.Fatalf("no should mean stay, got %v err=%v", switchDoor, err)
	}
}

func TestChooseMazePathListsChoices(t *testing.T) {
	term, out := newScriptedTerminal("1\n")
	choices := []types.MazeChoice{
		{Index: 0, Description: "left", Probability: 0.8},
		{Index: 1, Description: "right", Probability: 0.45},
	}
	got, err := term.ChooseMazePath(context.Background(), "You are at the fork.", choices)
	if err != nil || got != 1 {
		t.Fatalf("want choice 1, got %d err=%v", got, err)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "You are at the fork.") || !strings.Contains(rendered, "right (45% chance)") {
		t.Fatalf("choices not rendered: %q", rendered)
	}
}

func TestChooseDieMarksUndisclosedDistributions(t *testing.T) {
	term, out := newScriptedTerminal("1\n")
	options := []types.DiceOption{
		{Name: "Standard Die", Probabilities: map[string]float64{"1": 1.0}},
		{Name: "Mystery Die A"},
	}
	got, err := term.ChooseDie(context.Background(), options)
	if err != nil || got != 1 {
		t.Fatalf("want choice 1, got %d err=%v", got, err)
	}
	if !strings.Contains(out.String(), "distribution not disclosed") {
		t.Fatalf("mystery dice should be flagged: %q", out.String())
	}
}

func TestChooseSlotNamesTheSpinner(t *testing.T) {
	term, out := newScriptedTerminal("0\n")
	options := []types.SlotOption{{Index: 0, Name: "Cautious Reel", Description: "Small prizes."}}
	got, err := term.ChooseSlot(context.Background(), "Player 2", options)
	if err != nil || got != 0 {
		t.Fatalf("want choice 0, got %d err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Player 2, pick a reel to spin:") {
		t.Fatalf("prompt should name the spinner: %q", out.String())
	}
}

func TestRenderBoardMarksPlayersAndEvents(t *testing.T) {
	term, out := newScriptedTerminal("")
	snap := types.GameSnapshot{
		Players: []types.PlayerView{
			{Name: "Player 1", Position: 0},
			{Name: "Player 2", Position: 12},
		},
		CurrentPlayerIndex: 1,
	}
	events := []types.EventPosition{
		{Position: 4, EventName: "Monty Hall"},
		{Position: 12, EventName: "Probability Maze"},
	}
	term.RenderBoard(snap, events)

	rendered := out.String()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	if len(lines) != 4+2 {
		t.Fatalf("want 4 grid rows plus 2 player lines, got %d:\n%s", len(lines), rendered)
	}
	if !strings.HasPrefix(lines[0], "1 . . . M") {
		t.Fatalf("row 0 should show player 1 and the monty marker: %q", lines[0])
	}
	// Cell 12 sits on the serpentine second row at column 7; the player
	// marker wins over the maze marker.
	if lines[1][2*7:2*7+1] != "2" {
		t.Fatalf("player 2 should cover the maze cell: %q", lines[1])
	}
	if !strings.Contains(rendered, "Player 2 at cell 12, 27 steps to the goal <- up next") {
		t.Fatalf("player summary missing: %q", rendered)
	}
}

func TestRenderDiceChartOrdersFaces(t *testing.T) {
	term, out := newScriptedTerminal("")
	term.RenderDiceChart(map[string]float64{"6": 0.5, "1": 0.5})

	rendered := out.String()
	first := strings.Index(rendered, "  1 ")
	second := strings.Index(rendered, "  6 ")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("faces should render in ascending order:\n%s", rendered)
	}
	if !strings.Contains(rendered, "50.0%") {
		t.Fatalf("percentages missing:\n%s", rendered)
	}
}
