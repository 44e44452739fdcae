package engine

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func armMonty(g *Game, prize int) *Player {
	p := g.CurrentPlayer()
	p.IsInMontyHall = true
	p.monty = montyState{
		PrizeDoor:    prize,
		RewardSteps:  montyRewardSteps,
		PenaltySteps: montyPenaltySteps,
	}
	return p
}

func TestMontyHallChoiceOpensLosingDoor(t *testing.T) {
	g := newTestGame(2, 7)
	p := armMonty(g, 2)

	msg, opened, err := g.MontyHallChoice(2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if opened == 2 {
		t.Fatalf("host must not open the prize door")
	}
	if opened < 1 || opened > 3 {
		t.Fatalf("opened door out of range: %d", opened)
	}
	if !strings.Contains(msg, "switch") {
		t.Fatalf("message should offer the switch: %q", msg)
	}
	if !p.IsInMontyHall {
		t.Fatalf("challenge should still pend until the switch decision")
	}

	// A second door pick is not part of the protocol.
	if _, _, err := g.MontyHallChoice(1); !errors.Is(err, ErrBadChoice) {
		t.Fatalf("want ErrBadChoice on a repeat pick, got %v", err)
	}
}

func TestMontyHallChoiceValidation(t *testing.T) {
	g := newTestGame(2, 7)

	if _, _, err := g.MontyHallChoice(1); !errors.Is(err, ErrNotInMontyHall) {
		t.Fatalf("want ErrNotInMontyHall, got %v", err)
	}

	armMonty(g, 1)
	if _, _, err := g.MontyHallChoice(4); !errors.Is(err, ErrBadChoice) {
		t.Fatalf("want ErrBadChoice for door 4, got %v", err)
	}
	if _, err := g.MontyHallSwitch(true); !errors.Is(err, ErrBadChoice) {
		t.Fatalf("switch before a door pick: want ErrBadChoice, got %v", err)
	}
}

func TestMontyHallSwitchOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		change  bool
		wantPos int
		wantWin bool
	}{
		// Prize behind 1, picked 1, host opened 3. Staying wins, switching
		// lands on 2 and loses.
		{name: "stay and win", change: false, wantPos: 10 + montyRewardSteps, wantWin: true},
		{name: "switch and lose", change: true, wantPos: 10 - montyPenaltySteps},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(2, 7)
			p := armMonty(g, 1)
			p.Position = 10
			p.monty.PlayerChoice = 1
			p.monty.OpenedDoor = 3

			msg, err := g.MontyHallSwitch(tc.change)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tc.wantWin != strings.Contains(msg, "won the prize") {
				t.Fatalf("outcome mismatch: %q", msg)
			}
			if p.Position != tc.wantPos {
				t.Fatalf("want position %d, got %d", tc.wantPos, p.Position)
			}
			if p.IsInMontyHall {
				t.Fatalf("challenge should be cleared")
			}
			if g.CurrentPlayerIndex != 1 {
				t.Fatalf("turn should advance after the challenge resolves")
			}
		})
	}
}

func TestMontyHallWinCanReachGoal(t *testing.T) {
	g := newTestGame(2, 7)
	p := armMonty(g, 1)
	p.Position = 36 // 36+5 clamps to 39
	p.monty.PlayerChoice = 1
	p.monty.OpenedDoor = 2

	if _, err := g.MontyHallSwitch(false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !g.IsOver || g.Winner != "Player 1" {
		t.Fatalf("winning move onto the goal should end the game")
	}
}

func TestSelectDiceAssignsCatalogDie(t *testing.T) {
	g := newTestGame(2, 7)
	p := g.CurrentPlayer()
	p.NeedsDiceSelection = true

	mysteryIndex := len(PredefinedDiceOptions) // first mystery die
	msg, err := g.SelectDice(mysteryIndex)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(msg, AllDiceOptions()[mysteryIndex].Name) {
		t.Fatalf("message should name the die: %q", msg)
	}
	if p.Dice == nil {
		t.Fatalf("player should carry the chosen die")
	}
	want := MysteryDiceOptions[0].Probabilities
	for face, prob := range want {
		if p.Dice.Probabilities[face] != prob {
			t.Fatalf("face %d: want %v, got %v", face, prob, p.Dice.Probabilities[face])
		}
	}
	if p.NeedsDiceSelection {
		t.Fatalf("selection flag should clear")
	}
	if g.CurrentPlayerIndex != 1 {
		t.Fatalf("turn should advance after the selection")
	}
}

func TestSelectDiceValidation(t *testing.T) {
	g := newTestGame(2, 7)

	if _, err := g.SelectDice(0); !errors.Is(err, ErrNoDiceSelection) {
		t.Fatalf("want ErrNoDiceSelection, got %v", err)
	}

	g.CurrentPlayer().NeedsDiceSelection = true
	if _, err := g.SelectDice(len(AllDiceOptions())); !errors.Is(err, ErrBadChoice) {
		t.Fatalf("want ErrBadChoice, got %v", err)
	}
}

func TestSpinSlotRunsEveryPlayerThenAdvances(t *testing.T) {
	g := newTestGame(2, 7)
	g.DefaultDice = fixedDice(1)
	g.Players[0].Position = 2
	if _, err := g.Roll(); err != nil { // lands on 3, the slot cell
		t.Fatalf("unexpected err: %v", err)
	}
	if !g.IsSlotEventActive {
		t.Fatalf("slot event should be active")
	}
	if next := g.Snapshot().SlotNextPlayerIndex; next == nil || *next != 0 {
		t.Fatalf("snapshot should announce the lander as the first spinner, got %v", next)
	}

	// Lander spins first, then the other player.
	msg, err := g.SpinSlot(0)
	if err != nil {
		t.Fatalf("first spin: %v", err)
	}
	if !strings.Contains(msg, "Player 1") {
		t.Fatalf("first spin should be the lander's: %q", msg)
	}
	if !g.IsSlotEventActive {
		t.Fatalf("event should stay active until everyone has spun")
	}
	if next := g.Snapshot().SlotNextPlayerIndex; next == nil || *next != 1 {
		t.Fatalf("snapshot should announce the second spinner, got %v", next)
	}

	msg, err = g.SpinSlot(2)
	if err != nil {
		t.Fatalf("second spin: %v", err)
	}
	if !strings.Contains(msg, "Player 2") || !strings.Contains(msg, "Everyone has spun") {
		t.Fatalf("last spin should carry the summary: %q", msg)
	}
	if g.IsSlotEventActive {
		t.Fatalf("event should deactivate after the last spin")
	}
	if g.Snapshot().SlotNextPlayerIndex != nil {
		t.Fatalf("no spinner announcement once the event is done")
	}
	if g.CurrentPlayerIndex != 1 {
		t.Fatalf("turn should advance once the event resolves")
	}
	for _, p := range g.Players {
		if p.Position < 0 || p.Position >= BoardSize {
			t.Fatalf("slot movement must stay on the loop: %d", p.Position)
		}
	}
	if g.IsOver {
		t.Fatalf("slot movement never ends the game")
	}
}

func TestSpinSlotValidation(t *testing.T) {
	g := newTestGame(2, 7)

	if _, err := g.SpinSlot(0); !errors.Is(err, ErrSlotInactive) {
		t.Fatalf("want ErrSlotInactive, got %v", err)
	}

	g.DefaultDice = fixedDice(1)
	g.Players[0].Position = 2
	if _, err := g.Roll(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := g.SpinSlot(len(SlotReels)); !errors.Is(err, ErrBadChoice) {
		t.Fatalf("want ErrBadChoice, got %v", err)
	}
}

func TestSetCustomDiceReplacesDefault(t *testing.T) {
	g := newTestGame(2, 7)

	if _, err := g.SetCustomDice(map[int]float64{1: 0.5, 2: 0.56}); !errors.Is(err, ErrBadProbabilities) {
		t.Fatalf("want ErrBadProbabilities, got %v", err)
	}

	msg, err := g.SetCustomDice(map[int]float64{3: 1.0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg == "" {
		t.Fatalf("expected a confirmation message")
	}
	if probs := g.DiceProbabilities(); probs["3"] != 1.0 || len(probs) != 1 {
		t.Fatalf("default die should be replaced, got %v", probs)
	}
}

func TestDiceModifierAppliesForOneRoll(t *testing.T) {
	g := NewGame(1, nil, 0, rand.New(rand.NewSource(7)))
	p := g.CurrentPlayer()
	p.modifier = &diceModifier{probabilities: map[int]float64{2: 1.0}, duration: 1}

	if probs := g.DiceProbabilities(); probs["2"] != 1.0 {
		t.Fatalf("preview should show the modified distribution, got %v", probs)
	}
	if p.modifier == nil {
		t.Fatalf("preview must not consume the modifier")
	}

	if _, err := g.Roll(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Position != 2 {
		t.Fatalf("modified roll should move exactly 2, got %d", p.Position)
	}
	if p.modifier != nil {
		t.Fatalf("one-shot modifier should be consumed by the roll")
	}
}
