package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/sugolab/probwalk/internal/ui"
	"github.com/sugolab/probwalk/pkg/types"
)

// Gateway is the slice of the server API the event protocols need.
// *gateway.Client satisfies it; tests supply fakes.
type Gateway interface {
	MontyHallChoice(ctx context.Context, door int) (types.MontyHallResponse, error)
	MontyHallSwitch(ctx context.Context, switchDoor bool) (string, error)
	MazeProgress(ctx context.Context) (types.MazeProgressResponse, error)
	SubmitMazeChoice(ctx context.Context, choiceIndex int) (string, error)
	DiceOptions(ctx context.Context) ([]types.DiceOption, error)
	SelectDice(ctx context.Context, index int) (string, error)
	SlotOptions(ctx context.Context) ([]types.SlotOption, error)
	SpinSlot(ctx context.Context, index int) (string, error)
}

// MontyStage tracks the two-step door protocol. Once a door is submitted
// the machine can only move forward; it never returns to the door choice.
type MontyStage string

const (
	StageAwaitingDoorChoice     MontyStage = "awaiting_door_choice"
	StageAwaitingSwitchDecision MontyStage = "awaiting_switch_decision"
	StageResolved               MontyStage = "resolved"
)

type Runner struct {
	gw   Gateway
	ui   ui.Prompter
	sink ui.Sink
	log  *zap.Logger
}

func NewRunner(gw Gateway, prompter ui.Prompter, sink ui.Sink, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{gw: gw, ui: prompter, sink: sink, log: log}
}

// Resolve runs one round of the pending event's protocol. Multi-round
// events (a deeper maze stage, remaining slot spins) keep their server-side
// flag set and come back through Detect on the next snapshot. Any error
// aborts the round; nothing is retried here.
func (r *Runner) Resolve(ctx context.Context, ev PendingEvent) error {
	r.log.Debug("resolving event", zap.String("kind", string(ev.Kind)))
	switch ev.Kind {
	case KindMontyHall:
		return r.runMontyHall(ctx, ev)
	case KindMaze:
		return r.runMaze(ctx)
	case KindDiceSelection:
		return r.runDiceSelection(ctx)
	case KindSlot:
		return r.runSlot(ctx, ev)
	}
	return nil
}

func (r *Runner) runMontyHall(ctx context.Context, ev PendingEvent) error {
	stage := StageAwaitingDoorChoice
	openedDoor := 0
	for stage != StageResolved {
		switch stage {
		case StageAwaitingDoorChoice:
			door, err := r.ui.ChooseDoor(ctx, ev.Player.Name)
			if err != nil {
				return err
			}
			resp, err := r.gw.MontyHallChoice(ctx, door)
			if err != nil {
				return err
			}
			r.sink.Message(resp.Message)
			// The switch offer is signaled structurally: opened_door is
			// only present when the host opened a door.
			if resp.OpenedDoor != nil {
				openedDoor = *resp.OpenedDoor
				stage = StageAwaitingSwitchDecision
			} else {
				stage = StageResolved
			}
		case StageAwaitingSwitchDecision:
			switchDoor, err := r.ui.ChooseSwitch(ctx, openedDoor)
			if err != nil {
				return err
			}
			msg, err := r.gw.MontyHallSwitch(ctx, switchDoor)
			if err != nil {
				return err
			}
			r.sink.Message(msg)
			stage = StageResolved
		}
	}
	return nil
}

func (r *Runner) runMaze(ctx context.Context) error {
	progress, err := r.gw.MazeProgress(ctx)
	if err != nil {
		return err
	}
	choice, err := r.ui.ChooseMazePath(ctx, progress.Message, progress.Choices)
	if err != nil {
		return err
	}
	msg, err := r.gw.SubmitMazeChoice(ctx, choice)
	if err != nil {
		return err
	}
	r.sink.Message(msg)
	return nil
}

func (r *Runner) runDiceSelection(ctx context.Context) error {
	options, err := r.gw.DiceOptions(ctx)
	if err != nil {
		return err
	}
	index, err := r.ui.ChooseDie(ctx, options)
	if err != nil {
		return err
	}
	msg, err := r.gw.SelectDice(ctx, index)
	if err != nil {
		return err
	}
	r.sink.Message(msg)
	return nil
}

func (r *Runner) runSlot(ctx context.Context, ev PendingEvent) error {
	options, err := r.gw.SlotOptions(ctx)
	if err != nil {
		return err
	}
	index, err := r.ui.ChooseSlot(ctx, ev.Player.Name, options)
	if err != nil {
		return err
	}
	msg, err := r.gw.SpinSlot(ctx, index)
	if err != nil {
		return err
	}
	r.sink.Message(msg)
	return nil
}
