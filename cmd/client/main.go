package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sugolab/probwalk/internal/config"
	"github.com/sugolab/probwalk/internal/dispatch"
	"github.com/sugolab/probwalk/internal/gateway"
	"github.com/sugolab/probwalk/internal/session"
	"github.com/sugolab/probwalk/internal/turn"
	"github.com/sugolab/probwalk/internal/ui"
)

const helpText = `Commands:
  roll    roll the dice (your turn only)
  next    hand control to the next player
  board   draw the board and player positions
  dice    show the current dice distribution
  events  list the board's event cells
  custom p1 p2 p3 p4 p5 p6
          set a custom distribution for faces 1-6 (must sum to 1)
  help    this text
  quit    leave the game`

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadClient(os.Getenv("PROBWALK_CONFIG"))
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	term := ui.NewTerminal(os.Stdin, os.Stdout)
	gw := gateway.New(cfg.ServerURL, cfg.Timeout(), logger)
	sess := session.New()
	runner := dispatch.NewRunner(gw, term, term, logger.Named("dispatch"))
	ctrl := turn.New(gw, sess, runner, term, logger.Named("turn"))

	ctx := context.Background()
	if err := ctrl.StartGame(ctx, cfg.NumPlayers, cfg.Characters); err != nil {
		logger.Fatal("starting game", zap.Error(err))
	}
	term.Message(`Type "help" for commands.`)

	for ctrl.Phase() != turn.PhaseGameOver {
		line, err := term.ReadCommand("> ")
		if err != nil {
			if err != io.EOF {
				logger.Error("reading command", zap.Error(err))
			}
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "roll":
			_ = ctrl.Roll(ctx)
		case "next":
			_ = ctrl.NextTurn(ctx)
		case "board":
			showBoard(ctx, gw, term)
		case "dice":
			if probs, err := gw.DiceProbabilities(ctx); err != nil {
				term.Message(gateway.UserMessage(err))
			} else {
				term.RenderDiceChart(probs)
			}
		case "events":
			showEvents(ctx, gw, term)
		case "custom":
			setCustomDice(ctx, gw, term, fields[1:])
		case "help":
			term.Message(helpText)
		case "quit", "exit":
			return
		default:
			term.Message(`Unknown command. Type "help".`)
		}
	}
}

func showBoard(ctx context.Context, gw *gateway.Client, term *ui.Terminal) {
	snap, err := gw.GameState(ctx)
	if err != nil {
		term.Message(gateway.UserMessage(err))
		return
	}
	positions, err := gw.EventPositions(ctx)
	if err != nil {
		term.Message(gateway.UserMessage(err))
		return
	}
	term.RenderBoard(snap, positions)
}

func showEvents(ctx context.Context, gw *gateway.Client, term *ui.Terminal) {
	events, err := gw.EventDescriptions(ctx)
	if err != nil {
		term.Message(gateway.UserMessage(err))
		return
	}
	for _, ev := range events {
		term.Message(fmt.Sprintf("%s: %s", ev.Name, ev.Description))
	}
}

func setCustomDice(ctx context.Context, gw *gateway.Client, term *ui.Terminal, args []string) {
	if len(args) != 6 {
		term.Message("custom needs exactly 6 probabilities, faces 1 through 6")
		return
	}
	probs := make(map[string]float64, 6)
	for i, arg := range args {
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			term.Message(fmt.Sprintf("%q is not a number", arg))
			return
		}
		probs[strconv.Itoa(i+1)] = p
	}
	msg, err := gw.SetCustomDice(ctx, probs)
	if err != nil {
		term.Message(gateway.UserMessage(err))
		return
	}
	term.Message(msg)
}
