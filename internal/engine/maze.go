package engine

import (
	"fmt"
	"math/rand"
)

type MazeOption struct {
	Description string
	Probability float64
}

type mazeStage struct {
	Node    string
	Choices []MazeOption
}

// Two stages deep: clear both and you are out.
var mazeStages = []mazeStage{
	{
		Node: "entrance",
		Choices: []MazeOption{
			{Description: "Take the well-trodden path", Probability: 0.8},
			{Description: "Cut through the hedge", Probability: 0.45},
		},
	},
	{
		Node: "fork",
		Choices: []MazeOption{
			{Description: "Follow the left wall", Probability: 0.7},
			{Description: "Dash straight across", Probability: 0.5},
			{Description: "Climb up for a better view", Probability: 0.35},
		},
	},
}

const (
	mazeRewardSteps  = 6
	mazePenaltySteps = 4
)

type Maze struct {
	Finished     bool
	Success      bool
	RewardSteps  int
	PenaltySteps int
	stage        int
}

func NewMaze() *Maze {
	return &Maze{RewardSteps: mazeRewardSteps, PenaltySteps: mazePenaltySteps}
}

func (m *Maze) CurrentNode() string {
	if m.stage >= len(mazeStages) {
		return "exit"
	}
	return mazeStages[m.stage].Node
}

func (m *Maze) Choices() []MazeOption {
	if m.Finished || m.stage >= len(mazeStages) {
		return nil
	}
	return mazeStages[m.stage].Choices
}

// MakeChoice resolves one path. Failure ends the maze immediately; clearing
// the last stage ends it successfully.
func (m *Maze) MakeChoice(rng *rand.Rand, index int) (string, error) {
	if m.Finished || m.stage >= len(mazeStages) {
		return "", ErrBadChoice
	}
	choices := mazeStages[m.stage].Choices
	if index < 0 || index >= len(choices) {
		return "", ErrBadChoice
	}
	choice := choices[index]
	if rng.Float64() <= choice.Probability {
		m.stage++
		if m.stage >= len(mazeStages) {
			m.Finished = true
			m.Success = true
			return "The path opens up. That was the way out!", nil
		}
		return fmt.Sprintf("It worked. You reach the %s.", m.CurrentNode()), nil
	}
	m.Finished = true
	return "Dead end. The walls close in behind you.", nil
}
