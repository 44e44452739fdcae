package engine

import "math/rand"

// DiceChoice is one entry in the dice-selection catalog. Hidden options are
// the mystery dice: their distribution is never disclosed to clients.
type DiceChoice struct {
	Name          string
	Description   string
	Probabilities map[int]float64
	Hidden        bool
}

var PredefinedDiceOptions = []DiceChoice{
	{
		Name:        "Standard Die",
		Description: "Every face from 1 to 6 comes up with equal probability.",
		Probabilities: map[int]float64{
			1: 1.0 / 6, 2: 1.0 / 6, 3: 1.0 / 6, 4: 1.0 / 6, 5: 1.0 / 6, 6: 1.0 / 6,
		},
	},
	{
		Name:        "Steady Die",
		Description: "Favors the middle faces. Small steps, few surprises.",
		Probabilities: map[int]float64{
			1: 0.05, 2: 0.25, 3: 0.30, 4: 0.25, 5: 0.10, 6: 0.05,
		},
	},
	{
		Name:        "Gambler's Die",
		Description: "Mostly 1s and 6s. Feast or famine.",
		Probabilities: map[int]float64{
			1: 0.35, 2: 0.05, 3: 0.05, 4: 0.05, 5: 0.10, 6: 0.40,
		},
	},
}

var MysteryDiceOptions = []DiceChoice{
	{
		Name:        "Mystery Die A",
		Description: "Nobody knows how this one lands. Find out the hard way.",
		Probabilities: map[int]float64{
			1: 0.05, 2: 0.05, 3: 0.10, 4: 0.20, 5: 0.30, 6: 0.30,
		},
		Hidden: true,
	},
	{
		Name:        "Mystery Die B",
		Description: "Feels suspiciously light.",
		Probabilities: map[int]float64{
			1: 0.40, 2: 0.30, 3: 0.15, 4: 0.05, 5: 0.05, 6: 0.05,
		},
		Hidden: true,
	},
}

// AllDiceOptions is the catalog in selection-index order: predefined first,
// then mystery. select_dice indices point into this slice.
func AllDiceOptions() []DiceChoice {
	out := make([]DiceChoice, 0, len(PredefinedDiceOptions)+len(MysteryDiceOptions))
	out = append(out, PredefinedDiceOptions...)
	out = append(out, MysteryDiceOptions...)
	return out
}

// SlotOutcome is one possible result of spinning a reel. Steps may be
// negative.
type SlotOutcome struct {
	Label       string
	Steps       int
	Probability float64
}

type SlotReel struct {
	Name        string
	Description string
	Outcomes    []SlotOutcome
}

var SlotReels = []SlotReel{
	{
		Name:        "Cautious Reel",
		Description: "Small prizes, no losses.",
		Outcomes: []SlotOutcome{
			{Label: "Cherry", Steps: 1, Probability: 0.5},
			{Label: "Double Cherry", Steps: 2, Probability: 0.3},
			{Label: "Blank", Steps: 0, Probability: 0.2},
		},
	},
	{
		Name:        "Standard Reel",
		Description: "Decent odds, can sting.",
		Outcomes: []SlotOutcome{
			{Label: "Bell", Steps: 3, Probability: 0.3},
			{Label: "Cherry", Steps: 1, Probability: 0.3},
			{Label: "Blank", Steps: 0, Probability: 0.2},
			{Label: "Lemon", Steps: -2, Probability: 0.2},
		},
	},
	{
		Name:        "Jackpot Reel",
		Description: "One big prize buried under a lot of regret.",
		Outcomes: []SlotOutcome{
			{Label: "Seven", Steps: 8, Probability: 0.1},
			{Label: "Bell", Steps: 3, Probability: 0.2},
			{Label: "Blank", Steps: 0, Probability: 0.2},
			{Label: "Lemon", Steps: -3, Probability: 0.3},
			{Label: "Skull", Steps: -5, Probability: 0.2},
		},
	},
}

func (r SlotReel) Spin(rng *rand.Rand) SlotOutcome {
	x := rng.Float64()
	cum := 0.0
	for _, out := range r.Outcomes {
		cum += out.Probability
		if x <= cum {
			return out
		}
	}
	return r.Outcomes[len(r.Outcomes)-1]
}
