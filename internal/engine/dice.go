package engine

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"time"
)

// SumTolerance is how far a dice distribution may drift from summing to 1
// before it is rejected. Shared with the client-side validation.
const SumTolerance = 0.01

// Dice is a weighted die mapping face value to probability. Roll walks the
// cumulative distribution in ascending face order, so a seeded *rand.Rand
// produces reproducible sequences.
type Dice struct {
	Probabilities map[int]float64
}

func NewDice(probs map[int]float64) Dice {
	p := make(map[int]float64, len(probs))
	for face, v := range probs {
		p[face] = v
	}
	return Dice{Probabilities: p}
}

func (d Dice) faces() []int {
	faces := make([]int, 0, len(d.Probabilities))
	for f := range d.Probabilities {
		faces = append(faces, f)
	}
	sort.Ints(faces)
	return faces
}

func (d Dice) Roll(r *rand.Rand) int {
	x := r.Float64()
	faces := d.faces()
	cum := 0.0
	for _, f := range faces {
		cum += d.Probabilities[f]
		if x <= cum {
			return f
		}
	}
	// Rounding slack in the distribution; fall back to the highest face.
	return faces[len(faces)-1]
}

// WireProbabilities renders the table with string face keys, the shape JSON
// object keys force on the contract.
func (d Dice) WireProbabilities() map[string]float64 {
	out := make(map[string]float64, len(d.Probabilities))
	for face, p := range d.Probabilities {
		out[strconv.Itoa(face)] = p
	}
	return out
}

// ValidateProbabilities rejects empty tables and tables whose values do not
// sum to 1 within SumTolerance.
func ValidateProbabilities(probs map[int]float64) error {
	if len(probs) == 0 {
		return ErrBadProbabilities
	}
	sum := 0.0
	for _, p := range probs {
		if p < 0 {
			return ErrBadProbabilities
		}
		sum += p
	}
	if math.Abs(sum-1.0) > SumTolerance {
		return ErrBadProbabilities
	}
	return nil
}

func NewRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
