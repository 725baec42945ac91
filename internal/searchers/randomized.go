package searchers

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/gamesearch/internal/games"
	"k8s.io/klog/v2"
)

// NewRandomized adds randomness to the action taken by an existing Searcher.
// Args:
//
//   - searcher: Baseline Searcher. It must return the actionsScores, otherwise its choice is kept.
//   - randomness (>=0): Amount of randomness to use: it is applied as a divisor to the scores
//     returned by the Searcher. The larger the value the more it leads to randomness (exploration),
//     and lower values lead to "pick the best scoring move" (exploitation), with zero meaning no
//     randomness.
//   - rng: source of randomness. If nil, a randomly seeded one is created.
func NewRandomized[S any, A comparable](searcher Searcher[S, A], randomness float64, rng *rand.Rand) Searcher[S, A] {
	if randomness <= 0 {
		// Without randomness, simply return the original Searcher.
		return searcher
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &randomizedSearcher[S, A]{searcher: searcher, randomness: randomness, rng: rng}
}

// randomizedSearcher is a meta Searcher, that samples the action from the scores of its base Searcher.
type randomizedSearcher[S any, A comparable] struct {
	searcher   Searcher[S, A]
	randomness float64
	rng        *rand.Rand
}

// Search implements the Searcher interface.
func (rs *randomizedSearcher[S, A]) Search(game games.Game[S, A], state S) (chosenAction A, score float64, actionsScores []float64, err error) {
	chosenAction, score, actionsScores, err = rs.searcher.Search(game, state)
	if err != nil || len(actionsScores) <= 1 {
		return
	}
	actions := game.Actions(state)
	if len(actionsScores) != len(actions) {
		exceptions.Panicf("randomizedSearcher: Searcher returned %d actionsScores, but state has %d actions!?", len(actionsScores), len(actions))
	}

	// Calculate probability for each action.
	logits := make([]float64, len(actionsScores))
	for ii, score := range actionsScores {
		logits[ii] = score / rs.randomness
	}
	probabilities := softmax(logits)

	// Select from probabilities.
	chance := rs.rng.Float64()
	for actionIdx, value := range probabilities {
		if chance > value && actionIdx < len(probabilities)-1 {
			chance -= value
			continue
		}
		if klog.V(2).Enabled() {
			klog.Infof("randomizedSearcher selection: action=%v, score=%g", actions[actionIdx], actionsScores[actionIdx])
		}
		return actions[actionIdx], actionsScores[actionIdx], actionsScores, nil
	}
	// It should not reach here.
	exceptions.Panicf("Nothing selected!? remaining chance=%f, probabilities=%v", chance, probabilities)
	return
}

func softmax(values []float64) (probs []float64) {
	probs = make([]float64, len(values))
	var sum float64

	// Subtract maxValue from all values keep the probability the same, but makes for more numerically stable
	// values.
	maxValue := slices.Max(values)
	for ii, value := range values {
		probs[ii] = math.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
