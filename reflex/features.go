package reflex

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Feature identifies one numeric signal extracted from a candidate move.
type Feature int

const (
	SuccessorScore Feature = iota
	DistanceToFood
	EnemyDistance
	ReturnPriority
	OnDefense
	NumInvaders
	InvaderDistance
	Stop
	Reverse
	CapsuleProximity
	numFeatures
)

var featureNames = [numFeatures]string{
	SuccessorScore:   "successor_score",
	DistanceToFood:   "distance_to_food",
	EnemyDistance:    "enemy_distance",
	ReturnPriority:   "return_priority",
	OnDefense:        "on_defense",
	NumInvaders:      "num_invaders",
	InvaderDistance:  "invader_distance",
	Stop:             "stop",
	Reverse:          "reverse",
	CapsuleProximity: "capsule_proximity",
}

func (f Feature) String() string {
	if f >= 0 && f < numFeatures {
		return featureNames[f]
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// Features is a sparse feature vector. Missing entries count as zero.
type Features map[Feature]float64

func (fs Features) String() string {
	parts := make([]string, 0, len(fs))
	keys := maps.Keys(fs)
	slices.Sort(keys)
	for _, f := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", f, fs[f]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Weights is an immutable weight table over a declared feature set.
type Weights struct {
	declared [numFeatures]bool
	values   [numFeatures]float64
}

// NewWeights builds a weight table. Every declared feature needs a weight
// and every weight must name a declared feature.
func NewWeights(declared []Feature, values map[Feature]float64) (Weights, error) {
	var w Weights
	for _, f := range declared {
		if f < 0 || f >= numFeatures {
			return Weights{}, fmt.Errorf("%w: %s is not a feature", ErrWeightMismatch, f)
		}
		w.declared[f] = true
	}
	for f, v := range values {
		if f < 0 || f >= numFeatures || !w.declared[f] {
			return Weights{}, fmt.Errorf("%w: weight for undeclared %s", ErrWeightMismatch, f)
		}
		w.values[f] = v
	}
	for _, f := range declared {
		if _, ok := values[f]; !ok {
			return Weights{}, fmt.Errorf("%w: no weight for %s", ErrWeightMismatch, f)
		}
	}
	return w, nil
}

func mustWeights(declared []Feature, values map[Feature]float64) Weights {
	w, err := NewWeights(declared, values)
	if err != nil {
		panic(err)
	}
	return w
}

// Weight returns the weight of f, zero if f is not declared.
func (w Weights) Weight(f Feature) float64 {
	if f < 0 || f >= numFeatures {
		return 0
	}
	return w.values[f]
}

// Declares reports whether f belongs to the table's feature set.
func (w Weights) Declares(f Feature) bool {
	return f >= 0 && f < numFeatures && w.declared[f]
}

// Dot scores fs against w. Terms are summed in feature order so equal
// vectors always produce bit-identical scores.
func (w Weights) Dot(fs Features) (float64, error) {
	for f := range fs {
		if !w.Declares(f) {
			return 0, fmt.Errorf("%w: %s", ErrUnknownFeature, f)
		}
	}
	score := 0.0
	for f := Feature(0); f < numFeatures; f++ {
		if v, ok := fs[f]; ok {
			score += v * w.values[f]
		}
	}
	return score, nil
}
