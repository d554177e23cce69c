// Package util provides test and example helpers for generating synthetic
// respondent datasets.
package util

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/surveygo/clusters"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Rand exposes the underlying generator, e.g. for clusters.WithRand.
func (r *RNG) Rand() *rand.Rand {
	return r.rand
}

var (
	choicePool = []string{"red", "green", "blue", "yellow", "purple"}
	wordPool   = []string{"good", "bad", "fast", "slow", "cheap", "pricey", "service", "support"}
)

// GenerateDataset generates num random respondent profiles that are well
// formed for the given specs: numeric answers inside their range, ordinal
// answers drawn from their modalities, multi-choice answers as
// comma-separated selections.
func (r *RNG) GenerateDataset(specs []clusters.FeatureSpec, num int) []clusters.Vector {
	data := make([]clusters.Vector, num)
	for i := range data {
		v := make(clusters.Vector, len(specs))
		for d, spec := range specs {
			v[d] = r.generateValue(spec)
		}
		data[i] = v
	}

	return data
}

func (r *RNG) generateValue(spec clusters.FeatureSpec) clusters.Value {
	switch s := spec.(type) {
	case clusters.NumericSpec:
		f := s.Min + r.rand.Float64()*(s.Max-s.Min)
		return clusters.String(strconv.FormatFloat(f, 'f', 4, 64))
	case clusters.OrdinalSpec:
		return clusters.String(s.Modalities[r.rand.Intn(len(s.Modalities))])
	case clusters.NominalSingleSpec:
		return clusters.String(choicePool[r.rand.Intn(len(choicePool))])
	case clusters.NominalMultiSpec:
		limit := s.MaxSelections
		if limit <= 0 || limit > len(choicePool) {
			limit = len(choicePool)
		}
		n := 1 + r.rand.Intn(limit)
		picks := make([]string, n)
		for j, idx := range r.rand.Perm(len(choicePool))[:n] {
			picks[j] = choicePool[idx]
		}
		return clusters.String(strings.Join(picks, ","))
	case clusters.FreeTextSpec:
		n := 1 + r.rand.Intn(4)
		words := make([]string, n)
		for j := range words {
			words[j] = wordPool[r.rand.Intn(len(wordPool))]
		}
		return clusters.String(strings.Join(words, " "))
	default:
		return clusters.Null()
	}
}
