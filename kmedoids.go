package clusters

import (
	"time"
)

// DefaultMedoidIterations is the iteration cap used by KMedoids when the
// caller passes a non-positive one.
const DefaultMedoidIterations = 100

// KMedoids implements partitioning around medoids (PAM): every cluster's
// representative is a real dataset point, chosen to minimize the summed
// distance to the other members of its cluster. The Manhattan aggregate
// distance is used throughout; it needs no square root and is less
// sensitive to outliers, which matches PAM's design intent.
type KMedoids struct {
	opts options
}

// NewKMedoids creates a PAM partitioner.
func NewKMedoids(opts ...Option) *KMedoids {
	return &KMedoids{opts: newOptions(opts...)}
}

// Fit partitions data into k clusters, starting from k distinct point
// indices drawn uniformly at random. A non-positive maxIters defaults to
// DefaultMedoidIterations.
func (kw *KMedoids) Fit(data []Vector, k, maxIters int, specs []FeatureSpec) ([]*Cluster, error) {
	start := time.Now()
	result, iters, err := kw.fit(data, k, maxIters, specs)
	kw.opts.metrics.RecordFit("kmedoids", k, iters, time.Since(start), err)
	kw.opts.logger.LogFit("kmedoids", k, iters, err)
	return result, err
}

func (kw *KMedoids) fit(data []Vector, k, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	if err := validateFitArgs(data, k, specs); err != nil {
		return nil, 0, err
	}

	perm := kw.opts.rng.Perm(len(data))
	return kw.fitWithInitialMedoids(data, perm[:k], maxIters, specs)
}

// FitWithInitialMedoids partitions data starting from the given medoid
// indices, whose count determines k.
func (kw *KMedoids) FitWithInitialMedoids(data []Vector, initialMedoids []int, maxIters int, specs []FeatureSpec) ([]*Cluster, error) {
	start := time.Now()
	result, iters, err := kw.fitWithInitialMedoidsChecked(data, initialMedoids, maxIters, specs)
	kw.opts.metrics.RecordFit("kmedoids", len(initialMedoids), iters, time.Since(start), err)
	kw.opts.logger.LogFit("kmedoids", len(initialMedoids), iters, err)
	return result, err
}

func (kw *KMedoids) fitWithInitialMedoidsChecked(data []Vector, initialMedoids []int, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	if len(initialMedoids) == 0 {
		return nil, 0, ErrNoInitialMedoids
	}
	if err := validateFitArgs(data, len(initialMedoids), specs); err != nil {
		return nil, 0, err
	}
	for _, idx := range initialMedoids {
		if idx < 0 || idx >= len(data) {
			return nil, 0, ErrMedoidOutOfRange
		}
	}

	return kw.fitWithInitialMedoids(data, initialMedoids, maxIters, specs)
}

// fitWithInitialMedoids runs the PAM loop. Inputs are validated.
func (kw *KMedoids) fitWithInitialMedoids(data []Vector, initialMedoids []int, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	if maxIters <= 0 {
		maxIters = DefaultMedoidIterations
	}

	k := len(initialMedoids)
	medoids := make([]Vector, k)
	for i, idx := range initialMedoids {
		medoids[i] = data[idx].Clone()
	}

	assignment := make([]int, len(data))
	for i := range assignment {
		assignment[i] = -1
	}
	membership := make([][]int, k)

	iters := 0
	for iter := 0; iter < maxIters; iter++ {
		iters = iter + 1

		// Assignment step.
		assignmentsChanged := false
		for j := range membership {
			membership[j] = membership[j][:0]
		}
		for i, point := range data {
			nearest, err := kw.nearestMedoid(point, medoids, specs)
			if err != nil {
				return nil, iters, err
			}
			if assignment[i] != nearest {
				assignment[i] = nearest
				assignmentsChanged = true
			}
			membership[nearest] = append(membership[nearest], i)
		}

		// Update step: the member with the lowest summed distance to its
		// fellow members becomes the medoid. An orphaned cluster gets a
		// random dataset point instead.
		medoidsChanged := false
		for j := range medoids {
			var next Vector
			if len(membership[j]) == 0 {
				next = data[kw.opts.rng.Intn(len(data))]
			} else {
				idx, err := kw.cheapestMember(data, membership[j], specs)
				if err != nil {
					return nil, iters, err
				}
				next = data[idx]
			}
			if !next.Equal(medoids[j]) {
				medoids[j] = next.Clone()
				medoidsChanged = true
			}
		}

		kw.opts.logger.Debug("kmedoids iteration",
			"iteration", iter,
			"assignments_changed", assignmentsChanged,
			"medoids_changed", medoidsChanged,
		)

		if !assignmentsChanged && !medoidsChanged {
			break
		}
	}

	result := make([]*Cluster, k)
	for j := range medoids {
		c, err := NewCluster(medoids[j])
		if err != nil {
			return nil, iters, err
		}
		for _, i := range membership[j] {
			c.AddMember(data[i])
		}
		result[j] = c
	}

	return result, iters, nil
}

// nearestMedoid returns the index of the medoid closest to point under the
// Manhattan aggregate distance. Ties resolve to the lowest medoid index.
func (kw *KMedoids) nearestMedoid(point Vector, medoids []Vector, specs []FeatureSpec) (int, error) {
	nearest := 0
	best, err := DistanceManhattan(point, medoids[0], specs)
	if err != nil {
		return 0, err
	}
	for j := 1; j < len(medoids); j++ {
		d, err := DistanceManhattan(point, medoids[j], specs)
		if err != nil {
			return 0, err
		}
		if d < best {
			best = d
			nearest = j
		}
	}
	return nearest, nil
}

// cheapestMember returns the member index whose summed Manhattan distance to
// all other members is minimal. Ties resolve to the earliest member.
func (kw *KMedoids) cheapestMember(data []Vector, members []int, specs []FeatureSpec) (int, error) {
	bestIdx := -1
	bestCost := 0.0
	for _, candidate := range members {
		var cost float64
		for _, other := range members {
			if other == candidate {
				continue
			}
			d, err := DistanceManhattan(data[candidate], data[other], specs)
			if err != nil {
				return 0, err
			}
			cost += d
		}
		if bestIdx < 0 || cost < bestCost {
			bestIdx = candidate
			bestCost = cost
		}
	}
	return bestIdx, nil
}
