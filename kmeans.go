package clusters

import (
	"fmt"
	"time"
)

// KMeans partitions respondent profiles with Lloyd's algorithm: points are
// assigned to their nearest centroid under the aggregate Euclidean distance,
// centroids are recomputed from their members, and the two steps repeat
// until neither assignments nor centroids change or the iteration cap is
// reached. Hitting the cap is not an error; the partition at that point is
// returned as-is.
//
// A KMeans value is cheap and holds no state between fits, but owns its
// random generator, so one value must not run concurrent fits.
type KMeans struct {
	opts options
}

// NewKMeans creates a KMeans partitioner.
func NewKMeans(opts ...Option) *KMeans {
	return &KMeans{opts: newOptions(opts...)}
}

// Fit partitions data into k clusters, starting from k distinct points
// drawn uniformly at random.
func (km *KMeans) Fit(data []Vector, k, maxIters int, specs []FeatureSpec) ([]*Cluster, error) {
	start := time.Now()
	result, iters, err := km.fit(data, k, maxIters, specs)
	km.opts.metrics.RecordFit("kmeans", k, iters, time.Since(start), err)
	km.opts.logger.LogFit("kmeans", k, iters, err)
	return result, err
}

func (km *KMeans) fit(data []Vector, k, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	if err := validateFitArgs(data, k, specs); err != nil {
		return nil, 0, err
	}
	if maxIters < 1 {
		return nil, 0, ErrZeroIterations
	}

	perm := km.opts.rng.Perm(len(data))
	initial := make([]Vector, k)
	for i := 0; i < k; i++ {
		initial[i] = data[perm[i]]
	}

	return km.refine(data, initial, maxIters, specs)
}

// FitWithInitialCentroids partitions data starting from the caller-supplied
// centroids, whose count determines k. Used by the probabilistic seeder and
// by callers who want reproducible starting conditions.
func (km *KMeans) FitWithInitialCentroids(data []Vector, initialCentroids []Vector, maxIters int, specs []FeatureSpec) ([]*Cluster, error) {
	start := time.Now()
	result, iters, err := km.fitWithInitialCentroids(data, initialCentroids, maxIters, specs)
	km.opts.metrics.RecordFit("kmeans", len(initialCentroids), iters, time.Since(start), err)
	km.opts.logger.LogFit("kmeans", len(initialCentroids), iters, err)
	return result, err
}

func (km *KMeans) fitWithInitialCentroids(data []Vector, initialCentroids []Vector, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	if len(initialCentroids) == 0 {
		return nil, 0, ErrNoInitialCentroids
	}
	if err := validateFitArgs(data, len(initialCentroids), specs); err != nil {
		return nil, 0, err
	}
	if maxIters < 1 {
		return nil, 0, ErrZeroIterations
	}
	for _, c := range initialCentroids {
		if len(c) != len(specs) {
			return nil, 0, &ErrDimensionMismatch{Expected: len(specs), Actual: len(c)}
		}
	}

	return km.refine(data, initialCentroids, maxIters, specs)
}

// refine runs the assignment/update loop. Inputs are validated.
func (km *KMeans) refine(data []Vector, initial []Vector, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	result := make([]*Cluster, len(initial))
	for i := range initial {
		c, err := NewCluster(initial[i])
		if err != nil {
			return nil, 0, err
		}
		result[i] = c
	}

	assignment := make([]int, len(data))
	for i := range assignment {
		assignment[i] = -1
	}

	iters := 0
	for iter := 0; iter < maxIters; iter++ {
		iters = iter + 1

		assignmentsChanged := false
		for _, c := range result {
			c.ClearMembers()
		}
		for i, point := range data {
			nearest, err := km.nearestCluster(point, result, specs)
			if err != nil {
				return nil, iters, err
			}
			if assignment[i] != nearest {
				assignment[i] = nearest
				assignmentsChanged = true
			}
			result[nearest].AddMember(point)
		}

		centroidsChanged := false
		for _, c := range result {
			changed, err := c.RecomputeCentroid(specs)
			if err != nil {
				return nil, iters, err
			}
			centroidsChanged = centroidsChanged || changed
		}

		km.opts.logger.Debug("kmeans iteration",
			"iteration", iter,
			"assignments_changed", assignmentsChanged,
			"centroids_changed", centroidsChanged,
		)

		if !assignmentsChanged && !centroidsChanged {
			break
		}
	}

	return result, iters, nil
}

// nearestCluster returns the index of the cluster whose centroid is closest
// to point. Ties resolve to the lowest cluster index.
func (km *KMeans) nearestCluster(point Vector, result []*Cluster, specs []FeatureSpec) (int, error) {
	nearest := 0
	best, err := Distance(point, result[0].centroid, specs)
	if err != nil {
		return 0, err
	}
	for j := 1; j < len(result); j++ {
		d, err := Distance(point, result[j].centroid, specs)
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

// validateFitArgs runs the shared eager precondition checks of the three
// partitioning algorithms.
func validateFitArgs(data []Vector, k int, specs []FeatureSpec) error {
	if len(data) == 0 {
		return ErrEmptyDataset
	}
	if err := validateSpecs(specs); err != nil {
		return err
	}
	if k <= 0 || k > len(data) {
		return fmt.Errorf("%w: k=%d with %d points", ErrInvalidK, k, len(data))
	}
	for _, v := range data {
		if v == nil {
			return ErrNilVector
		}
		if len(v) != len(specs) {
			return &ErrDimensionMismatch{Expected: len(specs), Actual: len(v)}
		}
	}
	return nil
}
