package clusters

import (
	"math"
)

// SilhouetteScore returns the mean Silhouette coefficient of a finished
// partition: for every point, s = (b-a)/max(a,b), where a is the mean
// aggregate Euclidean distance to the other members of the point's own
// cluster and b the smallest mean distance to the members of any other
// cluster. Scores lie in [-1, 1]; higher means tighter, better separated
// clusters.
//
// A single-cluster partition has no defined Silhouette and scores 0.0.
// Points alone in their cluster, and points with max(a,b) = 0, contribute 0.
func SilhouetteScore(result []*Cluster, specs []FeatureSpec) (float64, error) {
	if err := validateEvalArgs(result, specs); err != nil {
		return 0, err
	}
	if len(result) == 1 {
		return 0, nil
	}

	var sum float64
	var n int
	for ci, c := range result {
		for mi := range c.members {
			s, err := silhouette(result, ci, mi, specs)
			if err != nil {
				return 0, err
			}
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}

	return sum / float64(n), nil
}

// SilhouettePerCluster returns the mean Silhouette coefficient of each
// cluster, in cluster order. Empty clusters score 0.0.
func SilhouettePerCluster(result []*Cluster, specs []FeatureSpec) ([]float64, error) {
	if err := validateEvalArgs(result, specs); err != nil {
		return nil, err
	}

	scores := make([]float64, len(result))
	if len(result) == 1 {
		return scores, nil
	}

	for ci, c := range result {
		if len(c.members) == 0 {
			continue
		}
		var sum float64
		for mi := range c.members {
			s, err := silhouette(result, ci, mi, specs)
			if err != nil {
				return nil, err
			}
			sum += s
		}
		scores[ci] = sum / float64(len(c.members))
	}

	return scores, nil
}

// silhouette computes s(i) for member mi of cluster ci.
func silhouette(result []*Cluster, ci, mi int, specs []FeatureSpec) (float64, error) {
	own := result[ci]
	point := own.members[mi]

	// a(i) is undefined for a cluster of one; such points score 0.
	if len(own.members) < 2 {
		return 0, nil
	}

	var a float64
	for j, other := range own.members {
		if j == mi {
			continue
		}
		d, err := Distance(point, other, specs)
		if err != nil {
			return 0, err
		}
		a += d
	}
	a /= float64(len(own.members) - 1)

	b := math.NaN()
	for cj, c := range result {
		if cj == ci || len(c.members) == 0 {
			continue
		}
		var mean float64
		for _, other := range c.members {
			d, err := Distance(point, other, specs)
			if err != nil {
				return 0, err
			}
			mean += d
		}
		mean /= float64(len(c.members))
		if math.IsNaN(b) || mean < b {
			b = mean
		}
	}
	if math.IsNaN(b) {
		// Every other cluster is empty; separation is undefined.
		return 0, nil
	}

	if m := math.Max(a, b); m > 0 {
		return (b - a) / m, nil
	}
	return 0, nil
}

// validateEvalArgs runs the eager precondition checks of the evaluator.
func validateEvalArgs(result []*Cluster, specs []FeatureSpec) error {
	if len(result) == 0 {
		return ErrEmptyClusterList
	}
	if err := validateSpecs(specs); err != nil {
		return err
	}
	for _, c := range result {
		if c == nil {
			return ErrEmptyClusterList
		}
		if c.Dimension() != len(specs) {
			return &ErrDimensionMismatch{Expected: len(specs), Actual: c.Dimension()}
		}
	}
	return nil
}
