package clusters

import (
	"time"
)

// KMeansPP is KMeans with probability-weighted seeding (k-means++): the
// first centroid is drawn uniformly, every further one by roulette-wheel
// selection proportional to the squared distance to the nearest centroid
// chosen so far. Seeds spread out across the dataset, which statistically
// cuts both the iteration count and the risk of poor local optima compared
// with uniform random seeding.
type KMeansPP struct {
	opts options
}

// NewKMeansPP creates a KMeans partitioner with probability-weighted seeding.
func NewKMeansPP(opts ...Option) *KMeansPP {
	return &KMeansPP{opts: newOptions(opts...)}
}

// Fit seeds k centroids with InitCentroids and refines them with the
// standard assignment/update loop.
func (pp *KMeansPP) Fit(data []Vector, k, maxIters int, specs []FeatureSpec) ([]*Cluster, error) {
	start := time.Now()
	result, iters, err := pp.fit(data, k, maxIters, specs)
	pp.opts.metrics.RecordFit("kmeans++", k, iters, time.Since(start), err)
	pp.opts.logger.LogFit("kmeans++", k, iters, err)
	return result, err
}

func (pp *KMeansPP) fit(data []Vector, k, maxIters int, specs []FeatureSpec) ([]*Cluster, int, error) {
	if maxIters < 1 {
		return nil, 0, ErrZeroIterations
	}

	initial, err := pp.InitCentroids(data, k, specs)
	if err != nil {
		return nil, 0, err
	}

	km := &KMeans{opts: pp.opts}
	return km.fitWithInitialCentroids(data, initial, maxIters, specs)
}

// InitCentroids selects k starting centroids from data. The first is drawn
// uniformly at random; each subsequent one is sampled with probability
// proportional to D(x)², the squared aggregate Euclidean distance of point x
// to its nearest already-chosen centroid.
func (pp *KMeansPP) InitCentroids(data []Vector, k int, specs []FeatureSpec) ([]Vector, error) {
	if err := validateFitArgs(data, k, specs); err != nil {
		return nil, err
	}

	centroids := make([]Vector, 0, k)
	centroids = append(centroids, data[pp.opts.rng.Intn(len(data))].Clone())

	weights := make([]float64, len(data))
	for len(centroids) < k {
		var sum float64
		for i, point := range data {
			nearest, err := Distance(point, centroids[0], specs)
			if err != nil {
				return nil, err
			}
			for _, c := range centroids[1:] {
				d, err := Distance(point, c, specs)
				if err != nil {
					return nil, err
				}
				if d < nearest {
					nearest = d
				}
			}
			weights[i] = nearest * nearest
			sum += weights[i]
		}

		centroids = append(centroids, data[pp.spin(weights, sum)].Clone())
	}

	return centroids, nil
}

// spin runs one roulette-wheel draw over the weights: r is drawn uniformly
// in [0, sum) and the wheel is scanned subtracting weights until r drops to
// or below zero. Rounding overflow clamps to the last point.
func (pp *KMeansPP) spin(weights []float64, sum float64) int {
	r := pp.opts.rng.Float64() * sum
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
