package clusters

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when a fit is attempted on no data.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNilVector is returned when a required vector is nil.
	ErrNilVector = errors.New("vector must not be nil")

	// ErrNilSpecs is returned when the feature spec slice is nil.
	ErrNilSpecs = errors.New("feature specs must not be nil")

	// ErrInvalidK is returned when k is not in [1, dataset size].
	ErrInvalidK = errors.New("k must be positive and at most the dataset size")

	// ErrZeroIterations is returned when the iteration cap is not positive.
	ErrZeroIterations = errors.New("number of iterations must be positive")

	// ErrEmptyCentroid is returned when a cluster is built from an empty centroid.
	ErrEmptyCentroid = errors.New("centroid must not be empty")

	// ErrNoInitialCentroids is returned when refinement is started without
	// any initial centroids.
	ErrNoInitialCentroids = errors.New("initial centroids must not be empty")

	// ErrNoInitialMedoids is returned when PAM is started without any
	// initial medoid indices.
	ErrNoInitialMedoids = errors.New("initial medoids must not be empty")

	// ErrMedoidOutOfRange is returned when an initial medoid index does not
	// point into the dataset.
	ErrMedoidOutOfRange = errors.New("medoid index out of range")

	// ErrEmptyClusterList is returned when an evaluator receives no clusters.
	ErrEmptyClusterList = errors.New("cluster list must not be empty")
)

// ErrDimensionMismatch indicates a vector/spec dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidSpec indicates contradictory or missing per-dimension metadata,
// such as a numeric range with max <= min or an ordinal dimension without
// modalities.
type ErrInvalidSpec struct {
	Index  int
	Reason string
}

func (e *ErrInvalidSpec) Error() string {
	return fmt.Sprintf("invalid spec at dimension %d: %s", e.Index, e.Reason)
}
