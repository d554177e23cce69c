package clusters

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansPPInitCentroidsSpreads(t *testing.T) {
	// Three identical points at 0 and one at 10: whichever point is drawn
	// first, the whole roulette mass sits on the opposite group, so the two
	// seeds always land on both groups.
	data := []Vector{numVec("0"), numVec("0"), numVec("0"), numVec("10")}
	specs := []FeatureSpec{Numeric(0, 10)}

	for _, seed := range []int64{1, 2, 3, 42, 4711} {
		pp := NewKMeansPP(WithSeed(seed))
		centroids, err := pp.InitCentroids(data, 2, specs)
		require.NoError(t, err)
		require.Len(t, centroids, 2)

		got := []string{centroids[0][0].StringValue(), centroids[1][0].StringValue()}
		sort.Strings(got)
		assert.Equal(t, []string{"0", "10"}, got)
	}
}

func TestKMeansPPInitCentroidsCopies(t *testing.T) {
	data := []Vector{numVec("0"), numVec("10")}
	specs := []FeatureSpec{Numeric(0, 10)}

	pp := NewKMeansPP(WithSeed(1))
	centroids, err := pp.InitCentroids(data, 2, specs)
	require.NoError(t, err)

	centroids[0][0] = String("mutated")
	assert.Equal(t, "0", data[0][0].StringValue())
	assert.Equal(t, "10", data[1][0].StringValue())
}

func TestKMeansPPFitTwoGroups(t *testing.T) {
	data, specs := twoGroupData()

	for _, seed := range []int64{1, 5, 23} {
		pp := NewKMeansPP(WithSeed(seed))
		result, err := pp.Fit(data, 2, 100, specs)
		require.NoError(t, err)
		require.Len(t, result, 2)

		assert.Equal(t, []string{"1", "10", "11", "12", "2", "3"}, flatten(t, result))

		groups := [][]string{memberSet(t, result[0]), memberSet(t, result[1])}
		sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
		assert.Equal(t, []string{"1", "2", "3"}, groups[0])
		assert.Equal(t, []string{"10", "11", "12"}, groups[1])
	}
}

func TestKMeansPPFitSeedReproducibility(t *testing.T) {
	data, specs := twoGroupData()

	first, err := NewKMeansPP(WithSeed(11)).Fit(data, 3, 100, specs)
	require.NoError(t, err)
	second, err := NewKMeansPP(WithSeed(11)).Fit(data, 3, 100, specs)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Centroid().Equal(second[i].Centroid()))
		assert.Equal(t, memberSet(t, first[i]), memberSet(t, second[i]))
	}
}

func TestKMeansPPPreconditions(t *testing.T) {
	data, specs := twoGroupData()

	tests := []struct {
		name     string
		data     []Vector
		k        int
		maxIters int
		specs    []FeatureSpec
		wantErr  error
	}{
		{"EmptyData", nil, 2, 10, specs, ErrEmptyDataset},
		{"ZeroK", data, 0, 10, specs, ErrInvalidK},
		{"KBeyondData", data, 7, 10, specs, ErrInvalidK},
		{"NilSpecs", data, 2, 10, nil, ErrNilSpecs},
		{"ZeroIterations", data, 2, 0, specs, ErrZeroIterations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewKMeansPP(WithSeed(1)).Fit(tt.data, tt.k, tt.maxIters, tt.specs)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}

	t.Run("InitCentroidsInvalidK", func(t *testing.T) {
		_, err := NewKMeansPP().InitCentroids(data, 0, specs)
		assert.ErrorIs(t, err, ErrInvalidK)
	})
}
