package clusters

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMedoidsFitTwoGroups(t *testing.T) {
	data, specs := twoGroupData()
	inputs := map[string]bool{}
	for _, v := range data {
		inputs[v[0].StringValue()] = true
	}

	for _, seed := range []int64{1, 2, 3, 42, 4711} {
		kw := NewKMedoids(WithSeed(seed))
		result, err := kw.Fit(data, 2, 0, specs)
		require.NoError(t, err)
		require.Len(t, result, 2)

		// Medoid centroids are always real input points.
		for _, c := range result {
			assert.True(t, inputs[c.Centroid()[0].StringValue()])
		}

		assert.Equal(t, []string{"1", "10", "11", "12", "2", "3"}, flatten(t, result))

		groups := [][]string{memberSet(t, result[0]), memberSet(t, result[1])}
		sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
		assert.Equal(t, []string{"1", "2", "3"}, groups[0])
		assert.Equal(t, []string{"10", "11", "12"}, groups[1])
	}
}

func TestKMedoidsFitWithInitialMedoids(t *testing.T) {
	data, specs := twoGroupData()

	kw := NewKMedoids()
	result, err := kw.FitWithInitialMedoids(data, []int{0, 5}, 100, specs)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, []string{"1", "2", "3"}, memberSet(t, result[0]))
	assert.Equal(t, []string{"10", "11", "12"}, memberSet(t, result[1]))

	// The final medoids are the group centers.
	assert.Equal(t, "2", result[0].Centroid()[0].StringValue())
	assert.Equal(t, "11", result[1].Centroid()[0].StringValue())
}

func TestKMedoidsEmptyClusterKeepsK(t *testing.T) {
	// Identical points: ties always resolve to the first medoid, leaving
	// the second cluster empty. It must survive with k clusters returned.
	data := []Vector{numVec("5"), numVec("5"), numVec("5")}
	specs := []FeatureSpec{Numeric(0, 10)}

	kw := NewKMedoids(WithSeed(3))
	result, err := kw.Fit(data, 2, 50, specs)
	require.NoError(t, err)
	require.Len(t, result, 2)

	sizes := []int{result[0].Size(), result[1].Size()}
	sort.Ints(sizes)
	assert.Equal(t, []int{0, 3}, sizes)

	for _, c := range result {
		assert.Equal(t, "5", c.Centroid()[0].StringValue())
	}
}

func TestKMedoidsSeedReproducibility(t *testing.T) {
	data, specs := twoGroupData()

	first, err := NewKMedoids(WithSeed(17)).Fit(data, 3, 0, specs)
	require.NoError(t, err)
	second, err := NewKMedoids(WithSeed(17)).Fit(data, 3, 0, specs)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Centroid().Equal(second[i].Centroid()))
		assert.Equal(t, memberSet(t, first[i]), memberSet(t, second[i]))
	}
}

func TestKMedoidsPreconditions(t *testing.T) {
	data, specs := twoGroupData()

	tests := []struct {
		name    string
		data    []Vector
		k       int
		specs   []FeatureSpec
		wantErr error
	}{
		{"EmptyData", nil, 2, specs, ErrEmptyDataset},
		{"ZeroK", data, 0, specs, ErrInvalidK},
		{"KBeyondData", data, 7, specs, ErrInvalidK},
		{"NilSpecs", data, 2, nil, ErrNilSpecs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewKMedoids(WithSeed(1)).Fit(tt.data, tt.k, 10, tt.specs)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}

	t.Run("NoInitialMedoids", func(t *testing.T) {
		_, err := NewKMedoids().FitWithInitialMedoids(data, nil, 10, specs)
		assert.ErrorIs(t, err, ErrNoInitialMedoids)
	})

	t.Run("MedoidOutOfRange", func(t *testing.T) {
		_, err := NewKMedoids().FitWithInitialMedoids(data, []int{0, 17}, 10, specs)
		assert.ErrorIs(t, err, ErrMedoidOutOfRange)

		_, err = NewKMedoids().FitWithInitialMedoids(data, []int{-1, 2}, 10, specs)
		assert.ErrorIs(t, err, ErrMedoidOutOfRange)
	})
}
