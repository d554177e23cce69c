package clusters

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/surveygo/clusters/internal/text"
)

// Distance returns the Euclidean-style aggregate distance between two
// respondent profiles: the square root of the summed squared per-dimension
// local distances, divided by the dimension count.
//
// Every local distance is normalized to [0, 1] by its spec, so aggregate
// distances stay comparable across datasets of different dimensionality and
// across mixed answer types.
func Distance(a, b Vector, specs []FeatureSpec) (float64, error) {
	locals, err := localDistances(a, b, specs)
	if err != nil {
		return 0, err
	}
	return floats.Norm(locals, 2) / float64(len(specs)), nil
}

// DistanceManhattan returns the Manhattan-style aggregate distance between
// two respondent profiles: the sum of per-dimension local distances, divided
// by the dimension count. It avoids the square root and is less sensitive to
// a single outlying dimension, which is why the medoid partitioner uses it.
func DistanceManhattan(a, b Vector, specs []FeatureSpec) (float64, error) {
	locals, err := localDistances(a, b, specs)
	if err != nil {
		return 0, err
	}
	return floats.Sum(locals) / float64(len(specs)), nil
}

// localDistances computes the per-dimension local distances of a and b.
func localDistances(a, b Vector, specs []FeatureSpec) ([]float64, error) {
	if a == nil || b == nil {
		return nil, ErrNilVector
	}
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	if len(a) != len(b) {
		return nil, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}
	if len(a) != len(specs) {
		return nil, &ErrDimensionMismatch{Expected: len(specs), Actual: len(a)}
	}

	locals := make([]float64, len(specs))
	for i := range specs {
		d, err := localDistance(a[i], b[i], specs[i])
		if err != nil {
			return nil, err
		}
		locals[i] = d
	}

	return locals, nil
}

// localDistance dispatches on the concrete spec type. The switch is
// exhaustive over the closed spec set; a new kind must be handled here and
// in Cluster.RecomputeCentroid.
func localDistance(a, b Value, spec FeatureSpec) (float64, error) {
	switch s := spec.(type) {
	case NumericSpec:
		return numericDistance(a, b, s), nil
	case OrdinalSpec:
		return ordinalDistance(a, b, s), nil
	case NominalSingleSpec:
		return nominalSingleDistance(a, b), nil
	case NominalMultiSpec:
		return nominalMultiDistance(a, b), nil
	case FreeTextSpec:
		return freeTextDistance(a, b), nil
	default:
		return 0, fmt.Errorf("unsupported feature spec %T", spec)
	}
}

// numericDistance is the absolute difference normalized by the spec range.
// Null or unparsable values are maximally distant.
func numericDistance(a, b Value, spec NumericSpec) float64 {
	if a.IsNull() || b.IsNull() {
		return 1
	}
	fa, err := strconv.ParseFloat(a.StringValue(), 64)
	if err != nil {
		return 1
	}
	fb, err := strconv.ParseFloat(b.StringValue(), 64)
	if err != nil {
		return 1
	}
	return math.Abs(fa-fb) / (spec.Max - spec.Min)
}

// ordinalDistance is the position difference on the modality scale. Values
// absent from the modality list are maximally distant. With a scale smaller
// than 2 the raw position difference is returned undivided.
func ordinalDistance(a, b Value, spec OrdinalSpec) float64 {
	if a.IsNull() || b.IsNull() {
		return 1
	}
	pa := slices.Index(spec.Modalities, a.StringValue())
	pb := slices.Index(spec.Modalities, b.StringValue())
	if pa < 0 || pb < 0 {
		return 1
	}
	diff := math.Abs(float64(pa - pb))
	if m := spec.scale(); m >= 2 {
		return diff / float64(m-1)
	}
	return diff
}

func nominalSingleDistance(a, b Value) float64 {
	if a.IsNull() || b.IsNull() {
		return 1
	}
	if a.StringValue() == b.StringValue() {
		return 0
	}
	return 1
}

// nominalMultiDistance is 1 minus the Jaccard index of the two selection
// sets. Two empty selections are identical.
func nominalMultiDistance(a, b Value) float64 {
	if a.IsNull() || b.IsNull() {
		return 1
	}
	sa := splitSelections(a.StringValue())
	sb := splitSelections(b.StringValue())
	if len(sa) == 0 && len(sb) == 0 {
		return 0
	}

	intersection := 0
	for v := range sa {
		if _, ok := sb[v]; ok {
			intersection++
		}
	}
	union := len(sa) + len(sb) - intersection

	return 1 - float64(intersection)/float64(union)
}

// splitSelections parses a comma-separated multi-choice value into a set,
// trimming whitespace and discarding empty parts.
func splitSelections(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			set[part] = struct{}{}
		}
	}
	return set
}

// freeTextDistance is the edit distance normalized so that the unavoidable
// insertions caused by a pure length difference do not count: with
// diff = |len(a)-len(b)|, the result is (Levenshtein(a,b) - diff) divided by
// (max(len(a), len(b)) - diff).
func freeTextDistance(a, b Value) float64 {
	if a.IsNull() || b.IsNull() {
		return 1
	}
	sa, sb := a.StringValue(), b.StringValue()
	la, lb := len([]rune(sa)), len([]rune(sb))
	if la == 0 && lb == 0 {
		return 0
	}

	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	denom := max(la, lb) - diff
	if denom == 0 {
		return 1
	}

	return float64(text.Levenshtein(sa, sb)-diff) / float64(denom)
}
