package clusters

import (
	"fmt"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/surveygo/clusters/internal/text"
)

// Cluster owns a centroid and the member profiles currently assigned to it.
// Vectors are copied on the way in and on the way out; a Cluster never
// aliases caller-owned data, so an algorithm run cannot corrupt the dataset
// it was handed.
//
// The centroid is synthetic for the refining algorithms (per-dimension mean
// or mode) and a real dataset point for the medoid partitioner.
type Cluster struct {
	centroid Vector
	members  []Vector
}

// NewCluster creates a cluster around a copy of the given centroid.
func NewCluster(centroid Vector) (*Cluster, error) {
	if len(centroid) == 0 {
		return nil, ErrEmptyCentroid
	}
	return &Cluster{centroid: centroid.Clone()}, nil
}

// Dimension returns the centroid dimension.
func (c *Cluster) Dimension() int {
	return len(c.centroid)
}

// Size returns the current member count.
func (c *Cluster) Size() int {
	return len(c.members)
}

// AddMember appends a copy of v to the cluster membership.
func (c *Cluster) AddMember(v Vector) {
	c.members = append(c.members, v.Clone())
}

// ClearMembers removes all members without touching the centroid.
func (c *Cluster) ClearMembers() {
	c.members = c.members[:0]
}

// Centroid returns a copy of the current centroid.
func (c *Cluster) Centroid() Vector {
	return c.centroid.Clone()
}

// Members returns a copy of the current membership in insertion order.
func (c *Cluster) Members() []Vector {
	out := make([]Vector, len(c.members))
	for i, m := range c.members {
		out[i] = m.Clone()
	}
	return out
}

// SetCentroid replaces the centroid with a copy of v. The dimension must
// match the existing centroid.
func (c *Cluster) SetCentroid(v Vector) error {
	if len(v) != len(c.centroid) {
		return &ErrDimensionMismatch{Expected: len(c.centroid), Actual: len(v)}
	}
	c.centroid = v.Clone()
	return nil
}

// RecomputeCentroid replaces every centroid dimension with the aggregate of
// the member values for that dimension: the arithmetic mean for numeric
// dimensions, the most frequent token for free-text dimensions, and the mode
// of the raw values for the categorical kinds. Dimensions without usable
// member values keep their previous centroid value, as do categorical
// dimensions whose mode is tied.
//
// It reports whether the centroid changed, which the iterative algorithms
// use to detect convergence. With no members it is a no-op and reports false.
func (c *Cluster) RecomputeCentroid(specs []FeatureSpec) (bool, error) {
	if err := validateSpecs(specs); err != nil {
		return false, err
	}
	if len(specs) != len(c.centroid) {
		return false, &ErrDimensionMismatch{Expected: len(c.centroid), Actual: len(specs)}
	}
	if len(c.members) == 0 {
		return false, nil
	}

	next := make(Vector, len(c.centroid))
	for i := range specs {
		// The switch mirrors localDistance: both sites must cover the
		// closed spec set.
		switch specs[i].(type) {
		case NumericSpec:
			next[i] = c.meanValue(i)
		case FreeTextSpec:
			next[i] = c.dominantToken(i)
		case OrdinalSpec, NominalSingleSpec, NominalMultiSpec:
			next[i] = c.modeValue(i)
		default:
			return false, fmt.Errorf("unsupported feature spec %T", specs[i])
		}
	}

	changed := !next.Equal(c.centroid)
	c.centroid = next

	return changed, nil
}

// meanValue averages the parseable member values of dimension i. Null and
// unparsable values are skipped; without any parseable value the previous
// centroid value is kept.
func (c *Cluster) meanValue(i int) Value {
	vals := make([]float64, 0, len(c.members))
	for _, m := range c.members {
		if m[i].IsNull() {
			continue
		}
		f, err := strconv.ParseFloat(m[i].StringValue(), 64)
		if err != nil {
			continue
		}
		vals = append(vals, f)
	}
	if len(vals) == 0 {
		return c.centroid[i]
	}
	return String(strconv.FormatFloat(stat.Mean(vals, nil), 'f', -1, 64))
}

// dominantToken picks the most frequent token across all member texts of
// dimension i. When several tokens tie for the lead, the current centroid
// value wins if it is among them, otherwise the first token that reached the
// leading count. Without any token the previous centroid value is kept.
func (c *Cluster) dominantToken(i int) Value {
	counts := make(map[string]int)
	var order []string
	for _, m := range c.members {
		if m[i].IsNull() {
			continue
		}
		for _, tok := range text.Tokenize(m[i].StringValue()) {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	if len(order) == 0 {
		return c.centroid[i]
	}

	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	var leaders []string
	for _, tok := range order {
		if counts[tok] == best {
			leaders = append(leaders, tok)
		}
	}

	if cur := c.centroid[i]; !cur.IsNull() && slices.Contains(leaders, cur.StringValue()) {
		return cur
	}
	return String(leaders[0])
}

// modeValue picks the most frequent raw value of dimension i by exact string
// match. A tie for the lead keeps the previous centroid value. Null member
// values are skipped; without any non-null value the previous centroid value
// is kept.
func (c *Cluster) modeValue(i int) Value {
	counts := make(map[string]int)
	var order []string
	for _, m := range c.members {
		if m[i].IsNull() {
			continue
		}
		v := m[i].StringValue()
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return c.centroid[i]
	}

	best := 0
	ties := 0
	var mode string
	for _, v := range order {
		switch {
		case counts[v] > best:
			best = counts[v]
			mode = v
			ties = 1
		case counts[v] == best:
			ties++
		}
	}
	if ties > 1 {
		return c.centroid[i]
	}
	return String(mode)
}

// Representant returns the member nearest the centroid under the aggregate
// Euclidean distance, giving callers a real, interpretable respondent even
// when the centroid is synthetic. A member equal to the centroid is returned
// without a distance scan; with no members the centroid itself is returned.
func (c *Cluster) Representant(specs []FeatureSpec) (Vector, error) {
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}
	if len(specs) != len(c.centroid) {
		return nil, &ErrDimensionMismatch{Expected: len(c.centroid), Actual: len(specs)}
	}
	if len(c.members) == 0 {
		return c.Centroid(), nil
	}

	for _, m := range c.members {
		if m.Equal(c.centroid) {
			return m.Clone(), nil
		}
	}

	bestIdx := -1
	bestDist := 0.0
	for i, m := range c.members {
		d, err := Distance(m, c.centroid, specs)
		if err != nil {
			return nil, err
		}
		if bestIdx < 0 || d < bestDist {
			bestIdx = i
			bestDist = d
		}
	}

	return c.members[bestIdx].Clone(), nil
}
