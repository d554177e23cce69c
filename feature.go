package clusters

import (
	"fmt"
)

// Value is a single answer cell of a respondent profile.
//
// The zero value is null, which models an unanswered question and is
// distinct from an empty string answer: an empty free-text answer is a
// valid (empty) string, a null one carries no text at all.
type Value struct {
	s     string
	valid bool
}

// String returns a non-null Value holding s.
func String(s string) Value {
	return Value{s: s, valid: true}
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool {
	return !v.valid
}

// StringValue returns the string payload; empty for null values.
func (v Value) StringValue() string {
	return v.s
}

// Vector is one respondent's fixed-length answer profile, one Value per
// surveyed dimension. Its length must equal the length of the FeatureSpec
// slice it is used with.
type Vector []Value

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Equal reports whether v and o have the same dimension and identical
// values, nullness included.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// FeatureKind identifies the concrete type of a FeatureSpec.
type FeatureKind uint8

const (
	// KindNumeric is a continuous numeric dimension with a known range.
	KindNumeric FeatureKind = iota + 1
	// KindOrdinal is an ordered categorical dimension.
	KindOrdinal
	// KindNominalSingle is an unordered single-choice dimension.
	KindNominalSingle
	// KindNominalMulti is an unordered multi-choice dimension whose values
	// are comma-separated selections.
	KindNominalMulti
	// KindFreeText is an unconstrained text dimension.
	KindFreeText
)

func (k FeatureKind) String() string {
	switch k {
	case KindNumeric:
		return "Numeric"
	case KindOrdinal:
		return "Ordinal"
	case KindNominalSingle:
		return "NominalSingle"
	case KindNominalMulti:
		return "NominalMulti"
	case KindFreeText:
		return "FreeText"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// FeatureSpec describes how one dimension of a dataset is interpreted and
// measured. The set of implementations is closed: exactly the spec types in
// this package satisfy it, and both the distance and the centroid
// aggregation routines switch exhaustively over them.
type FeatureSpec interface {
	// Kind returns the tag of the concrete spec type.
	Kind() FeatureKind

	// validate checks the per-dimension metadata for contradictions.
	// dim is the dimension index, used for error reporting only.
	validate(dim int) error
}

// NumericSpec describes a continuous numeric dimension. Distances are
// normalized by the Max-Min range.
type NumericSpec struct {
	Min float64
	Max float64
}

// Numeric returns the spec of a numeric dimension with the given range.
func Numeric(min, max float64) NumericSpec {
	return NumericSpec{Min: min, Max: max}
}

// Kind implements FeatureSpec.
func (NumericSpec) Kind() FeatureKind { return KindNumeric }

func (s NumericSpec) validate(dim int) error {
	if s.Max <= s.Min {
		return &ErrInvalidSpec{
			Index:  dim,
			Reason: fmt.Sprintf("numeric range [%v, %v] requires max > min", s.Min, s.Max),
		}
	}
	return nil
}

// OrdinalSpec describes an ordered categorical dimension. Modalities lists
// the labels in their natural order. Cardinality, when positive, overrides
// the modality count used for normalization; this allows a dimension whose
// answers only cover part of a larger ordered scale.
type OrdinalSpec struct {
	Modalities  []string
	Cardinality int
}

// Ordinal returns the spec of an ordered categorical dimension.
func Ordinal(modalities ...string) OrdinalSpec {
	return OrdinalSpec{Modalities: modalities}
}

// OrdinalWithCardinality returns an ordinal spec with an explicit scale size.
func OrdinalWithCardinality(cardinality int, modalities ...string) OrdinalSpec {
	return OrdinalSpec{Modalities: modalities, Cardinality: cardinality}
}

// Kind implements FeatureSpec.
func (OrdinalSpec) Kind() FeatureKind { return KindOrdinal }

func (s OrdinalSpec) validate(dim int) error {
	if len(s.Modalities) == 0 {
		return &ErrInvalidSpec{Index: dim, Reason: "ordinal dimension requires a modality list"}
	}
	return nil
}

// scale returns the modality count used for normalization.
func (s OrdinalSpec) scale() int {
	if s.Cardinality > 0 {
		return s.Cardinality
	}
	return len(s.Modalities)
}

// NominalSingleSpec describes an unordered single-choice dimension.
type NominalSingleSpec struct{}

// NominalSingle returns the spec of an unordered single-choice dimension.
func NominalSingle() NominalSingleSpec {
	return NominalSingleSpec{}
}

// Kind implements FeatureSpec.
func (NominalSingleSpec) Kind() FeatureKind { return KindNominalSingle }

func (NominalSingleSpec) validate(int) error { return nil }

// NominalMultiSpec describes an unordered multi-choice dimension whose
// values are comma-separated selections. MaxSelections, when positive,
// records the selection cap of the originating question; the distance
// metric itself does not depend on it.
type NominalMultiSpec struct {
	MaxSelections int
}

// NominalMulti returns the spec of a multi-choice dimension. maxSelections
// may be 0 when the originating question has no cap.
func NominalMulti(maxSelections int) NominalMultiSpec {
	return NominalMultiSpec{MaxSelections: maxSelections}
}

// Kind implements FeatureSpec.
func (NominalMultiSpec) Kind() FeatureKind { return KindNominalMulti }

func (NominalMultiSpec) validate(int) error { return nil }

// FreeTextSpec describes an unconstrained text dimension.
type FreeTextSpec struct{}

// FreeText returns the spec of a free-text dimension.
func FreeText() FreeTextSpec {
	return FreeTextSpec{}
}

// Kind implements FeatureSpec.
func (FreeTextSpec) Kind() FeatureKind { return KindFreeText }

func (FreeTextSpec) validate(int) error { return nil }

// validateSpecs checks the spec slice itself and every per-dimension spec.
func validateSpecs(specs []FeatureSpec) error {
	if specs == nil {
		return ErrNilSpecs
	}
	for i, s := range specs {
		if s == nil {
			return &ErrInvalidSpec{Index: i, Reason: "missing spec"}
		}
		if err := s.validate(i); err != nil {
			return err
		}
	}
	return nil
}
