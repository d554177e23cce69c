// Package clusters groups survey respondents by the similarity of their
// answer profiles.
//
// A respondent is a fixed-length Vector of string-encoded answers; a
// matching slice of FeatureSpec values tells the package how to measure
// each dimension (continuous numeric, ordered categorical, single- or
// multi-choice categorical, free text). Every per-dimension distance is
// normalized to [0, 1], so profiles mixing arbitrary answer types remain
// comparable.
//
// # Algorithms
//
// Three interchangeable partitioners share one calling convention:
//
//	km := clusters.NewKMeans(clusters.WithSeed(42))
//	result, err := km.Fit(data, 3, 100, specs)
//
//   - KMeans: Lloyd-style refinement from uniform random seeds.
//   - KMeansPP: the same refinement from distance-squared-weighted seeds.
//   - KMedoids: partitioning around medoids; every centroid is a real
//     respondent.
//
// Each returns the requested number of Clusters covering every input point
// exactly once. Reaching the iteration cap without convergence is not an
// error; the partition at that point is returned.
//
// # Evaluation
//
// SilhouetteScore and SilhouettePerCluster rate a finished partition in
// [-1, 1], contrasting intra-cluster cohesion against separation from the
// nearest other cluster:
//
//	score, err := clusters.SilhouetteScore(result, specs)
//
// # Determinism
//
// Randomness is injected through options (WithSeed, WithRand) and is the
// only source of non-determinism: a fixed seed reproduces the partition.
// All work is synchronous and in-memory; nothing is loaded, stored or
// shared between calls.
package clusters
