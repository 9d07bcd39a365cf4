// Package algorithms ships the pre-built graphs every acceptance scenario
// in this repository runs: word counting, TF-IDF (inverted index),
// pointwise mutual information, and average speed by weekday/hour.
// Each constructor here is a direct port of the corresponding function in
// the Python reference implementation's algorithms module, built out of
// graph and builtins the same way the example binaries under cmd/ are.
package algorithms
