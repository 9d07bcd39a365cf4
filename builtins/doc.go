// Package builtins provides the ready-made Mapper, Reducer, and Joiner
// implementations the example graphs (word count, TF-IDF, PMI, average
// speed) are assembled from. Each type here has a direct counterpart in
// the Python reference implementation's operations module; the Go port
// keeps the same per-row contract but expresses it against row.Row/row.Value
// instead of an untyped dict.
package builtins
