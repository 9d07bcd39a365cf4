// Package cgerrors provides the structured error type used throughout the
// graph engine: a machine-readable Code, a human-readable Message, an
// optional wrapped Cause, and free-form Details for diagnostics.
package cgerrors
