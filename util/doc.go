// Package util provides small parsing helpers shared by the engine's
// configuration layer.
package util
