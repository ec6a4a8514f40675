// Package values holds the configuration value objects particle components
// sample from: ranged and time-scaled numbers, color gradients, spawn shapes
// and texture regions.
//
// Sampling methods take the caller's *rand.Rand so independent controllers
// never share a random source.
package values
