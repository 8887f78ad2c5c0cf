// Package provider implements a small generic framework for swappable
// backends selected by name at startup.
//
// A backend type embeds Provider (identity plus availability) and is built
// by a Factory from a typed config. Registry maps names to factories and
// caches the built instances:
//
//	reg := provider.NewRegistry[Classifier, Config]()
//	reg.RegisterFactory("heuristic", newHeuristic)
//	c, err := reg.Build("heuristic", cfg)
//
// Backends holding resources implement Closeable.
package provider
