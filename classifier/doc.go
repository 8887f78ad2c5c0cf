// Package classifier defines the capability that labels a decoded clip as
// AI generated or human, and the configuration shared by its backends.
//
// Backends live in sub-packages and are selected by name through a
// provider.Registry:
//
//	reg := classifier.NewRegistry()
//	reg.RegisterFactory(heuristic.ProviderName, heuristic.Factory())
//	reg.RegisterFactory(remote.ProviderName, remote.Factory())
//	c, err := reg.Build(cfg.Backend, cfg)
package classifier
