// Package security holds the TLS client settings used when the service calls
// out to a remote classifier sidecar.
//
//	tlsCfg, err := cfg.Classifier.Remote.TLS.ClientConfig()
//	transport.TLSClientConfig = tlsCfg // nil keeps the defaults
package security
