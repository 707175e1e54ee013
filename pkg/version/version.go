// Package version contains the build identity, overridden at link time.
package version

var (
	BinaryName = "kiali-qe"
	Version    = "0.0.0"
)
