// Package setup resolves the configuration the release pipeline needs before
// it can run: the build environment taken from the process environment and
// the optional package manifest.
//
// Configuration is read and validated once at startup; the resulting values
// are passed explicitly into the service instead of being consulted ad hoc.
package setup
