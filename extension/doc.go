// Package extension provides run-time registries for the action services
// and their Go input/output types.
//
// The registries are normally populated through the public APIs under the
// root commandant package, therefore most applications do not need to
// import this package directly.
package extension
