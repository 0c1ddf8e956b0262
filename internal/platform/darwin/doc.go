//go:build darwin && cgo

// Package darwin implements the platform capabilities on macOS using the
// accessibility API, Carbon process events and the private SkyLight window
// server calls. Importing it registers the provider.
//
// The CoreFoundation run loop must own the main OS thread, so the package
// locks the main goroutine to it at init and EventSource.Run must be called
// from main.
package darwin
