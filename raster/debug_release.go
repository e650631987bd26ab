//go:build !ttfcore_debug

package raster

// warnDrift is a no-op outside of -tags ttfcore_debug builds; see debug.go.
func warnDrift(px, y int, coverage, weight float64) {}
