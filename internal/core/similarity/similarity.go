// Package similarity defines the pluggable name-similarity seam used by the
// match scorer. Implementations must be deterministic and symmetric; scores
// are bounded to [0,1]
package similarity

import "github.com/xrash/smetrics"

// Func scores two canonicalized name strings
type Func func(a, b string) float64

// JaroWinkler is the default metric. It favors shared prefixes, which suits
// transliterated given names where endings drift more than stems
func JaroWinkler(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

// Default returns the metric used when nothing is injected
func Default() Func { return JaroWinkler }
