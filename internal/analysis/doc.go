// Package analysis provides diagnostics for trajectories and 1-D maps.
//
//   - [DominantPeriod]: period of a sampled signal from its FFT peak
//   - [PhasePortraitToASCII]: quick terminal view of a 2-D projection
//   - [BifurcationDiagram]: parameter sweep of a map family
//   - [MapLyapunov]: Lyapunov exponent of a 1-D map
//
// # Chaos Detection
//
// A positive Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, _ := analysis.MapLyapunov(iterative.Logistic(3.9), 0.1, 1000, 10000)
//	if lambda > 0 {
//	    // map is chaotic at r=3.9
//	}
package analysis
