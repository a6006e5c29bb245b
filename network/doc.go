// SPDX-License-Identifier: MIT

// Package network turns gene expression into weighted co-expression
// networks: a soft-thresholded adjacency matrix and, optionally, its
// Topological Overlap Matrix (TOM).
//
// Pipeline:
//
//	expression (samples × genes)
//	  → correlation (correlation.Provider, genes × genes)
//	  → adjacency   (one of four power-law policies)
//	  → connectivity k[g] = Σ|A[g,·]|
//	  → TOM         (A·Aᵀ normalized by min or mean connectivity)
//
// Entry points:
//
//   - Adjacency / AdjacencyInto: expression → adjacency.
//   - TOM / TOMInto: expression → TOM (or adjacency with TOMNone).
//   - TOMFromAdjacency / TOMFromAdjacencyInto: adjacency → TOM.
//   - AdjacencyFromCorrelation, Connectivity: the individual stages.
//
// All matrices are matrix.Dense in row-major order, so the output of one
// call can be fed to another. Calls are synchronous and keep no state
// between invocations; the only concurrency is inside the correlation
// provider (WithThreads).
//
// Failures of the pipeline itself map to an ErrorCode (CodeOf). Entries of
// the TOM above 1 are not failures: they are counted in Result.AboveOne,
// logged at Warn and exported through Metrics.
package network
