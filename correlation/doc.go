// SPDX-License-Identifier: MIT

// Package correlation computes gene-by-gene correlation matrices from a
// samples × genes expression matrix.
//
// Two estimators are provided behind the Provider interface:
//
//   - Pearson: classic product-moment correlation (or cosine similarity when
//     Options.Cosine is set).
//   - Bicor: biweight midcorrelation, an outlier-resistant estimator built on
//     the median and the median absolute deviation (MAD). Options.MaxPOutliers
//     caps the fraction of samples down-weighted as outliers on each side and
//     Options.Fallback decides what happens to genes whose MAD is zero.
//
// Missing values (matrix.NA) are handled per gene: when the fraction of
// missing samples of a gene is at most Options.Quick, the gene is centred
// and scaled once and its missing entries contribute nothing (fast path);
// otherwise every pair involving it is recomputed over the samples both
// genes observe (exact path).
//
// Pairs are scheduled row by row on an errgroup limited to Options.Threads
// goroutines. The output is symmetric with a unit diagonal.
package correlation
