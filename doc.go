// Package wgcna builds weighted gene co-expression networks: from an
// expression matrix to a soft-thresholded adjacency and its Topological
// Overlap Matrix (TOM).
//
// What lives where:
//
//	matrix/      row-major Dense storage, NA sentinel, validators and
//	             column reducers (ColumnMinArgmin, ColumnMeans)
//	correlation/ Pearson and biweight midcorrelation over samples, with
//	             NA handling and bounded goroutine fan-out
//	network/     adjacency policies, connectivity, TOM, YAML config,
//	             Prometheus metrics
//
// Quick example:
//
//	expr, _ := matrix.NewDenseFrom(samples, genes, values)
//	res, err := network.TOM(expr,
//		network.WithCorrelation(correlation.Bicor),
//		network.WithAdjacency(network.AdjSigned),
//		network.WithPower(12),
//		network.WithTOM(network.TOMSigned),
//	)
//	if err != nil {
//		log.Printf("%s", network.CodeOf(err).Message())
//	}
//	dissTOM, _ := matrix.Dissimilarity(res.Matrix) // input for clustering
//
// Matrices are dense: n genes cost 8·n² bytes per n×n buffer and TOM holds
// two of them. Use network.WithMemoryBudget to fail fast on large inputs.
//
//	go get github.com/gyanmishra/WGCNA
package wgcna
