// SPDX-License-Identifier: MIT

package network

import (
	"fmt"

	"github.com/gyanmishra/WGCNA/matrix"
)

// Connectivity returns k[g] = Σ_h |adj[g,h]|, diagonal included.
// The adjacency must be square; NA entries make the gene's sum NA.
func Connectivity(adj matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateSquare(adj); err != nil {
		return nil, fmt.Errorf("Connectivity: %w", err)
	}
	k, err := matrix.RowAbsSums(adj)
	if err != nil {
		return nil, fmt.Errorf("Connectivity: %w", err)
	}
	return k, nil
}
