// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

const bytesPerFloat = 8

// workingSet is the dense memory of one call: buffers n×n matrices plus,
// when withVector is set, the length-n connectivity vector.
func workingSet(n, buffers int, withVector bool) uint64 {
	nn := uint64(n) * uint64(n)
	total := uint64(buffers) * nn * bytesPerFloat
	if withVector {
		total += uint64(n) * bytesPerFloat
	}
	return total
}

// checkBudget refuses the call before anything is allocated when the
// working set exceeds the budget. A zero budget accepts everything.
func checkBudget(o Options, op string, n, buffers int, withVector bool) error {
	need := workingSet(n, buffers, withVector)
	o.logger.Debug("memory working set",
		slog.String("op", op),
		slog.Int("genes", n),
		slog.String("need", humanize.IBytes(need)))
	if o.budget == 0 || need <= o.budget {
		return nil
	}
	return fmt.Errorf("%s: %d genes need %s, budget %s: %w",
		op, n, humanize.IBytes(need), humanize.IBytes(o.budget), ErrMemoryBudget)
}
