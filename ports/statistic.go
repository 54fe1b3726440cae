package ports

import (
	"context"

	"genodiff/domain/genetic"
	"genodiff/domain/popstats"
)

// Statistic is the compute capability behind one tagged statistic variant. The
// resampling engine treats implementations as black-box pure functions: no
// shared mutable state across calls, so trials are independent and
// order-insensitive. The grouping is always an explicit argument; nothing reads
// stratification state off the dataset.
type Statistic interface {
	Name() popstats.Name
	Description() string
	Compute(ctx context.Context, ds *genetic.Dataset, grouping *genetic.Grouping) (popstats.Result, error)
}
