package domain

import (
	"context"

	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"
)

// Contract is the resource limit service, served locally or over gRPC
type Contract interface {
	GetLimit(ctx context.Context, name string) (resourcelimits.Pair, error)
	SetLimit(ctx context.Context, name string, update resourcelimits.Update) error
	ListLimits(ctx context.Context) ([]resourcelimits.Entry, error)
}
