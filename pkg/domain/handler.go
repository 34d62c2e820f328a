package domain

import (
	"context"

	"github.com/core-tools/hsu-rlimit/pkg/logging"
	"github.com/core-tools/hsu-rlimit/pkg/resourcelimits"
)

// NewLimitsHandler serves the contract from the limits of this process
func NewLimitsHandler(manager resourcelimits.LimitManager, logger logging.Logger) Contract {
	return &limitsHandler{
		manager: manager,
		logger:  logger,
	}
}

type limitsHandler struct {
	manager resourcelimits.LimitManager
	logger  logging.Logger
}

func (h *limitsHandler) GetLimit(ctx context.Context, name string) (resourcelimits.Pair, error) {
	pair, err := h.manager.Get(name)
	if err != nil {
		h.logger.Debugf("GetLimit %s: %v", name, err)
		return resourcelimits.Pair{}, err
	}
	return pair, nil
}

func (h *limitsHandler) SetLimit(ctx context.Context, name string, update resourcelimits.Update) error {
	if err := h.manager.Set(name, update); err != nil {
		h.logger.Warnf("SetLimit %s (%s): %v", name, update, err)
		return err
	}
	h.logger.Infof("SetLimit %s (%s) done", name, update)
	return nil
}

func (h *limitsHandler) ListLimits(ctx context.Context) ([]resourcelimits.Entry, error) {
	return h.manager.Snapshot(), nil
}
