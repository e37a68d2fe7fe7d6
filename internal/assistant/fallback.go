package assistant

import (
	"context"

	"github.com/smartclinic/clinic-ops/pkg/logging"
)

// FallbackCompleter wraps a primary completer with a fallback provider.
// If the primary fails, it automatically retries with the fallback.
type FallbackCompleter struct {
	primary  Completer
	fallback Completer
	logger   *logging.Logger
}

// NewFallbackCompleter creates a fallback-enabled completer. If fallback is
// nil, only the primary provider is used.
func NewFallbackCompleter(primary, fallback Completer, logger *logging.Logger) *FallbackCompleter {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackCompleter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FallbackCompleter) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := c.primary.Complete(ctx, req)
	if err == nil {
		return resp, nil
	}

	c.logger.Warn("primary completer failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", c.fallback != nil,
	)

	if c.fallback == nil {
		return Response{}, err
	}

	fallbackResp, fallbackErr := c.fallback.Complete(ctx, req)
	if fallbackErr != nil {
		c.logger.Error("fallback completer also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return Response{}, fallbackErr
	}

	c.logger.Info("fallback completer succeeded after primary failure")
	return fallbackResp, nil
}
