package main

import (
	"context"
	"fmt"

	"chainsel/internal/chain"
	"chainsel/internal/dataset"
	"chainsel/internal/trace"
)

// buildChain creates and initializes a controller for one group over an
// already loaded data set.
func buildChain(ctx context.Context, g groupConfig, data dataset.Data, container chain.Container) (*chain.Controller, error) {
	ctrl, err := chain.New(container, chain.Options(g.Options), data, dataset.Build,
		chain.WithTracer(trace.FromContext(ctx)))
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", g.Name, err)
	}
	if err := ctrl.Initialize(); err != nil {
		return nil, fmt.Errorf("group %q: %w", g.Name, err)
	}
	return ctrl, nil
}
