package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
)

type Service interface {
	Name() string
	Run(context.Context) error
}

// Group runs services side by side. The first failure cancels the rest.
type Group []Service

func (g Group) Run(ctx context.Context) error {
	runCtx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result *multierror.Error
	)

	wg.Add(len(g))
	for _, s := range g {
		go func(s Service) {
			defer wg.Done()

			slog.Info("Starting service", "name", s.Name())
			err := s.Run(runCtx)
			slog.Info("Service stopped", "name", s.Name())

			if err != nil {
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("%s: %w", s.Name(), err))
				mu.Unlock()
			}
			cancelFn()
		}(s)
	}

	wg.Wait()

	return result.ErrorOrNil()
}
