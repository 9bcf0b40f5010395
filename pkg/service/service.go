package service

import (
	"context"
	"fmt"
)

// RunnableService defines a service that can be run and shut down.
type RunnableService interface {
	Run()
	Shutdown(ctx context.Context) error
}

// Group is a container for managing a bunch of services.
type Group struct {
	list []RunnableService
}

func (g *Group) Add(services ...RunnableService) { g.list = append(g.list, services...) }

// Start starts each service in the group.
func (g *Group) Start() {
	for _, s := range g.list {
		s.Run()
	}
}

// Shutdown terminates a group of services.
func (g *Group) Shutdown(ctx context.Context) (err error) {
	var errs []error
	for _, s := range g.list {
		if err := s.Shutdown(ctx); err != nil && err != context.Canceled {
			errs = append(errs, fmt.Errorf("failed to stop [%s] because of %w", s, err))
		}
	}
	if len(errs) > 0 {
		err = fmt.Errorf("%s", errs)
	}
	return
}
