package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Component is the outcome of one checker.
type Component struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Required bool   `json:"required"`
	Details  string `json:"details,omitempty"`
}

// Report lists every component. Ready is false only when a required one failed.
type Report struct {
	Ready      bool        `json:"ready"`
	Components []Component `json:"components"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	required []Checker
	optional []Checker
}

// NewService aggregates dependency checkers. Optional checkers (browser, AI)
// are reported but never make the service unready.
func NewService(required []Checker, optional ...Checker) ReadinessUseCase {
	return &service{required: required, optional: optional}
}

func (s *service) Ready(ctx context.Context) (Report, error) {
	rep := Report{Ready: true, Components: make([]Component, 0, len(s.required)+len(s.optional))}
	var firstErr error
	for _, ch := range s.required {
		c := run(ctx, ch, true)
		if c.Status != "ok" {
			rep.Ready = false
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %s", c.Name, c.Details)
			}
		}
		rep.Components = append(rep.Components, c)
	}
	for _, ch := range s.optional {
		rep.Components = append(rep.Components, run(ctx, ch, false))
	}
	return rep, firstErr
}

func run(ctx context.Context, ch Checker, required bool) Component {
	c := Component{Name: ch.Name(), Status: "ok", Required: required}
	if err := ch.Check(ctx); err != nil {
		c.Status = "unavailable"
		c.Details = err.Error()
	}
	return c
}
