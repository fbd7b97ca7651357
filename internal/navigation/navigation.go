package navigation

import (
	"sync"
)

type Route string

const (
	RouteLogin            Route = "Login"
	RouteRegisterComplete Route = "RegisterComplete"
)

// Navigator replaces the whole screen stack with a single route.
type Navigator interface {
	ResetTo(route Route) error
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(route Route) error

func (f NavigatorFunc) ResetTo(route Route) error {
	return f(route)
}

// Recorder is a Navigator that remembers every reset it was asked for.
type Recorder struct {
	mu     sync.Mutex
	resets []Route
}

func (r *Recorder) ResetTo(route Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, route)
	return nil
}

func (r *Recorder) Resets() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.resets...)
}

// Current returns the last route, or "" when nothing was reset yet.
func (r *Recorder) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.resets) == 0 {
		return ""
	}
	return r.resets[len(r.resets)-1]
}
