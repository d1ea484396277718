package viewroute

import "sync"

// Navigator tracks the current route and notifies subscribers when it
// changes. Both programmatic navigation and externally observed fragment
// changes go through Apply, so there is exactly one notification path and
// "requested view" can never diverge from "displayed view".
type Navigator struct {
	mu      sync.Mutex
	current Route
	subs    []func(Route)
}

// NewNavigator returns a Navigator positioned on DefaultRoute.
func NewNavigator() *Navigator {
	return &Navigator{current: DefaultRoute}
}

// Current returns the route as of the last successful Apply.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Subscribe registers a listener invoked on every recognized fragment
// change. Listeners run synchronously on the applying goroutine.
func (n *Navigator) Subscribe(fn func(Route)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// Apply resolves a fragment against the current route and adopts the
// result. Unrecognized fragments leave the current route unchanged and fire
// no notification. The resolved route is returned either way.
func (n *Navigator) Apply(fragment string) Route {
	n.mu.Lock()
	next, ok := Parse(fragment)
	if !ok {
		cur := n.current
		n.mu.Unlock()
		return cur
	}
	n.current = next
	subs := make([]func(Route), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Navigate moves to a view by rewriting the fragment and feeding it back
// through Apply — deliberately not a separate code path from external
// fragment changes.
func (n *Navigator) Navigate(view View) Route {
	return n.Apply(Route{View: view}.Fragment())
}
