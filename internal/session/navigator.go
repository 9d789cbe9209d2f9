// Package session tracks whether each user is signed in and which screen the
// client should show for that state.
package session

import (
	"context"
	"sync"
)

// State is the authentication state of one user.
type State string

const (
	StateUnauthenticated State = "UNAUTHENTICATED"
	StateAuthenticated   State = "AUTHENTICATED"
)

// Navigation targets understood by the mobile client.
const (
	RouteLogin = "/(auth)/login"
	RouteTabs  = "/(tabs)"
)

// Route returns the navigation target for s.
func (s State) Route() string {
	if s == StateAuthenticated {
		return RouteTabs
	}
	return RouteLogin
}

// Event names the trigger of a transition.
type Event string

const (
	EventSignedIn  Event = "signed_in"
	EventSignedUp  Event = "signed_up"
	EventRefreshed Event = "refreshed"
	EventSignedOut Event = "signed_out"
	EventExpired   Event = "expired"
	EventRestored  Event = "restored"
)

// Transition is delivered to observers after a state change.
type Transition struct {
	UserID string
	From   State
	To     State
	Event  Event
}

// Observer reacts to state changes. Observers run synchronously on the
// goroutine that caused the transition and must not block.
type Observer interface {
	OnTransition(ctx context.Context, t Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, t Transition)

func (f ObserverFunc) OnTransition(ctx context.Context, t Transition) { f(ctx, t) }

// Navigator is a two-state machine per user. Observers are registered before
// the server starts serving and never removed.
type Navigator struct {
	mu        sync.RWMutex
	states    map[string]State
	observers []Observer
}

// NewNavigator returns a Navigator with the given observers.
func NewNavigator(observers ...Observer) *Navigator {
	return &Navigator{
		states:    make(map[string]State),
		observers: observers,
	}
}

// Observe registers another observer.
func (n *Navigator) Observe(o Observer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, o)
}

// State returns the current state of userID. Unknown users are unauthenticated.
func (n *Navigator) State(userID string) State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if s, ok := n.states[userID]; ok {
		return s
	}
	return StateUnauthenticated
}

// Authenticate moves userID to AUTHENTICATED.
func (n *Navigator) Authenticate(ctx context.Context, userID string, ev Event) State {
	return n.move(ctx, userID, StateAuthenticated, ev)
}

// Unauthenticate moves userID to UNAUTHENTICATED.
func (n *Navigator) Unauthenticate(ctx context.Context, userID string, ev Event) State {
	return n.move(ctx, userID, StateUnauthenticated, ev)
}

// move applies the transition and notifies observers only when the state
// actually changed.
func (n *Navigator) move(ctx context.Context, userID string, to State, ev Event) State {
	if userID == "" {
		return StateUnauthenticated
	}

	n.mu.Lock()
	from, ok := n.states[userID]
	if !ok {
		from = StateUnauthenticated
	}
	if to == StateUnauthenticated {
		delete(n.states, userID)
	} else {
		n.states[userID] = to
	}
	observers := make([]Observer, len(n.observers))
	copy(observers, n.observers)
	n.mu.Unlock()

	if from == to {
		return to
	}
	t := Transition{UserID: userID, From: from, To: to, Event: ev}
	for _, o := range observers {
		o.OnTransition(ctx, t)
	}
	return to
}
