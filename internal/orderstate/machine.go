// Package orderstate holds the closed set of order statuses and the policy
// deciding which status changes are allowed.
package orderstate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/storefront-server/internal/model"
)

var (
	// ErrUnknownStatus is returned for a status outside the declared set.
	ErrUnknownStatus = errors.New("unknown order status")
	// ErrTransitionNotAllowed is returned when the policy rejects a status change.
	ErrTransitionNotAllowed = errors.New("order status transition not allowed")
)

// Machine validates order statuses against a closed, ordered enumeration.
//
// In permissive mode any declared status may follow any other. In forward-only
// mode a status may only move to a later declared status or to the last declared
// one (cancellation), and the last declared status accepts no further changes.
type Machine struct {
	statuses    []model.OrderStatus
	index       map[model.OrderStatus]int
	forwardOnly bool
}

// New builds a Machine from the declared statuses, in order.
func New(statuses []string, forwardOnly bool) (*Machine, error) {
	if len(statuses) == 0 {
		return nil, errors.New("order status set is empty")
	}

	m := &Machine{
		statuses:    make([]model.OrderStatus, 0, len(statuses)),
		index:       make(map[model.OrderStatus]int, len(statuses)),
		forwardOnly: forwardOnly,
	}
	for _, s := range statuses {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, errors.New("order status must not be blank")
		}
		status := model.OrderStatus(s)
		if _, dup := m.index[status]; dup {
			return nil, fmt.Errorf("duplicate order status %q", s)
		}
		m.index[status] = len(m.statuses)
		m.statuses = append(m.statuses, status)
	}

	return m, nil
}

// Initial returns the status assigned to new orders.
func (m *Machine) Initial() model.OrderStatus {
	return m.statuses[0]
}

// Allowed returns the declared statuses in order.
func (m *Machine) Allowed() []model.OrderStatus {
	out := make([]model.OrderStatus, len(m.statuses))
	copy(out, m.statuses)
	return out
}

// Valid reports whether status is a member of the declared set.
func (m *Machine) Valid(status model.OrderStatus) bool {
	_, ok := m.index[status]
	return ok
}

// ForwardOnly reports whether the forward-only policy is enabled.
func (m *Machine) ForwardOnly() bool {
	return m.forwardOnly
}

// CanTransition checks whether an order in status from may move to status to.
// A from status that is no longer declared may move to any declared status.
func (m *Machine) CanTransition(from, to model.OrderStatus) error {
	target, ok := m.index[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !m.forwardOnly {
		return nil
	}

	current, ok := m.index[from]
	if !ok {
		return nil
	}

	last := len(m.statuses) - 1
	switch {
	case current == last:
		return fmt.Errorf("%w: %q is terminal", ErrTransitionNotAllowed, from)
	case target > current:
		return nil
	default:
		return fmt.Errorf("%w: %q -> %q", ErrTransitionNotAllowed, from, to)
	}
}
