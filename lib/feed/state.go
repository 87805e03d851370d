// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"fmt"
	"slices"
)

// Phase is the controller's fetch state.
type Phase int

const (
	// PhaseIdle means no fetch for the current query is outstanding.
	PhaseIdle Phase = iota
	// PhaseLoading means the authoritative fetch for the current
	// query is outstanding.
	PhaseLoading
	// PhaseError means the last fetch for the current query failed.
	// The next query change, load-more, or retry leaves this phase.
	PhaseError
)

// String returns the phase's lowercase name.
func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("Phase(%d)", int(phase))
	}
}

// State is the controller's complete feed state.
type State struct {
	// Items holds results for the current generation only, in page
	// order.
	Items []Item

	// Page is the last page applied for the current query. It resets
	// to 1 on every query change, before the first fetch is issued.
	Page int

	// Generation increments on every query change. Fetches carry the
	// generation that issued them.
	Generation uint64

	Phase     Phase
	LastError *FetchError
	Query     Query

	// Exhausted is set once the backend has served its last page for
	// the current query. Load-more is ignored while it is set.
	Exhausted bool
}

// Snapshot is the read-only projection of State handed to renderers.
// Items is a private copy.
type Snapshot struct {
	// Generation is zero until the first query is submitted.
	Generation uint64
	Items      []Item
	Query      Query
	Page       int
	Phase      Phase
	IsLoading  bool
	LastError  *FetchError
	Exhausted  bool
}

func (state State) snapshot() Snapshot {
	return Snapshot{
		Generation: state.Generation,
		Items:      slices.Clone(state.Items),
		Query:      state.Query,
		Page:       state.Page,
		Phase:      state.Phase,
		IsLoading:  state.Phase == PhaseLoading,
		LastError:  state.LastError,
		Exhausted:  state.Exhausted,
	}
}

// Request is a fetch the controller wants issued.
type Request struct {
	Query      Query
	Page       int
	Generation uint64
}

// Result is the completion of a Request. Err is nil on success, in
// which case Page holds the served page.
type Result struct {
	Request Request
	Page    PageResult
	Err     error
}
