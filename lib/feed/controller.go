// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"log/slog"
	"slices"
)

// Controller is the feed state machine. Its methods are the
// transitions; each one mutates State synchronously and returns the
// fetch to issue, if any. The Controller performs no I/O and is not
// safe for concurrent use: a single owner (normally a Session) drives
// it.
type Controller struct {
	state  State
	logger *slog.Logger

	// inFlight is the authoritative request for the current
	// generation. Meaningful in PhaseLoading, and in PhaseError where
	// it is the request that failed.
	inFlight Request

	// firstPageLoaded records whether page 1 of the current
	// generation has been applied.
	firstPageLoaded bool
}

// NewController returns a Controller in the initial state: idle,
// generation 0, page 1, no items. A nil logger discards.
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		state:  State{Page: 1, Phase: PhaseIdle},
		logger: logger,
	}
}

// QueryChanged starts a new query. Always accepted, including while a
// fetch is outstanding: the outstanding fetch becomes stale and its
// completion will be discarded. Returns the page-1 request for the new
// query.
func (controller *Controller) QueryChanged(text string) Request {
	state := &controller.state
	state.Generation++
	state.Query = Query{Text: text}
	state.Page = 1
	state.Items = nil
	state.Phase = PhaseLoading
	state.LastError = nil
	state.Exhausted = false
	controller.firstPageLoaded = false

	return controller.issue(1)
}

// LoadMore requests the next page of the current query. Dropped while
// a fetch is outstanding and once the query is exhausted; in those
// cases it returns false. From PhaseError it clears the error and
// fetches again.
func (controller *Controller) LoadMore() (Request, bool) {
	state := &controller.state
	if state.Phase == PhaseLoading {
		return Request{}, false
	}
	if state.Exhausted {
		return Request{}, false
	}

	page := state.Page + 1
	if !controller.firstPageLoaded {
		// Nothing to append to yet: the first page failed, or no
		// query has run. Fetch page 1 of the current query.
		page = 1
	}
	state.Phase = PhaseLoading
	state.LastError = nil
	return controller.issue(page), true
}

// Retry reissues the request that failed. Only valid in PhaseError;
// returns false otherwise.
func (controller *Controller) Retry() (Request, bool) {
	state := &controller.state
	if state.Phase != PhaseError {
		return Request{}, false
	}
	state.Phase = PhaseLoading
	state.LastError = nil
	return controller.issue(controller.inFlight.Page), true
}

func (controller *Controller) issue(page int) Request {
	request := Request{
		Query:      controller.state.Query,
		Page:       page,
		Generation: controller.state.Generation,
	}
	controller.inFlight = request
	return request
}

// Apply folds a fetch completion into the state. A completion for an
// earlier generation, or for anything other than the outstanding
// request, is discarded and Apply returns false; the state is left
// untouched.
func (controller *Controller) Apply(result Result) bool {
	state := &controller.state
	request := result.Request

	if request.Generation != state.Generation || state.Phase != PhaseLoading || request != controller.inFlight {
		controller.logger.Debug("discarding fetch result",
			"kind", ErrorStale,
			"query", request.Query.Text,
			"page", request.Page,
			"generation", request.Generation,
			"current_generation", state.Generation,
		)
		return false
	}

	if result.Err != nil {
		fetchError := ClassifyError(result.Err)
		state.Phase = PhaseError
		state.LastError = fetchError
		controller.logger.Warn("fetch failed",
			"kind", fetchError.Kind,
			"query", request.Query.Text,
			"page", request.Page,
			"error", fetchError.Err,
		)
		return true
	}

	if request.Page == 1 {
		state.Items = slices.Clone(result.Page.Items)
		controller.firstPageLoaded = true
	} else {
		state.Items = append(state.Items, result.Page.Items...)
	}
	state.Page = request.Page
	state.Phase = PhaseIdle
	state.LastError = nil

	served := result.Page.Number
	if served == 0 {
		served = request.Page
	}
	state.Exhausted = len(result.Page.Items) == 0 ||
		(result.Page.Pages > 0 && served >= result.Page.Pages)
	return true
}

// State returns a copy of the current state.
func (controller *Controller) State() State {
	state := controller.state
	state.Items = slices.Clone(state.Items)
	return state
}

// Snapshot returns the read-only projection of the current state.
func (controller *Controller) Snapshot() Snapshot {
	return controller.state.snapshot()
}
