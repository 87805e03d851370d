// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/lightbox-labs/lightbox/lib/clock"
)

// DefaultFetchTimeout bounds a single Gateway.Fetch. A fetch that
// outlives it fails as ErrorNetwork.
const DefaultFetchTimeout = 15 * time.Second

// eventQueueSize is the capacity of the session's event queue. Event
// producers block once it is full and the loop is running.
const eventQueueSize = 64

// SessionConfig configures a Session.
type SessionConfig struct {
	// Gateway serves pages. Required.
	Gateway Gateway

	// FetchTimeout bounds each fetch. Zero selects
	// DefaultFetchTimeout; a negative value disables the bound.
	FetchTimeout time.Duration

	// Clock measures fetch timeouts. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives transition and fetch diagnostics. Defaults to
	// a discarding logger.
	Logger *slog.Logger
}

type eventKind int

const (
	eventQueryChanged eventKind = iota
	eventLoadMore
	eventRetry
	eventResult
)

// event is one message on the session's queue.
type event struct {
	kind   eventKind
	text   string // eventQueryChanged
	result Result // eventResult
}

// Session runs a Controller on a single event loop. Triggers from any
// goroutine are queued and applied in arrival order; each fetch the
// Controller asks for runs on its own goroutine and its completion is
// queued back into the loop. Nothing outside the loop touches the
// Controller.
type Session struct {
	gateway      Gateway
	fetchTimeout time.Duration
	clock        clock.Clock
	logger       *slog.Logger

	controller *Controller
	events     chan event
	done       chan struct{}

	mutex       sync.Mutex
	latest      Snapshot
	subscribers []chan Snapshot
	closed      bool
}

// NewSession returns a Session in the controller's initial state.
// Call Run to start processing. Panics if config.Gateway is nil.
func NewSession(config SessionConfig) *Session {
	if config.Gateway == nil {
		panic("feed: SessionConfig.Gateway is required")
	}
	fetchTimeout := config.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	controller := NewController(logger)
	return &Session{
		gateway:      config.Gateway,
		fetchTimeout: fetchTimeout,
		clock:        clk,
		logger:       logger,
		controller:   controller,
		events:       make(chan event, eventQueueSize),
		done:         make(chan struct{}),
		latest:       controller.Snapshot(),
	}
}

// QueryChanged queues a query change. An empty text browses the
// unfiltered listing.
func (session *Session) QueryChanged(text string) {
	session.post(event{kind: eventQueryChanged, text: text})
}

// LoadMore queues a load-more trigger.
func (session *Session) LoadMore() {
	session.post(event{kind: eventLoadMore})
}

// Retry queues a retry of the failed fetch.
func (session *Session) Retry() {
	session.post(event{kind: eventRetry})
}

// post enqueues an event. Events posted after Run has returned are
// dropped.
func (session *Session) post(message event) {
	select {
	case session.events <- message:
	case <-session.done:
	}
}

// Snapshot returns the state as of the last processed event.
func (session *Session) Snapshot() Snapshot {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	snapshot := session.latest
	snapshot.Items = slices.Clone(snapshot.Items)
	return snapshot
}

// Subscribe returns a channel that holds the most recent snapshot. The
// channel starts with the current snapshot; a newer snapshot replaces
// one the subscriber has not read yet. The channel is closed when Run
// returns. Receivers must treat snapshots as read-only.
func (session *Session) Subscribe() <-chan Snapshot {
	channel := make(chan Snapshot, 1)

	session.mutex.Lock()
	defer session.mutex.Unlock()
	if session.closed {
		close(channel)
		return channel
	}
	channel <- session.latest
	session.subscribers = append(session.subscribers, channel)
	return channel
}

// Run processes events until ctx is cancelled. Outstanding fetches are
// cancelled and waited for before Run returns. Run must be called at
// most once.
func (session *Session) Run(ctx context.Context) error {
	fetchContext, cancel := context.WithCancel(ctx)
	var fetches sync.WaitGroup
	defer func() {
		cancel()
		fetches.Wait()
		close(session.done)
		session.closeSubscribers()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case message := <-session.events:
			session.handle(fetchContext, message, &fetches)
		}
	}
}

func (session *Session) handle(ctx context.Context, message event, fetches *sync.WaitGroup) {
	controller := session.controller

	switch message.kind {
	case eventQueryChanged:
		request := controller.QueryChanged(message.text)
		session.logger.Info("query changed",
			"query", request.Query.Text,
			"generation", request.Generation,
		)
		session.startFetch(ctx, request, fetches)

	case eventLoadMore:
		request, accepted := controller.LoadMore()
		if !accepted {
			session.logger.Debug("load-more ignored",
				"phase", controller.state.Phase,
				"exhausted", controller.state.Exhausted,
			)
			return
		}
		session.startFetch(ctx, request, fetches)

	case eventRetry:
		request, accepted := controller.Retry()
		if !accepted {
			return
		}
		session.logger.Info("retrying fetch",
			"query", request.Query.Text,
			"page", request.Page,
		)
		session.startFetch(ctx, request, fetches)

	case eventResult:
		if !controller.Apply(message.result) {
			return
		}
	}

	session.publish()
}

// startFetch runs request against the gateway on a new goroutine and
// queues its completion. The fetch fails as ErrorNetwork if it does
// not complete within the fetch timeout, whether or not the gateway
// honours cancellation.
func (session *Session) startFetch(ctx context.Context, request Request, fetches *sync.WaitGroup) {
	fetches.Add(1)
	go func() {
		defer fetches.Done()

		fetchContext, cancel := context.WithCancel(ctx)
		defer cancel()

		completed := make(chan Result, 1)
		go func() {
			page, err := session.gateway.Fetch(fetchContext, request)
			completed <- Result{Request: request, Page: page, Err: err}
		}()

		var timeout <-chan time.Time
		if session.fetchTimeout > 0 {
			timeout = session.clock.After(session.fetchTimeout)
		}

		var result Result
		select {
		case result = <-completed:
		case <-timeout:
			result = Result{
				Request: request,
				Err:     NetworkError(fmt.Errorf("fetch timed out after %s", session.fetchTimeout)),
			}
		case <-ctx.Done():
			return
		}

		select {
		case session.events <- event{kind: eventResult, result: result}:
		case <-ctx.Done():
		}
	}()
}

func (session *Session) publish() {
	snapshot := session.controller.Snapshot()

	session.mutex.Lock()
	session.latest = snapshot
	subscribers := slices.Clone(session.subscribers)
	session.mutex.Unlock()

	// Only the loop goroutine sends, so draining a stale snapshot
	// and sending the new one cannot be interleaved with another
	// send.
	for _, channel := range subscribers {
		select {
		case channel <- snapshot:
		default:
			select {
			case <-channel:
			default:
			}
			select {
			case channel <- snapshot:
			default:
			}
		}
	}
}

func (session *Session) closeSubscribers() {
	session.mutex.Lock()
	defer session.mutex.Unlock()
	session.closed = true
	for _, channel := range session.subscribers {
		close(channel)
	}
	session.subscribers = nil
}
