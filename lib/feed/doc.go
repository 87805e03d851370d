// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

// Package feed implements the incremental search and infinite-scroll
// feed behind the photo browser.
//
// Two input streams meet here. Keystrokes pass through a
// [QueryNormalizer], which length-gates and debounces them into
// query-changed events. Scroll positions pass through a
// [ScrollSampler], which throttles them and emits load-more events
// when the viewport nears the end of the list. Both feed a [Session],
// whose event loop owns the [Controller]:
//
//	keystrokes --> QueryNormalizer --\
//	                                  +--> Session --> Controller
//	scrolling  --> ScrollSampler ----/        |    ^
//	                                          v    |
//	                                       Gateway.Fetch
//
// The Controller is a synchronous transition function over [State].
// Every fetch it asks for is tagged with the query generation that
// issued it; a completion whose generation is no longer current is
// dropped, so results apply correctly whatever order the gateway
// answers in. A hung fetch is bounded by the Session's fetch timeout
// and surfaces as a network error.
//
// Consumers read [Snapshot] values, either by polling
// [Session.Snapshot] or from the latest-wins [Session.Subscribe]
// channel.
package feed
