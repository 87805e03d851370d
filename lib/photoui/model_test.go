// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lightbox-labs/lightbox/lib/feed"
)

// fakeFeed records retries and hands out one subscription channel.
type fakeFeed struct {
	snapshots chan feed.Snapshot
	retries   int
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{snapshots: make(chan feed.Snapshot, 1)}
}

func (fake *fakeFeed) Subscribe() <-chan feed.Snapshot { return fake.snapshots }
func (fake *fakeFeed) Retry()                          { fake.retries++ }

type recordingQuery struct {
	inputs []string
}

func (recorder *recordingQuery) Input(text string) {
	recorder.inputs = append(recorder.inputs, text)
}

type recordingScroll struct {
	positions []feed.ScrollPosition
	resets    int
}

func (recorder *recordingScroll) Reset() { recorder.resets++ }

func (recorder *recordingScroll) Observe(position feed.ScrollPosition) bool {
	recorder.positions = append(recorder.positions, position)
	return false
}

func (recorder *recordingScroll) last(t *testing.T) feed.ScrollPosition {
	t.Helper()
	if len(recorder.positions) == 0 {
		t.Fatal("no scroll position reported")
	}
	return recorder.positions[len(recorder.positions)-1]
}

type harness struct {
	feed   *fakeFeed
	query  *recordingQuery
	scroll *recordingScroll
	model  Model
}

// newHarness returns a sized model. A height of 13 leaves a 10-row
// list.
func newHarness(t *testing.T, width, height int) *harness {
	t.Helper()
	testHarness := &harness{
		feed:   newFakeFeed(),
		query:  &recordingQuery{},
		scroll: &recordingScroll{},
	}
	testHarness.model = NewModel(Config{
		Feed:         testHarness.feed,
		Query:        testHarness.query,
		Scroll:       testHarness.scroll,
		ImageBaseURL: "https://img.test",
	})
	testHarness.update(tea.WindowSizeMsg{Width: width, Height: height})
	return testHarness
}

func (testHarness *harness) update(message tea.Msg) tea.Cmd {
	updated, command := testHarness.model.Update(message)
	testHarness.model = updated.(Model)
	return command
}

func (testHarness *harness) typeText(text string) {
	testHarness.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (testHarness *harness) press(keyType tea.KeyType) {
	testHarness.update(tea.KeyMsg{Type: keyType})
}

func (testHarness *harness) pressRune(character rune) {
	testHarness.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
}

func testItems(count int, prefix string) []feed.Item {
	items := make([]feed.Item, count)
	for index := range items {
		items[index] = feed.Item{
			ID:     fmt.Sprintf("%s-%d", prefix, index),
			Title:  fmt.Sprintf("%s photo %d", prefix, index),
			Owner:  "owner@N01",
			Server: "65535",
			Secret: "abc123",
		}
	}
	return items
}

// idleSnapshot returns a settled snapshot of the first query.
func idleSnapshot(query string, page int, items []feed.Item) feed.Snapshot {
	return feed.Snapshot{
		Generation: 1,
		Items:      items,
		Query:      feed.Query{Text: query},
		Page:       page,
		Phase:      feed.PhaseIdle,
	}
}

func TestModelViewBeforeResize(t *testing.T) {
	model := NewModel(Config{
		Feed:   newFakeFeed(),
		Query:  &recordingQuery{},
		Scroll: &recordingScroll{},
	})
	if view := model.View(); view != "Loading..." {
		t.Errorf("View before WindowSizeMsg = %q, want %q", view, "Loading...")
	}
}

func TestNewModelRequiresCollaborators(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewModel without Feed should panic")
		}
	}()
	NewModel(Config{Query: &recordingQuery{}, Scroll: &recordingScroll{}})
}

func TestModelTypingForwardsEveryEdit(t *testing.T) {
	testHarness := newHarness(t, 80, 13)

	testHarness.pressRune('c')
	testHarness.pressRune('a')
	testHarness.pressRune('t')
	testHarness.press(tea.KeySpace)
	testHarness.press(tea.KeyBackspace)

	want := []string{"c", "ca", "cat", "cat ", "cat"}
	if got := testHarness.query.inputs; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("inputs = %q, want %q", got, want)
	}

	// Keys that are bindings in the list are text in the search field.
	testHarness.typeText("qr")
	if testHarness.model.search.Text != "catqr" {
		t.Errorf("search text = %q, want %q", testHarness.model.search.Text, "catqr")
	}
	if testHarness.feed.retries != 0 {
		t.Errorf("retries = %d, want 0 while typing", testHarness.feed.retries)
	}
}

func TestModelBackspaceOnEmptySearchIsNotAnEdit(t *testing.T) {
	testHarness := newHarness(t, 80, 13)
	testHarness.press(tea.KeyBackspace)
	if len(testHarness.query.inputs) != 0 {
		t.Errorf("inputs = %q, want none", testHarness.query.inputs)
	}
}

func TestModelSnapshotRendersItems(t *testing.T) {
	testHarness := newHarness(t, 100, 13)

	command := testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 1, testItems(3, "cat"))})
	if command == nil {
		t.Fatal("snapshot should return a command to keep listening")
	}

	view := testHarness.model.View()
	for _, want := range []string{"cat photo 0", "cat photo 2", "owner@N01", "3 photos · page 1", "Search: "} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelEmptyResults(t *testing.T) {
	testHarness := newHarness(t, 80, 13)

	testHarness.update(snapshotMsg{snapshot: idleSnapshot("zebra", 1, nil)})
	if view := testHarness.model.View(); !strings.Contains(view, emptyResultsText) {
		t.Errorf("view should contain %q:\n%s", emptyResultsText, view)
	}
}

func TestModelBeforeFirstQuery(t *testing.T) {
	testHarness := newHarness(t, 80, 13)

	// The controller's initial state already reports page 1.
	testHarness.update(snapshotMsg{snapshot: feed.NewController(nil).Snapshot()})
	view := testHarness.model.View()
	if strings.Contains(view, emptyResultsText) {
		t.Error("no query has run yet; the empty-results text should not show")
	}
	if !strings.Contains(view, "Type to search photos.") {
		t.Errorf("view should invite a search:\n%s", view)
	}
	if strings.Contains(view, "0 photos") {
		t.Errorf("header should have no result summary before a query:\n%s", view)
	}
}

func TestModelLoadingStartsSpinner(t *testing.T) {
	testHarness := newHarness(t, 80, 13)

	loading := feed.Snapshot{Generation: 1, Query: feed.Query{Text: "cat"}, Page: 1, Phase: feed.PhaseLoading, IsLoading: true}
	testHarness.update(snapshotMsg{snapshot: loading})
	if !testHarness.model.spinning {
		t.Fatal("spinner should run while loading")
	}
	if view := testHarness.model.View(); !strings.Contains(view, "Loading photos") {
		t.Errorf("empty loading view should say so:\n%s", view)
	}

	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 1, testItems(2, "cat"))})
	if testHarness.model.spinning {
		t.Error("spinner should stop once the fetch completes")
	}
}

func TestModelLoadingMoreShownInStatus(t *testing.T) {
	testHarness := newHarness(t, 80, 13)

	snapshot := idleSnapshot("cat", 1, testItems(4, "cat"))
	snapshot.Phase = feed.PhaseLoading
	snapshot.IsLoading = true
	testHarness.update(snapshotMsg{snapshot: snapshot})

	view := testHarness.model.View()
	if !strings.Contains(view, "Loading more") {
		t.Errorf("status line should show load-more progress:\n%s", view)
	}
	if !strings.Contains(view, "cat photo 3") {
		t.Error("items should stay visible while more load")
	}
}

func TestModelErrorStatusAndRetry(t *testing.T) {
	testHarness := newHarness(t, 120, 13)

	snapshot := idleSnapshot("cat", 1, nil)
	snapshot.Phase = feed.PhaseError
	snapshot.LastError = &feed.FetchError{Kind: feed.ErrorNetwork, Err: errors.New("connection refused")}
	testHarness.update(snapshotMsg{snapshot: snapshot})

	view := testHarness.model.View()
	if !strings.Contains(view, "network error: connection refused") {
		t.Errorf("status line should show the error:\n%s", view)
	}
	if strings.Contains(view, emptyResultsText) {
		t.Error("a failed fetch is not an empty result")
	}
	if !strings.Contains(view, "(esc, then r to retry)") || strings.Contains(view, "(r retry)") {
		t.Errorf("with the search field focused the hint should name esc first:\n%s", view)
	}

	// r is text in the search field and retries in the list.
	testHarness.pressRune('r')
	if testHarness.feed.retries != 0 {
		t.Fatalf("retries = %d after r in search field, want 0", testHarness.feed.retries)
	}
	testHarness.press(tea.KeyEsc)
	if view := testHarness.model.View(); !strings.Contains(view, "(r retry)") {
		t.Errorf("with the list focused the hint should be r alone:\n%s", view)
	}
	testHarness.pressRune('r')
	if testHarness.feed.retries != 1 {
		t.Errorf("retries = %d, want 1", testHarness.feed.retries)
	}
}

func TestModelNavigationReportsScroll(t *testing.T) {
	testHarness := newHarness(t, 80, 13)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("", 3, testItems(30, "recent"))})
	testHarness.press(tea.KeyTab)
	if testHarness.model.focus != focusList {
		t.Fatal("tab should move focus to the list")
	}

	testHarness.pressRune('j')
	if testHarness.model.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", testHarness.model.cursor)
	}
	position := testHarness.scroll.last(t)
	if position.Offset != 0 || position.ViewportHeight != 10 || position.ContentHeight != 30 {
		t.Errorf("position after j = %+v, want {0 10 30}", position)
	}

	testHarness.press(tea.KeyPgDown)
	if testHarness.model.cursor != 11 {
		t.Errorf("cursor after page down = %d, want 11", testHarness.model.cursor)
	}
	if position := testHarness.scroll.last(t); position.Offset != 2 {
		t.Errorf("offset after page down = %d, want 2", position.Offset)
	}

	testHarness.pressRune('G')
	if testHarness.model.cursor != 29 || testHarness.model.scrollOffset != 20 {
		t.Errorf("after G cursor=%d offset=%d, want 29 and 20", testHarness.model.cursor, testHarness.model.scrollOffset)
	}
	if !feed.NearBottom(testHarness.scroll.last(t), feed.DefaultNearBottomFraction) {
		t.Error("position at the end of the list should be near the bottom")
	}

	testHarness.pressRune('g')
	if testHarness.model.cursor != 0 || testHarness.model.scrollOffset != 0 {
		t.Errorf("after g cursor=%d offset=%d, want 0 and 0", testHarness.model.cursor, testHarness.model.scrollOffset)
	}
}

func TestModelMouseWheelScrolls(t *testing.T) {
	testHarness := newHarness(t, 80, 13)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("", 3, testItems(30, "recent"))})

	testHarness.update(tea.MouseMsg{X: 10, Y: listStartY + 2, Button: tea.MouseButtonWheelDown})
	if testHarness.model.scrollOffset != wheelStep {
		t.Errorf("offset after wheel down = %d, want %d", testHarness.model.scrollOffset, wheelStep)
	}
	if testHarness.model.cursor != wheelStep {
		t.Errorf("cursor should follow the viewport: got %d, want %d", testHarness.model.cursor, wheelStep)
	}
	if position := testHarness.scroll.last(t); position.Offset != wheelStep {
		t.Errorf("reported offset = %d, want %d", position.Offset, wheelStep)
	}

	testHarness.update(tea.MouseMsg{X: 10, Y: listStartY + 2, Button: tea.MouseButtonWheelUp})
	testHarness.update(tea.MouseMsg{X: 10, Y: listStartY + 2, Button: tea.MouseButtonWheelUp})
	if testHarness.model.scrollOffset != 0 {
		t.Errorf("offset should clamp at the top, got %d", testHarness.model.scrollOffset)
	}
}

func TestModelWheelOnShortListAsksForMore(t *testing.T) {
	testHarness := newHarness(t, 80, 30)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("", 1, testItems(5, "recent"))})

	testHarness.update(tea.MouseMsg{X: 10, Y: listStartY, Button: tea.MouseButtonWheelDown})
	position := testHarness.scroll.last(t)
	if position.Offset != 0 {
		t.Errorf("a list that fits cannot scroll, offset = %d", position.Offset)
	}
	if !feed.NearBottom(position, feed.DefaultNearBottomFraction) {
		t.Errorf("position %+v should be near the bottom", position)
	}
}

func TestModelQueryChangeResetsSelection(t *testing.T) {
	testHarness := newHarness(t, 80, 13)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 3, testItems(30, "cat"))})
	testHarness.press(tea.KeyTab)
	testHarness.pressRune('G')

	resets := testHarness.scroll.resets

	dog := idleSnapshot("dog", 1, testItems(10, "dog"))
	dog.Generation = 2
	testHarness.update(snapshotMsg{snapshot: dog})
	if testHarness.model.cursor != 0 || testHarness.model.scrollOffset != 0 {
		t.Errorf("after query change cursor=%d offset=%d, want 0 and 0",
			testHarness.model.cursor, testHarness.model.scrollOffset)
	}
	if view := testHarness.model.View(); strings.Contains(view, "cat photo") {
		t.Error("previous query's photos should be gone")
	}
	if got := testHarness.scroll.resets - resets; got != 1 {
		t.Errorf("scroll resets on query change = %d, want 1", got)
	}
}

func TestModelResubmittedQueryResetsSelection(t *testing.T) {
	testHarness := newHarness(t, 80, 13)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 3, testItems(30, "cat"))})
	testHarness.press(tea.KeyTab)
	testHarness.pressRune('G')

	// Same text, new generation: the list was refetched from page 1.
	again := idleSnapshot("cat", 1, testItems(10, "cat"))
	again.Generation = 2
	testHarness.update(snapshotMsg{snapshot: again})
	if testHarness.model.cursor != 0 || testHarness.model.scrollOffset != 0 {
		t.Errorf("after resubmit cursor=%d offset=%d, want 0 and 0",
			testHarness.model.cursor, testHarness.model.scrollOffset)
	}
}

func TestModelPageLoadKeepsSelection(t *testing.T) {
	testHarness := newHarness(t, 80, 13)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 1, testItems(20, "cat"))})
	testHarness.press(tea.KeyTab)
	testHarness.pressRune('j')
	testHarness.pressRune('j')
	resets := testHarness.scroll.resets

	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 2, testItems(40, "cat"))})
	if testHarness.model.cursor != 2 {
		t.Errorf("cursor after next page = %d, want 2", testHarness.model.cursor)
	}
	if testHarness.scroll.resets != resets {
		t.Errorf("scroll resets after next page = %d, want %d", testHarness.scroll.resets, resets)
	}
}

func TestModelDetailBox(t *testing.T) {
	testHarness := newHarness(t, 120, 20)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 1, testItems(3, "cat"))})
	testHarness.press(tea.KeyTab)
	testHarness.pressRune('j')
	testHarness.press(tea.KeyEnter)

	if testHarness.model.detail == nil {
		t.Fatal("enter should open the detail box")
	}
	view := testHarness.model.View()
	for _, want := range []string{
		"cat photo 1",
		"https://img.test/65535/cat-1_abc123_m.jpg",
		"https://img.test/65535/cat-1_abc123_w.jpg",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q:\n%s", want, view)
		}
	}

	// q closes the box rather than quitting.
	command := testHarness.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if command != nil {
		t.Error("q in the detail box should not quit")
	}
	if testHarness.model.detail != nil {
		t.Error("q should close the detail box")
	}
}

func TestModelMouseClickSelectsThenOpens(t *testing.T) {
	testHarness := newHarness(t, 120, 20)
	testHarness.update(snapshotMsg{snapshot: idleSnapshot("cat", 1, testItems(5, "cat"))})

	click := tea.MouseMsg{X: 10, Y: listStartY + 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	testHarness.update(click)
	if testHarness.model.cursor != 2 {
		t.Errorf("click should select row 2, got cursor %d", testHarness.model.cursor)
	}
	if testHarness.model.focus != focusList {
		t.Error("click in the list should focus it")
	}
	if testHarness.model.detail != nil {
		t.Fatal("first click should only select")
	}

	testHarness.update(click)
	if testHarness.model.detail == nil || testHarness.model.detail.ID != "cat-2" {
		t.Errorf("second click should open cat-2, got %+v", testHarness.model.detail)
	}

	testHarness.update(click)
	if testHarness.model.detail != nil {
		t.Error("click should close the detail box")
	}

	testHarness.update(tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if testHarness.model.focus != focusSearch {
		t.Error("click on the first row should focus the search field")
	}
}

func TestModelQuit(t *testing.T) {
	testHarness := newHarness(t, 80, 13)

	// q is text while searching.
	if command := testHarness.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); command != nil {
		t.Error("q in the search field should not quit")
	}

	command := testHarness.update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if command == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("ctrl+c produced %T, want tea.QuitMsg", command())
	}

	testHarness.press(tea.KeyEsc)
	command = testHarness.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if command == nil {
		t.Fatal("q in the list should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Errorf("q produced %T, want tea.QuitMsg", command())
	}
}

func TestModelLogNoticeFades(t *testing.T) {
	testHarness := newHarness(t, 120, 13)

	command := testHarness.update(logRecordMsg{Summary: "slow response (elapsed=9s)", Level: slog.LevelWarn})
	if command == nil {
		t.Fatal("a notice should schedule its fade")
	}
	if view := testHarness.model.View(); !strings.Contains(view, "slow response (elapsed=9s)") {
		t.Errorf("status line should show the notice:\n%s", view)
	}

	// A newer notice survives the older one's fade.
	testHarness.update(logRecordMsg{Summary: "second", Level: slog.LevelWarn})
	testHarness.update(logRecordFadeMsg{sequence: 1})
	if testHarness.model.notice != "second" {
		t.Errorf("notice = %q, want %q", testHarness.model.notice, "second")
	}
	testHarness.update(logRecordFadeMsg{sequence: 2})
	if testHarness.model.notice != "" {
		t.Errorf("notice = %q after its fade, want empty", testHarness.model.notice)
	}
}

func TestListenForSnapshot(t *testing.T) {
	channel := make(chan feed.Snapshot, 1)
	channel <- idleSnapshot("cat", 1, nil)

	message := listenForSnapshot(channel)()
	received, ok := message.(snapshotMsg)
	if !ok {
		t.Fatalf("message = %T, want snapshotMsg", message)
	}
	if received.snapshot.Query.Text != "cat" {
		t.Errorf("query = %q, want %q", received.snapshot.Query.Text, "cat")
	}

	close(channel)
	if message := listenForSnapshot(channel)(); message != nil {
		t.Errorf("closed channel produced %T, want nil", message)
	}
}
