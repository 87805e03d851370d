// Copyright 2026 The Lightbox Authors
// SPDX-License-Identifier: Apache-2.0

package photoui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lightbox-labs/lightbox/lib/feed"
	"github.com/lightbox-labs/lightbox/lib/photoapi"
	"github.com/lightbox-labs/lightbox/lib/tui"
)

// Screen rows outside the list: the search field, a separator, and the
// status line.
const (
	chromeRows = 3
	listStartY = 2
)

// wheelStep is how many rows one mouse wheel notch scrolls.
const wheelStep = 3

// emptyResultsText is shown when a query completed with no photos.
const emptyResultsText = "No data matching the query."

// Feed is the part of a feed.Session the browser drives.
type Feed interface {
	Subscribe() <-chan feed.Snapshot
	Retry()
}

// QueryInput receives the search field's full contents after every
// edit. Satisfied by *feed.QueryNormalizer.
type QueryInput interface {
	Input(text string)
}

// ScrollObserver receives the list's scroll position after every
// movement, and Reset when a new query replaces the list. Satisfied
// by *feed.ScrollSampler.
type ScrollObserver interface {
	Observe(position feed.ScrollPosition) bool
	Reset()
}

// Config configures a Model. Feed, Query, and Scroll are required.
type Config struct {
	Feed   Feed
	Query  QueryInput
	Scroll ScrollObserver

	// ImageBaseURL is the image host for the detail box's links.
	ImageBaseURL string

	// Theme defaults to tui.DefaultTheme.
	Theme tui.Theme
}

type focusRegion int

const (
	focusSearch focusRegion = iota
	focusList
)

// snapshotMsg carries a snapshot read from the session's subscription.
type snapshotMsg struct {
	snapshot feed.Snapshot
}

// Model is the bubbletea model for the photo browser.
type Model struct {
	feed         Feed
	query        QueryInput
	scroll       ScrollObserver
	snapshots    <-chan feed.Snapshot
	imageBaseURL string
	theme        tui.Theme
	keys         KeyMap

	snapshot feed.Snapshot
	search   SearchBox
	focus    focusRegion

	// cursor indexes snapshot.Items. scrollOffset is the index of the
	// first visible row.
	cursor       int
	scrollOffset int

	// detail is the photo shown in the detail box, or nil.
	detail *feed.Item

	spinner  spinner.Model
	spinning bool

	notice         string
	noticeLevel    slog.Level
	noticeSequence uint64

	width  int
	height int
	ready  bool
}

// NewModel subscribes to config.Feed and returns a model with the
// search field focused.
func NewModel(config Config) Model {
	if config.Feed == nil || config.Query == nil || config.Scroll == nil {
		panic("photoui: Config.Feed, Config.Query, and Config.Scroll are required")
	}
	theme := config.Theme
	if theme == (tui.Theme{}) {
		theme = tui.DefaultTheme
	}
	return Model{
		feed:         config.Feed,
		query:        config.Query,
		scroll:       config.Scroll,
		snapshots:    config.Feed.Subscribe(),
		imageBaseURL: config.ImageBaseURL,
		theme:        theme,
		keys:         DefaultKeyMap,
		search:       SearchBox{Active: true},
		focus:        focusSearch,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

// Init starts listening for snapshots.
func (model Model) Init() tea.Cmd {
	return listenForSnapshot(model.snapshots)
}

// listenForSnapshot waits for the next snapshot. Returns a nil message
// once the session has stopped and closed the channel.
func listenForSnapshot(channel <-chan feed.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-channel
		if !ok {
			return nil
		}
		return snapshotMsg{snapshot: snapshot}
	}
}

// Update handles messages.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.clampScroll()
		return model, nil

	case snapshotMsg:
		return model.applySnapshot(message.snapshot)

	case spinner.TickMsg:
		if !model.spinning {
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command

	case logRecordMsg:
		model.noticeSequence++
		model.notice = message.Summary
		model.noticeLevel = message.Level
		sequence := model.noticeSequence
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = ""
		}
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.MouseMsg:
		return model.handleMouse(message)
	}
	return model, nil
}

func (model Model) applySnapshot(snapshot feed.Snapshot) (tea.Model, tea.Cmd) {
	previous := model.snapshot
	model.snapshot = snapshot
	if snapshot.Generation != previous.Generation {
		model.cursor = 0
		model.scrollOffset = 0
		model.scroll.Reset()
	}
	model.clampScroll()

	commands := []tea.Cmd{listenForSnapshot(model.snapshots)}
	switch {
	case snapshot.IsLoading && !model.spinning:
		model.spinning = true
		commands = append(commands, model.spinner.Tick)
	case !snapshot.IsLoading:
		model.spinning = false
	}
	return model, tea.Batch(commands...)
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	if model.detail != nil {
		if key.Matches(message, model.keys.Close) {
			model.detail = nil
		}
		return model, nil
	}

	if model.focus == focusSearch {
		model.handleSearchKey(message)
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Retry):
		model.feed.Retry()
	case key.Matches(message, model.keys.Open):
		model.openDetail()
	case key.Matches(message, model.keys.Search):
		model.setFocus(focusSearch)
	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.listHeight())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.listHeight())
	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.snapshot.Items))
	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.snapshot.Items))
	}
	return model, nil
}

// handleSearchKey edits the search field. Every edit, including one
// that leaves the text too short to search on, reaches the query input.
func (model *Model) handleSearchKey(message tea.KeyMsg) {
	switch {
	case message.Type == tea.KeyBackspace:
		if model.search.HandleBackspace() {
			model.query.Input(model.search.Text)
		}
	case message.Type == tea.KeySpace:
		model.search.HandleRune(' ')
		model.query.Input(model.search.Text)
	case message.Type == tea.KeyRunes:
		for _, character := range message.Runes {
			if character == '\n' || character == '\r' {
				continue
			}
			model.search.HandleRune(character)
		}
		model.query.Input(model.search.Text)
	case key.Matches(message, model.keys.Leave):
		model.setFocus(focusList)
	}
}

func (model Model) handleMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if model.detail != nil {
		if message.Button == tea.MouseButtonLeft && message.Action == tea.MouseActionPress {
			model.detail = nil
		}
		return model, nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.scrollBy(-wheelStep)
	case tea.MouseButtonWheelDown:
		model.scrollBy(wheelStep)
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			break
		}
		if message.Y == 0 {
			model.setFocus(focusSearch)
			break
		}
		row := message.Y - listStartY
		if row < 0 || row >= model.listHeight() {
			break
		}
		index := model.scrollOffset + row
		if index >= len(model.snapshot.Items) {
			break
		}
		// A click on the already selected row opens it.
		reselected := index == model.cursor && model.focus == focusList
		model.cursor = index
		model.setFocus(focusList)
		if reselected {
			model.openDetail()
		}
	}
	return model, nil
}

func (model *Model) setFocus(region focusRegion) {
	model.focus = region
	model.search.Active = region == focusSearch
}

func (model *Model) openDetail() {
	if model.cursor < 0 || model.cursor >= len(model.snapshot.Items) {
		return
	}
	item := model.snapshot.Items[model.cursor]
	model.detail = &item
}

// moveCursor moves the selection, scrolls it into view, and reports the
// resulting position.
func (model *Model) moveCursor(delta int) {
	count := len(model.snapshot.Items)
	if count > 0 {
		model.cursor = min(max(model.cursor+delta, 0), count-1)
		visible := model.listHeight()
		if model.cursor < model.scrollOffset {
			model.scrollOffset = model.cursor
		}
		if model.cursor >= model.scrollOffset+visible {
			model.scrollOffset = model.cursor - visible + 1
		}
	}
	model.reportScroll()
}

// scrollBy moves the viewport, drags the selection along so it stays
// visible, and reports the resulting position.
func (model *Model) scrollBy(delta int) {
	model.scrollOffset += delta
	model.clampScroll()
	visible := model.listHeight()
	if model.cursor < model.scrollOffset {
		model.cursor = model.scrollOffset
	}
	if model.cursor >= model.scrollOffset+visible {
		model.cursor = model.scrollOffset + visible - 1
	}
	model.clampScroll()
	model.reportScroll()
}

// reportScroll hands the list's position to the scroll observer in
// rows. A list shorter than the viewport is always near the bottom,
// so scrolling it asks for more.
func (model *Model) reportScroll() {
	model.scroll.Observe(feed.ScrollPosition{
		Offset:         model.scrollOffset,
		ViewportHeight: model.listHeight(),
		ContentHeight:  len(model.snapshot.Items),
	})
}

func (model *Model) clampScroll() {
	count := len(model.snapshot.Items)
	model.cursor = min(max(model.cursor, 0), max(count-1, 0))
	maxOffset := max(count-model.listHeight(), 0)
	model.scrollOffset = min(max(model.scrollOffset, 0), maxOffset)
}

func (model Model) listHeight() int {
	return max(model.height-chromeRows, 1)
}

// View renders the browser.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))

	view := lipgloss.JoinVertical(lipgloss.Left,
		model.renderHeader(),
		separator,
		model.renderList(),
		model.renderStatus(),
	)

	if model.detail != nil {
		view = tui.CenterOverlay(view, model.renderDetail(), model.width, model.height)
	}
	return view
}

// renderHeader renders the search field with a result summary at the
// right edge.
func (model Model) renderHeader() string {
	var summary string
	snapshot := model.snapshot
	started := snapshot.Generation > 0
	if started && (len(snapshot.Items) > 0 || snapshot.Phase == feed.PhaseIdle) {
		count := len(snapshot.Items)
		noun := "photos"
		if count == 1 {
			noun = "photo"
		}
		summary = fmt.Sprintf("%d %s", count, noun)
		if snapshot.Exhausted {
			summary += " · all loaded"
		} else {
			summary += fmt.Sprintf(" · page %d", snapshot.Page)
		}
	}
	summaryWidth := ansi.StringWidth(summary)

	search := model.search.View(model.theme, model.width-summaryWidth-1)
	gap := max(model.width-ansi.StringWidth(search)-summaryWidth, 1)
	return search + strings.Repeat(" ", gap) +
		lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(summary)
}

func (model Model) renderList() string {
	visible := model.listHeight()
	items := model.snapshot.Items
	if len(items) == 0 {
		return model.renderEmpty(visible)
	}

	rowWidth := model.width - 1
	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(items); index++ {
		rows = append(rows, model.renderRow(items[index], index == model.cursor, rowWidth))
	}

	scrollbar := tui.RenderScrollbar(
		model.theme, visible,
		len(items), visible, model.scrollOffset,
		model.focus == focusList,
	)

	contentStyle := lipgloss.NewStyle().
		Width(rowWidth).
		Height(visible)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		contentStyle.Render(strings.Join(rows, "\n")),
		scrollbar,
	)
}

// renderRow renders one photo: a selection marker, the title, and the
// owner aligned to the right edge.
func (model Model) renderRow(item feed.Item, selected bool, rowWidth int) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	markerWidth := ansi.StringWidth(marker)
	owner := tui.Truncate(item.Owner, rowWidth/3)
	ownerWidth := ansi.StringWidth(owner)
	title = tui.Truncate(title, max(rowWidth-markerWidth-ownerWidth-1, 1))
	gap := strings.Repeat(" ", max(rowWidth-markerWidth-ansi.StringWidth(title)-ownerWidth, 1))

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Bold(model.focus == focusList).
			Width(rowWidth).
			MaxWidth(rowWidth).
			Render(marker + title + gap + owner)
	}
	return marker +
		lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(title) +
		gap +
		lipgloss.NewStyle().Foreground(model.theme.Owner).Render(owner)
}

// renderEmpty fills the list area when there are no photos to show.
func (model Model) renderEmpty(visible int) string {
	snapshot := model.snapshot
	var text string
	switch {
	case snapshot.IsLoading:
		text = model.spinner.View() + " Loading photos…"
	case snapshot.LastError != nil:
		text = "Could not load photos."
	case snapshot.Generation == 0:
		text = "Type to search photos."
	default:
		text = emptyResultsText
	}

	return lipgloss.Place(
		model.width, visible,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text),
	)
}

// renderStatus renders the bottom line: the fetch error if there is
// one, else a log notice, else fetch progress, else key help.
func (model Model) renderStatus() string {
	snapshot := model.snapshot
	switch {
	case snapshot.LastError != nil:
		hint := "  (r retry)"
		if model.focus != focusList {
			hint = "  (esc, then r to retry)"
		}
		return lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).
			Render(tui.Truncate(" "+snapshot.LastError.Error()+hint, model.width))

	case model.notice != "":
		color := model.theme.WarnForeground
		switch {
		case model.noticeLevel >= slog.LevelError:
			color = model.theme.ErrorForeground
		case model.noticeLevel < slog.LevelWarn:
			color = model.theme.FaintText
		}
		return lipgloss.NewStyle().
			Foreground(color).
			Render(tui.Truncate(" "+model.notice, model.width))

	case snapshot.IsLoading && len(snapshot.Items) > 0:
		return " " + model.spinner.View() +
			lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(" Loading more…")
	}
	return model.renderHelp()
}

func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var help string
	if model.focus == focusSearch {
		help = " [SEARCH] type to search  esc results  C-c quit"
	} else {
		help = " [LIST] q quit  j/k move  enter details  / search  r retry"
	}

	count := len(model.snapshot.Items)
	visible := model.listHeight()
	if count > visible {
		var position string
		switch {
		case model.scrollOffset == 0:
			position = "top"
		case model.scrollOffset+visible >= count:
			position = "bottom"
		default:
			position = fmt.Sprintf("%d%%", model.scrollOffset*100/(count-visible))
		}
		help += fmt.Sprintf("  [%s] %d/%d", position, model.cursor+1, count)
	} else if count > 0 {
		help += fmt.Sprintf("  %d/%d", model.cursor+1, count)
	}

	return style.Render(tui.Truncate(help, model.width))
}

// renderDetail renders the detail box for the open photo.
func (model Model) renderDetail() []string {
	item := *model.detail
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	innerWidth := min(max(model.width-8, 20), 96)
	body := []string{
		"Owner   " + item.Owner,
		"Photo   " + item.ID,
		"",
		"Image   " + photoapi.ImageURL(model.imageBaseURL, item, photoapi.SizeMedium),
		"Thumb   " + photoapi.ImageURL(model.imageBaseURL, item, photoapi.SizeThumbnail),
		"",
		"esc close",
	}
	return tui.RenderBox(model.theme, title, body, innerWidth)
}
