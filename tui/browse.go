package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/little-fluffy/notesearch/document"
	"github.com/little-fluffy/notesearch/filter"
	"github.com/little-fluffy/notesearch/meili"
)

// Searcher is the slice of the backend client the browser needs.
type Searcher interface {
	Search(ctx context.Context, q meili.Query) (*meili.Response, error)
}

const searchTimeout = 5 * time.Second

// Browser is the interactive query screen: a result list and preview pane
// over a query input and a filter input. Every change to either input
// re-queries the backend.
type Browser struct {
	app      *tview.Application
	searcher Searcher
	verbose  bool
	now      func() time.Time

	results     *tview.List
	preview     *tview.TextView
	queryInput  *tview.InputField
	filterInput *tview.InputField
	response    *tview.TextView
	debug       *tview.TextView
	errView     *tview.TextView

	renderer *glamour.TermRenderer
	matches  []document.Document
	selected []string
}

// NewBrowser creates the browser UI. verbose adds response, debug, and
// error panes below the main screen.
func NewBrowser(searcher Searcher, verbose bool) *Browser {
	b := &Browser{
		app:      tview.NewApplication(),
		searcher: searcher,
		verbose:  verbose,
		now:      time.Now,
	}

	// markdown rendering is cosmetic; plain text is an acceptable fallback
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0)); err == nil {
		b.renderer = r
	} else {
		slog.Debug("glamour renderer unavailable, using plain preview", "error", err)
	}

	b.results = tview.NewList().ShowSecondaryText(false)
	b.results.SetBorder(true)
	b.results.SetChangedFunc(func(int, string, string, rune) { b.showSelected() })

	b.preview = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	b.preview.SetBorder(true)

	b.queryInput = tview.NewInputField().SetLabel("Query: ")
	b.queryInput.SetBorder(true).SetTitle("Query input")
	b.queryInput.SetChangedFunc(func(string) { b.search() })

	b.filterInput = tview.NewInputField().SetLabel("Filter: ")
	b.filterInput.SetBorder(true).SetTitle("Filter input (e.g. 'vim OR bash AND >2w')")
	b.filterInput.SetChangedFunc(func(string) { b.search() })

	b.response = newMessageView("Server Response", tcell.ColorWhite)
	b.debug = newMessageView("Debug messages", tcell.ColorGreen)
	b.errView = newMessageView("Error messages", tcell.ColorRed)

	return b
}

func newMessageView(title string, color tcell.Color) *tview.TextView {
	v := tview.NewTextView().SetTextColor(color)
	v.SetBorder(true).SetTitle(title)
	return v
}

// Run shows the UI and blocks until the user selects a document or quits.
// It returns the IDs of the selected documents (one, for now).
func (b *Browser) Run() ([]string, error) {
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.results, 0, 1, false).
		AddItem(b.queryInput, 3, 0, true).
		AddItem(b.filterInput, 3, 0, false)

	screen := tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(b.preview, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(screen, 0, 1, true)
	if b.verbose {
		root.AddItem(b.response, 3, 0, false).
			AddItem(b.debug, 3, 0, false).
			AddItem(b.errView, 3, 0, false)
	}

	b.app.SetInputCapture(b.handleKey)
	b.app.SetRoot(root, true).SetFocus(b.queryInput)

	b.search()

	if err := b.app.Run(); err != nil {
		return nil, fmt.Errorf("run application: %w", err)
	}
	return b.selected, nil
}

func (b *Browser) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil

	case tcell.KeyEnter:
		if i := b.results.GetCurrentItem(); i >= 0 && i < len(b.matches) {
			b.selected = []string{b.matches[i].ID}
		}
		b.app.Stop()
		return nil

	case tcell.KeyTab, tcell.KeyLeft, tcell.KeyRight:
		if b.app.GetFocus() == b.queryInput {
			b.app.SetFocus(b.filterInput)
		} else {
			b.app.SetFocus(b.queryInput)
		}
		return nil

	case tcell.KeyDown, tcell.KeyCtrlN:
		b.moveSelection(1)
		return nil

	case tcell.KeyUp, tcell.KeyCtrlP:
		b.moveSelection(-1)
		return nil
	}
	return event
}

func (b *Browser) moveSelection(delta int) {
	count := b.results.GetItemCount()
	if count == 0 {
		return
	}
	// wrap around both ends
	i := (b.results.GetCurrentItem() + delta + count) % count
	b.results.SetCurrentItem(i)
	b.showSelected()
}

// search queries the backend with the current inputs and repopulates the
// result list. A filter that fails to compile is surfaced in the error pane
// and no query is sent: the user is never silently shown unfiltered results.
func (b *Browser) search() {
	q := meili.NewQuery()
	q.Query = b.queryInput.GetText()

	if raw := strings.TrimSpace(b.filterInput.GetText()); raw != "" {
		compiled, err := filter.Compile(raw, b.now())
		if err != nil {
			b.errView.SetText(fmt.Sprintf("filter %q rejected: %v", raw, err))
			return
		}
		q.Filter = compiled
	}
	b.errView.SetText("")

	if payload, err := json.Marshal(q); err == nil {
		b.debug.SetText(string(payload))
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	resp, err := b.searcher.Search(ctx, q)
	if err != nil {
		b.errView.SetText(err.Error())
		return
	}

	b.matches = resp.Hits
	b.response.SetText(fmt.Sprintf("%d hits in %dms", resp.NumHits, resp.ProcessingTimeMs))

	b.results.Clear()
	for i := range b.matches {
		b.results.AddItem(b.matches[i].Summary(), "", 0, nil)
	}
	b.showSelected()
}

// showSelected renders the highlighted document into the preview pane.
func (b *Browser) showSelected() {
	i := b.results.GetCurrentItem()
	if i < 0 || i >= len(b.matches) {
		b.preview.SetText("")
		return
	}

	doc := b.matches[i]
	content := fmt.Sprintf("# %s\n\n%s", doc.Title, doc.Body)
	if b.renderer != nil {
		if rendered, err := b.renderer.Render(content); err == nil {
			b.preview.SetText(tview.TranslateANSI(rendered))
			return
		}
	}
	b.preview.SetText(content)
}
