package ui

import (
	"fmt"
	"io"
	"strings"

	"verse-tui/internal/action"
	"verse-tui/internal/corpus"
	"verse-tui/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type indexMode int

const (
	indexNormal indexMode = iota
	indexFiltering
)

// Index lists the chapters of the corpus and lets the user narrow the list
// by book name. Moving the selection opens the chapter in the reader.
type Index struct {
	all      []corpus.ChapterKey
	items    []corpus.ChapterKey
	selected int
	query    string
	mode     indexMode

	keys   KeyMap
	styles theme.Styles
	input  textinput.Model
	list   list.Model
}

type chapterItem corpus.ChapterKey

func (c chapterItem) FilterValue() string { return c.Book }

// chapterDelegate draws one chapter per line, marking the selection.
type chapterDelegate struct {
	styles theme.Styles
}

func (d chapterDelegate) Height() int                         { return 1 }
func (d chapterDelegate) Spacing() int                        { return 0 }
func (d chapterDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d chapterDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(chapterItem)
	if !ok {
		return
	}
	label := runewidth.Truncate(corpus.ChapterKey(c).String(), max(m.Width()-2, 1), "…")
	if index == m.Index() {
		fmt.Fprint(w, d.styles.Selected.Render("> "+label))
		return
	}
	fmt.Fprint(w, d.styles.Text.Render("  "+label))
}

func NewIndex(c *corpus.Corpus, keys KeyMap, styles theme.Styles) *Index {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "book name"
	ti.PromptStyle = styles.Mode
	ti.TextStyle = styles.Text

	l := list.New(nil, chapterDelegate{styles: styles}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	i := &Index{
		all:    c.Chapters(),
		keys:   keys,
		styles: styles,
		input:  ti,
		list:   l,
	}
	i.setItems(i.all)
	return i
}

// Selected returns the highlighted chapter. ok is false when nothing matches
// the filter.
func (i *Index) Selected() (corpus.ChapterKey, bool) {
	if len(i.items) == 0 {
		return corpus.ChapterKey{}, false
	}
	return i.items[i.selected], true
}

func (i *Index) Visible() []corpus.ChapterKey { return i.items }
func (i *Index) Query() string                { return i.query }
func (i *Index) Filtering() bool              { return i.mode == indexFiltering }

// CapturingInput implements InputCapturer.
func (i *Index) CapturingInput() bool { return i.Filtering() }

func (i *Index) HandleKey(msg tea.KeyMsg) action.Action {
	if i.mode == indexFiltering {
		return i.filteringKey(msg)
	}

	switch {
	case key.Matches(msg, i.keys.Up):
		return action.MoveSelection{Delta: -1}
	case key.Matches(msg, i.keys.Down):
		return action.MoveSelection{Delta: 1}
	case key.Matches(msg, i.keys.Filter):
		return action.StartFilter{}
	}
	return nil
}

func (i *Index) filteringKey(msg tea.KeyMsg) action.Action {
	switch {
	case key.Matches(msg, i.keys.Accept):
		return action.EndFilter{}
	case key.Matches(msg, i.keys.Backspace):
		return action.FilterBackspace{}
	case key.Matches(msg, i.keys.ArrowUp):
		return action.MoveSelection{Delta: -1}
	case key.Matches(msg, i.keys.ArrowDown):
		return action.MoveSelection{Delta: 1}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt && len(msg.Runes) > 0 {
			return action.FilterInput{Text: string(msg.Runes)}
		}
	case tea.KeySpace:
		return action.FilterInput{Text: " "}
	}
	return nil
}

func (i *Index) Update(a action.Action) (action.Action, error) {
	switch a := a.(type) {
	case action.MoveSelection:
		return i.move(a.Delta), nil

	case action.StartFilter:
		i.mode = indexFiltering
		i.setQuery("")
		i.input.Focus()

	case action.FilterInput:
		if i.mode == indexFiltering {
			i.setQuery(i.query + a.Text)
		}

	case action.FilterBackspace:
		if i.mode == indexFiltering && i.query != "" {
			q := []rune(i.query)
			i.setQuery(string(q[:len(q)-1]))
		}

	case action.EndFilter:
		i.mode = indexNormal
		i.input.Blur()
	}
	return nil, nil
}

// move shifts the selection by delta without wrapping and reports the newly
// selected chapter, or nil when the selection did not change.
func (i *Index) move(delta int) action.Action {
	next := i.selected + delta
	if next < 0 || next >= len(i.items) || next == i.selected {
		return nil
	}
	i.selected = next
	i.list.Select(i.selected)
	return action.OpenPassage{Key: i.items[i.selected]}
}

func (i *Index) setQuery(q string) {
	i.query = q
	i.input.SetValue(q)
	i.input.CursorEnd()
	i.setItems(filterChapters(i.all, q))
}

// setItems replaces the visible chapters and clamps the selection to them.
func (i *Index) setItems(items []corpus.ChapterKey) {
	i.items = items
	if i.selected >= len(items) {
		i.selected = max(len(items)-1, 0)
	}

	li := make([]list.Item, len(items))
	for n, k := range items {
		li[n] = chapterItem(k)
	}
	i.list.SetItems(li)
	i.list.Select(i.selected)
}

// filterChapters keeps the chapters whose book name contains query,
// ignoring case. An empty query keeps everything.
func filterChapters(all []corpus.ChapterKey, query string) []corpus.ChapterKey {
	if query == "" {
		return all
	}
	q := strings.ToLower(query)
	var out []corpus.ChapterKey
	for _, k := range all {
		if strings.Contains(strings.ToLower(k.Book), q) {
			out = append(out, k)
		}
	}
	return out
}

func (i *Index) View(focused bool, width, height int) string {
	style := i.styles.Pane
	if focused {
		style = i.styles.PaneFocused
	}
	innerW, innerH := innerSize(style, width, height)

	title := "Books"
	if i.query != "" {
		title = fmt.Sprintf("Books (%d/%d)", len(i.items), len(i.all))
	}
	lines := []string{i.styles.Title.Render(runewidth.Truncate(title, innerW, "…"))}

	switch {
	case i.mode == indexFiltering:
		i.input.Width = max(innerW-2, 1)
		lines = append(lines, i.input.View())
	case i.query != "":
		lines = append(lines, i.styles.Muted.Render(runewidth.Truncate("/"+i.query, innerW, "…")))
	}

	listH := max(innerH-len(lines), 1)
	if len(i.items) == 0 {
		lines = append(lines, i.styles.Muted.Render("no matches"))
	} else {
		i.list.SetSize(innerW, listH)
		i.list.Select(i.selected)
		lines = append(lines, i.list.View())
	}

	return pane(style, width, height, lipgloss.JoinVertical(lipgloss.Left, lines...))
}
