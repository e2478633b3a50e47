package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"verse-tui/internal/action"
	"verse-tui/internal/clipboard"
	"verse-tui/internal/corpus"
	"verse-tui/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// scrollMargin is the number of rows kept between the cursor and either
// edge of the viewport. The cursor may sit anywhere in
// [scroll, scroll+2*scrollMargin] before the viewport moves.
const scrollMargin = 3

// Reader shows one chapter and keeps a vim-like cursor over its verses.
// Columns count runes, not bytes.
type Reader struct {
	corpus *corpus.Corpus
	clip   clipboard.Writer

	keys         KeyMap
	styles       theme.Styles
	verseNumbers bool

	open   bool
	key    corpus.ChapterKey
	verses []corpus.Verse
	lines  [][]rune

	row, col             int
	anchorRow, anchorCol int
	visual               bool
	scroll               int
}

func NewReader(c *corpus.Corpus, clip clipboard.Writer, keys KeyMap, styles theme.Styles, verseNumbers bool) *Reader {
	return &Reader{
		corpus:       c,
		clip:         clip,
		keys:         keys,
		styles:       styles,
		verseNumbers: verseNumbers,
	}
}

// Open returns the chapter being read.
func (r *Reader) Open() (corpus.ChapterKey, bool) { return r.key, r.open }

func (r *Reader) Cursor() (row, col int) { return r.row, r.col }
func (r *Reader) Anchor() (row, col int) { return r.anchorRow, r.anchorCol }
func (r *Reader) Visual() bool           { return r.visual }
func (r *Reader) Scroll() int            { return r.scroll }

func (r *Reader) HandleKey(msg tea.KeyMsg) action.Action {
	if !r.open {
		return nil
	}

	switch {
	case key.Matches(msg, r.keys.Down):
		return action.MoveRow{Delta: 1}
	case key.Matches(msg, r.keys.Up):
		return action.MoveRow{Delta: -1}
	case key.Matches(msg, r.keys.Left):
		return action.MoveColumn{Delta: -1}
	case key.Matches(msg, r.keys.Right):
		return action.MoveColumn{Delta: 1}
	case key.Matches(msg, r.keys.Visual), key.Matches(msg, r.keys.Escape):
		return action.ToggleVisual{}
	case key.Matches(msg, r.keys.Yank):
		return action.Yank{}
	}
	return nil
}

func (r *Reader) Update(a action.Action) (action.Action, error) {
	if a, ok := a.(action.OpenPassage); ok {
		r.openPassage(a.Key)
		return nil, nil
	}
	if !r.open {
		return nil, nil
	}

	switch a := a.(type) {
	case action.MoveRow:
		r.moveRow(a.Delta)
	case action.MoveColumn:
		r.moveColumn(a.Delta)
	case action.ToggleVisual:
		r.toggleVisual()
	case action.Yank:
		return r.yank()
	}
	return nil, nil
}

func (r *Reader) openPassage(k corpus.ChapterKey) {
	verses := r.corpus.Passage(k.Book, k.Chapter)

	r.key = k
	r.open = len(verses) > 0
	r.verses = verses
	r.lines = make([][]rune, len(verses))
	for n, v := range verses {
		r.lines[n] = []rune(v.Text)
	}
	r.row, r.col = 0, 0
	r.anchorRow, r.anchorCol = 0, 0
	r.visual = false
	r.scroll = 0
}

func (r *Reader) lineLen(row int) int {
	return len(r.lines[row])
}

func lastCol(n int) int {
	return max(n-1, 0)
}

func (r *Reader) moveRow(delta int) {
	next := max(min(r.row+delta, len(r.lines)-1), 0)
	if next == r.row {
		return
	}

	oldLen, newLen := r.lineLen(r.row), r.lineLen(next)
	switch {
	case delta > 0 && r.col >= oldLen:
		r.col = 0
	case delta < 0 && r.col == 0:
		r.col = lastCol(newLen)
	default:
		r.col = min(r.col, lastCol(newLen))
	}
	r.row = next
	r.ensureVisible()
}

func (r *Reader) moveColumn(delta int) {
	switch {
	case delta > 0:
		if r.col+1 < r.lineLen(r.row) {
			r.col++
			return
		}
		if r.row+1 < len(r.lines) {
			r.row++
			r.col = 0
			r.ensureVisible()
		}
	case delta < 0:
		if r.col > 0 {
			r.col--
			return
		}
		if r.row > 0 {
			r.row--
			r.col = lastCol(r.lineLen(r.row))
			r.ensureVisible()
		}
	}
}

func (r *Reader) ensureVisible() {
	switch {
	case r.row < r.scroll:
		r.scroll = r.row
	case r.row > r.scroll+2*scrollMargin:
		r.scroll = r.row - 2*scrollMargin
	}
}

func (r *Reader) toggleVisual() {
	if r.visual {
		r.visual = false
		return
	}
	r.visual = true
	r.anchorRow, r.anchorCol = r.row, r.col
}

// span is the selected part [start, end) of one row.
type span struct {
	row, start, end int
}

// selection returns the rows covered by the visual selection, or the whole
// current row when visual mode is off.
func (r *Reader) selection() []span {
	if !r.visual {
		return []span{{row: r.row, start: 0, end: r.lineLen(r.row)}}
	}

	sRow, sCol, eRow, eCol := r.anchorRow, r.anchorCol, r.row, r.col
	if eRow < sRow || (eRow == sRow && eCol < sCol) {
		sRow, sCol, eRow, eCol = eRow, eCol, sRow, sCol
	}

	spans := make([]span, 0, eRow-sRow+1)
	for row := sRow; row <= eRow; row++ {
		n := r.lineLen(row)
		start, end := 0, n
		if row == sRow {
			start = min(sCol, n)
		}
		if row == eRow {
			end = min(eCol+1, n)
		}
		spans = append(spans, span{row: row, start: start, end: max(end, start)})
	}
	return spans
}

// SelectionText returns what a yank would copy.
func (r *Reader) SelectionText() string {
	if !r.open {
		return ""
	}
	parts := make([]string, 0, 1)
	for _, s := range r.selection() {
		parts = append(parts, string(r.lines[s.row][s.start:s.end]))
	}
	return strings.TrimRightFunc(strings.Join(parts, "\n"), unicode.IsSpace)
}

func (r *Reader) yank() (action.Action, error) {
	text := r.SelectionText()
	if err := r.clip.WriteAll(text); err != nil {
		return nil, fmt.Errorf("yank: %w", err)
	}
	r.visual = false
	return action.Notice{Text: fmt.Sprintf("yanked %d chars", utf8.RuneCountInString(text))}, nil
}

func (r *Reader) View(focused bool, width, height int) string {
	style := r.styles.Pane
	if focused {
		style = r.styles.PaneFocused
	}
	innerW, innerH := innerSize(style, width, height)

	if !r.open {
		title := r.styles.Title.Render("Reader")
		return pane(style, width, height, title+"\n"+r.styles.Muted.Render("no passage open"))
	}

	title := r.styles.Title.Render(r.key.String())
	if r.visual {
		title += "  " + r.styles.Mode.Render("-- VISUAL --")
	}
	title += r.styles.Muted.Render(fmt.Sprintf("  %d:%d", r.verses[r.row].Verse, r.col+1))

	highlight := make(map[int]span)
	for _, s := range r.selection() {
		highlight[s.row] = s
	}

	bodyH := max(innerH-1, 1)
	wrap := lipgloss.NewStyle().Width(innerW)
	rows := make([]string, 0, bodyH)

	// top and bottom bound the wrapped lines of the cursor row.
	used, top, bottom := 0, 0, 0
	for row := r.scroll; row < len(r.lines); row++ {
		if row > r.row && used >= max(bottom, bodyH) {
			break
		}
		line := r.renderRow(row, highlight)
		if r.verseNumbers {
			line = r.styles.VerseNum.Render(fmt.Sprintf("%d ", r.verses[row].Verse)) + line
		}
		wrapped := wrap.Render(line)
		h := lipgloss.Height(wrapped)
		if row == r.row {
			top, bottom = used, used+h
		}
		used += h
		rows = append(rows, wrapped)
	}

	vp := viewport.New(innerW, bodyH)
	vp.SetContent(strings.Join(rows, "\n"))
	if bottom > bodyH {
		vp.SetYOffset(min(top, bottom-bodyH))
	}

	return pane(style, width, height, lipgloss.JoinVertical(lipgloss.Left, title, vp.View()))
}

// renderRow styles one line: selected runes highlighted, the cursor rune
// reversed.
func (r *Reader) renderRow(row int, highlight map[int]span) string {
	line := r.lines[row]
	if len(line) == 0 {
		if row == r.row {
			return r.styles.Cursor.Render(" ")
		}
		return ""
	}

	hl, hasHL := highlight[row]
	kind := func(j int) int {
		switch {
		case row == r.row && j == r.col:
			return 2
		case hasHL && j >= hl.start && j < hl.end:
			return 1
		}
		return 0
	}
	styles := [...]lipgloss.Style{r.styles.Text, r.styles.Highlight, r.styles.Cursor}

	var sb strings.Builder
	start := 0
	for j := 1; j <= len(line); j++ {
		if j == len(line) || kind(j) != kind(start) {
			sb.WriteString(styles[kind(start)].Render(string(line[start:j])))
			start = j
		}
	}
	return sb.String()
}
