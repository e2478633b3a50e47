package ui

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"verse-tui/internal/action"
	"verse-tui/internal/clipboard"
	"verse-tui/internal/corpus"
	"verse-tui/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fakeClipboard struct {
	text  string
	calls int
	err   error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newTestReader(t *testing.T, texts ...string) (*Reader, *fakeClipboard) {
	t.Helper()
	verses := make([]corpus.Verse, len(texts))
	for i, text := range texts {
		verses[i] = corpus.Verse{Book: "Genesis", Chapter: 1, Verse: i + 1, Text: text}
	}
	clip := &fakeClipboard{}
	r := NewReader(corpus.New(verses), clip, DefaultKeyMap(), theme.CatppuccinMocha.Styles(), true)
	if _, err := r.Update(action.OpenPassage{Key: corpus.ChapterKey{Book: "Genesis", Chapter: 1}}); err != nil {
		t.Fatalf("open: %v", err)
	}
	return r, clip
}

// press sends keys through HandleKey and applies the resulting action,
// returning the last error.
func press(t *testing.T, r *Reader, keys ...tea.KeyMsg) error {
	t.Helper()
	var err error
	for _, k := range keys {
		if a := r.HandleKey(k); a != nil {
			_, err = r.Update(a)
		}
	}
	return err
}

func assertCursor(t *testing.T, r *Reader, row, col int) {
	t.Helper()
	gotRow, gotCol := r.Cursor()
	if gotRow != row || gotCol != col {
		t.Errorf("expected cursor (%d,%d), got (%d,%d)", row, col, gotRow, gotCol)
	}
}

func TestReaderOpenResetsState(t *testing.T) {
	r, _ := newTestReader(t, "In the beginning", "And the earth")
	assertCursor(t, r, 0, 0)

	press(t, r, runes("j"), runes("l"), runes("v"))
	if !r.Visual() {
		t.Fatal("expected visual mode")
	}

	r.Update(action.OpenPassage{Key: corpus.ChapterKey{Book: "Genesis", Chapter: 1}})
	assertCursor(t, r, 0, 0)
	if r.Visual() || r.Scroll() != 0 {
		t.Errorf("expected reset, visual=%v scroll=%d", r.Visual(), r.Scroll())
	}
}

func TestReaderOpenUnknownPassage(t *testing.T) {
	r, _ := newTestReader(t, "text")
	r.Update(action.OpenPassage{Key: corpus.ChapterKey{Book: "Nowhere", Chapter: 3}})

	if _, ok := r.Open(); ok {
		t.Error("an empty passage must not be open")
	}
	if a := r.HandleKey(runes("j")); a != nil {
		t.Errorf("expected no action without a passage, got %#v", a)
	}
	if !strings.Contains(r.View(false, 40, 10), "no passage open") {
		t.Error("expected placeholder view")
	}
}

func TestReaderYankVisualScenario(t *testing.T) {
	r, clip := newTestReader(t, "In the beginning", "And the earth")

	press(t, r, runes("j"))
	assertCursor(t, r, 1, 0)

	if err := press(t, r, runes("v"), runes("l"), runes("l")); err != nil {
		t.Fatal(err)
	}
	assertCursor(t, r, 1, 2)

	if err := press(t, r, runes("y")); err != nil {
		t.Fatalf("yank: %v", err)
	}
	if clip.text != "And" {
		t.Errorf("expected %q, got %q", "And", clip.text)
	}
	if r.Visual() {
		t.Error("successful yank should leave visual mode")
	}
}

func TestReaderYankLineWithoutVisual(t *testing.T) {
	r, clip := newTestReader(t, "In the beginning", "And the earth   ")
	press(t, r, runes("j"), runes("l"), runes("y"))

	if clip.text != "And the earth" {
		t.Errorf("expected the whole row with trailing space stripped, got %q", clip.text)
	}
}

func TestReaderYankAcrossRows(t *testing.T) {
	r, clip := newTestReader(t, "alpha beta", "gamma", "delta epsilon")

	// anchor at (0,6), cursor ends at (2,4)
	for i := 0; i < 6; i++ {
		press(t, r, runes("l"))
	}
	press(t, r, runes("v"), runes("j"), runes("j"))
	assertCursor(t, r, 2, 4)

	press(t, r, runes("y"))
	want := "beta\ngamma\ndelta"
	if clip.text != want {
		t.Errorf("expected %q, got %q", want, clip.text)
	}
	if n := strings.Count(clip.text, "\n") + 1; n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
}

func TestReaderYankAcrossRowsStripsTrailingSpace(t *testing.T) {
	r, clip := newTestReader(t, "alpha beta", "gamma", "delta    epsilon")

	// anchor (0,6), cursor (2,7) ends inside the run of spaces
	for i := 0; i < 6; i++ {
		press(t, r, runes("l"))
	}
	press(t, r, runes("v"), runes("j"), runes("j"))
	for i := 0; i < 3; i++ {
		press(t, r, runes("l"))
	}
	assertCursor(t, r, 2, 7)
	if got := r.SelectionText(); got != "beta\ngamma\ndelta" {
		t.Errorf("expected trailing spaces stripped, got %q", got)
	}

	press(t, r, runes("y"))
	if clip.text != "beta\ngamma\ndelta" {
		t.Errorf("expected %q, got %q", "beta\ngamma\ndelta", clip.text)
	}
}

func TestReaderYankBackwardSelection(t *testing.T) {
	r, clip := newTestReader(t, "first line", "second line")

	press(t, r, runes("j"))
	for i := 0; i < 3; i++ {
		press(t, r, runes("l"))
	}
	// anchor (1,3); move back to (0,6)
	press(t, r, runes("v"), runes("k"))
	for i := 0; i < 3; i++ {
		press(t, r, runes("l"))
	}
	assertCursor(t, r, 0, 6)

	press(t, r, runes("y"))
	if want := "line\nseco"; clip.text != want {
		t.Errorf("expected %q, got %q", want, clip.text)
	}
}

func TestReaderYankFailureKeepsSelection(t *testing.T) {
	r, clip := newTestReader(t, "In the beginning", "And the earth")
	clip.err = errors.New("xclip missing")

	press(t, r, runes("v"), runes("l"))
	err := press(t, r, runes("y"))
	if err == nil || !errors.Is(err, clip.err) {
		t.Fatalf("expected clipboard error, got %v", err)
	}
	if !r.Visual() {
		t.Error("failed yank must keep visual mode")
	}
	if row, col := r.Anchor(); row != 0 || col != 0 {
		t.Errorf("anchor moved to (%d,%d)", row, col)
	}
	assertCursor(t, r, 0, 1)

	clip.err = nil
	if err := press(t, r, runes("y")); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if clip.text != "In" {
		t.Errorf("expected %q, got %q", "In", clip.text)
	}
	if clip.calls != 2 {
		t.Errorf("expected one clipboard call per attempt, got %d", clip.calls)
	}
}

func TestReaderYankReturnsNotice(t *testing.T) {
	r, _ := newTestReader(t, "Jesus wept.")
	follow, err := r.Update(action.Yank{})
	if err != nil {
		t.Fatal(err)
	}
	n, ok := follow.(action.Notice)
	if !ok || !strings.Contains(n.Text, "11") {
		t.Errorf("expected notice with char count, got %#v", follow)
	}
}

func TestReaderEscapeTogglesVisual(t *testing.T) {
	r, _ := newTestReader(t, "text")
	press(t, r, runes("v"))
	press(t, r, keyOf(tea.KeyEsc))
	if r.Visual() {
		t.Error("esc should cancel visual mode")
	}
	press(t, r, keyOf(tea.KeyEsc))
	if !r.Visual() {
		t.Error("esc toggles visual mode")
	}
}

func TestReaderRowMotionColumnPolicy(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		keys  []tea.KeyMsg
		row   int
		col   int
	}{
		{
			name:  "down clamps column to shorter line",
			lines: []string{"abcdefgh", "abc"},
			keys:  []tea.KeyMsg{runes("l"), runes("l"), runes("l"), runes("l"), runes("l"), runes("j")},
			row:   1,
			col:   2,
		},
		{
			name:  "down keeps column when it fits",
			lines: []string{"abcdef", "abcdef"},
			keys:  []tea.KeyMsg{runes("l"), runes("l"), runes("j")},
			row:   1,
			col:   2,
		},
		{
			name:  "down from empty line starts at column 0",
			lines: []string{"", "abcdef"},
			keys:  []tea.KeyMsg{runes("j")},
			row:   1,
			col:   0,
		},
		{
			name:  "up from column 0 lands on line end",
			lines: []string{"abcdef", "xyz"},
			keys:  []tea.KeyMsg{runes("j"), runes("k")},
			row:   0,
			col:   5,
		},
		{
			name:  "up from column 0 onto empty line",
			lines: []string{"", "xyz"},
			keys:  []tea.KeyMsg{runes("j"), runes("k")},
			row:   0,
			col:   0,
		},
		{
			name:  "up keeps column otherwise",
			lines: []string{"abcdef", "xyz"},
			keys:  []tea.KeyMsg{runes("j"), runes("l"), runes("k")},
			row:   0,
			col:   1,
		},
		{
			name:  "up at first row is a no-op",
			lines: []string{"abc", "def"},
			keys:  []tea.KeyMsg{runes("l"), runes("k")},
			row:   0,
			col:   1,
		},
		{
			name:  "down at last row is a no-op",
			lines: []string{"abc", "def"},
			keys:  []tea.KeyMsg{runes("j"), runes("l"), keyOf(tea.KeyDown)},
			row:   1,
			col:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestReader(t, tt.lines...)
			press(t, r, tt.keys...)
			assertCursor(t, r, tt.row, tt.col)
		})
	}
}

func TestReaderColumnMotionWraps(t *testing.T) {
	r, _ := newTestReader(t, "ab", "cd")

	press(t, r, runes("l"), runes("l"))
	assertCursor(t, r, 1, 0)

	press(t, r, runes("l"), runes("l"))
	assertCursor(t, r, 1, 1)

	press(t, r, runes("h"), runes("h"))
	assertCursor(t, r, 0, 1)

	press(t, r, keyOf(tea.KeyLeft), keyOf(tea.KeyLeft))
	assertCursor(t, r, 0, 0)
}

func TestReaderColumnMotionOverEmptyLine(t *testing.T) {
	r, _ := newTestReader(t, "a", "", "b")

	press(t, r, runes("l"))
	assertCursor(t, r, 1, 0)
	press(t, r, runes("l"))
	assertCursor(t, r, 2, 0)
	press(t, r, runes("h"))
	assertCursor(t, r, 1, 0)
}

func TestReaderViewportDeadZone(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("verse %d", i+1)
	}
	r, _ := newTestReader(t, lines...)

	for i := 1; i <= 6; i++ {
		press(t, r, runes("j"))
		if r.Scroll() != 0 {
			t.Fatalf("row %d: viewport moved inside the dead zone (scroll=%d)", i, r.Scroll())
		}
	}

	press(t, r, runes("j"))
	if r.Scroll() != 1 {
		t.Errorf("row 7: expected scroll 1, got %d", r.Scroll())
	}

	for i := 0; i < 6; i++ {
		press(t, r, runes("k"))
	}
	if r.Scroll() != 1 {
		t.Errorf("row 1: expected scroll to stay at 1, got %d", r.Scroll())
	}
	press(t, r, runes("k"))
	if r.Scroll() != 0 {
		t.Errorf("row 0: expected scroll 0, got %d", r.Scroll())
	}
}

func TestReaderMotionInvariants(t *testing.T) {
	lines := []string{"In the beginning", "", "x", "And the earth was without form", "", "", "and void", "ab",
		"Ωμέγα", "", "last line here", "z"}
	r, _ := newTestReader(t, lines...)
	keys := []tea.KeyMsg{runes("h"), runes("j"), runes("k"), runes("l"), runes("v")}

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 5000; step++ {
		k := keys[rng.Intn(len(keys))]
		press(t, r, k)

		row, col := r.Cursor()
		if row < 0 || row >= len(lines) {
			t.Fatalf("step %d (%s): row %d out of range", step, k, row)
		}
		n := len([]rune(lines[row]))
		if col < 0 || col > max(n-1, 0) {
			t.Fatalf("step %d (%s): col %d out of range for line of %d runes", step, k, col, n)
		}
		if s := r.Scroll(); row < s || row > s+6 {
			t.Fatalf("step %d (%s): row %d outside viewport [%d,%d]", step, k, row, s, s+6)
		}
	}
}

func TestReaderRuneColumns(t *testing.T) {
	r, clip := newTestReader(t, "Ωμέγα end")
	press(t, r, runes("v"), runes("l"), runes("l"), runes("l"), runes("l"), runes("y"))
	if clip.text != "Ωμέγα" {
		t.Errorf("expected rune-based selection, got %q", clip.text)
	}
}

func TestReaderView(t *testing.T) {
	r, _ := newTestReader(t, "In the beginning", "And the earth")
	press(t, r, runes("v"))

	out := r.View(true, 60, 12)
	for _, want := range []string{"Genesis 1", "VISUAL", "beginning", "earth"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}
}

func TestReaderViewFollowsWrappedCursorRow(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = strings.Repeat("lorem ipsum ", 6) + fmt.Sprintf("mark%02d ", i+1) + strings.Repeat("dolor sit ", 7)
	}
	r, _ := newTestReader(t, lines...)

	if out := r.View(true, 50, 22); !strings.Contains(out, "mark01") {
		t.Fatalf("first verse not rendered:\n%s", out)
	}

	for i := 0; i < 6; i++ {
		press(t, r, runes("j"))
	}
	if r.Scroll() != 0 {
		t.Fatalf("expected scroll 0, got %d", r.Scroll())
	}
	out := r.View(true, 50, 22)
	if !strings.Contains(out, "mark07") {
		t.Errorf("cursor row not rendered:\n%s", out)
	}
	if strings.Contains(out, "mark01") {
		t.Errorf("expected the window to move past the first verse:\n%s", out)
	}
	if h := lipgloss.Height(out); h != 22 {
		t.Errorf("expected a 22 line pane, got %d", h)
	}
}

var _ clipboard.Writer = (*fakeClipboard)(nil)
