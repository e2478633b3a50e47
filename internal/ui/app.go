package ui

import (
	"log"

	"verse-tui/internal/action"
	"verse-tui/internal/clipboard"
	"verse-tui/internal/corpus"
	"verse-tui/internal/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures NewApp.
type Options struct {
	Theme        theme.Theme
	IndexWidth   int
	VerseNumbers bool
	Clipboard    clipboard.Writer
}

// App owns the panels, routes keys to the focused one and fans every
// resulting action out to all of them.
type App struct {
	index      *Index
	reader     *Reader
	components []Component
	focus      int
	queue      *action.Queue

	keys       KeyMap
	help       help.Model
	styles     theme.Styles
	indexWidth int

	width     int
	height    int
	status    string
	statusErr bool
}

type actionsPendingMsg struct{}

func NewApp(c *corpus.Corpus, opts Options) *App {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}
	if opts.IndexWidth <= 0 {
		opts.IndexWidth = 28
	}

	keys := DefaultKeyMap()
	styles := opts.Theme.Styles()

	h := help.New()
	h.Styles.ShortKey = styles.Title
	h.Styles.ShortDesc = styles.Muted
	h.Styles.FullKey = styles.Title
	h.Styles.FullDesc = styles.Muted

	a := &App{
		index:      NewIndex(c, keys, styles),
		reader:     NewReader(c, opts.Clipboard, keys, styles, opts.VerseNumbers),
		queue:      action.NewQueue(),
		keys:       keys,
		help:       h,
		styles:     styles,
		indexWidth: opts.IndexWidth,
		width:      80,
		height:     24,
	}
	a.components = []Component{a.index, a.reader}

	if k, ok := a.index.Selected(); ok {
		a.Dispatch(action.OpenPassage{Key: k})
	}
	return a
}

func (a *App) Index() *Index   { return a.index }
func (a *App) Reader() *Reader { return a.reader }

// Focused returns the component receiving key presses.
func (a *App) Focused() Component { return a.components[a.focus] }

// Status returns the status line and whether it reports an error.
func (a *App) Status() (string, bool) { return a.status, a.statusErr }

// Queue exposes the action queue so other goroutines can post actions.
// They are applied on the UI goroutine.
func (a *App) Queue() *action.Queue { return a.queue }

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("verse-tui"),
		a.waitForActions(),
	)
}

func (a *App) waitForActions() tea.Cmd {
	return func() tea.Msg {
		<-a.queue.Wait()
		return actionsPendingMsg{}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case actionsPendingMsg:
		a.drain()
		return a, a.waitForActions()

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.ForceQuit) {
		return tea.Quit
	}

	focused := a.Focused()
	if !capturing(focused) {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return tea.Quit
		case key.Matches(msg, a.keys.FocusNext):
			a.focus = (a.focus + 1) % len(a.components)
			return nil
		case key.Matches(msg, a.keys.FocusPrev):
			a.focus = (a.focus + len(a.components) - 1) % len(a.components)
			return nil
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return nil
		}
	}

	a.Dispatch(focused.HandleKey(msg))
	return nil
}

// Dispatch queues act and applies everything pending, including follow-up
// actions, before returning.
func (a *App) Dispatch(act action.Action) {
	if act == nil {
		return
	}
	a.status, a.statusErr = "", false
	a.queue.Push(act)
	a.drain()
}

func (a *App) drain() {
	for {
		act, ok := a.queue.Pop()
		if !ok {
			return
		}
		if n, ok := act.(action.Notice); ok {
			a.status, a.statusErr = n.Text, false
		}

		for _, c := range a.components {
			follow, err := c.Update(act)
			if err != nil {
				log.Printf("action %T: %v", act, err)
				a.status, a.statusErr = err.Error(), true
			}
			a.queue.Push(follow)
		}
	}
}

// View implements tea.Model
func (a *App) View() string {
	footer := a.footer()
	bodyH := max(a.height-lipgloss.Height(footer), 3)

	indexW := min(a.indexWidth, max(a.width/2, 1))
	readerW := max(a.width-indexW, 1)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.index.View(a.focus == 0, indexW, bodyH),
		a.reader.View(a.focus == 1, readerW, bodyH),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (a *App) footer() string {
	var status string
	switch {
	case a.status == "":
	case a.statusErr:
		status = a.styles.StatusError.Render("Error: " + a.status)
	default:
		status = a.styles.Status.Render(a.status)
	}

	switch {
	case a.help.ShowAll && a.statusErr:
		return lipgloss.JoinVertical(lipgloss.Left, status, a.help.View(a.keys))
	case a.help.ShowAll || status == "":
		return a.help.View(a.keys)
	}
	return status
}
