package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"verse-tui/internal/config"
	"verse-tui/internal/corpus"
	"verse-tui/internal/theme"
	"verse-tui/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	ErrNoCorpus   = errors.New("no corpus given (pass a path or set corpus in the config file)")
	ErrNoChapters = errors.New("corpus has no verses")
	ErrNotTTY     = errors.New("verse-tui needs an interactive terminal")
)

type options struct {
	configPath string
	theme      string
	indexWidth int
	debug      string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "verse-tui [corpus.tsv]",
		Short:        "Browse and copy from a tab-separated scripture corpus",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Read a corpus
  verse-tui kjv.tsv

  # Use the corpus from ~/.config/verse-tui/config.toml
  verse-tui

  # Write a debug log while reading
  verse-tui --debug debug.log kjv.tsv
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (.toml or .yaml)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "colour theme ("+strings.Join(theme.Names(), ", ")+")")
	cmd.Flags().IntVar(&opts.indexWidth, "index-width", 0, "width of the book list")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "write a debug log to this file")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newThemesCmd())
	return cmd
}

// resolve merges the config file with flags and positional arguments.
func resolve(opts *options, args []string) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if len(args) > 0 {
		cfg.Corpus = args[0]
	}
	if opts.theme != "" {
		cfg.Theme = strings.ToLower(opts.theme)
	}
	if opts.indexWidth > 0 {
		cfg.IndexWidth = config.ClampIndexWidth(opts.indexWidth)
	}
	if cfg.Corpus == "" {
		return config.Config{}, ErrNoCorpus
	}
	return cfg, nil
}

func loadCorpus(path string) (*corpus.Corpus, error) {
	c, err := corpus.Load(path)
	if err != nil {
		return nil, err
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoChapters)
	}
	return c, nil
}

func runTUI(cmd *cobra.Command, opts *options, args []string) error {
	if opts.debug != "" {
		f, err := tea.LogToFile(opts.debug, "verse-tui")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := resolve(opts, args)
	if err != nil {
		return err
	}
	if _, ok := theme.Lookup(cfg.Theme); !ok {
		log.Printf("unknown theme %q, using default", cfg.Theme)
	}

	c, err := loadCorpus(cfg.Corpus)
	if err != nil {
		return err
	}
	log.Printf("loaded %d verses from %s", c.Len(), cfg.Corpus)

	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTTY
	}

	app := ui.NewApp(c, ui.Options{
		Theme:        theme.GetTheme(cfg.Theme),
		IndexWidth:   cfg.IndexWidth,
		VerseNumbers: cfg.ShowVerseNumbers(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [corpus.tsv]",
		Short: "Validate a corpus file and print its size",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(opts, args)
			if err != nil {
				return err
			}
			c, err := loadCorpus(cfg.Corpus)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d verses, %d chapters\n", cfg.Corpus, c.Len(), len(c.Chapters()))
			return nil
		},
	}
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List colour themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range theme.Names() {
				t, _ := theme.Lookup(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", name, t.Name)
			}
		},
	}
}
