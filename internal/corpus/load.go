package corpus

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrColumnCount = errors.New("expected 5 or 6 columns")
	ErrBadNumber   = errors.New("not a non-negative integer")
	ErrNoTSV       = errors.New("no .tsv file found in archive")
)

// LoadError reports the line of the source that could not be read.
type LoadError struct {
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a tab-separated corpus file, or the first .tsv entry of a
// .zip archive.
func Load(path string) (*Corpus, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return loadZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open corpus %q: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func loadZip(path string) (*Corpus, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open corpus %q: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.EqualFold(filepath.Ext(f.Name), ".tsv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer rc.Close()

		c, err := Parse(rc)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", path, f.Name, err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNoTSV)
}

// Parse reads newline-delimited records. Each non-blank line holds either
// book, _, chapter, verse, text or book, _, _, chapter, verse, text.
func Parse(r io.Reader) (*Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var verses []Verse
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		var book, ch, vs, text string
		switch len(cols) {
		case 5:
			book, ch, vs, text = cols[0], cols[2], cols[3], cols[4]
		case 6:
			book, ch, vs, text = cols[0], cols[3], cols[4], cols[5]
		default:
			return nil, &LoadError{
				Line: lineno,
				Err:  fmt.Errorf("%w, got %d", ErrColumnCount, len(cols)),
			}
		}

		chapter, err := parseNumber(ch)
		if err != nil {
			return nil, &LoadError{Line: lineno, Err: fmt.Errorf("bad chapter %q: %w", ch, err)}
		}
		verse, err := parseNumber(vs)
		if err != nil {
			return nil, &LoadError{Line: lineno, Err: fmt.Errorf("bad verse %q: %w", vs, err)}
		}

		verses = append(verses, Verse{
			Book:    book,
			Chapter: chapter,
			Verse:   verse,
			Text:    text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Line: lineno + 1, Err: err}
	}

	return New(verses), nil
}

func parseNumber(tok string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 31)
	if err != nil {
		return 0, ErrBadNumber
	}
	return int(n), nil
}
