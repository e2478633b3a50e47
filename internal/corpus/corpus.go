package corpus

import "fmt"

// Verse is a single record of the corpus.
type Verse struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// ChapterKey identifies one chapter of one book.
type ChapterKey struct {
	Book    string
	Chapter int
}

func (k ChapterKey) String() string {
	return fmt.Sprintf("%s %d", k.Book, k.Chapter)
}

// Corpus holds the verses in load order. It is never modified after New,
// so a single *Corpus can be read from several components at once.
type Corpus struct {
	verses   []Verse
	chapters []ChapterKey
}

// New takes ownership of verses.
func New(verses []Verse) *Corpus {
	c := &Corpus{verses: verses}
	c.chapters = dedupChapters(verses)
	return c
}

func dedupChapters(verses []Verse) []ChapterKey {
	seen := make(map[ChapterKey]struct{})
	var keys []ChapterKey
	for _, v := range verses {
		k := ChapterKey{Book: v.Book, Chapter: v.Chapter}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of verses.
func (c *Corpus) Len() int {
	return len(c.verses)
}

// Chapters returns every distinct (book, chapter) pair in the order it
// first appears in the corpus.
func (c *Corpus) Chapters() []ChapterKey {
	out := make([]ChapterKey, len(c.chapters))
	copy(out, c.chapters)
	return out
}

// Passage returns the verses of one chapter in load order. An unknown
// chapter yields an empty slice.
func (c *Corpus) Passage(book string, chapter int) []Verse {
	var verses []Verse
	for _, v := range c.verses {
		if v.Book == book && v.Chapter == chapter {
			verses = append(verses, v)
		}
	}
	return verses
}
