package scripture

import (
	"fmt"
	"regexp"
	"strconv"
)

// Reference is a parsed scripture reference. Verse 0 means a
// chapter-level reference; Chapter 0 means a book-level one.
type Reference struct {
	Book    string
	Chapter int
	Verse   int
}

// refPattern splits "Book Chapter[:Verse[-Verse]]". The book part is
// matched lazily so numbered books ("1 John 4:8") keep their prefix.
var refPattern = regexp.MustCompile(`^(.*?)\s+(\d+)(?:\s*:\s*(\d+)(?:\s*[-–]\s*\d+)?)?$`)

// Normalize parses a free-form scripture reference into canonical form.
// Abbreviations, ordinal prefixes and periods are resolved through the
// book table; verse ranges collapse to their opening verse. Canonical
// input parses back to itself.
func Normalize(raw string) (Reference, error) {
	if m := refPattern.FindStringSubmatch(raw); m != nil {
		book, err := ResolveBook(m[1])
		if err != nil {
			return Reference{}, fmt.Errorf("%w: %q", err, raw)
		}
		ref := Reference{Book: book}
		// \d+ capture groups, Atoi cannot fail.
		ref.Chapter, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			ref.Verse, _ = strconv.Atoi(m[3])
		}
		return ref, nil
	}

	// No chapter component; try the whole string as a bare book name.
	book, err := ResolveBook(raw)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %q", err, raw)
	}
	return Reference{Book: book}, nil
}

// String renders the canonical form: "John 3:16", "John 3" or "John"
// depending on which components are present.
func (r Reference) String() string {
	switch {
	case r.Verse > 0:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	case r.Chapter > 0:
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	default:
		return r.Book
	}
}

// ChapterRef returns the chapter-level form "Book Chapter", or "" for a
// book-level reference.
func (r Reference) ChapterRef() string {
	if r.Chapter == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d", r.Book, r.Chapter)
}

// VerseRef returns the verse-level form "Book Chapter:Verse", or "" when
// the reference carries no verse.
func (r Reference) VerseRef() string {
	if r.Verse == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Expand returns every canonical form the reference implies, coarsest
// first. A verse reference expands to its chapter form plus itself, so
// stored metadata always satisfies the chapter-presence invariant.
func (r Reference) Expand() []string {
	switch {
	case r.Verse > 0:
		return []string{r.ChapterRef(), r.VerseRef()}
	case r.Chapter > 0:
		return []string{r.ChapterRef()}
	default:
		return []string{r.Book}
	}
}
