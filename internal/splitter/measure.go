package splitter

import "strings"

// Measure defines the unit in which chunk budgets are counted.
// Runes counts characters; Words counts whitespace-separated tokens.
// The same measure drives the size cap, the overlap tail, and the
// hard-cap split of oversized units.
type Measure interface {
	// Count returns the length of s in measurement units.
	Count(s string) int

	// Tail returns the trailing n units of s.
	// Returns s unchanged when it holds fewer than n units.
	Tail(s string, n int) string

	// Cut slices s into consecutive pieces of at most n units each.
	Cut(s string, n int) []string
}

// Runes returns a Measure counting Unicode characters.
func Runes() Measure {
	return runeMeasure{}
}

// Words returns a Measure counting whitespace-separated tokens.
func Words() Measure {
	return wordMeasure{}
}

type runeMeasure struct{}

func (runeMeasure) Count(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func (m runeMeasure) Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func (m runeMeasure) Cut(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	r := []rune(s)
	var parts []string
	for start := 0; start < len(r); start += n {
		end := start + n
		if end > len(r) {
			end = len(r)
		}
		parts = append(parts, string(r[start:end]))
	}
	return parts
}

type wordMeasure struct{}

func (wordMeasure) Count(s string) int {
	return len(strings.Fields(s))
}

func (m wordMeasure) Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[len(words)-n:], " ")
}

func (m wordMeasure) Cut(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	words := strings.Fields(s)
	var parts []string
	for start := 0; start < len(words); start += n {
		end := start + n
		if end > len(words) {
			end = len(words)
		}
		parts = append(parts, strings.Join(words[start:end], " "))
	}
	return parts
}
