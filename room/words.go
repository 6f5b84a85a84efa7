/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// WordChoices is the number of words offered to a drawer.
const WordChoices = 3

// DefaultWords is the built-in pool.
var DefaultWords = []string{
	"Apple", "Dog", "Car", "House", "Tree",
	"Cat", "Sun", "Moon", "Ball", "Star",
}

// IntN returns a uniform value in [0, n).
type IntN func(n int) int

type WordPool struct {
	words []string
}

// NewWordPool trims and de-duplicates words.
func NewWordPool(words []string) (*WordPool, error) {
	seen := make(map[string]bool, len(words))
	pool := make([]string, 0, len(words))

	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		pool = append(pool, w)
	}

	if len(pool) < WordChoices {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewWords, len(pool))
	}

	return &WordPool{words: pool}, nil
}

func (p *WordPool) Len() int {
	return len(p.words)
}

// Sample draws n distinct words without replacement, in draw order.
func (p *WordPool) Sample(n int, intn IntN) []string {
	if n > len(p.words) {
		n = len(p.words)
	}

	words := make([]string, len(p.words))
	copy(words, p.words)

	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + intn(len(words)-i)
		words[i], words[j] = words[j], words[i]
	}

	return words[:n]
}

// ReadWords parses a CSV word list; the first column of each row is the word.
func ReadWords(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var words []string

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		words = append(words, record[0])
	}

	return words, nil
}

// LoadWords reads a CSV word list from path.
func LoadWords(path string) (*WordPool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return NewWordPool(words)
}
