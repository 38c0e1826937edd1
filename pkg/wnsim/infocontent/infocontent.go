// Package infocontent holds corpus frequency counts for synsets and derives
// their information content.
package infocontent

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// HeaderPrefix starts the first line of every frequency file.
const HeaderPrefix = "wnver::"

// rootMarker flags a line whose frequency counts towards the root of its POS.
const rootMarker = "ROOT"

// Table maps synset keys ("<offset><pos>") to occurrence counts and keeps
// the aggregated root frequency per part of speech.
type Table struct {
	version string
	freq    map[string]float64
	root    map[wordnet.POS]float64
}

// New creates an empty table with zero root frequencies.
func New() *Table {
	return &Table{
		freq: make(map[string]float64),
		root: map[wordnet.POS]float64{
			wordnet.Noun: 0,
			wordnet.Verb: 0,
		},
	}
}

// Load reads a frequency file.
//
// Format:
//
//	wnver::3.0
//	1740n 128767 ROOT
//	2084071n 43
//
// Reading stops at the first blank line. The header must name
// dictVersion.
func Load(r io.Reader, dictVersion string) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: read header: %w", internalerr.ErrInvalidConfig, err)
		}
		return nil, fmt.Errorf("%w: %w: missing header", internalerr.ErrInvalidConfig, internalerr.ErrMalformedFile)
	}

	header := strings.TrimRight(scanner.Text(), "\r")
	if !strings.HasPrefix(header, HeaderPrefix) {
		return nil, fmt.Errorf("%w: %w: header %q", internalerr.ErrInvalidConfig, internalerr.ErrMalformedFile, header)
	}
	if !strings.HasSuffix(header, "::"+dictVersion) {
		return nil, fmt.Errorf("%w: %w: frequency file is for %q, dictionary is %q",
			internalerr.ErrInvalidConfig, internalerr.ErrVersionMismatch,
			strings.TrimPrefix(header, HeaderPrefix), dictVersion)
	}

	t := New()
	t.version = strings.TrimPrefix(header, HeaderPrefix)

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if err := t.parseLine(line); err != nil {
			return nil, fmt.Errorf("%w: %w: line %d: %v", internalerr.ErrInvalidConfig, internalerr.ErrMalformedFile, lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", internalerr.ErrInvalidConfig, lineNum+1, err)
	}

	return t, nil
}

func (t *Table) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("expected key and frequency, got %q", line)
	}

	freq, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("frequency %q: %v", fields[1], err)
	}
	if freq < 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return fmt.Errorf("frequency %q must be a finite non-negative number", fields[1])
	}

	root := len(fields) == 3 && fields[2] == rootMarker
	if root {
		if _, ok := posOfKey(fields[0]); !ok {
			return fmt.Errorf("key %q has no POS suffix", fields[0])
		}
	}

	t.Add(fields[0], freq, root)
	return nil
}

// Add records freq for key. When root is set, freq is also added to the root
// frequency of the key's POS (its last character).
func (t *Table) Add(key string, freq float64, root bool) {
	t.freq[key] = freq
	if !root {
		return
	}
	if pos, ok := posOfKey(key); ok {
		t.root[pos] += freq
	}
}

// Version returns the WordNet version named by the file header.
func (t *Table) Version() string { return t.version }

// Len returns the number of synset entries.
func (t *Table) Len() int { return len(t.freq) }

// Frequency returns the recorded count for s, or 0.
func (t *Table) Frequency(s *wordnet.Synset) float64 {
	return t.freq[s.ID().String()]
}

// RootFrequency returns the aggregated root frequency for pos, or 0.
func (t *Table) RootFrequency(pos wordnet.POS) float64 {
	return t.root[pos]
}

// IC returns the information content -ln(freq(s)/freq(root)) of s.
//
// IC is only defined for nouns and verbs; every other synset, and any synset
// without a positive frequency, has IC 0.
func (t *Table) IC(s *wordnet.Synset) float64 {
	if s.POS != wordnet.Noun && s.POS != wordnet.Verb {
		return 0
	}

	freq := t.Frequency(s)
	if freq == 0 {
		return 0
	}

	rootFreq := t.RootFrequency(s.POS)
	if rootFreq <= 0 {
		return 0
	}

	prob := freq / rootFreq
	if prob <= 0 {
		return 0
	}

	ic := -math.Log(prob)
	if ic == 0 {
		// -ln(1) is -0
		return 0
	}
	return ic
}

func posOfKey(key string) (wordnet.POS, bool) {
	if key == "" {
		return 0, false
	}
	return wordnet.POSForKey(key[len(key)-1:])
}
