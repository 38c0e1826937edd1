// Package similarity scores the semantic similarity of WordNet synsets and
// words with information-content measures.
package similarity

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wnsim/pkg/wnsim/config"
	"github.com/cognicore/wnsim/pkg/wnsim/domainmap"
	"github.com/cognicore/wnsim/pkg/wnsim/infocontent"
	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/lcs"
	"github.com/cognicore/wnsim/pkg/wnsim/simcache"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// Measure scores synset pairs with one formula. It is not safe for
// concurrent use.
type Measure struct {
	def     Definition
	opts    config.Options
	dict    wordnet.Dictionary
	cache   *simcache.Cache
	ic      *infocontent.Table
	domain  *domainmap.Table
	finder  *lcs.Finder
	logger  *slog.Logger
	opener  config.Opener
	entropy *ulid.MonotonicEntropy
}

// Option customises measure construction.
type Option func(*Measure)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Measure) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithOpener sets how mapping and frequency URIs are opened.
func WithOpener(opener config.Opener) Option {
	return func(m *Measure) {
		if opener != nil {
			m.opener = opener
		}
	}
}

// WithInfoContent uses a preloaded frequency table instead of opening the
// infocontent URI.
func WithInfoContent(table *infocontent.Table) Option {
	return func(m *Measure) { m.ic = table }
}

// New creates a measure from opts. Resources are loaded in the order: cache,
// domain mapping, root flag, frequency table.
func New(ctx context.Context, dict wordnet.Dictionary, opts config.Options, options ...Option) (*Measure, error) {
	if dict == nil {
		return nil, fmt.Errorf("%w: nil dictionary", internalerr.ErrInvalidInput)
	}

	def, err := Lookup(opts.SimType)
	if err != nil {
		return nil, err
	}

	m := &Measure{
		def:     def,
		opts:    opts,
		dict:    dict,
		logger:  slog.Default(),
		opener:  config.DefaultOpener{},
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range options {
		opt(m)
	}

	m.cache = simcache.New(opts.CacheSize)

	m.domain = domainmap.New()
	if opts.MappingURI != "" {
		if err := m.loadMapping(ctx, opts.MappingURI); err != nil {
			return nil, err
		}
	}

	if m.ic == nil {
		if opts.InfoContentURI == "" {
			return nil, fmt.Errorf("%w: %w: %s", internalerr.ErrInvalidConfig, internalerr.ErrMissingParam, config.KeyInfoContent)
		}
		if err := m.loadInfoContent(ctx, opts.InfoContentURI); err != nil {
			return nil, err
		}
	}

	m.finder = lcs.NewFinder(dict, m.ic, opts.SingleRoot)

	m.logger.Debug("similarity measure ready",
		"measure", def.Name,
		"cache", opts.CacheSize,
		"single_root", opts.SingleRoot,
		"mappings", m.domain.Len(),
		"frequencies", m.ic.Len())
	return m, nil
}

// Build parses params and creates the measure they describe. Unrecognised
// parameters are ignored.
func Build(ctx context.Context, dict wordnet.Dictionary, params map[string]string, options ...Option) (*Measure, error) {
	opts, rest, err := config.ParseOptions(params)
	if err != nil {
		return nil, err
	}
	logger := optionLogger(options)
	for k := range rest {
		logger.Debug("ignoring unknown parameter", "key", k)
	}
	return New(ctx, dict, opts, options...)
}

// NewFromFile reads a parameter file and builds the measure it describes.
// Relative resource paths resolve against the file's directory.
func NewFromFile(ctx context.Context, dict wordnet.Dictionary, path string, options ...Option) (*Measure, error) {
	params, err := config.LoadParamsFile(path, optionLogger(options))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", internalerr.ErrInvalidConfig, path, err)
	}

	base := []Option{WithOpener(config.DefaultOpener{Base: filepath.Dir(path)})}
	return Build(ctx, dict, params, append(base, options...)...)
}

func optionLogger(options []Option) *slog.Logger {
	probe := &Measure{logger: slog.Default()}
	for _, opt := range options {
		opt(probe)
	}
	return probe.logger
}

func (m *Measure) loadMapping(ctx context.Context, uri string) error {
	rc, err := m.opener.Open(ctx, uri)
	if err != nil {
		return fmt.Errorf("%w: open mapping %s: %w", internalerr.ErrInvalidConfig, uri, err)
	}
	defer rc.Close()

	if err := m.domain.Load(ctx, rc, m.Synsets, m.logger); err != nil {
		return fmt.Errorf("%w: load mapping %s: %w", internalerr.ErrInvalidConfig, uri, err)
	}
	return nil
}

func (m *Measure) loadInfoContent(ctx context.Context, uri string) error {
	rc, err := m.opener.Open(ctx, uri)
	if err != nil {
		return fmt.Errorf("%w: open infocontent %s: %w", internalerr.ErrInvalidConfig, uri, err)
	}
	defer rc.Close()

	table, err := infocontent.Load(rc, m.dict.Version())
	if err != nil {
		return fmt.Errorf("load infocontent %s: %w", uri, err)
	}
	m.ic = table
	return nil
}

// Name returns the canonical measure name.
func (m *Measure) Name() string { return m.def.Name }

// Options returns the options the measure was built with.
func (m *Measure) Options() config.Options { return m.opts }

// Dictionary returns the backing dictionary.
func (m *Measure) Dictionary() wordnet.Dictionary { return m.dict }

// InfoContent returns the frequency table.
func (m *Measure) InfoContent() *infocontent.Table { return m.ic }

// DomainMap returns the domain mapping table.
func (m *Measure) DomainMap() *domainmap.Table { return m.domain }

// CacheStats reports cache usage.
func (m *Measure) CacheStats() simcache.Stats { return m.cache.Stats() }

// IC returns the information content of s.
func (m *Measure) IC(s *wordnet.Synset) float64 { return m.ic.IC(s) }

// LCS returns the lowest common subsumer of s1 and s2, or nil.
func (m *Measure) LCS(ctx context.Context, s1, s2 *wordnet.Synset) (*wordnet.Synset, error) {
	return m.finder.ByIC(ctx, s1, s2)
}

// Similarity scores s1 against s2. Synsets of different POS score 0.
func (m *Measure) Similarity(ctx context.Context, s1, s2 *wordnet.Synset) (float64, error) {
	if s1.POS != s2.POS {
		return 0, nil
	}

	if cached, ok := m.cache.Lookup(s1, s2); ok {
		return cached, nil
	}

	ic1 := m.ic.IC(s1)
	ic2 := m.ic.IC(s2)
	if ic1 == 0 || ic2 == 0 {
		return m.cache.Store(s1, s2, 0), nil
	}

	subsumer, err := m.finder.ByIC(ctx, s1, s2)
	if err != nil {
		return 0, err
	}
	if subsumer == nil {
		return m.cache.Store(s1, s2, 0), nil
	}

	score := m.def.Formula(Terms{
		IC1:           ic1,
		IC2:           ic2,
		ICLCS:         m.ic.IC(subsumer),
		RootFrequency: m.ic.RootFrequency(s1.POS),
	})
	return m.cache.Store(s1, s2, score), nil
}

// Synsets resolves an encoded word. Domain mappings take precedence over
// the dictionary.
func (m *Measure) Synsets(ctx context.Context, token string) ([]*wordnet.Synset, error) {
	if mapped, ok := m.domain.Lookup(token); ok {
		return mapped, nil
	}
	return wordnet.Lookup(ctx, m.dict, token)
}

// WordSimilarity scores every sense pair of w1 and w2 and returns the best.
// It returns nil when either word resolves to no synsets.
func (m *Measure) WordSimilarity(ctx context.Context, w1, w2 string) (*Info, error) {
	ss1, err := m.Synsets(ctx, w1)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", w1, err)
	}
	ss2, err := m.Synsets(ctx, w2)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", w2, err)
	}

	var (
		best       *wordnet.Synset
		bestOther  *wordnet.Synset
		bestScore  float64
		haveResult bool
	)
	for _, s1 := range ss1 {
		for _, s2 := range ss2 {
			score, err := m.Similarity(ctx, s1, s2)
			if err != nil {
				return nil, err
			}
			if !haveResult || score > bestScore {
				best, bestOther, bestScore, haveResult = s1, s2, score, true
			}
		}
	}
	if !haveResult {
		return nil, nil
	}

	desc1, err := m.describe(ctx, w1, best)
	if err != nil {
		return nil, err
	}
	desc2, err := m.describe(ctx, w2, bestOther)
	if err != nil {
		return nil, err
	}

	return &Info{
		ID:      ulid.MustNew(ulid.Now(), m.entropy).String(),
		Word1:   w1,
		Word2:   w2,
		Synset1: best,
		Synset2: bestOther,
		Desc1:   desc1,
		Desc2:   desc2,
		Score:   bestScore,
	}, nil
}

// describe renders s as lemma#pos#sense for word, or word itself when the
// dictionary has no entry for it under s's POS.
func (m *Measure) describe(ctx context.Context, word string, s *wordnet.Synset) (string, error) {
	iw, err := m.dict.IndexWord(ctx, s.POS, wordnet.Term(word))
	if err != nil {
		return "", err
	}
	if iw == nil {
		return word, nil
	}
	return fmt.Sprintf("%s#%s#%d", iw.Lemma, s.POS.Key(), iw.SenseNumber(s)), nil
}
