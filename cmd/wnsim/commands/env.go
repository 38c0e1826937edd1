package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/similarity"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/memdict"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/sqlitedict"
)

var errNoDict = errors.New("--dict required")

func isSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// openDictionary opens the dictionary named by --dict. The returned cleanup
// must be called when done.
func (c *CLI) openDictionary(ctx context.Context) (wordnet.Dictionary, func(), error) {
	if c.dictPath == "" {
		return nil, nil, errNoDict
	}

	if isSQLitePath(c.dictPath) {
		db, err := sqlitedict.Open(ctx, c.dictPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open dictionary: %w", err)
		}
		c.logger.Debug("opened sqlite dictionary", "path", c.dictPath, "version", db.Version())
		return db, func() { _ = db.Close() }, nil
	}

	dict, err := memdict.LoadYAML(c.dictPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load dictionary: %w", err)
	}
	c.logger.Debug("loaded dictionary", "path", c.dictPath, "version", dict.Version(), "synsets", dict.Stats().Synsets)
	return dict, func() {}, nil
}

// openMeasure opens the dictionary and builds the measure named by --config.
func (c *CLI) openMeasure(ctx context.Context) (*similarity.Measure, func(), error) {
	if c.configPath == "" {
		return nil, nil, fmt.Errorf("%w: --config required", internalerr.ErrMissingParam)
	}

	dict, cleanup, err := c.openDictionary(ctx)
	if err != nil {
		return nil, nil, err
	}

	measure, err := similarity.NewFromFile(ctx, dict, c.configPath, similarity.WithLogger(c.logger))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return measure, cleanup, nil
}

// suggestions returns close lemmas when the dictionary can propose them.
func suggestions(dict wordnet.Dictionary, word string) []string {
	sg, ok := dict.(interface {
		Suggest(lemma string, max int) []string
	})
	if !ok {
		return nil
	}
	return sg.Suggest(wordnet.Term(word), 5)
}
