package infocontent_test

import (
	"errors"
	"io"
	"math"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/wnsim/pkg/wnsim/infocontent"
	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

func noun(offset int64) *wordnet.Synset {
	return &wordnet.Synset{POS: wordnet.Noun, Offset: offset}
}

func TestLoadAggregatesRoots(t *testing.T) {
	data := "wnver::3.0\n" +
		"100n 600 ROOT\n" +
		"200n 400 ROOT\n" +
		"300n 50\n" +
		"400v 80 ROOT\n"

	table, err := infocontent.Load(strings.NewReader(data), "3.0")
	require.NoError(t, err)

	assert.Equal(t, "3.0", table.Version())
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, 1000.0, table.RootFrequency(wordnet.Noun))
	assert.Equal(t, 80.0, table.RootFrequency(wordnet.Verb))
	assert.Zero(t, table.RootFrequency(wordnet.Adverb))
	assert.Equal(t, 50.0, table.Frequency(noun(300)))
}

func TestLoadStopsAtBlankLine(t *testing.T) {
	data := "wnver::3.0\n100n 10 ROOT\n\n200n 5\n"

	table, err := infocontent.Load(strings.NewReader(data), "3.0")
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Zero(t, table.Frequency(noun(200)))
}

func TestLoadHeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty file", "", internalerr.ErrMalformedFile},
		{"missing header", "100n 10 ROOT\n", internalerr.ErrMalformedFile},
		{"version mismatch", "wnver::2.1\n100n 10 ROOT\n", internalerr.ErrVersionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := infocontent.Load(strings.NewReader(tt.data), "3.0")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
		})
	}
}

func TestLoadBadDataLines(t *testing.T) {
	for _, line := range []string{"100n", "100n lots", "100n -4", "100 10 ROOT"} {
		t.Run(line, func(t *testing.T) {
			_, err := infocontent.Load(strings.NewReader("wnver::3.0\n"+line+"\n"), "3.0")
			assert.ErrorIs(t, err, internalerr.ErrMalformedFile)
		})
	}
}

func TestICFormula(t *testing.T) {
	table := infocontent.New()
	table.Add("1n", 1000, true)
	table.Add("2n", 50, false)
	table.Add("3n", 0, false)

	assert.InDelta(t, -math.Log(50.0/1000.0), table.IC(noun(2)), 1e-12)
	assert.Zero(t, table.IC(noun(1)), "root has probability 1")
	assert.False(t, math.Signbit(table.IC(noun(1))), "root IC must be +0")
	assert.Zero(t, table.IC(noun(3)), "zero frequency")
	assert.Zero(t, table.IC(noun(4)), "absent from table")
}

func TestICOnlyForNounsAndVerbs(t *testing.T) {
	table := infocontent.New()
	table.Add("1a", 10, true)
	table.Add("2a", 5, false)
	table.Add("3r", 5, true)

	assert.Zero(t, table.IC(&wordnet.Synset{POS: wordnet.Adjective, Offset: 2}))
	assert.Zero(t, table.IC(&wordnet.Synset{POS: wordnet.Adverb, Offset: 3}))
}

func TestICWithoutRootMass(t *testing.T) {
	table := infocontent.New()
	table.Add("2v", 5, false)

	assert.Zero(t, table.IC(&wordnet.Synset{POS: wordnet.Verb, Offset: 2}))
}

func TestLoadSampleFile(t *testing.T) {
	f, err := os.Open("../../../testdata/ic-sample.dat")
	require.NoError(t, err)
	defer f.Close()

	table, err := infocontent.Load(f, "3.0")
	require.NoError(t, err)

	assert.Equal(t, 3000.0, table.RootFrequency(wordnet.Noun))
	assert.Equal(t, 900.0, table.RootFrequency(wordnet.Verb))

	// IC decreases towards the root
	dog := table.IC(noun(2084071))
	canine := table.IC(noun(2083346))
	animal := table.IC(noun(15388))
	assert.Greater(t, dog, canine)
	assert.Greater(t, canine, animal)
}

func TestLoadReadErrors(t *testing.T) {
	errDisk := errors.New("disk gone")

	tests := []struct {
		name string
		r    io.Reader
	}{
		{name: "header", r: iotest.ErrReader(errDisk)},
		{name: "data", r: io.MultiReader(strings.NewReader("wnver::3.0\n1740n 10 ROOT\n"), iotest.ErrReader(errDisk))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := infocontent.Load(tt.r, "3.0")
			assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
			assert.ErrorIs(t, err, errDisk)
		})
	}

	long := "wnver::3.0\n1740n " + strings.Repeat("9", 2*1024*1024) + "\n"
	_, err := infocontent.Load(strings.NewReader(long), "3.0")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
