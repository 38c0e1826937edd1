package wordnet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
	"github.com/cognicore/wnsim/pkg/wnsim/wordnet/memdict"
)

func loadFixture(t *testing.T) *memdict.Dict {
	t.Helper()
	dict, err := memdict.LoadYAML("../../../testdata/wordnet.yaml")
	require.NoError(t, err)
	return dict
}

func TestPOSKeys(t *testing.T) {
	for _, pos := range wordnet.AllPOS {
		got, ok := wordnet.POSForKey(pos.Key())
		require.True(t, ok, pos.String())
		assert.Equal(t, pos, got)
	}

	_, ok := wordnet.POSForKey("x")
	assert.False(t, ok)
	assert.Equal(t, "noun", wordnet.Noun.String())
	assert.False(t, wordnet.POS(0).Valid())
}

func TestSynsetIdentity(t *testing.T) {
	s := &wordnet.Synset{POS: wordnet.Noun, Offset: 2084071, Words: []string{"dog"}}

	assert.Equal(t, "2084071", s.Key())
	assert.Equal(t, "2084071n", s.ID().String())
	assert.True(t, s.Equal(&wordnet.Synset{POS: wordnet.Noun, Offset: 2084071}))
	assert.False(t, s.Equal(&wordnet.Synset{POS: wordnet.Verb, Offset: 2084071}))
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		in   string
		want wordnet.Token
	}{
		{"cat", wordnet.Token{Lemma: "cat"}},
		{"cat#n", wordnet.Token{Lemma: "cat", POS: wordnet.Noun}},
		{"cat#n#2", wordnet.Token{Lemma: "cat", POS: wordnet.Noun, Sense: 2}},
		{"run#v#1", wordnet.Token{Lemma: "run", POS: wordnet.Verb, Sense: 1}},
		{"cat#", wordnet.Token{Lemma: "cat"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := wordnet.ParseToken(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTokenErrors(t *testing.T) {
	_, err := wordnet.ParseToken("cat#q")
	assert.ErrorIs(t, err, internalerr.ErrInvalidTag)

	_, err = wordnet.ParseToken("cat#n#first")
	assert.ErrorIs(t, err, internalerr.ErrInvalidToken)

	_, err = wordnet.ParseToken("cat#n#0")
	assert.ErrorIs(t, err, internalerr.ErrInvalidToken)
}

func TestTerm(t *testing.T) {
	assert.Equal(t, "cat", wordnet.Term("cat#n#1"))
	assert.Equal(t, "cat", wordnet.Term("cat"))
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	dict := loadFixture(t)

	t.Run("bare word spans every sense", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "cat")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2121620), got[0].Offset)
		assert.Equal(t, int64(10153414), got[1].Offset)
	})

	t.Run("bare word spans parts of speech", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "big")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, wordnet.Adjective, got[0].POS)
	})

	t.Run("pos qualified", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "run#v")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1926311), got[0].Offset)

		got, err = wordnet.Lookup(ctx, dict, "run#n")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("sense qualified", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "cat#n#2")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(10153414), got[0].Offset)
	})

	t.Run("sense out of range", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "cat#n#9")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid tag", func(t *testing.T) {
		_, err := wordnet.Lookup(ctx, dict, "cat#z")
		assert.ErrorIs(t, err, internalerr.ErrInvalidTag)
	})

	t.Run("stemmed fallback", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "dogs")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2084071), got[0].Offset)
	})

	t.Run("unknown word", func(t *testing.T) {
		got, err := wordnet.Lookup(ctx, dict, "xyzzy")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestIndexWordSenseNumber(t *testing.T) {
	dict := loadFixture(t)
	iw, err := dict.IndexWord(context.Background(), wordnet.Noun, "cat")
	require.NoError(t, err)
	require.NotNil(t, iw)

	second, ok := iw.Sense(2)
	require.True(t, ok)
	assert.Equal(t, 2, iw.SenseNumber(second))
	assert.Equal(t, -1, iw.SenseNumber(&wordnet.Synset{POS: wordnet.Noun, Offset: 1}))

	_, ok = iw.Sense(0)
	assert.False(t, ok)
}

func TestNormalizeLemma(t *testing.T) {
	assert.Equal(t, "domestic_dog", wordnet.NormalizeLemma("Domestic  Dog"))
	assert.Equal(t, "cat", wordnet.NormalizeLemma("CAT"))
}
