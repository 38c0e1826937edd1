package wordnet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
)

// Token is a decoded word reference of the form word, word#pos or
// word#pos#sense.
type Token struct {
	Lemma string
	POS   POS // zero when no POS was given
	Sense int // zero when no sense index was given
}

// HasPOS reports whether the token named a part of speech.
func (t Token) HasPOS() bool { return t.POS != 0 }

// HasSense reports whether the token named a sense index.
func (t Token) HasSense() bool { return t.Sense != 0 }

func (t Token) String() string {
	s := t.Lemma
	if t.HasPOS() {
		s += "#" + t.POS.Key()
	}
	if t.HasSense() {
		s += "#" + strconv.Itoa(t.Sense)
	}
	return s
}

// Term returns the bare term of an encoded word, i.e. everything before the
// first '#'.
func Term(token string) string {
	if i := strings.IndexByte(token, '#'); i >= 0 {
		return token[:i]
	}
	return token
}

// ParseToken decodes an encoded word. Trailing empty components are
// ignored, so "cat#" is the same as "cat".
func ParseToken(token string) (Token, error) {
	parts := strings.Split(token, "#")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	tok := Token{Lemma: parts[0]}
	if len(parts) == 1 {
		return tok, nil
	}

	pos, ok := POSForKey(parts[1])
	if !ok {
		return Token{}, fmt.Errorf("%w: %q", internalerr.ErrInvalidTag, parts[1])
	}
	tok.POS = pos

	if len(parts) > 2 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return Token{}, fmt.Errorf("%w: sense index %q in %q", internalerr.ErrInvalidToken, parts[2], token)
		}
		tok.Sense = n
	}

	return tok, nil
}
