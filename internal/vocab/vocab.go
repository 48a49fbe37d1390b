// Package vocab implements the fallback tokenizer used when the inference
// backend's own tokenizer is unavailable. It maps whitespace-split words to
// dense integer ids against a vocabulary loaded from a file of one token per
// line, or a small built-in vocabulary when no file is available.
package vocab

import (
	"bufio"
	"os"
	"strings"
	"unicode"
)

// Ids of the control tokens in the built-in vocabulary.
const (
	PadID     = 0
	UnknownID = 1
	BeginID   = 2
	EndID     = 3
	MaskID    = 4
)

// maxFileTokens bounds how many lines are read from a vocabulary file.
const maxFileTokens = 50000

// Vocabulary is an ordered sequence of token strings plus a reverse mapping.
// Ids are dense, starting at 0, assigned in insertion order. Immutable after
// build except by a full reload.
type Vocabulary struct {
	tokens  []string
	tokenID map[string]int
}

// Load reads one token per line from path. When the file is absent or
// unreadable the built-in vocabulary is installed instead, so the returned
// Vocabulary is always usable. The bool reports whether the file was used.
func Load(path string) (*Vocabulary, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Builtin(), false
	}
	defer f.Close()

	v := &Vocabulary{tokenID: make(map[string]int)}
	sc := bufio.NewScanner(f)
	for sc.Scan() && len(v.tokens) < maxFileTokens {
		line := sc.Text()
		if line == "" {
			continue
		}
		v.add(line)
	}
	if len(v.tokens) == 0 || sc.Err() != nil {
		return Builtin(), false
	}
	return v, true
}

// Builtin returns the fixed fallback vocabulary: five control tokens, a
// curated list of common words, the lowercase alphabet and the digits.
func Builtin() *Vocabulary {
	v := &Vocabulary{tokenID: make(map[string]int)}
	for _, tok := range controlTokens {
		v.add(tok)
	}
	for _, w := range commonWords {
		v.add(w)
	}
	for c := 'a'; c <= 'z'; c++ {
		v.add(string(c))
	}
	for c := '0'; c <= '9'; c++ {
		v.add(string(c))
	}
	return v
}

func (v *Vocabulary) add(tok string) {
	if _, dup := v.tokenID[tok]; dup {
		return
	}
	v.tokenID[tok] = len(v.tokens)
	v.tokens = append(v.tokens, tok)
}

// Size returns the number of tokens in the vocabulary.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// Encode whitespace-splits text, lower-cases and strips punctuation from each
// word, and looks it up. Unknown words map to UnknownID.
func (v *Vocabulary) Encode(text string) []int {
	var ids []int
	for _, word := range strings.Fields(text) {
		ids = append(ids, v.lookup(normalize(word)))
	}
	return ids
}

// Decode joins the token strings for valid ids with single spaces. Ids
// outside the vocabulary range are silently skipped.
func (v *Vocabulary) Decode(ids []int) string {
	var b strings.Builder
	for _, id := range ids {
		if id < 0 || id >= len(v.tokens) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.tokens[id])
	}
	return b.String()
}

func (v *Vocabulary) lookup(tok string) int {
	if id, ok := v.tokenID[tok]; ok {
		return id
	}
	return UnknownID
}

func normalize(word string) string {
	lower := strings.ToLower(word)
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, lower)
}
