// Package ghs is the classification reconciliation engine: substance key
// normalisation, the revision merge store, chapter-code disambiguation and
// the variant redundancy filter. It performs no I/O; workflows in
// internal/application/crunch feed it rows and read its results.
package ghs

import (
	"strconv"
	"strings"
	"unicode"
)

// SubstanceKey canonically identifies one substance within a run.
type SubstanceKey string

// PlaceholderPrefix starts every key minted for a row with no usable
// identifier and no usable fallback.
const PlaceholderPrefix = "no_id"

// isDash covers ASCII hyphen-minus and the Unicode dash punctuation that
// spreadsheets substitute for it, plus the minus sign.
func isDash(r rune) bool {
	return r == '-' || r == '−' || unicode.Is(unicode.Pd, r)
}

func trimToken(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || isDash(r)
	})
}

// SplitIdentifiers splits a raw identifier cell on commas and trims
// whitespace and leading or trailing dashes from every token. Tokens that
// end up empty are dropped. Duplicates are preserved.
func SplitIdentifiers(raw string) []SubstanceKey {
	var keys []SubstanceKey
	for _, tok := range strings.Split(raw, ",") {
		if t := trimToken(tok); t != "" {
			keys = append(keys, SubstanceKey(t))
		}
	}
	return keys
}

// Normalize maps a raw identifier cell to its substance keys, falling back to
// the source-local id when the cell yields none. It returns nil when neither
// is usable; callers that must always produce a key use a Normalizer.
func Normalize(raw, fallback string) []SubstanceKey {
	if keys := SplitIdentifiers(raw); len(keys) > 0 {
		return keys
	}
	if fb := trimToken(fallback); fb != "" {
		return []SubstanceKey{SubstanceKey(fb)}
	}
	return nil
}

// Normalizer wraps Normalize and mints a distinct placeholder key for every
// row that has neither identifier nor fallback, so unrelated blank rows never
// collide. A Normalizer is scoped to one run and is not safe for concurrent
// use.
type Normalizer struct {
	minted int
}

// NewNormalizer returns a Normalizer with a fresh placeholder sequence.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Keys returns the non-empty key sequence for one row.
func (n *Normalizer) Keys(raw, fallback string) []SubstanceKey {
	if keys := Normalize(raw, fallback); len(keys) > 0 {
		return keys
	}
	return []SubstanceKey{n.Placeholder()}
}

// Placeholder mints the next unique placeholder key, e.g. "no_id_3".
func (n *Normalizer) Placeholder() SubstanceKey {
	n.minted++
	return SubstanceKey(PlaceholderPrefix + "_" + strconv.Itoa(n.minted))
}

// Minted reports how many placeholders have been issued.
func (n *Normalizer) Minted() int {
	return n.minted
}

// IsPlaceholder reports whether k was minted by a Normalizer.
func (k SubstanceKey) IsPlaceholder() bool {
	return strings.HasPrefix(string(k), PlaceholderPrefix+"_")
}

func (k SubstanceKey) String() string {
	return string(k)
}
