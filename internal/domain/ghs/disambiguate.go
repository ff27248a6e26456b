package ghs

import (
	"strings"

	"github.com/turtacn/ghscrunch/pkg/errors"
)

// ChapterLookup resolves a GHS chapter reference to its hazard class name.
// *reference.Tables satisfies it.
type ChapterLookup interface {
	Chapter(ref string) (string, error)
}

// Rule maps a keyword found in the secondary text to a resolved category.
type Rule struct {
	Keyword  string
	Category string
}

// Resolution is the outcome of disambiguating one chapter code.
type Resolution struct {
	Code string
	// Chapter is the coarse hazard class name from the chapter table.
	Chapter string
	// Category is the resolved name. It equals Chapter for codes that are
	// not overloaded and is empty when an overloaded code matched no rule.
	Category   string
	Overloaded bool
}

// Resolved reports whether a category was determined.
func (r Resolution) Resolved() bool {
	return r.Category != ""
}

// Disambiguator resolves chapter codes, consulting per-code keyword rules
// for the codes that cover more than one hazard category.
type Disambiguator struct {
	chapters ChapterLookup
	rules    map[string][]Rule
}

// NewDisambiguator builds a Disambiguator. rules maps each overloaded code to
// its ordered keyword rules; the first rule whose keyword occurs in the
// secondary text wins.
func NewDisambiguator(chapters ChapterLookup, rules map[string][]Rule) *Disambiguator {
	cp := make(map[string][]Rule, len(rules))
	for code, rs := range rules {
		cp[code] = append([]Rule(nil), rs...)
	}
	return &Disambiguator{chapters: chapters, rules: cp}
}

// KoreanRules are the keyword rules for the Korean hazard class column,
// where acute toxicity, sensitization and aquatic hazard share a chapter.
func KoreanRules() map[string][]Rule {
	return map[string][]Rule{
		"3.1": {
			{Keyword: "급성 독성-경구", Category: "Acute toxicity (oral)"},
			{Keyword: "급성 독성-경피", Category: "Acute toxicity (dermal)"},
			{Keyword: "급성 독성-흡입", Category: "Acute toxicity (inhalation)"},
		},
		"3.4": {
			{Keyword: "피부 과민성", Category: "Skin sensitization"},
			{Keyword: "호흡기 과민성", Category: "Respiratory sensitization"},
		},
		"4.1": {
			{Keyword: "수생환경유해성-급성", Category: "Hazardous to the aquatic environment (acute)"},
			{Keyword: "수생환경유해성-만성", Category: "Hazardous to the aquatic environment (chronic)"},
		},
	}
}

// Overloaded reports whether code needs secondary text to resolve.
func (d *Disambiguator) Overloaded(code string) bool {
	_, ok := d.rules[code]
	return ok
}

// Resolve maps code to a category.
//
// A code missing from the chapter table is a fatal CodeReferenceLookupMiss.
// An overloaded code whose text matches no rule returns the Resolution with
// an empty Category together with a CodeUnrecognizedVariant error, which
// callers treat as a diagnostic.
func (d *Disambiguator) Resolve(code, text string) (Resolution, error) {
	chapter, err := d.chapters.Chapter(code)
	if err != nil {
		return Resolution{Code: code}, err
	}
	res := Resolution{Code: code, Chapter: chapter}
	rules, overloaded := d.rules[code]
	if !overloaded {
		res.Category = chapter
		return res, nil
	}
	res.Overloaded = true
	for _, r := range rules {
		if strings.Contains(text, r.Keyword) {
			res.Category = r.Category
			return res, nil
		}
	}
	return res, errors.New(errors.CodeUnrecognizedVariant, "no keyword matched overloaded hazard class").
		WithDetailf("code=%s text=%q", code, text)
}
