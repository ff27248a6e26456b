// Package reference holds the static lookup tables the classification engine
// consults: GHS chapter names, hazard statement texts and the HSNO to GHS
// translation. The tables are immutable; engine components receive a *Tables
// at construction so that tests can substitute their own.
package reference

import (
	"sort"

	"github.com/turtacn/ghscrunch/pkg/errors"
)

// Translation is the GHS equivalent of a source-scheme code.
type Translation struct {
	Category    string
	Subcategory string
}

// IsZero reports whether t carries no translation.
func (t Translation) IsZero() bool {
	return t.Category == "" && t.Subcategory == ""
}

// String renders the translation as "GHS: <category> - <subcategory>".
// A zero Translation renders as "".
func (t Translation) String() string {
	if t.IsZero() {
		return ""
	}
	return "GHS: " + t.Category + " - " + t.Subcategory
}

// Tables bundles the three lookup tables.
type Tables struct {
	chapters     map[string]string
	statements   map[string]string
	translations map[string]Translation
}

// New builds Tables from caller-supplied maps. The maps are copied.
func New(chapters, statements map[string]string, translations map[string]Translation) *Tables {
	t := &Tables{
		chapters:     make(map[string]string, len(chapters)),
		statements:   make(map[string]string, len(statements)),
		translations: make(map[string]Translation, len(translations)),
	}
	for k, v := range chapters {
		t.chapters[k] = v
	}
	for k, v := range statements {
		t.statements[k] = v
	}
	for k, v := range translations {
		t.translations[k] = v
	}
	return t
}

// Default returns the GHS Revision 4 tables and the HSNO translation table.
func Default() *Tables {
	return New(ghsChapters, hazardStatements, hsnoTranslations)
}

// Chapter returns the hazard class name for a GHS chapter reference such as
// "3.4". The chapter table is exhaustive, so a miss is a
// CodeReferenceLookupMiss error.
func (t *Tables) Chapter(ref string) (string, error) {
	name, ok := t.chapters[ref]
	if !ok {
		return "", errors.New(errors.CodeReferenceLookupMiss, "unknown GHS chapter").
			WithDetailf("chapter=%q", ref)
	}
	return name, nil
}

// Statement returns the text of a hazard statement code such as "H317".
// A miss is a CodeReferenceLookupMiss error.
func (t *Tables) Statement(code string) (string, error) {
	text, ok := t.statements[code]
	if !ok {
		return "", errors.New(errors.CodeReferenceLookupMiss, "unknown hazard statement").
			WithDetailf("code=%q", code)
	}
	return text, nil
}

// Translate returns the GHS translation of an HSNO code. The table is partial:
// known is false when the code is absent, and a known code may still carry a
// zero Translation when it has no GHS counterpart.
func (t *Tables) Translate(code string) (tr Translation, known bool) {
	tr, known = t.translations[code]
	return tr, known
}

// ChapterRefs returns all chapter references in lexical order.
func (t *Tables) ChapterRefs() []string {
	return sortedKeys(t.chapters)
}

// StatementCodes returns all hazard statement codes in lexical order.
func (t *Tables) StatementCodes() []string {
	return sortedKeys(t.statements)
}

// TranslationCodes returns all HSNO codes in lexical order.
func (t *Tables) TranslationCodes() []string {
	keys := make([]string, 0, len(t.translations))
	for k := range t.translations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
