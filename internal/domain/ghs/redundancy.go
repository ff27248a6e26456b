package ghs

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultMixtureMarker flags names that describe a concentration or mixture.
const DefaultMixtureMarker = "%"

// VariantGroup collects, for one substance key, the classification codes
// observed under each name variant.
type VariantGroup struct {
	Key   SubstanceKey
	names map[string]map[string]struct{}
}

// NewVariantGroup returns an empty group for key.
func NewVariantGroup(key SubstanceKey) *VariantGroup {
	return &VariantGroup{Key: key, names: make(map[string]map[string]struct{})}
}

// Add records that name carries code. Repeated pairs are collapsed.
func (g *VariantGroup) Add(name, code string) {
	codes, ok := g.names[name]
	if !ok {
		codes = make(map[string]struct{})
		g.names[name] = codes
	}
	codes[code] = struct{}{}
}

// Names returns the variant names in lexical order.
func (g *VariantGroup) Names() []string {
	names := make([]string, 0, len(g.names))
	for n := range g.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Codes returns the sorted code set of name.
func (g *VariantGroup) Codes(name string) []string {
	set := g.names[name]
	codes := make([]string, 0, len(set))
	for c := range set {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// VariantSet gathers VariantGroups across a whole source.
type VariantSet struct {
	groups map[SubstanceKey]*VariantGroup
}

// NewVariantSet returns an empty VariantSet.
func NewVariantSet() *VariantSet {
	return &VariantSet{groups: make(map[SubstanceKey]*VariantGroup)}
}

// Add records one (key, name, code) observation.
func (s *VariantSet) Add(key SubstanceKey, name, code string) {
	g, ok := s.groups[key]
	if !ok {
		g = NewVariantGroup(key)
		s.groups[key] = g
	}
	g.Add(name, code)
}

// Groups returns every group ordered by key.
func (s *VariantSet) Groups() []*VariantGroup {
	keys := make([]string, 0, len(s.groups))
	for k := range s.groups {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	out := make([]*VariantGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.groups[SubstanceKey(k)])
	}
	return out
}

// Len returns the number of groups.
func (s *VariantSet) Len() int {
	return len(s.groups)
}

// Disposition is where the filter placed a variant.
type Disposition int

const (
	DispositionPrincipal Disposition = iota
	DispositionNonRedundant
	DispositionRedundant
)

func (d Disposition) String() string {
	switch d {
	case DispositionPrincipal:
		return "principal"
	case DispositionNonRedundant:
		return "non_redundant"
	case DispositionRedundant:
		return "redundant"
	default:
		return "unknown"
	}
}

// Variant is one filtered name variant.
type Variant struct {
	// ID is the substance key for the principal and "_v<i>_<key>" for the
	// others, where i is the variant's position among the non-principal
	// names in lexical order.
	ID          string
	Name        string
	Codes       []string
	Disposition Disposition
}

// FilterResult partitions one VariantGroup.
type FilterResult struct {
	Key SubstanceKey
	// Retained holds the principal first, then non-redundant variants.
	Retained []Variant
	// Omitted holds redundant variants.
	Omitted []Variant
}

// Principal returns the principal variant. ok is false for the result of an
// empty group.
func (r FilterResult) Principal() (v Variant, ok bool) {
	if len(r.Retained) == 0 {
		return Variant{}, false
	}
	return r.Retained[0], true
}

// RedundancyFilter selects a principal name per group and splits the other
// names into redundant and non-redundant variants. A variant is redundant
// exactly when its code set is a subset of, or equal to, the principal's.
type RedundancyFilter struct {
	// Marker flags mixture or concentration names. Empty means
	// DefaultMixtureMarker.
	Marker string
}

func (f RedundancyFilter) marker() string {
	if f.Marker == "" {
		return DefaultMixtureMarker
	}
	return f.Marker
}

// SelectPrincipal returns the index into sorted names of the principal: the
// first name without the marker, or 0 when every name carries it.
func (f RedundancyFilter) SelectPrincipal(sorted []string) int {
	m := f.marker()
	for i, n := range sorted {
		if !strings.Contains(n, m) {
			return i
		}
	}
	return 0
}

// Filter partitions g. An empty group yields an empty result.
func (f RedundancyFilter) Filter(g *VariantGroup) FilterResult {
	names := g.Names()
	res := FilterResult{Key: g.Key}
	if len(names) == 0 {
		return res
	}

	p := f.SelectPrincipal(names)
	pname := names[p]
	principal := Variant{
		ID:          string(g.Key),
		Name:        pname,
		Codes:       g.Codes(pname),
		Disposition: DispositionPrincipal,
	}
	res.Retained = append(res.Retained, principal)
	pset := g.names[pname]

	rest := make([]string, 0, len(names)-1)
	rest = append(rest, names[:p]...)
	rest = append(rest, names[p+1:]...)

	for i, name := range rest {
		v := Variant{
			ID:    VariantID(i, g.Key),
			Name:  name,
			Codes: g.Codes(name),
		}
		if isSubset(g.names[name], pset) {
			v.Disposition = DispositionRedundant
			res.Omitted = append(res.Omitted, v)
			continue
		}
		v.Disposition = DispositionNonRedundant
		res.Retained = append(res.Retained, v)
	}
	return res
}

// VariantID formats the identifier of the i-th non-principal variant.
func VariantID(i int, key SubstanceKey) string {
	return "_v" + strconv.Itoa(i) + "_" + string(key)
}

func isSubset(a, b map[string]struct{}) bool {
	for c := range a {
		if _, ok := b[c]; !ok {
			return false
		}
	}
	return true
}
