package ghs

// ApplyOutcome tells what Apply did to a slot.
type ApplyOutcome int

const (
	// OutcomeCreated means the slot was empty and now holds the entry.
	OutcomeCreated ApplyOutcome = iota
	// OutcomeReplaced means a non-blank entry replaced the stored one.
	OutcomeReplaced
	// OutcomeKept means a blank entry left the stored one untouched.
	OutcomeKept
)

func (o ApplyOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeKept:
		return "kept"
	default:
		return "unknown"
	}
}

// ChemicalRecord is the merged view of one substance.
type ChemicalRecord struct {
	Key     SubstanceKey
	Name    string
	entries map[HazardClass]ClassificationEntry
}

// Entry returns the stored entry for class, if any.
func (r *ChemicalRecord) Entry(class HazardClass) (ClassificationEntry, bool) {
	e, ok := r.entries[class]
	return e, ok
}

// Len returns the number of filled slots.
func (r *ChemicalRecord) Len() int {
	return len(r.entries)
}

// Update is one pending Apply call.
type Update struct {
	Key   SubstanceKey
	Class HazardClass
	Entry ClassificationEntry
}

// Tally counts Apply outcomes.
type Tally struct {
	Created  int
	Replaced int
	Kept     int
}

func (t *Tally) add(o ApplyOutcome) {
	switch o {
	case OutcomeCreated:
		t.Created++
	case OutcomeReplaced:
		t.Replaced++
	case OutcomeKept:
		t.Kept++
	}
}

// Merge adds other to t.
func (t *Tally) Merge(other Tally) {
	t.Created += other.Created
	t.Replaced += other.Replaced
	t.Kept += other.Kept
}

// Store holds one ChemicalRecord per substance key and applies the
// last-non-blank-wins policy per (key, class) slot. The outcome depends on
// the order of Apply calls; callers feed batches oldest first.
//
// Records are returned in first-sighting order. A Store is not safe for
// concurrent use.
type Store struct {
	records map[SubstanceKey]*ChemicalRecord
	order   []SubstanceKey
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[SubstanceKey]*ChemicalRecord)}
}

// Register returns the record for key, creating it with name on first
// sighting. Later names are ignored.
func (s *Store) Register(key SubstanceKey, name string) *ChemicalRecord {
	if r, ok := s.records[key]; ok {
		return r
	}
	r := &ChemicalRecord{Key: key, Name: name, entries: make(map[HazardClass]ClassificationEntry)}
	s.records[key] = r
	s.order = append(s.order, key)
	return r
}

// Apply merges entry into the (key, class) slot:
//
//   - empty slot: entry is stored, even when blank
//   - non-blank entry: replaces the stored entry in full
//   - blank entry: the stored entry is kept
//
// An unknown class returns a CodeUnknownHazardClass error and leaves the
// store untouched. Apply registers key with an empty name if needed.
func (s *Store) Apply(key SubstanceKey, class HazardClass, entry ClassificationEntry) (ApplyOutcome, error) {
	if !class.Valid() {
		return 0, errUnknownClass(class)
	}
	return s.apply(key, class, entry), nil
}

func (s *Store) apply(key SubstanceKey, class HazardClass, entry ClassificationEntry) ApplyOutcome {
	r := s.Register(key, "")
	if _, ok := r.entries[class]; !ok {
		r.entries[class] = entry
		return OutcomeCreated
	}
	if entry.IsBlank() {
		return OutcomeKept
	}
	r.entries[class] = entry
	return OutcomeReplaced
}

// ApplyAll validates every update before applying any of them, so a page
// with a bad slot leaves the store as it was.
func (s *Store) ApplyAll(updates []Update) (Tally, error) {
	var t Tally
	for _, u := range updates {
		if !u.Class.Valid() {
			return t, errUnknownClass(u.Class)
		}
	}
	for _, u := range updates {
		t.add(s.apply(u.Key, u.Class, u.Entry))
	}
	return t, nil
}

// Lookup returns the record for key.
func (s *Store) Lookup(key SubstanceKey) (*ChemicalRecord, bool) {
	r, ok := s.records[key]
	return r, ok
}

// Records returns all records in first-sighting order.
func (s *Store) Records() []*ChemicalRecord {
	out := make([]*ChemicalRecord, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.records[k])
	}
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.order)
}
