package index

// Dictionary interns term strings. It is append-only: interning a new term
// never changes the handle or the text of an existing one.
type Dictionary struct {
	ids   map[string]TermID
	terms []string
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		ids: make(map[string]TermID),
	}
}

// Intern returns the handle for word, allocating one on first sight.
func (d *Dictionary) Intern(word string) TermID {
	if id, ok := d.ids[word]; ok {
		return id
	}
	id := TermID(len(d.terms))
	d.terms = append(d.terms, word)
	d.ids[word] = id
	return id
}

// Lookup returns the handle for word without allocating.
func (d *Dictionary) Lookup(word string) (TermID, bool) {
	id, ok := d.ids[word]
	return id, ok
}

// Term returns the text behind a handle.
func (d *Dictionary) Term(id TermID) string {
	return d.terms[id]
}

// Len returns the number of interned terms.
func (d *Dictionary) Len() int {
	return len(d.terms)
}
