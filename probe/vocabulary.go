package probe

// Vocabulary maps terms to ids in order of first appearance.
type Vocabulary struct {
	index map[string]int
	terms []string
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: map[string]int{}}
}

// Add returns the id of term, assigning the next free id on first sight.
func (v *Vocabulary) Add(term string) int {
	if id, ok := v.index[term]; ok {
		return id
	}

	id := len(v.terms)
	v.index[term] = id
	v.terms = append(v.terms, term)
	return id
}

func (v *Vocabulary) Index(term string) (int, bool) {
	id, ok := v.index[term]
	return id, ok
}

// Term returns the term with the given id.
func (v *Vocabulary) Term(id int) string {
	if id < 0 || id >= len(v.terms) {
		return ""
	}
	return v.terms[id]
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns the terms ordered by id.
func (v *Vocabulary) Terms() []string {
	t := make([]string, len(v.terms))
	copy(t, v.terms)
	return t
}
