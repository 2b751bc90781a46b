// Package freq builds the term, left-context and right-context frequency
// tables of a domain from its candidate terms.
package freq

// Tables holds per-lemma occurrence counts for one domain. Tables are built
// once per run and not modified after Aggregate returns.
type Tables struct {
	Domain    string                    `json:"domain"`
	Order     []string                  `json:"order"`
	TermFreq  map[string]int            `json:"term_freq"`
	LeftFreq  map[string]map[string]int `json:"left_freq"`
	RightFreq map[string]map[string]int `json:"right_freq"`
}

// NewTables creates empty tables for a domain
func NewTables(domain string) *Tables {
	return &Tables{
		Domain:    domain,
		TermFreq:  make(map[string]int),
		LeftFreq:  make(map[string]map[string]int),
		RightFreq: make(map[string]map[string]int),
	}
}

// addTerm counts one occurrence of lemma
func (t *Tables) addTerm(lemma string) {
	if _, ok := t.TermFreq[lemma]; !ok {
		t.Order = append(t.Order, lemma)
		t.LeftFreq[lemma] = make(map[string]int)
		t.RightFreq[lemma] = make(map[string]int)
	}
	t.TermFreq[lemma]++
}

// Merge adds the counts of o into t. Lemmas new to t are appended in o's order.
func (t *Tables) Merge(o *Tables) {
	for _, lemma := range o.Order {
		if _, ok := t.TermFreq[lemma]; !ok {
			t.Order = append(t.Order, lemma)
			t.LeftFreq[lemma] = make(map[string]int)
			t.RightFreq[lemma] = make(map[string]int)
		}
		t.TermFreq[lemma] += o.TermFreq[lemma]
		mergeSide(t.LeftFreq[lemma], o.LeftFreq[lemma])
		mergeSide(t.RightFreq[lemma], o.RightFreq[lemma])
	}
}

func mergeSide(dst, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}

// Total returns the sum of all term frequencies
func (t *Tables) Total() int {
	total := 0
	for _, n := range t.TermFreq {
		total += n
	}
	return total
}

// Top returns the largest neighbour count in side, or 0 for an empty side
func Top(side map[string]int) int {
	top := 0
	for _, n := range side {
		if n > top {
			top = n
		}
	}
	return top
}
