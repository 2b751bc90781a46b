// Package candidate turns tagged token streams into candidate terms and groups
// them by page, PDF and domain.
package candidate

// PageList holds the candidates found on one page, in reading order
type PageList struct {
	Page       int         `json:"page"`
	Candidates []Candidate `json:"candidates"`
}

// PDFList holds the candidates of one PDF
type PDFList struct {
	Path  string     `json:"path"`
	Pages []PageList `json:"pages"`
}

// DomainList holds the candidates of every PDF in a domain
type DomainList struct {
	Domain string    `json:"domain"`
	PDFs   []PDFList `json:"pdfs"`
}

// Lemmas returns the distinct candidate lemmas of the PDF in first-seen order
func (p PDFList) Lemmas() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, page := range p.Pages {
		for _, c := range page.Candidates {
			l := c.Lemma()
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of candidates, augmented ones included
func (p PDFList) Len() int {
	n := 0
	for _, page := range p.Pages {
		n += len(page.Candidates)
	}
	return n
}

// Lemmas returns the distinct candidate lemmas of the domain in first-seen order
func (d *DomainList) Lemmas() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, pdf := range d.PDFs {
		for _, l := range pdf.Lemmas() {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of candidates across all PDFs
func (d *DomainList) Len() int {
	n := 0
	for _, pdf := range d.PDFs {
		n += pdf.Len()
	}
	return n
}
