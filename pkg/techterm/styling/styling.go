// Package styling scores how prominently a term is typeset in a PDF. Terms set
// larger or in an uncommon colour than the surrounding candidates score higher.
package styling

import (
	"math"

	"github.com/cognicore/techterm/pkg/techterm/candidate"
	"github.com/cognicore/techterm/pkg/techterm/internalerr"
)

// Scorer identifiers accepted in configuration
const (
	FontSize = "fontsize"
	Color    = "color"
)

// DefaultScorers lists the scorers used when none are configured
var DefaultScorers = []string{FontSize, Color}

// Scorer rates every lemma of one PDF
type Scorer interface {
	Name() string
	Score(pdf candidate.PDFList) map[string]float64
}

// Scores is the combined styling score of every lemma of one PDF
type Scores struct {
	Path   string             `json:"path"`
	Scores map[string]float64 `json:"scores"`
}

// Get returns the score of lemma, 1 when the lemma is unknown
func (s Scores) Get(lemma string) float64 {
	if v, ok := s.Scores[lemma]; ok {
		return v
	}
	return 1
}

// Styler multiplies the scores of its scorers
type Styler struct {
	scorers []Scorer
}

// New builds a styler from scorer names
func New(names []string) (*Styler, error) {
	s := &Styler{}
	for _, name := range names {
		switch name {
		case FontSize:
			s.scorers = append(s.scorers, FontSizeScorer{})
		case Color:
			s.scorers = append(s.scorers, ColorScorer{})
		default:
			return nil, internalerr.Unknown("styling.scorers", name)
		}
	}
	return s, nil
}

// Score combines every scorer for one PDF
func (s *Styler) Score(pdf candidate.PDFList) Scores {
	out := Scores{Path: pdf.Path, Scores: make(map[string]float64)}
	for _, lemma := range pdf.Lemmas() {
		out.Scores[lemma] = 1
	}
	for _, sc := range s.scorers {
		for lemma, v := range sc.Score(pdf) {
			out.Scores[lemma] *= v
		}
	}
	return out
}

// FontSizeScorer rates a lemma by its largest font size, standardised over
// every candidate occurrence in the PDF: score = 2^z. A PDF set in a single
// size scores 1 throughout.
type FontSizeScorer struct{}

func (FontSizeScorer) Name() string { return FontSize }

func (FontSizeScorer) Score(pdf candidate.PDFList) map[string]float64 {
	var sum, sumSq float64
	var n int
	largest := make(map[string]float64)
	for _, page := range pdf.Pages {
		for _, c := range page.Candidates {
			sum += c.FontSize
			sumSq += c.FontSize * c.FontSize
			n++
			lemma := c.Lemma()
			if v, ok := largest[lemma]; !ok || c.FontSize > v {
				largest[lemma] = c.FontSize
			}
		}
	}

	scores := make(map[string]float64, len(largest))
	if n == 0 {
		return scores
	}
	mean := sum / float64(n)
	std := math.Sqrt(math.Max(sumSq/float64(n)-mean*mean, 0))
	for lemma, size := range largest {
		if std == 0 {
			scores[lemma] = 1
			continue
		}
		scores[lemma] = math.Pow(2, (size-mean)/std)
	}
	return scores
}

// ColorScorer rates a lemma by the rarest colour it appears in:
// score = 1 + (1 - share of that colour among candidate occurrences).
type ColorScorer struct{}

func (ColorScorer) Name() string { return Color }

func (ColorScorer) Score(pdf candidate.PDFList) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, page := range pdf.Pages {
		for _, c := range page.Candidates {
			counts[c.Color]++
			total++
		}
	}

	scores := make(map[string]float64)
	for _, page := range pdf.Pages {
		for _, c := range page.Candidates {
			rarity := 1 - float64(counts[c.Color])/float64(total)
			lemma := c.Lemma()
			if v, ok := scores[lemma]; !ok || 1+rarity > v {
				scores[lemma] = 1 + rarity
			}
		}
	}
	return scores
}
