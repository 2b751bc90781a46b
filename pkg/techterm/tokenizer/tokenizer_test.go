package tokenizer

import (
	"reflect"
	"testing"

	"github.com/cognicore/techterm/pkg/techterm/lang"
	"github.com/cognicore/techterm/pkg/techterm/term"
)

func TestUniversalPOS(t *testing.T) {
	tests := []struct {
		tag, surface, want string
	}{
		{"NNS", "networks", "NOUN"},
		{"NNP", "Kleinberg", "PROPN"},
		{"JJ", "neural", "ADJ"},
		{"VBG", "learning", "VERB"},
		{"CD", "42", "NUM"},
		{"IN", "of", "ADP"},
		{"HYPH", "-", "SYM"},
		{",", ",", "PUNCT"},
		{"??", "!", "PUNCT"},
		{"??", "word", "X"},
	}
	for _, tt := range tests {
		if got := UniversalPOS(tt.tag, tt.surface); got != tt.want {
			t.Errorf("UniversalPOS(%q, %q) = %q, want %q", tt.tag, tt.surface, got, tt.want)
		}
	}
}

func TestLemmatize(t *testing.T) {
	tests := []struct {
		surface, pos, want string
	}{
		{"Networks", "NOUN", "network"},
		{"running", "VERB", "run"},
		{"Of", "ADP", "of"},
		{"42", "NUM", "42"},
	}
	for _, tt := range tests {
		if got := Lemmatize(tt.surface, tt.pos); got != tt.want {
			t.Errorf("Lemmatize(%q, %q) = %q, want %q", tt.surface, tt.pos, got, tt.want)
		}
	}
}

func TestSplitHyphen(t *testing.T) {
	tests := map[string][]string{
		"state-of-the-art": {"state", "-", "of", "-", "the", "-", "art"},
		"-":                {"-"},
		"--":               {"--"},
		"graph":            {"graph"},
	}
	for in, want := range tests {
		if got := splitHyphen(in); !reflect.DeepEqual(got, want) {
			t.Errorf("splitHyphen(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEnglishInScope(t *testing.T) {
	e := NewEnglish()
	if !e.InScope("graph theory") {
		t.Error("latin text out of scope")
	}
	if e.InScope("グラフ理論") || e.InScope("graph 理論") {
		t.Error("CJK text in scope")
	}
	if e.InScope("1234 ...") {
		t.Error("text without letters in scope")
	}
}

func TestEnglishTokenize(t *testing.T) {
	tokens, err := NewEnglish().Tokenize("Graph theory.")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	var surfaces []string
	for _, tok := range tokens {
		surfaces = append(surfaces, tok.SurfaceForm)
		if tok.Lang != lang.English {
			t.Errorf("token %q has lang %q", tok.SurfaceForm, tok.Lang)
		}
		if tok.POS == "" {
			t.Errorf("token %q has no POS", tok.SurfaceForm)
		}
	}
	if want := []string{"Graph", "theory", "."}; !reflect.DeepEqual(surfaces, want) {
		t.Errorf("surfaces = %v, want %v", surfaces, want)
	}
	if tokens[2].POS != "PUNCT" {
		t.Errorf("'.' POS = %q, want PUNCT", tokens[2].POS)
	}
}

type fixed struct {
	code lang.Code
	ok   bool
}

func (f fixed) Lang() lang.Code { return f.code }
func (f fixed) InScope(string) bool { return f.ok }
func (f fixed) Tokenize(text string) ([]term.Token, error) {
	return []term.Token{{Lang: f.code, SurfaceForm: text, Lemma: text}}, nil
}

func TestRegistryPrecedence(t *testing.T) {
	r := NewRegistry(fixed{code: lang.Japanese}, fixed{code: lang.English, ok: true}, fixed{code: "xx", ok: true})
	tokens, err := r.Tokenize("text")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Lang != lang.English {
		t.Errorf("tokens = %v, want one English token", tokens)
	}

	none := NewRegistry(fixed{code: lang.Japanese})
	if tokens, err := none.Tokenize("text"); tokens != nil || err != nil {
		t.Errorf("out of scope = %v, %v", tokens, err)
	}
	if got := r.Languages(); !reflect.DeepEqual(got, []lang.Code{lang.Japanese, lang.English, "xx"}) {
		t.Errorf("Languages = %v", got)
	}
}
