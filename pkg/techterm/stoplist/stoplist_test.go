package stoplist

import "testing"

func TestIsStopCaseInsensitive(t *testing.T) {
	l := New([]string{"The", " a ", ""})
	if !l.IsStop("the") || !l.IsStop("THE") || !l.IsStop("a") {
		t.Error("expected the/a to be stopwords")
	}
	if l.IsStop("network") {
		t.Error("network is not a stopword")
	}
	if l.Len() != 2 {
		t.Errorf("expected 2 stopwords, got %d", l.Len())
	}
}

func TestAddRemove(t *testing.T) {
	l := New(nil)
	l.Add("Such")
	if !l.IsStop("such") {
		t.Error("added word should be a stopword")
	}
	l.Remove("SUCH")
	if l.IsStop("such") {
		t.Error("removed word should be gone")
	}
}

func TestAllSorted(t *testing.T) {
	l := New([]string{"zebra", "apple", "mango"})
	all := l.All()
	if len(all) != 3 || all[0] != "apple" || all[1] != "mango" || all[2] != "zebra" {
		t.Errorf("All() = %v", all)
	}
}

func TestNilList(t *testing.T) {
	var l *List
	if l.IsStop("the") || l.Len() != 0 || l.All() != nil {
		t.Error("nil list should be empty")
	}
}
