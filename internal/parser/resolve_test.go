package parser

import (
	"errors"
	"testing"
)

func TestResolve_SampleDocument(t *testing.T) {
	lines, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	entries, err := Resolve(lines)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := []struct {
		category string
		id       string
	}{
		{"Activity Manager", "switch-to-activity-7f2ba3a4-8d3e-4d0b-9d5a-8d3c3c1f4b0e"},
		{"kwin", "ExposeClass"},
		{"kwin", "Switch to Desktop 10"},
		{"kwin", "Kill Window"},
		{"kwin", "Show Desktop"},
		{"Media Controller", "nextmedia"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Category != w.category || entries[i].Record.ID != w.id {
			t.Errorf("entry %d = (%q, %q), want (%q, %q)",
				i, entries[i].Category, entries[i].Record.ID, w.category, w.id)
		}
	}
}

func TestResolve_FriendlyNameAppliesUntilNextHeader(t *testing.T) {
	input := "[a]\n" +
		"one=A,none,One\n" +
		"_k_friendly_name=Alpha\n" +
		"two=B,none,Two\n" +
		"[b]\n" +
		"three=C,none,Three\n"

	lines, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	entries, err := Resolve(lines)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	got := []string{entries[0].Category, entries[1].Category, entries[2].Category}
	want := []string{"a", "Alpha", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d category = %q, want %q", i, got[i], want[i])
		}
	}
	if entries[2].Line != 6 {
		t.Errorf("entry 2 Line = %d, want 6", entries[2].Line)
	}
}

func TestResolve_RecordBeforeHeader(t *testing.T) {
	inputs := []string{
		"id=A,none,Alpha\n[a]\n",
		"_k_friendly_name=Orphan\nid=A,none,Alpha\n",
	}

	for _, input := range inputs {
		lines, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		entries, err := Resolve(lines)
		if !errors.Is(err, ErrNoSection) {
			t.Errorf("Resolve(%q) error = %v, want ErrNoSection", input, err)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Resolve(%q) error = %v, want ErrSyntax", input, err)
		}
		if entries != nil {
			t.Errorf("Resolve(%q) returned partial entries", input)
		}
	}
}

func TestResolve_HeadersOnly(t *testing.T) {
	lines, err := Parse("[a]\n[b]\n_k_friendly_name=B\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	entries, err := Resolve(lines)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestResolveSections_FriendlyNameLabelsWholeSection(t *testing.T) {
	lines, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	entries, err := ResolveSections(lines)
	if err != nil {
		t.Fatalf("ResolveSections() error: %v", err)
	}

	want := []string{"Activity Manager", "KWin", "KWin", "KWin", "KWin", "Media Controller"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, category := range want {
		if entries[i].Category != category {
			t.Errorf("entry %d category = %q, want %q", i, entries[i].Category, category)
		}
	}
}

func TestResolveSections_LastFriendlyNameWins(t *testing.T) {
	lines, err := Parse("[a]\n_k_friendly_name=First\nid=A,none,Alpha\n_k_friendly_name=Second\n[b]\nid=B,none,Beta\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	entries, err := ResolveSections(lines)
	if err != nil {
		t.Fatalf("ResolveSections() error: %v", err)
	}
	if entries[0].Category != "Second" || entries[1].Category != "b" {
		t.Errorf("categories = %q, %q", entries[0].Category, entries[1].Category)
	}
}

func TestResolveSections_RecordBeforeHeader(t *testing.T) {
	lines, err := Parse("id=A,none,Alpha\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, err := ResolveSections(lines); !errors.Is(err, ErrNoSection) {
		t.Errorf("ResolveSections() error = %v, want ErrNoSection", err)
	}
}
