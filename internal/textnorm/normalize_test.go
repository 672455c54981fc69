package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"lowercases", "Random Access Memories", "random access memories"},
		{"strips diacritics", "Café Müller", "cafe muller"},
		{"punctuation to spaces", "AC/DC: Back-In-Black!", "ac dc back in black"},
		{"collapses whitespace", "dark   side \t of  the moon", "dark side of the moon"},
		{"apostrophes", "Don't Stop Me Now", "don t stop me now"},
		{"leading punctuation", "...Baby One More Time", "baby one more time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooseEqual(t *testing.T) {
	if !LooseEqual("Daft Punk", "daft punk") {
		t.Error("expected case-insensitive equality")
	}
	if !LooseEqual("Beyoncé", "Beyonce") {
		t.Error("expected diacritic-insensitive equality")
	}
	if LooseEqual("Daft Punk", "Justice") {
		t.Error("unexpected equality for different strings")
	}
	if !LooseEqual("", "  ") {
		t.Error("expected empty forms to be equal")
	}
}

func TestLooseContains(t *testing.T) {
	if !LooseContains("Dark Souls Remastered", "Dark Souls") {
		t.Error("expected containment")
	}
	if !LooseContains("Dark Souls", "Dark Souls Remastered") {
		t.Error("expected containment to be symmetric")
	}
	if LooseContains("", "Dark Souls") {
		t.Error("empty form must not be contained")
	}
	if LooseContains("Dark Souls", "Hollow Knight") {
		t.Error("unexpected containment")
	}
}

func TestTokenize(t *testing.T) {
	tok := NewTokenizer(nil)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"drops short and stop words", "The Rise and Fall of Ziggy Stardust", []string{"rise", "fall", "ziggy", "stardust"}},
		{"drops edition markers", "Nevermind (Remastered Deluxe Edition)", []string{"nevermind"}},
		{"dedupes preserving order", "money money money abba", []string{"money", "abba"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tok.Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestTokenizeCustomStopWords(t *testing.T) {
	tok := NewTokenizer([]string{"soundtrack"})
	got := tok.Tokenize("Interstellar Original Soundtrack")
	want := []string{"interstellar", "original"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestOverlap(t *testing.T) {
	a := []string{"random", "access", "memories"}
	b := []string{"memories", "random", "daft"}
	if got := Overlap(a, b); got != 2 {
		t.Errorf("Overlap = %d, want 2", got)
	}
	if got := Overlap(nil, b); got != 0 {
		t.Errorf("Overlap(nil) = %d, want 0", got)
	}
}
