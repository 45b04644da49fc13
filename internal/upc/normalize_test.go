package upc

import "testing"

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"016000476738":      "016000476738",
		" 0160-0047 6738 ":  "016000476738",
		"０１６０００４７６７３８": "016000476738",
		"884912-129512\n":   "884912129512",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFoldKeepsDashes(t *testing.T) {
	tests := map[string]string{
		"BOX-SM":       "BOX-SM",
		" BOX-SM \t":   "BOX-SM",
		"ＢＯＸ－ＳＭ":       "BOX-SM",
		"0160-0047 6738": "0160-00476738",
	}
	for in, want := range tests {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlaceholderName(t *testing.T) {
	name := PlaceholderName("123456")
	if name != "Unknown Product - UPC 123456" {
		t.Fatalf("unexpected placeholder %q", name)
	}
	if !IsPlaceholderName(name) {
		t.Fatal("placeholder not recognised")
	}
	if IsPlaceholderName("Chex Mix") {
		t.Fatal("real name treated as placeholder")
	}
}
