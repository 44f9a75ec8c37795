package chart

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ff0000", "#ff0000", false},
		{"#0f0", "#00ff00", false},
		{"rgb(0, 0, 255)", "#0000ff", false},
		{"RGBA(255,255,255,0.5)", "#ffffff", false},
		{"  #333333 ", "#333333", false},
		{"red", "", true},
		{"rgb(1,2)", "", true},
		{"rgb(300,0,0)", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && c.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, c.Hex(), tt.want)
			}
		})
	}
}

func TestPaletteColorCycles(t *testing.T) {
	if PaletteColor(0) != PaletteColor(len(Palette)) {
		t.Error("palette should cycle")
	}
	if PaletteColor(-1) != Palette[len(Palette)-1] {
		t.Errorf("PaletteColor(-1) = %s", PaletteColor(-1))
	}
}

func TestContrastText(t *testing.T) {
	if got := ContrastText("#ffffff"); got != "#1f2933" {
		t.Errorf("ContrastText(white) = %s, want dark", got)
	}
	if got := ContrastText("#000000"); got != "#ffffff" {
		t.Errorf("ContrastText(black) = %s, want white", got)
	}
}

func TestHexColorFallback(t *testing.T) {
	if got := HexColor("nope", "#123456"); got != "#123456" {
		t.Errorf("HexColor fallback = %s", got)
	}
}
