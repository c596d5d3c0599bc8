package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Mine\nbackground: #102030\nStatusBackground: #00000080\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("Background = %+v", th.Background)
	}
	if th.StatusBackground != (color.RGBA{0, 0, 0, 0x80}) {
		t.Errorf("StatusBackground = %+v", th.StatusBackground)
	}
	if th.Foreground != Default().Foreground {
		t.Errorf("missing keys should keep defaults")
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"red", "#12345", "#GG0000"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

func TestLoaderEmbeddedAndFiles(t *testing.T) {
	l := &Loader{ConfigDir: t.TempDir()}

	dark, err := l.Load("dark")
	if err != nil {
		t.Fatalf("Load(dark) failed: %v", err)
	}
	if dark.Name != "Dark" {
		t.Errorf("unexpected embedded theme %q", dark.Name)
	}

	custom := filepath.Join(l.ConfigDir, "sunny.theme")
	if err := os.WriteFile(custom, []byte("Name: Sunny\nBackground: #FFEE00\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sunny, err := l.Load("sunny")
	if err != nil {
		t.Fatalf("Load(sunny) failed: %v", err)
	}
	if sunny.Background != (color.RGBA{0xFF, 0xEE, 0, 255}) {
		t.Errorf("Background = %+v", sunny.Background)
	}

	byPath, err := l.Load(custom)
	if err != nil || byPath.Name != "Sunny" {
		t.Errorf("Load by path = %+v, %v", byPath, err)
	}

	if _, err := l.Load("nope"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestFieldsIncludeEveryColor(t *testing.T) {
	fields := Default().Fields()
	if len(fields) != 15 {
		t.Fatalf("expected 15 colour fields, got %d", len(fields))
	}
	if fields[0].Name != "Background" {
		t.Errorf("first field = %s", fields[0].Name)
	}
	names := Names()
	if len(names) < 3 || names[0] != "default" {
		t.Errorf("Names() = %v", names)
	}
}
