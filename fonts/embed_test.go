package fonts

import "testing"

func TestLoadBuiltin(t *testing.T) {
	for _, path := range []string{"embed:goregular", "gobold", "embed:GoMono.ttf"} {
		data, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) returned empty data", path)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("embed:comic-sans"); err == nil {
		t.Fatalf("expected error for unknown font")
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 5 || names[0] != "gobold" || names[len(names)-1] != "goregular" {
		t.Fatalf("unexpected names: %v", names)
	}
}
