package binding

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user":{"name":"Ada","tags":["x","y"]},"count":3,"ratio":0.5,"none":null}`)

	cases := []struct {
		in   string
		want string
	}{
		{"Hello, ${user.name}!", "Hello, Ada!"},
		{"${ user.name }", "Ada"},
		{"tag ${user.tags[1]}", "tag y"},
		{"${count} items", "3 items"},
		{"${ratio}", "0.5"},
		{"[${none}]", "[]"},
		{"${missing.path}", "${missing.path}"},
		{"${user.tags[9]}", "${user.tags[9]}"},
		{"${user.tags[x]}", "${user.tags[x]}"},
		{"no placeholders", "no placeholders"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("nil data must keep placeholder, got %q", got)
	}
}

func TestLookupNestedArrays(t *testing.T) {
	data := decode(t, `{"grid":[[1,2],[3,4]]}`)
	v, ok := Lookup(data, "grid[1][0]")
	if !ok {
		t.Fatalf("expected lookup to succeed")
	}
	if v.(float64) != 3 {
		t.Fatalf("unexpected value: %v", v)
	}
}
