package layout

import (
	"errors"
	"math"
	"testing"
	"unicode/utf8"
)

// stubMeasurer 按每个字符 10px 宽、12px 高计算，并记录调用次数。
type stubMeasurer struct {
	calls []string
}

func (s *stubMeasurer) Measure(text string, _ FontResource, _ float64) (Extent, error) {
	s.calls = append(s.calls, text)
	return Extent{Width: 10 * float64(utf8.RuneCountInString(text)), Height: 12}, nil
}

func fixedWidth(w float64) Measurer {
	return MeasureFunc(func(string, FontResource, float64) (Extent, error) {
		return Extent{Width: w, Height: 10}, nil
	})
}

func baseStyle(align Align) Style {
	return Style{Align: align, OriginX: 40, OriginY: 40, LineHeight: 36, FontSize: 24, Color: Black}
}

func TestLayoutRightAlignUsesInset(t *testing.T) {
	slots, err := Allocate("hello", []int{10})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	style := baseStyle(AlignRight)
	style.OriginX = 10
	out, err := Layout(slots, style, fixedWidth(50), 200)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(out) != 1 || out[0].X != 140 {
		t.Fatalf("expected x=140, got %+v", out)
	}
}

// 首行之上留出一个行高：row 0 → 40+36，row 1 → 40+72。
func TestLayoutVerticalOffsets(t *testing.T) {
	slots, err := Allocate("aaaa bbbb", []int{4, 4})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	out, err := Layout(slots, baseStyle(AlignLeft), &stubMeasurer{}, 400)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(out))
	}
	if out[0].Y != 76 || out[1].Y != 112 {
		t.Fatalf("unexpected y offsets: %g, %g", out[0].Y, out[1].Y)
	}
	for _, ins := range out {
		if ins.X != 40 {
			t.Fatalf("left aligned x should equal origin, got %g", ins.X)
		}
	}
}

func TestLayoutCenterUsesWidestLine(t *testing.T) {
	// 第一行连同空格 11 个字符（110px），第二行 6 个字符（60px）。
	slots, err := Allocate("aaaaa bbbbb cccccc", []int{10, 10})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	style := baseStyle(AlignCenter)
	style.OriginX = 5
	out, err := Layout(slots, style, &stubMeasurer{}, 1000)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if out[0].Text != "aaaaa bbbbb" || out[0].Width != 110 {
		t.Fatalf("unexpected first line: %+v", out[0])
	}
	if out[0].X != 5 {
		t.Fatalf("widest line should sit at origin, got %g", out[0].X)
	}
	if want := 5 + (110.0-60.0)/2; out[1].X != want {
		t.Fatalf("second line x = %g, want %g", out[1].X, want)
	}
}

// 空行不产生指令，但后续行保持原始行号。
func TestLayoutKeepsDeclaredRow(t *testing.T) {
	slots, err := Allocate("hello", []int{2, 10, 10})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	m := &stubMeasurer{}
	out, err := Layout(slots, baseStyle(AlignLeft), m, 400)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected a single instruction, got %+v", out)
	}
	if out[0].Row != 1 || out[0].Y != 40+36*2 {
		t.Fatalf("expected row 1 at y=112, got %+v", out[0])
	}
	if len(m.calls) != 1 {
		t.Fatalf("empty lines must not be measured, calls=%q", m.calls)
	}
}

func TestLayoutEmptySlots(t *testing.T) {
	out, err := Layout(UniformSlots(3, 10), baseStyle(AlignLeft), &stubMeasurer{}, 100)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no instructions, got %+v", out)
	}
}

func TestLayoutMeasureErrorPropagates(t *testing.T) {
	cause := errors.New("font file unreadable")
	m := MeasureFunc(func(string, FontResource, float64) (Extent, error) {
		return Extent{}, cause
	})
	slots, _ := Allocate("hi", []int{5})
	_, err := Layout(slots, baseStyle(AlignLeft), m, 100)
	if !errors.Is(err, ErrMeasure) || !errors.Is(err, cause) {
		t.Fatalf("expected measure error wrapping cause, got %v", err)
	}
	var me *MeasureError
	if !errors.As(err, &me) || me.Text != "hi" {
		t.Fatalf("expected *MeasureError for %q, got %v", "hi", err)
	}
	if errors.Is(err, ErrOverflow) {
		t.Fatalf("measure failure must not look like overflow")
	}
}

func TestLayoutRejectsInvalidStyle(t *testing.T) {
	slots, _ := Allocate("hi", []int{5})
	cases := []Style{
		{Align: Align(7), FontSize: 12},
		{Align: AlignLeft, FontSize: 0},
		{Align: AlignLeft, FontSize: 12, LineHeight: -1},
		{Align: AlignLeft, FontSize: math.NaN()},
	}
	for i, style := range cases {
		if _, err := Layout(slots, style, &stubMeasurer{}, 100); !errors.Is(err, ErrConfig) {
			t.Fatalf("case %d: expected ErrConfig, got %v", i, err)
		}
	}
	if _, err := Layout(slots, baseStyle(AlignLeft), nil, 100); !errors.Is(err, ErrConfig) {
		t.Fatalf("nil measurer should be a config error, got %v", err)
	}
}

func TestParseAlign(t *testing.T) {
	cases := map[string]Align{
		"":       AlignLeft,
		"left":   AlignLeft,
		"Start":  AlignLeft,
		"center": AlignCenter,
		"middle": AlignCenter,
		"RIGHT":  AlignRight,
		"end":    AlignRight,
	}
	for in, want := range cases {
		got, err := ParseAlign(in)
		if err != nil || got != want {
			t.Fatalf("ParseAlign(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlign("justify"); !errors.Is(err, ErrConfig) {
		t.Fatalf("unknown alignment should be rejected, got %v", err)
	}
}

func TestComposeBlocks(t *testing.T) {
	blocks := []Block{
		{Name: "title", Text: "Thanks for using our image text PHP library!", Widths: []int{25, 25, 25}, Style: baseStyle(AlignLeft)},
		{Name: "footer", Text: "No, really, thanks!", Widths: []int{30}, Style: Style{Align: AlignRight, OriginX: 10, OriginY: 140, LineHeight: 20, FontSize: 14}},
	}
	out, err := Compose(blocks, &stubMeasurer{}, 600)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 block layouts, got %d", len(out))
	}
	if got := len(out[0].Instructions); got != 2 {
		t.Fatalf("title should use 2 lines, got %d", got)
	}
	footer := out[1].Instructions[0]
	if footer.Text != "No, really, thanks!" || footer.X != 600-190-10 || footer.Y != 160 {
		t.Fatalf("unexpected footer instruction: %+v", footer)
	}
}

func TestComposeStopsOnOverflow(t *testing.T) {
	blocks := []Block{
		{Text: "fits", Widths: []int{10}, Style: baseStyle(AlignLeft)},
		{Text: "Hello world", Widths: []int{5}, Style: baseStyle(AlignLeft)},
	}
	out, err := Compose(blocks, &stubMeasurer{}, 100)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if out != nil {
		t.Fatalf("no partial layout expected, got %+v", out)
	}
}
