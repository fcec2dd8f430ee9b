package layout

import (
	"fmt"
	"math"
	"strconv"
)

// Validate 在排版前检查样式，未知的对齐方式或非法字号会返回 *ConfigError。
func (s Style) Validate() error {
	if !s.Align.Valid() {
		return &ConfigError{Field: "align", Value: s.Align.String()}
	}
	if s.FontSize <= 0 || math.IsNaN(s.FontSize) {
		return &ConfigError{Field: "size", Value: strconv.FormatFloat(s.FontSize, 'g', -1, 64), Err: fmt.Errorf("font size must be positive")}
	}
	if s.LineHeight < 0 || math.IsNaN(s.LineHeight) {
		return &ConfigError{Field: "line-height", Value: strconv.FormatFloat(s.LineHeight, 'g', -1, 64), Err: fmt.Errorf("line height must not be negative")}
	}
	return nil
}

// Measure 拼接并测量所有非空行。空行不产生结果，但保留其余行的原始行号。
func Measure(slots []Slot, style Style, m Measurer) ([]MeasuredLine, error) {
	if m == nil {
		return nil, &ConfigError{Field: "measurer", Value: "", Err: fmt.Errorf("no measurer configured")}
	}
	lines := make([]MeasuredLine, 0, len(slots))
	for row, slot := range slots {
		if slot.Empty() {
			continue
		}
		text := slot.Text()
		ext, err := m.Measure(text, style.Font, style.FontSize)
		if err != nil {
			return nil, &MeasureError{Text: text, Err: err}
		}
		lines = append(lines, MeasuredLine{Row: row, Text: text, Width: ext.Width, Height: ext.Height})
	}
	return lines, nil
}

// Place 根据对齐方式为已测量的行计算绘制偏移。
//
// 第 row 行的基线位于 OriginY + LineHeight*(row+1)，即首行之上留出一个行高。
// Left 时 x 为 OriginX；Center 时以最宽的行为基准居中；Right 时 OriginX
// 作为距图片右边缘的内边距。
func Place(lines []MeasuredLine, style Style, imageWidth float64) ([]Instruction, error) {
	if !style.Align.Valid() {
		return nil, &ConfigError{Field: "align", Value: style.Align.String()}
	}
	maxWidth := 0.0
	for _, ln := range lines {
		maxWidth = math.Max(maxWidth, ln.Width)
	}

	out := make([]Instruction, 0, len(lines))
	for _, ln := range lines {
		var x float64
		switch style.Align {
		case AlignLeft:
			x = style.OriginX
		case AlignCenter:
			x = style.OriginX + (maxWidth-ln.Width)/2
		case AlignRight:
			x = imageWidth - ln.Width - style.OriginX
		}
		out = append(out, Instruction{
			Row:    ln.Row,
			Text:   ln.Text,
			X:      x,
			Y:      style.OriginY + style.LineHeight*float64(ln.Row+1),
			Width:  ln.Width,
			Height: ln.Height,
		})
	}
	return out, nil
}

// Layout 依次执行 Measure 与 Place，返回按行号升序排列的绘制指令。
func Layout(slots []Slot, style Style, m Measurer, imageWidth float64) ([]Instruction, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	lines, err := Measure(slots, style, m)
	if err != nil {
		return nil, err
	}
	return Place(lines, style, imageWidth)
}
