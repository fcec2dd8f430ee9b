package layout

import "fmt"

// Compose 对每个文本块执行分配与排版，每个块都使用全新的行。
// 任意一个块失败都会中止整个过程，不返回部分结果。
func Compose(blocks []Block, m Measurer, imageWidth float64) ([]BlockLayout, error) {
	log := Logger()
	out := make([]BlockLayout, 0, len(blocks))
	for i, b := range blocks {
		label := b.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if err := b.Style.Validate(); err != nil {
			return nil, fmt.Errorf("文本块 %s: %w", label, err)
		}
		slots, err := Allocate(b.Text, b.Widths)
		if err != nil {
			return nil, fmt.Errorf("文本块 %s: %w", label, err)
		}
		lines, err := Measure(slots, b.Style, m)
		if err != nil {
			return nil, fmt.Errorf("文本块 %s: %w", label, err)
		}
		instructions, err := Place(lines, b.Style, imageWidth)
		if err != nil {
			return nil, fmt.Errorf("文本块 %s: %w", label, err)
		}
		log.Debug("block composed",
			"block", label,
			"slots", len(slots),
			"lines", len(lines),
			"align", b.Style.Align.String(),
		)
		out = append(out, BlockLayout{
			Name:         b.Name,
			Style:        b.Style,
			Slots:        slots,
			Lines:        lines,
			Instructions: instructions,
		})
	}
	return out, nil
}
