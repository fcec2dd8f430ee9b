// Package overlay is the programmatic counterpart of an overlay job file:
// build an Image, attach Text blocks, then Render to a file.
//
//	img := overlay.NewImage("source.jpg", canvasrenderer.NewRenderer("."))
//	t := overlay.NewText("Thanks for using our image text library!", 3, 25)
//	t.Color = "FFFFFF"
//	t.Size = 24
//	t.LineHeight = 36
//	t.StartX, t.StartY = 40, 40
//	img.AddText(t)
//	err := img.Render("destination.jpg")
package overlay

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/renderer"
)

// 与任务文件中未声明属性时的默认值保持一致。
const (
	DefaultAlign      = "left"
	DefaultColor      = "000000"
	DefaultLineHeight = 24.0 // px
	DefaultSize       = 16.0 // pt
	DefaultWidth      = 80   // 每行字符数
	defaultFontName   = "Body"
	defaultFontSrc    = "embed:goregular"
)

// Text 是一个待绘制的文本块。字段可在 AddText 之后、Render 之前随时修改；
// AddLines 声明的行在生成布局时才读取 Width。
type Text struct {
	Name       string
	Text       string
	Width      int     // AddLines 声明的行使用的字符预算
	Align      string  // left / center / right
	Color      string  // 十六进制，# 可省略
	Font       string  // 字体文件路径或 embed:<name>，为空时使用内置字体
	LineHeight float64 // px
	Size       float64 // pt
	StartX     float64 // px；右对齐时为距右边缘的内边距
	StartY     float64 // px

	lines []lineBudget
}

// lineBudget 是一行的字符预算；uniform 的行沿用 Text.Width。
type lineBudget struct {
	maxChars int
	uniform  bool
}

// NewText 创建文本块并预先声明 numLines 行，每行 width 个字符。
func NewText(text string, numLines, width int) *Text {
	t := &Text{
		Text:       text,
		Width:      width,
		Align:      DefaultAlign,
		Color:      DefaultColor,
		LineHeight: DefaultLineHeight,
		Size:       DefaultSize,
	}
	t.AddLines(numLines)
	return t
}

// AddLines 追加 n 行，预算为生成布局时的 t.Width。
func (t *Text) AddLines(n int) {
	for i := 0; i < n; i++ {
		t.lines = append(t.lines, lineBudget{uniform: true})
	}
}

// AddLine 追加一行并单独指定字符预算。
func (t *Text) AddLine(maxChars int) {
	t.lines = append(t.lines, lineBudget{maxChars: maxChars})
}

// Widths 返回已声明各行当前的字符预算。
func (t *Text) Widths() []int {
	out := make([]int, len(t.lines))
	for i, l := range t.lines {
		out[i] = l.maxChars
		if l.uniform {
			out[i] = t.Width
		}
	}
	return out
}

// Block 校验并转换为布局使用的文本块。
func (t *Text) Block() (layout.Block, error) {
	align, err := layout.ParseAlign(t.Align)
	if err != nil {
		return layout.Block{}, err
	}
	col := layout.Black
	if t.Color != "" {
		if col, err = layout.ParseColor(t.Color); err != nil {
			return layout.Block{}, err
		}
	}
	widths := t.Widths()
	for _, w := range widths {
		if w < 0 {
			return layout.Block{}, &layout.ConfigError{Field: "width", Value: fmt.Sprint(w)}
		}
	}
	style := layout.Style{
		Align:      align,
		OriginX:    t.StartX,
		OriginY:    t.StartY,
		LineHeight: t.LineHeight,
		Font:       t.fontResource(),
		FontSize:   t.Size,
		Color:      col,
	}
	if err := style.Validate(); err != nil {
		return layout.Block{}, err
	}
	return layout.Block{Name: t.Name, Text: t.Text, Widths: widths, Style: style}, nil
}

func (t *Text) fontResource() layout.FontResource {
	if t.Font == "" {
		return layout.FontResource{Name: defaultFontName, Src: defaultFontSrc}
	}
	return layout.FontResource{Name: t.Font, Src: t.Font}
}

// Image 是一张源图片及其上的文本块。
type Image struct {
	Source string
	Output layout.Output

	backend renderer.Backend
	texts   []*Text
}

// NewImage 创建以 src 为底图的叠加任务，backend 同时负责测量与绘制。
func NewImage(src string, backend renderer.Backend) *Image {
	return &Image{Source: src, backend: backend}
}

// AddText 追加一个文本块，按添加顺序绘制。
func (img *Image) AddText(t *Text) {
	img.texts = append(img.texts, t)
}

// Plan 分配单词并计算所有绘制指令，不写任何文件。
func (img *Image) Plan() (*layout.Plan, error) {
	if img.backend == nil {
		return nil, &layout.ConfigError{Field: "backend", Err: fmt.Errorf("未指定渲染后端")}
	}
	w, h, err := img.backend.ImageSize(img.Source)
	if err != nil {
		return nil, fmt.Errorf("读取源图片 %s 失败: %w", img.Source, err)
	}

	res := layout.ResourceSet{
		Fonts:  map[string]layout.FontResource{},
		Colors: map[string]layout.Color{},
		Styles: map[string]layout.StyleDef{},
	}
	blocks := make([]layout.Block, 0, len(img.texts))
	for i, t := range img.texts {
		b, err := t.Block()
		if err != nil {
			return nil, fmt.Errorf("文本块 %d: %w", i+1, err)
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("text#%d", i+1)
		}
		res.Fonts[b.Style.Font.Name] = b.Style.Font
		blocks = append(blocks, b)
	}

	layouts, err := layout.Compose(blocks, img.backend, float64(w))
	if err != nil {
		return nil, err
	}
	return &layout.Plan{
		Source:    layout.Source{Path: img.Source, Width: float64(w), Height: float64(h)},
		Output:    img.Output,
		Resources: res,
		Blocks:    layouts,
	}, nil
}

// Render 排版并绘制，结果写入 path。未设置 Output.Format 时按扩展名推断。
func (img *Image) Render(path string) error {
	plan, err := img.Plan()
	if err != nil {
		return err
	}
	if plan.Output.Format == "" {
		plan.Output.Format = renderer.FormatFromPath(path)
	}
	data, err := img.backend.Render(plan)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入图片 %s 失败: %w", path, err)
	}
	layout.Logger().Info("image rendered", "source", img.Source, "output", path, "blocks", len(plan.Blocks))
	return nil
}
