// Package canvasrenderer 基于 github.com/tdewolff/canvas 实现测量与绘制。
package canvasrenderer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/imprint/fonts"
	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/renderer"
)

// 画布单位是毫米。这里让 1mm 对应 1 个输出像素并按 DPMM(1) 栅格化，
// 而 canvas 的字号单位是 pt（1pt = 25.4/72 mm），所以像素字号要乘以 mmToPt。
const mmToPt = 72.0 / 25.4

var _ renderer.Backend = (*Renderer)(nil)

// Renderer 在源图片上绘制排版计划。字体族按 FontResource 缓存，可并发测量。
type Renderer struct {
	baseDir  string
	builtins map[string][]byte

	mu       sync.Mutex
	families map[layout.FontResource]*canvas.FontFamily
	fallback *canvas.FontFamily
}

// Options 配置渲染器。Fonts 中的字体可通过 built-in:<name> 引用。
type Options struct {
	BaseDir string
	Fonts   map[string]Resource
}

// Resource 提供字体数据，Bytes 优先于 Path。
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer 创建渲染器，相对字体路径以 baseDir 为根。
func NewRenderer(baseDir string) *Renderer {
	return NewRendererWithOptions(Options{BaseDir: baseDir})
}

func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:  opts.BaseDir,
		builtins: make(map[string][]byte, len(opts.Fonts)),
		families: map[layout.FontResource]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		data := res.Bytes
		if len(data) == 0 && res.Path != "" {
			var err error
			if data, err = os.ReadFile(res.Path); err != nil {
				layout.Logger().Warn("skip built-in font", "name", name, "path", res.Path, "err", err)
				continue
			}
		}
		if name != "" && len(data) > 0 {
			r.builtins[name] = data
		}
	}
	return r
}

// Measure 实现 layout.Measurer：size 为 pt，返回像素宽度与 ascent+descent 高度。
func (r *Renderer) Measure(text string, font layout.FontResource, size float64) (layout.Extent, error) {
	face, err := r.face(font, size, layout.Black)
	if err != nil {
		return layout.Extent{}, err
	}
	m := face.Metrics()
	return layout.Extent{Width: face.TextWidth(text), Height: m.Ascent + m.Descent}, nil
}

// ImageSize 实现 layout.ImageProber。
func (r *Renderer) ImageSize(src string) (int, int, error) {
	return renderer.ProbeImage(src)
}

// Render 先铺源图，再按指令逐行写字，最后栅格化为 plan.Output 指定的格式。
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, errors.New("排版计划为空")
	}
	src, err := renderer.LoadImage(plan.Source.Path)
	if err != nil {
		return nil, err
	}
	size := src.Bounds().Size()

	c := canvas.New(float64(size.X), float64(size.Y))
	ctx := canvas.NewContext(c)
	// 左上角为原点、y 向下，与布局坐标一致
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.DrawImage(0, 0, src, canvas.DPMM(1))

	for _, block := range plan.Blocks {
		if len(block.Instructions) == 0 {
			continue
		}
		face, err := r.face(block.Style.Font, block.Style.FontSize, block.Style.Color)
		if err != nil {
			return nil, fmt.Errorf("文本块 %s: %w", block.Name, err)
		}
		// X 已包含对齐偏移，一律从基线左端开始画
		for _, ins := range block.Instructions {
			ctx.DrawText(ins.X, ins.Y, canvas.NewTextLine(face, ins.Text, canvas.Left))
		}
	}

	out := rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace)
	data, err := renderer.EncodeBytes(out, plan.Output)
	if err != nil {
		return nil, fmt.Errorf("编码图片失败: %w", err)
	}
	layout.Logger().Debug("canvas render done", "source", plan.Source.Path, "blocks", len(plan.Blocks), "bytes", len(data))
	return data, nil
}

func (r *Renderer) face(font layout.FontResource, sizePt float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.family(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt*layout.PtToPx*mmToPt, renderer.ToColor(col), canvas.FontRegular, canvas.FontNormal), nil
}

// family 依次尝试 src、fallback 与内置默认字体，结果（包括回退）都会缓存。
func (r *Renderer) family(font layout.FontResource) (*canvas.FontFamily, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.families[font]; ok {
		return f, nil
	}

	name := font.Name
	if name == "" {
		name = "Body"
	}
	f := canvas.NewFontFamily(name)
	var err error
	for _, src := range []string{font.Src, font.Fallback} {
		if src == "" {
			continue
		}
		var data []byte
		if data, err = r.readFont(src); err == nil {
			if err = f.LoadFont(data, 0, canvas.FontRegular); err == nil {
				r.families[font] = f
				return f, nil
			}
		}
	}
	if err == nil {
		err = errors.New("字体缺少 src")
	}

	def, defErr := r.defaultFamily()
	if defErr != nil {
		return nil, err
	}
	layout.Logger().Warn("font unavailable, using fallback", "font", font.Name, "src", font.Src, "err", err)
	r.families[font] = def
	return def, nil
}

// readFont 解析字体来源：built-in:<name>、embed:<name> 或文件路径。
func (r *Renderer) readFont(src string) ([]byte, error) {
	for _, prefix := range []string{"built-in:", "builtin:"} {
		if name, ok := strings.CutPrefix(src, prefix); ok {
			if data, ok := r.builtins[name]; ok {
				return data, nil
			}
			return nil, fmt.Errorf("找不到内置字体 %s", name)
		}
	}
	if fonts.IsEmbedded(src) {
		return fonts.Load(src)
	}
	if filepath.IsAbs(src) {
		return os.ReadFile(src)
	}
	if r.baseDir == "" {
		return nil, fmt.Errorf("未设置资源目录，无法解析相对字体路径 %s", src)
	}
	return os.ReadFile(filepath.Join(r.baseDir, src))
}

// defaultFamily 调用方需持有 r.mu。
func (r *Renderer) defaultFamily() (*canvas.FontFamily, error) {
	if r.fallback != nil {
		return r.fallback, nil
	}
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		return nil, err
	}
	f := canvas.NewFontFamily("imprint-default")
	if err := f.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallback = f
	return f, nil
}
