// Package ggrenderer draws overlay plans with github.com/fogleman/gg and
// measures text with golang/freetype faces at 96 DPI.
package ggrenderer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/ByLCY/imprint/fonts"
	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/renderer"
)

// Renderer implements renderer.Backend on top of gg. Faces are cached per font and size.
type Renderer struct {
	baseDir string

	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	font string
	size float64
}

var _ renderer.Backend = (*Renderer)(nil)

// NewRenderer creates a gg renderer; relative font paths are resolved against baseDir.
func NewRenderer(baseDir string) *Renderer {
	return &Renderer{
		baseDir: baseDir,
		fonts:   map[string]*truetype.Font{},
		faces:   map[faceKey]font.Face{},
	}
}

// Measure 实现 layout.Measurer。
func (r *Renderer) Measure(text string, res layout.FontResource, size float64) (layout.Extent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return layout.FaceMeasurer{Faces: r.face}.Measure(text, res, size)
}

// ImageSize 实现 layout.ImageProber。
func (r *Renderer) ImageSize(src string) (int, int, error) {
	return renderer.ProbeImage(src)
}

// Render 在源图片的副本上按绘制指令写字，并按输出设置编码。
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("排版计划为空")
	}
	src, err := renderer.LoadImage(plan.Source.Path)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContextForImage(src)

	r.mu.Lock()
	for _, block := range plan.Blocks {
		if len(block.Instructions) == 0 {
			continue
		}
		face, err := r.face(block.Style.Font, block.Style.FontSize)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(renderer.ToColor(block.Style.Color))
		for _, ins := range block.Instructions {
			dc.DrawString(ins.Text, ins.X, ins.Y)
		}
	}
	r.mu.Unlock()

	data, err := renderer.EncodeBytes(dc.Image(), plan.Output)
	if err != nil {
		return nil, fmt.Errorf("编码图片失败: %w", err)
	}
	layout.Logger().Debug("gg render done", "source", plan.Source.Path, "blocks", len(plan.Blocks), "bytes", len(data))
	return data, nil
}

// face 必须在持有 r.mu 时调用。
func (r *Renderer) face(res layout.FontResource, size float64) (font.Face, error) {
	f, err := r.font(res)
	if err != nil {
		return nil, err
	}
	key := faceKey{font: res.Name + "|" + res.Src, size: size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     layout.DPI,
		Hinting: font.HintingNone,
	})
	r.faces[key] = face
	return face, nil
}

func (r *Renderer) font(res layout.FontResource) (*truetype.Font, error) {
	key := res.Name + "|" + res.Src
	if f, ok := r.fonts[key]; ok {
		return f, nil
	}
	f, err := r.parse(res.Src)
	if err != nil && res.Fallback != "" {
		f, err = r.parse(res.Fallback)
	}
	if err != nil {
		layout.Logger().Warn("font unavailable, using fallback", "font", res.Name, "src", res.Src, "err", err)
		var fbErr error
		if f, fbErr = r.parse("embed:" + fonts.Default); fbErr != nil {
			return nil, err
		}
	}
	r.fonts[key] = f
	return f, nil
}

func (r *Renderer) parse(src string) (*truetype.Font, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case src == "":
		return nil, fmt.Errorf("字体缺少 src")
	case fonts.IsEmbedded(src):
		data, err = fonts.Load(src)
	default:
		path := src
		if !filepath.IsAbs(path) && r.baseDir != "" {
			path = filepath.Join(r.baseDir, path)
		}
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", src, err)
	}
	return f, nil
}
