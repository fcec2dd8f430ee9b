package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// FaceMeasurer 用 golang.org/x/image/font.Face 测量文本。
// Faces 根据字体资源与字号（pt）返回字体面；为 nil 时总是使用 Face。
type FaceMeasurer struct {
	Face  font.Face
	Faces func(res FontResource, size float64) (font.Face, error)
}

var _ Measurer = FaceMeasurer{}

// Measure 返回前进宽度之和，高度取字体的 ascent+descent。
func (m FaceMeasurer) Measure(text string, res FontResource, size float64) (Extent, error) {
	face := m.Face
	if m.Faces != nil {
		f, err := m.Faces(res, size)
		if err != nil {
			return Extent{}, err
		}
		face = f
	}
	if face == nil {
		return Extent{}, &ConfigError{Field: "font", Value: res.Name}
	}
	adv := font.MeasureString(face, text)
	metrics := face.Metrics()
	return Extent{
		Width:  fixedToFloat(adv),
		Height: fixedToFloat(metrics.Ascent + metrics.Descent),
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
