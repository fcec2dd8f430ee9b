package renderer

import "github.com/ByLCY/imprint/layout"

// Renderer 把排版计划绘制到源图片上，并按 plan.Output 编码返回图片字节。
type Renderer interface {
	Render(plan *layout.Plan) ([]byte, error)
}

// Backend 是一个完整的渲染后端：既负责测量文本、探测源图片尺寸，也负责最终绘制。
// 同一后端用于测量与绘制，保证排版时的宽度与实际绘制一致。
type Backend interface {
	Renderer
	layout.Measurer
	layout.ImageProber
}
