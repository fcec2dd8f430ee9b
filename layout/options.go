package layout

// BuildOptions 配置布局阶段所需的依赖，例如测量后端。
type BuildOptions struct {
	Measurer Measurer
	Prober   ImageProber
	// BaseDir 用于解析源图片的相对路径，为空时保持原样。
	BaseDir string
}

// Measurer 负责根据字体与字号测量一行文本的像素宽高。
type Measurer interface {
	Measure(text string, font FontResource, size float64) (Extent, error)
}

// MeasureFunc 让普通函数实现 Measurer。
type MeasureFunc func(text string, font FontResource, size float64) (Extent, error)

func (f MeasureFunc) Measure(text string, font FontResource, size float64) (Extent, error) {
	return f(text, font, size)
}

// ImageProber 返回源图片的像素尺寸，右对齐需要图片宽度。
type ImageProber interface {
	ImageSize(src string) (width, height int, err error)
}
