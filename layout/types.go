package layout

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。

// Plan 保存一次渲染所需的全部信息：源图片、输出格式与各文本块的绘制指令。
type Plan struct {
	Source    Source        `json:"source"`
	Output    Output        `json:"output"`
	Resources ResourceSet   `json:"resources"`
	Blocks    []BlockLayout `json:"blocks"`
}

// Source 描述被叠加文字的源图片，宽高以像素为单位。
type Source struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Output 描述输出编码。Format 为空时由渲染器根据输出路径推断。
type Output struct {
	Format  string `json:"format,omitempty"`  // png/jpeg/gif/bmp/tiff
	Quality int    `json:"quality,omitempty"` // 仅 jpeg 使用，1-100
}

// ResourceSet 记录解析出的字体、颜色与样式定义。
type ResourceSet struct {
	Fonts  map[string]FontResource `json:"fonts"`
	Colors map[string]Color        `json:"colors"`
	Styles map[string]StyleDef     `json:"styles"`
}

// FontResource 描述字体资源，src 可以是文件路径、embed:<name> 或 built-in:<name>。
type FontResource struct {
	Name     string `json:"name"`
	Src      string `json:"src"`
	Fallback string `json:"fallback,omitempty"`
}

// Color 采用 0-255 的 RGBA 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
	A int `json:"a"`
}

// Black 是未指定颜色时的默认值。
var Black = Color{A: 255}

// StyleDef 是可继承的文本样式定义（DSL 中的 style 资源）。
type StyleDef struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}

// Style 是一次排版使用的不可变样式。坐标、行高以像素为单位，字号以 pt 为单位。
type Style struct {
	Align      Align        `json:"align"`
	OriginX    float64      `json:"originX"`
	OriginY    float64      `json:"originY"`
	LineHeight float64      `json:"lineHeight"`
	Font       FontResource `json:"font"`
	FontSize   float64      `json:"fontSize"`
	Color      Color        `json:"color"`
}

// Block 是一个待排版的文本块：文本、每行的字符预算与样式。
type Block struct {
	Name   string
	Text   string
	Widths []int
	Style  Style
}

// BlockLayout 是文本块排版后的结果。
type BlockLayout struct {
	Name         string         `json:"name,omitempty"`
	Style        Style          `json:"style"`
	Slots        []Slot         `json:"slots"`
	Lines        []MeasuredLine `json:"lines"`
	Instructions []Instruction  `json:"instructions"`
}

// Extent 是测量得到的文本包围盒尺寸（像素）。
type Extent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MeasuredLine 是拼接并测量后的一行。Row 为该行在声明顺序中的位置。
type MeasuredLine struct {
	Row    int     `json:"row"`
	Text   string  `json:"text"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Instruction 是最终的绘制指令，X/Y 为基线起点。
type Instruction struct {
	Row    int     `json:"row"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
