package layout

import (
	"fmt"
	"maps"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/imprint/binding"
	"github.com/ByLCY/imprint/dsl"
)

// 未在任务文件中指定时使用的默认值。
const (
	defaultFontSize   = 16.0 // pt
	defaultLineHeight = 24.0 // px
	defaultLineCount  = 1
	defaultLineWidth  = 80 // 每行字符数
	defaultFontName   = "Body"
	defaultFontSrc    = "embed:goregular"
	defaultQuality    = 90
)

// 文本命令可以直接写的属性名；第一个参数若不在其中则视为样式名。
var textAttrKeys = map[string]bool{
	"name": true, "lines": true, "width": true, "widths": true,
	"align": true, "color": true, "font": true, "size": true,
	"line-height": true, "x": true, "y": true,
}

// Build 根据任务文件的 AST 生成排版计划：解析资源、输出设置与 image 段落中的
// 每个 text 命令，然后依次分配单词、测量并计算绘制偏移。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Plan, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Measurer == nil {
		return nil, &ConfigError{Field: "measurer", Err: fmt.Errorf("layout: 缺少测量后端 Measurer")}
	}
	if opts.Prober == nil {
		return nil, &ConfigError{Field: "prober", Err: fmt.Errorf("layout: 缺少图片尺寸探测 ImageProber")}
	}

	res, err := collectResources(doc)
	if err != nil {
		return nil, err
	}
	output, err := collectOutput(doc)
	if err != nil {
		return nil, err
	}
	section := doc.Image()
	if section == nil {
		return nil, fmt.Errorf("文档中缺少 image 段落")
	}

	src := string(section.Src)
	if src == "" {
		return nil, &ConfigError{Field: "image", Err: fmt.Errorf("源图片路径为空")}
	}
	if opts.BaseDir != "" && !filepath.IsAbs(src) {
		src = filepath.Join(opts.BaseDir, src)
	}
	w, h, err := opts.Prober.ImageSize(src)
	if err != nil {
		return nil, fmt.Errorf("读取源图片 %s 失败: %w", src, err)
	}

	var blocks []Block
	for _, cmd := range section.Body.Commands("text") {
		b, err := composeBlock(cmd, res, data, len(blocks))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	layouts, err := Compose(blocks, opts.Measurer, float64(w))
	if err != nil {
		return nil, err
	}
	Logger().Info("plan built", "source", src, "width", w, "height", h, "blocks", len(layouts))

	return &Plan{
		Source:    Source{Path: src, Width: float64(w), Height: float64(h)},
		Output:    output,
		Resources: res,
		Blocks:    layouts,
	}, nil
}

func composeBlock(cmd *dsl.Command, res ResourceSet, data any, index int) (Block, error) {
	if cmd.Body == nil {
		return Block{}, fmt.Errorf("%s: text 语句缺少文本块", cmd.Pos)
	}
	styleName, attrs := parseTextArgs(cmd.Args)
	attrs = textAttributes(styleName, attrs, res.Styles)

	name := attrs["name"]
	if name == "" {
		name = fmt.Sprintf("text#%d", index+1)
	}
	wrap := func(err error) error {
		return fmt.Errorf("%s: 文本块 %s: %w", cmd.Pos, name, err)
	}

	content := cmd.Body.Text()
	if data != nil {
		content = binding.Interpolate(content, data)
	}

	style, err := resolveStyle(styleName, attrs, res)
	if err != nil {
		return Block{}, wrap(err)
	}
	widths, err := resolveWidths(attrs)
	if err != nil {
		return Block{}, wrap(err)
	}

	return Block{Name: name, Text: content, Widths: widths, Style: style}, nil
}

func resolveStyle(styleName string, attrs map[string]string, res ResourceSet) (Style, error) {
	align, err := ParseAlign(attrs["align"])
	if err != nil {
		return Style{}, err
	}

	size := Length{Value: defaultFontSize, Unit: UnitPT}
	if v := strings.TrimSpace(attrs["size"]); v != "" {
		l, ok := parseLength(v)
		if !ok || l.Value <= 0 {
			return Style{}, &ConfigError{Field: "size", Value: v, Err: fmt.Errorf("字号必须为正数")}
		}
		if l.Unit == UnitNone {
			l.Unit = UnitPT
		}
		size = l
	}
	x, err := originAttr(attrs, "x")
	if err != nil {
		return Style{}, err
	}
	y, err := originAttr(attrs, "y")
	if err != nil {
		return Style{}, err
	}

	lineHeight := defaultLineHeight
	if v := strings.TrimSpace(attrs["line-height"]); v != "" {
		lh, ok := ParseLineHeight(v)
		if !ok {
			return Style{}, &ConfigError{Field: "line-height", Value: v}
		}
		lineHeight = lh.Pixels(size)
	}

	col, err := resolveColor(attrs["color"], res)
	if err != nil {
		return Style{}, err
	}

	fontName := attrs["font"]
	if fontName == "" {
		fontName = styleName
	}
	font, err := resolveFontResource(fontName, res)
	if err != nil {
		return Style{}, err
	}

	return Style{
		Align:      align,
		OriginX:    x,
		OriginY:    y,
		LineHeight: lineHeight,
		Font:       font,
		FontSize:   size.ToPT(),
		Color:      col,
	}, nil
}

// originAttr 读取以像素计的起点坐标，未声明时为 0。
func originAttr(attrs map[string]string, key string) (float64, error) {
	v := strings.TrimSpace(attrs[key])
	if v == "" {
		return 0, nil
	}
	l, ok := parseLength(v)
	if !ok {
		return 0, &ConfigError{Field: key, Value: v}
	}
	return l.ToPX(), nil
}

// resolveWidths 支持两种声明方式：widths 25 30 23（逐行预算）或 lines 3 width 25（统一预算）。
func resolveWidths(attrs map[string]string) ([]int, error) {
	if raw := strings.TrimSpace(attrs["widths"]); raw != "" {
		fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ' ' || r == ',' })
		out := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 {
				return nil, &ConfigError{Field: "widths", Value: raw, Err: err}
			}
			out = append(out, n)
		}
		return out, nil
	}

	lines := defaultLineCount
	if v := strings.TrimSpace(attrs["lines"]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, &ConfigError{Field: "lines", Value: v, Err: err}
		}
		lines = n
	}
	width := defaultLineWidth
	if v := strings.TrimSpace(attrs["width"]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, &ConfigError{Field: "width", Value: v, Err: err}
		}
		width = n
	}
	return Widths(UniformSlots(lines, width)), nil
}

func collectOutput(doc *dsl.Document) (Output, error) {
	out := Output{}
	for _, section := range doc.Sections {
		if section.Output == nil {
			continue
		}
		for _, stmt := range section.Output.Statements {
			if stmt.Assignment == nil {
				continue
			}
			val := stmt.Assignment.Value.Text()
			switch strings.ToLower(stmt.Assignment.Key) {
			case "format":
				out.Format = strings.ToLower(val)
			case "quality":
				q, err := strconv.Atoi(val)
				if err != nil || q < 1 || q > 100 {
					return out, &ConfigError{Field: "quality", Value: val, Err: fmt.Errorf("expected 1-100")}
				}
				out.Quality = q
			}
		}
	}
	if out.Format == "jpeg" || out.Format == "jpg" {
		out.Format = "jpeg"
		if out.Quality == 0 {
			out.Quality = defaultQuality
		}
	}
	return out, nil
}

// parseTextArgs 把 text 命令的参数拆成样式名与属性表。widths 后面可以跟多个数字。
func parseTextArgs(args []*dsl.Token) (string, map[string]string) {
	result := map[string]string{}
	cursor := 0
	var style string
	if len(args) > 0 && args[0].Kind == "Ident" && !textAttrKeys[args[0].Text] {
		style = args[0].Text
		cursor = 1
	}

	for cursor < len(args) {
		key := args[cursor].Text
		cursor++
		if key == "widths" {
			var nums []string
			for cursor < len(args) && (args[cursor].Kind == "Number" || args[cursor].Text == ",") {
				if args[cursor].Kind == "Number" {
					nums = append(nums, args[cursor].Text)
				}
				cursor++
			}
			result[key] = strings.Join(nums, " ")
			continue
		}
		if cursor >= len(args) {
			break
		}
		result[key] = args[cursor].Text
		cursor++
	}
	return style, result
}

// textAttributes 合并样式属性与命令行内属性，行内属性优先。
func textAttributes(style string, inline map[string]string, styles map[string]StyleDef) map[string]string {
	out := map[string]string{}
	if def, ok := styles[style]; ok {
		maps.Copy(out, def.Props)
	}
	maps.Copy(out, inline)
	return out
}
