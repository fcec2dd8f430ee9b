package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/imprint/dsl"
	"github.com/ByLCY/imprint/layout"
	"github.com/ByLCY/imprint/overlay"
	"github.com/ByLCY/imprint/renderer"
	canvasrenderer "github.com/ByLCY/imprint/renderer/canvas"
	ggrenderer "github.com/ByLCY/imprint/renderer/gg"
)

func main() {
	input := flag.String("in", "", "任务文件路径")
	output := flag.String("out", "output/destination.png", "输出图片路径，扩展名决定默认格式")
	debug := flag.String("debug", "", "排版计划调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到任务文件的 JSON 数据")
	backend := flag.String("backend", "canvas", "渲染后端：canvas 或 gg")
	verbose := flag.Bool("v", false, "输出调试日志")

	// 快捷模式：不写任务文件，直接在一张图片上放一个文本块。
	src := flag.String("src", "", "快捷模式：源图片路径")
	text := flag.String("text", "", "快捷模式：文本")
	lines := flag.Int("lines", 1, "快捷模式：行数")
	width := flag.Int("width", overlay.DefaultWidth, "快捷模式：每行字符数")
	align := flag.String("align", overlay.DefaultAlign, "快捷模式：left、center 或 right")
	color := flag.String("color", overlay.DefaultColor, "快捷模式：十六进制颜色")
	fontPath := flag.String("font", "", "快捷模式：字体文件或 embed:<name>")
	size := flag.Float64("size", overlay.DefaultSize, "快捷模式：字号（pt）")
	lineHeight := flag.Float64("line-height", overlay.DefaultLineHeight, "快捷模式：行高（px）")
	x := flag.Float64("x", 0, "快捷模式：起始 x（px）")
	y := flag.Float64("y", 0, "快捷模式：起始 y（px）")
	flag.Parse()

	if *verbose {
		layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	switch {
	case *input != "":
		var inputData any
		if *dataJSON != "" {
			if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
				log.Fatalf("解析 data JSON 失败: %v", err)
			}
		}
		b, err := newBackend(*backend, filepath.Dir(*input))
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := run(*input, *output, *debug, inputData, b); err != nil {
			log.Fatalf("生成图片失败: %v", err)
		}
	case *src != "":
		b, err := newBackend(*backend, ".")
		if err != nil {
			log.Fatalf("%v", err)
		}
		img := overlay.NewImage(*src, b)
		t := overlay.NewText(*text, *lines, *width)
		t.Align = *align
		t.Color = *color
		t.Font = *fontPath
		t.Size = *size
		t.LineHeight = *lineHeight
		t.StartX, t.StartY = *x, *y
		img.AddText(t)
		if err := img.Render(*output); err != nil {
			log.Fatalf("生成图片失败: %v", err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	fmt.Printf("已生成图片：%s\n", *output)
}

func newBackend(name, baseDir string) (renderer.Backend, error) {
	switch name {
	case "", "canvas":
		return canvasrenderer.NewRenderer(baseDir), nil
	case "gg":
		return ggrenderer.NewRenderer(baseDir), nil
	default:
		return nil, &layout.ConfigError{Field: "backend", Value: name, Err: fmt.Errorf("可选 canvas 或 gg")}
	}
}

// run 串联解析、排版与渲染。
func run(inputPath, outputPath, debugPath string, data any, b renderer.Backend) error {
	if b == nil {
		return fmt.Errorf("渲染后端不能为空")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开任务文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析任务文件失败: %w", err)
	}

	plan, err := layout.Build(doc, data, layout.BuildOptions{
		Measurer: b,
		Prober:   b,
		BaseDir:  filepath.Dir(inputPath),
	})
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}
	if plan.Output.Format == "" {
		plan.Output.Format = renderer.FormatFromPath(outputPath)
	}

	if debugPath != "" {
		if err := writeDebug(plan, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	encoded, err := b.Render(plan)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return fmt.Errorf("写入图片失败: %w", err)
	}
	return nil
}

func writeDebug(plan *layout.Plan, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(plan, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
