package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/imprint/layout"
)

// 任务文件与输出路径都未指定时使用的编码设置。
const (
	DefaultFormat      = "png"
	DefaultJPEGQuality = 90
)

// LoadImage 读取并解码源图片，支持 png/jpeg/gif/bmp/tiff/webp。
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", path, err)
	}
	return img, nil
}

// ProbeImage 只解析图片头部，返回像素宽高。
func ProbeImage(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("解析图片 %s 失败: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ToRGBA 把任意图片复制为可绘制的 *image.RGBA，原点移到 (0,0)。
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FormatFromPath 根据扩展名推断输出格式，无法识别时返回空字符串。
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return ""
	}
}

// Encode 按输出设置编码图片。Format 为空时使用 DefaultFormat。
func Encode(w io.Writer, img image.Image, out layout.Output) error {
	format := strings.ToLower(out.Format)
	if format == "" {
		format = DefaultFormat
	}
	switch format {
	case "png":
		return png.Encode(w, img)
	case "jpeg", "jpg":
		q := out.Quality
		if q <= 0 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case "gif":
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return &layout.ConfigError{Field: "format", Value: out.Format, Err: fmt.Errorf("不支持的输出格式")}
	}
}

// EncodeBytes 是 Encode 的便捷形式。
func EncodeBytes(img image.Image, out layout.Output) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToColor 把布局颜色转换为非预乘的 color.NRGBA。
func ToColor(c layout.Color) color.NRGBA {
	return color.NRGBA{R: clamp8(c.R), G: clamp8(c.G), B: clamp8(c.B), A: clamp8(c.A)}
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
