package layout

import (
	"strconv"
	"strings"
)

// ParseColor 解析 #RGB、#RRGGBB、#RRGGBBAA，# 前缀可省略。
func ParseColor(value string) (Color, error) { return parseColor(value) }

func parseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, &ConfigError{Field: "color", Value: value}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, &ConfigError{Field: "color", Value: value, Err: err}
	}
	return Color{
		R: int(v >> 24 & 0xff),
		G: int(v >> 16 & 0xff),
		B: int(v >> 8 & 0xff),
		A: int(v & 0xff),
	}, nil
}

// resolveColor 先查找具名颜色，再按十六进制解析；空值为黑色。
func resolveColor(value string, res ResourceSet) (Color, error) {
	if value == "" {
		return Black, nil
	}
	if c, ok := res.Colors[value]; ok {
		return c, nil
	}
	return parseColor(value)
}
