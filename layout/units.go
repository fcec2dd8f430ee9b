package layout

import (
	"strconv"
	"strings"
)

// 字体按 96 DPI 栅格化：字号以 pt 声明，坐标与行高以像素计算。
const (
	DPI    = 96.0
	PtToPx = DPI / 72.0
	PxToPt = 72.0 / DPI
)

// Unit 是任务文件中长度值携带的单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位，由调用方决定含义
	UnitPX
	UnitPT
)

func (u Unit) String() string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	}
	return ""
}

// Length 是带单位的数值。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPX 换算为像素；无单位的值原样返回。
func (l Length) ToPX() float64 {
	if l.Unit == UnitPT {
		return l.Value * PtToPx
	}
	return l.Value
}

// ToPT 换算为 pt；无单位的值原样返回。
func (l Length) ToPT() float64 {
	if l.Unit == UnitPX {
		return l.Value * PxToPt
	}
	return l.Value
}

// ParseLength 解析 "24pt"、"36px" 或 "40"。无法识别时返回零值。
func ParseLength(s string) Length {
	l, _ := parseLength(s)
	return l
}

// parseLength 与 ParseLength 相同，但区分 "0" 与无法识别的输入。
func parseLength(s string) (Length, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	unit := UnitNone
	if num, ok := strings.CutSuffix(s, "px"); ok {
		s, unit = num, UnitPX
	} else if num, ok := strings.CutSuffix(s, "pt"); ok {
		s, unit = num, UnitPT
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: v, Unit: unit}, true
}

// LineHeight 为字号倍数（"1.5x"）或绝对长度（"36px"，无单位视为 px），二者取其一。
type LineHeight struct {
	Factor float64 `json:"factor,omitempty"`
	Fixed  Length  `json:"fixed,omitempty"`
}

// ParseLineHeight 解析行高；非正值视为无效。
func ParseLineHeight(s string) (LineHeight, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	// "36px" 也以 x 结尾，只有去掉 px 后缀仍以 x 结尾的才是倍数
	if num, ok := strings.CutSuffix(s, "x"); ok && !strings.HasSuffix(s, "px") {
		f, err := strconv.ParseFloat(num, 64)
		if err != nil || f <= 0 {
			return LineHeight{}, false
		}
		return LineHeight{Factor: f}, true
	}
	l := ParseLength(s)
	if l.Value <= 0 {
		return LineHeight{}, false
	}
	if l.Unit == UnitNone {
		l.Unit = UnitPX
	}
	return LineHeight{Fixed: l}, true
}

// Pixels 返回以像素计的行高，倍数相对于 fontSize 换算。
func (h LineHeight) Pixels(fontSize Length) float64 {
	if h.Factor > 0 {
		return fontSize.ToPX() * h.Factor
	}
	return h.Fixed.ToPX()
}
