package layout

import (
	"fmt"
	"strings"
)

// Align 是文本块的水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// Valid 报告 a 是否为已定义的对齐方式。
func (a Align) Valid() bool { return a >= AlignLeft && a <= AlignRight }

// ParseAlign 解析 left/center/right（以及 start/end/middle 别名），空字符串视为 left。
func ParseAlign(value string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "left", "start":
		return AlignLeft, nil
	case "center", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	default:
		return AlignLeft, &ConfigError{Field: "align", Value: value, Err: fmt.Errorf("expected left, center or right")}
	}
}

func (a Align) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, &ConfigError{Field: "align", Value: a.String()}
	}
	return []byte(a.String()), nil
}

func (a *Align) UnmarshalText(text []byte) error {
	v, err := ParseAlign(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
