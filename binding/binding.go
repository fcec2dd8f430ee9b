package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholder 匹配 ${...}，子组为去掉括号的路径。
var placeholder = regexp.MustCompile(`\$\{\s*([^}]*?)\s*\}`)

// Interpolate 把 text 中的 ${path.to.value} 替换为 data 中对应的值。
// data 一般由 encoding/json 解码得到；找不到的路径原样保留。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(text, -1) {
		path := text[m[2]:m[3]]
		val, ok := Lookup(data, path)
		if path == "" || !ok {
			continue
		}
		sb.WriteString(text[last:m[0]])
		sb.WriteString(format(val))
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// Lookup 在解码后的 JSON 中按 a.b[0].c 形式的路径取值。
func Lookup(data any, path string) (any, bool) {
	cur := data
	for _, seg := range strings.Split(path, ".") {
		key, idx, ok := splitIndexes(seg)
		if !ok {
			return nil, false
		}
		if key != "" {
			obj, isObj := cur.(map[string]any)
			if !isObj {
				return nil, false
			}
			if cur, ok = obj[key]; !ok {
				return nil, false
			}
		}
		for _, i := range idx {
			list, isList := cur.([]any)
			if !isList || i < 0 || i >= len(list) {
				return nil, false
			}
			cur = list[i]
		}
	}
	return cur, true
}

// splitIndexes 把 "rows[1][0]" 拆成 "rows" 与 [1 0]。
func splitIndexes(seg string) (string, []int, bool) {
	key, rest, found := strings.Cut(seg, "[")
	if !found {
		return seg, nil, true
	}
	var idx []int
	for {
		num, after, ok := strings.Cut(rest, "]")
		if !ok {
			return "", nil, false
		}
		i, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return "", nil, false
		}
		idx = append(idx, i)
		if after == "" {
			return key, idx, true
		}
		if rest, ok = strings.CutPrefix(after, "["); !ok {
			return "", nil, false
		}
	}
}

// format 让 JSON 数字 3 显示为 "3" 而不是 "3.000000" 或 "3e+00"。
func format(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
