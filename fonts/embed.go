package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Default 是未声明字体或字体加载失败时使用的内置字体。
const Default = "goregular"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomedium":  gomedium.TTF,
	"gomono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，path 可写为 "embed:gobold" 或直接 "gobold"，大小写不敏感。
func Load(path string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(path, "embed:"), ".ttf"))
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体 %s", path, strings.Join(Names(), ", "))
	}
	return data, nil
}

// IsEmbedded 报告 src 是否引用内置字体。
func IsEmbedded(src string) bool {
	return strings.HasPrefix(src, "embed:")
}

// Names 返回全部内置字体名，按字母排序。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
