package layout

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ByLCY/imprint/dsl"
)

// collectResources 读取所有 resources 段落中的 font、color、style 声明。
// 同名声明后者覆盖前者；未声明 Body 字体时补上内置默认字体。
func collectResources(doc *dsl.Document) (ResourceSet, error) {
	res := ResourceSet{
		Fonts:  map[string]FontResource{},
		Colors: map[string]Color{},
	}
	defs := map[string]StyleDef{}

	for _, section := range doc.Sections {
		if section.Resources == nil {
			continue
		}
		for _, cmd := range section.Resources.Commands("font") {
			if font := fontResource(cmd); font.Name != "" {
				res.Fonts[font.Name] = font
			}
		}
		for _, cmd := range section.Resources.Commands("color") {
			// color Ink = #fff，也允许省略等号
			name, value := cmd.Arg(0), ""
			if len(cmd.Args) > 1 {
				value = cmd.Arg(len(cmd.Args) - 1)
			}
			if name == "" || value == "" {
				continue
			}
			c, err := parseColor(value)
			if err != nil {
				return res, fmt.Errorf("%s: color %s: %w", cmd.Pos, name, err)
			}
			res.Colors[name] = c
		}
		for _, cmd := range section.Resources.Commands("style") {
			if def := styleDef(cmd); def.Name != "" {
				defs[def.Name] = def
			}
		}
	}

	if _, ok := res.Fonts[defaultFontName]; !ok {
		res.Fonts[defaultFontName] = FontResource{Name: defaultFontName, Src: defaultFontSrc}
	}

	styles, err := flattenStyles(defs)
	if err != nil {
		return res, err
	}
	res.Styles = styles
	return res, nil
}

func fontResource(cmd *dsl.Command) FontResource {
	font := FontResource{Name: cmd.Arg(0)}
	if font.Name == "" || cmd.Body == nil {
		return font
	}
	for _, stmt := range cmd.Body.Statements {
		a := stmt.Assignment
		if a == nil || a.Value.Str == nil {
			continue
		}
		switch a.Key {
		case "src":
			font.Src = string(*a.Value.Str)
		case "fallback":
			font.Fallback = string(*a.Value.Str)
		}
	}
	return font
}

// styleDef 解析 `style Name [extends Parent] { key: value ... }`。
func styleDef(cmd *dsl.Command) StyleDef {
	def := StyleDef{Name: cmd.Arg(0), Props: map[string]string{}}
	if def.Name == "" {
		return StyleDef{}
	}
	if strings.EqualFold(cmd.Arg(1), "extends") {
		def.Extends = cmd.Arg(2)
	}
	if cmd.Body == nil {
		return def
	}
	for _, stmt := range cmd.Body.Statements {
		if stmt.Assignment == nil {
			continue
		}
		if v := stmt.Assignment.Value.Text(); v != "" {
			def.Props[stmt.Assignment.Key] = v
		}
	}
	return def
}

// flattenStyles 展开 extends 链，使每个样式都带上继承来的属性。
func flattenStyles(defs map[string]StyleDef) (map[string]StyleDef, error) {
	done := make(map[string]StyleDef, len(defs))
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		if _, err := flattenStyle(name, defs, done, nil); err != nil {
			return nil, err
		}
	}
	return done, nil
}

func flattenStyle(name string, defs, done map[string]StyleDef, chain []string) (StyleDef, error) {
	if def, ok := done[name]; ok {
		return def, nil
	}
	if slices.Contains(chain, name) {
		path := strings.Join(append(chain, name), " → ")
		return StyleDef{}, &ConfigError{Field: "style", Value: name, Err: fmt.Errorf("继承存在循环：%s", path)}
	}
	def, ok := defs[name]
	if !ok {
		return StyleDef{}, &ConfigError{Field: "style", Value: name, Err: fmt.Errorf("样式未定义")}
	}

	props := map[string]string{}
	if def.Extends != "" {
		parent, err := flattenStyle(def.Extends, defs, done, append(chain, name))
		if err != nil {
			return StyleDef{}, err
		}
		maps.Copy(props, parent.Props)
	}
	maps.Copy(props, def.Props)
	def.Props = props
	done[name] = def
	return def, nil
}

func resolveFontResource(name string, res ResourceSet) (FontResource, error) {
	if font, ok := res.Fonts[name]; ok {
		return font, nil
	}
	if font, ok := res.Fonts[defaultFontName]; ok {
		return font, nil
	}
	return FontResource{}, &ConfigError{Field: "font", Value: name, Err: fmt.Errorf("字体未定义，且没有可用的默认字体")}
}
