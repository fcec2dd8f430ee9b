package layout

import (
	"errors"
	"fmt"
)

// 错误种类，调用方可以用 errors.Is 区分。
var (
	ErrOverflow = errors.New("text too long for available lines")
	ErrMeasure  = errors.New("text measurement failed")
	ErrConfig   = errors.New("invalid configuration")
)

// OverflowError 表示某个单词无法放入任何一行。
type OverflowError struct {
	Word  string // 第一个被所有行拒绝的单词
	Index int    // 该单词在输入中的序号（从 0 开始）
	Slots int    // 声明的行数
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: word %d %q rejected by all %d lines", ErrOverflow, e.Index, e.Word, e.Slots)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// MeasureError 包装测量后端返回的错误，例如字体无法读取。
type MeasureError struct {
	Text string
	Err  error
}

func (e *MeasureError) Error() string {
	return fmt.Sprintf("%v for %q: %v", ErrMeasure, e.Text, e.Err)
}

func (e *MeasureError) Is(target error) bool { return target == ErrMeasure }

func (e *MeasureError) Unwrap() error { return e.Err }

// ConfigError 表示样式或任务配置中的非法值。
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s=%q: %v", ErrConfig, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%v: %s=%q", ErrConfig, e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func (e *ConfigError) Unwrap() error { return e.Err }
