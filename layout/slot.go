package layout

import "strings"

// Slot 表示一条预先声明的行，带有字符预算，等待分配单词。
// 预算以字符计，而不是字节：每个单词按 NFC 规范化后的码点数计入（见 CharCount），
// 因此 "café" 计 4 个字符，组合形式的 "cafe\u0301" 同样计 4。
// UsedChars 只累计单词本身的字符数，连接用的空格不计入预算。
type Slot struct {
	MaxChars  int      `json:"maxChars"`
	UsedChars int      `json:"usedChars"`
	Words     []string `json:"words"`
	Full      bool     `json:"full"`
}

// NewSlots 按给定的字符预算依次创建空行。
func NewSlots(widths ...int) []Slot {
	slots := make([]Slot, len(widths))
	for i, w := range widths {
		slots[i] = Slot{MaxChars: w}
	}
	return slots
}

// UniformSlots 创建 n 条预算相同的空行。
func UniformSlots(n, width int) []Slot {
	if n <= 0 {
		return nil
	}
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{MaxChars: width}
	}
	return slots
}

// Empty 报告该行是否没有任何单词。
func (s Slot) Empty() bool { return len(s.Words) == 0 }

// Text 以单个空格连接该行的单词。
func (s Slot) Text() string { return strings.Join(s.Words, " ") }

// Reset 清空已分配的单词，保留字符预算。
func (s *Slot) Reset() {
	s.UsedChars = 0
	s.Words = nil
	s.Full = false
}

// ResetSlots 把一组行恢复为刚声明时的状态，以便重新分配。
func ResetSlots(slots []Slot) {
	for i := range slots {
		slots[i].Reset()
	}
}

// Widths 返回各行的字符预算。
func Widths(slots []Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = s.MaxChars
	}
	return out
}
