package layout

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SplitWords 按单个空格切分文本。连续空格会产生空单词，这里原样保留；
// 空文本返回零个单词。
func SplitWords(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}

// CharCount 返回单词占用的字符预算：NFC 规范化后的码点数。
func CharCount(word string) int {
	return utf8.RuneCountInString(norm.NFC.String(word))
}

// Distribute 以贪心方式把 text 中的单词依次放入 slots。
//
// 每个单词从第一条未满的行开始尝试；放不下时该行被标记为 Full 并且之后
// 不再参与分配，同一个单词继续尝试后面的行。单词之间的空格不计入预算。
// 若某个单词被所有行拒绝，返回 *OverflowError。
//
// slots 会被原地修改。对已经分配过的 slots 再次调用会在原有状态上累加，
// 需要先调用 ResetSlots，或者直接使用 Allocate。
func Distribute(text string, slots []Slot) error {
	words := SplitWords(text)
	for idx, word := range words {
		if !place(word, slots) {
			return &OverflowError{Word: word, Index: idx, Slots: len(slots)}
		}
	}
	return nil
}

// Allocate 为每次分配创建全新的行，再调用 Distribute。失败时不返回部分结果。
func Allocate(text string, widths []int) ([]Slot, error) {
	slots := NewSlots(widths...)
	if err := Distribute(text, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func place(word string, slots []Slot) bool {
	n := CharCount(word)
	for i := range slots {
		slot := &slots[i]
		if slot.Full {
			continue
		}
		candidate := n + slot.UsedChars
		if candidate <= slot.MaxChars {
			slot.Words = append(slot.Words, word)
			slot.UsedChars = candidate
			return true
		}
		slot.Full = true
	}
	return false
}
