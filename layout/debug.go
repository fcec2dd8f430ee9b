package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将排版计划输出为 JSON，便于检查每行分到的单词与偏移。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
