package common

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	unquotedKeyPattern = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
)

// QuoteJSONKeys 將未加雙引號的鍵補上雙引號
func QuoteJSONKeys(raw string) string {
	return unquotedKeyPattern.ReplaceAllString(raw, `$1"$2":`)
}

// StripTrailingCommas 移除物件或陣列結尾多餘的逗號
func StripTrailingCommas(raw string) string {
	return trailingCommaRegex.ReplaceAllString(raw, "$1")
}

// ExtractJSONObject 去除 markdown/fence：取第一個 { 到最後一個 }
func ExtractJSONObject(content string) (string, bool) {
	content = strings.TrimSpace(content)
	start, end := strings.Index(content, "{"), strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// ParseLenientJSON 解析模型輸出的 JSON，失敗時修補常見格式問題後重試
func ParseLenientJSON(content string, v interface{}) error {
	obj, ok := ExtractJSONObject(content)
	if !ok {
		return fmt.Errorf("no JSON object in content")
	}
	if err := json.Unmarshal([]byte(obj), v); err == nil {
		return nil
	}
	repaired := StripTrailingCommas(QuoteJSONKeys(obj))
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("failed to parse JSON after repair: %w", err)
	}
	return nil
}
