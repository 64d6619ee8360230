package normalize

import (
	"strings"
	"unicode"

	"meal-generator/internal/core/generator"
)

// accentWords 草稿常見的無重音拼法
var accentWords = map[string]string{
	"acai":      "açaí",
	"acucar":    "açúcar",
	"agua":      "água",
	"amendoa":   "amêndoa",
	"brocolis":  "brócolis",
	"cafe":      "café",
	"camarao":   "camarão",
	"cha":       "chá",
	"feijao":    "feijão",
	"file":      "filé",
	"frances":   "francês",
	"grao":      "grão",
	"graos":     "grãos",
	"limao":     "limão",
	"maca":      "maçã",
	"macas":     "maçãs",
	"macarrao":  "macarrão",
	"mamao":     "mamão",
	"moida":     "moída",
	"pao":       "pão",
	"paes":      "pães",
	"pure":      "purê",
	"requeijao": "requeijão",
	"salmao":    "salmão",
	"tilapia":   "tilápia",
}

// humanizeName 整理空白、修正常見重音、全大寫轉小寫後首字大寫
func humanizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	if isShouting(name) {
		name = strings.ToLower(name)
	}

	words := strings.Split(name, " ")
	for i, w := range words {
		lower := strings.ToLower(w)
		fixed, ok := accentWords[lower]
		if !ok {
			continue
		}
		if r := []rune(w); len(r) > 0 && unicode.IsUpper(r[0]) {
			fixed = generator.Capitalize(fixed)
		}
		words[i] = fixed
	}
	return generator.Capitalize(strings.Join(words, " "))
}

func isShouting(s string) bool {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 3 && upper == letters
}
