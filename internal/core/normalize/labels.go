package normalize

import (
	"fmt"
	"math"
	"strconv"

	"meal-generator/internal/core/catalog"
)

// measureWords 家用單位的單數與複數
var measureWords = map[string]map[catalog.MeasureKind][2]string{
	"pt": {
		catalog.MeasureSlice:    {"fatia", "fatias"},
		catalog.MeasureSpoon:    {"colher de sopa", "colheres de sopa"},
		catalog.MeasureTeaspoon: {"colher de chá", "colheres de chá"},
		catalog.MeasureLadle:    {"concha", "conchas"},
		catalog.MeasureCup:      {"xícara", "xícaras"},
		catalog.MeasureGlass:    {"copo", "copos"},
		catalog.MeasureFillet:   {"filé", "filés"},
		catalog.MeasurePot:      {"pote", "potes"},
		catalog.MeasurePortion:  {"porção", "porções"},
	},
	"en": {
		catalog.MeasureSlice:    {"slice", "slices"},
		catalog.MeasureSpoon:    {"tablespoon", "tablespoons"},
		catalog.MeasureTeaspoon: {"teaspoon", "teaspoons"},
		catalog.MeasureLadle:    {"ladle", "ladles"},
		catalog.MeasureCup:      {"cup", "cups"},
		catalog.MeasureGlass:    {"glass", "glasses"},
		catalog.MeasureFillet:   {"fillet", "fillets"},
		catalog.MeasurePot:      {"pot", "pots"},
		catalog.MeasurePortion:  {"portion", "portions"},
	},
}

// PortionLabel 家用份量加上括號內的實際克數或毫升數，例如 "2 ovos cozidos (100g)"
func PortionLabel(ing *catalog.Ingredient, portion float64, lang string) string {
	exact := exactAmount(portion, ing.Unit)
	if _, ok := measureWords[lang]; !ok {
		lang = catalog.DefaultLanguage
	}

	measure := ing.Measure
	if measure.Size <= 0 || measure.Kind == "" {
		measure = catalog.Measure{Kind: catalog.MeasurePortion, Size: ing.DefaultPortion}
	}
	count := halfSteps(portion / measure.Size)
	plural := count > 1

	var word string
	if measure.Kind == catalog.MeasureUnit {
		word = ing.Name(lang)
		if plural {
			word = ing.Plural(lang)
		}
	} else {
		forms := measureWords[lang][measure.Kind]
		word = forms[0]
		if plural {
			word = forms[1]
		}
	}
	return fmt.Sprintf("%s %s (%s)", formatCount(count), word, exact)
}

// compositeLabel 組合成分以一份計
func compositeLabel(portion float64, unit catalog.Unit, lang string) string {
	word := measureWords[catalog.DefaultLanguage][catalog.MeasurePortion][0]
	if forms, ok := measureWords[lang]; ok {
		word = forms[catalog.MeasurePortion][0]
	}
	return fmt.Sprintf("1 %s (%s)", word, exactAmount(portion, unit))
}

func exactAmount(portion float64, unit catalog.Unit) string {
	return strconv.FormatFloat(math.Round(portion), 'f', -1, 64) + string(unit)
}

// halfSteps 取到最接近的 0.5，最少 0.5
func halfSteps(v float64) float64 {
	r := math.Round(v*2) / 2
	if r < 0.5 {
		return 0.5
	}
	return r
}

func formatCount(v float64) string {
	whole := math.Floor(v)
	switch {
	case v == whole:
		return strconv.Itoa(int(whole))
	case whole == 0:
		return "1/2"
	default:
		return fmt.Sprintf("%d 1/2", int(whole))
	}
}
