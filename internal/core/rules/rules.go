package rules

import (
	_ "embed"
	"fmt"
	"strings"

	"meal-generator/internal/core/catalog"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var embeddedRules []byte

// RequiredRule 建議性的組合規則：出現 If 時以機率加入 Suggest
type RequiredRule struct {
	If          string   `yaml:"if" json:"if"`
	Suggest     string   `yaml:"suggest" json:"suggest"`
	Probability float64  `yaml:"probability" json:"probability"`
	MealTypes   []string `yaml:"meal_types" json:"meal_types,omitempty"`
}

// StructureRule 主餐必須同時包含的類別
type StructureRule struct {
	MealTypes  []string           `yaml:"meal_types" json:"meal_types"`
	Categories []catalog.Category `yaml:"categories" json:"categories"`
}

// CountryRules 單一國家的文化規則
type CountryRules struct {
	Forbidden [][]string      `yaml:"forbidden" json:"forbidden,omitempty"`
	Required  []RequiredRule  `yaml:"required" json:"required,omitempty"`
	Structure []StructureRule `yaml:"structure" json:"structure,omitempty"`
}

// Composite 將一組成分合併為一個具名項目
type Composite struct {
	Key      string            `yaml:"key" json:"key"`
	Names    map[string]string `yaml:"names" json:"names"`
	Category catalog.Category  `yaml:"category" json:"category"`
	Triggers []string          `yaml:"triggers" json:"triggers"`
}

// Name 依語言取得名稱
func (c *Composite) Name(lang string) string {
	if n, ok := c.Names[lang]; ok && n != "" {
		return n
	}
	if n, ok := c.Names[catalog.DefaultLanguage]; ok {
		return n
	}
	return c.Key
}

// RuleSet 完整規則表
type RuleSet struct {
	SingleDishPatterns []string                     `yaml:"single_dish_patterns" json:"single_dish_patterns,omitempty"`
	Default            CountryRules                 `yaml:"default" json:"default"`
	Countries          map[string]*CountryRules     `yaml:"countries" json:"countries,omitempty"`
	Composites         []Composite                  `yaml:"composites" json:"composites,omitempty"`
	Substitutions      map[string]map[string]string `yaml:"substitutions" json:"substitutions,omitempty"`
}

// ParseRuleSet 解析 YAML 規則表
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return &rs, nil
}

// EmbeddedRuleSet 內建規則表
func EmbeddedRuleSet() (*RuleSet, error) {
	return ParseRuleSet(embeddedRules)
}

// Check 檢查規則引用的成分皆存在於目錄
func (rs *RuleSet) Check(cat *catalog.Catalog) error {
	known := func(k string) error {
		if _, ok := cat.Get(k); !ok {
			return fmt.Errorf("unknown ingredient %q", k)
		}
		return nil
	}
	check := func(where string, cr *CountryRules) error {
		for _, set := range cr.Forbidden {
			if len(set) < 2 {
				return fmt.Errorf("%s: forbidden set needs at least two keys", where)
			}
			for _, k := range set {
				if err := known(k); err != nil {
					return fmt.Errorf("%s forbidden: %w", where, err)
				}
			}
		}
		for _, r := range cr.Required {
			if err := known(r.If); err != nil {
				return fmt.Errorf("%s required: %w", where, err)
			}
			if err := known(r.Suggest); err != nil {
				return fmt.Errorf("%s required: %w", where, err)
			}
			if r.Probability < 0 || r.Probability > 1 {
				return fmt.Errorf("%s required: probability out of range", where)
			}
		}
		return nil
	}

	if err := check("default", &rs.Default); err != nil {
		return err
	}
	for code, cr := range rs.Countries {
		if cr == nil {
			continue
		}
		if err := check(code, cr); err != nil {
			return err
		}
	}
	for _, c := range rs.Composites {
		if len(c.Triggers) < 2 {
			return fmt.Errorf("composite %s needs at least two triggers", c.Key)
		}
		if _, clash := cat.Get(c.Key); clash {
			return fmt.Errorf("composite key %s clashes with an ingredient", c.Key)
		}
		for _, k := range c.Triggers {
			if err := known(k); err != nil {
				return fmt.Errorf("composite %s: %w", c.Key, err)
			}
		}
	}
	for base, subs := range rs.Substitutions {
		if err := known(base); err != nil {
			return fmt.Errorf("substitution: %w", err)
		}
		for _, to := range subs {
			if err := known(to); err != nil {
				return fmt.Errorf("substitution for %s: %w", base, err)
			}
		}
	}
	return nil
}

// merge 覆寫：國家與替代表以 key 取代，組合規則以 key 取代或追加
func (rs *RuleSet) merge(o *RuleSet) *RuleSet {
	out := &RuleSet{
		SingleDishPatterns: append([]string(nil), rs.SingleDishPatterns...),
		Default:            rs.Default,
		Countries:          make(map[string]*CountryRules, len(rs.Countries)),
		Substitutions:      make(map[string]map[string]string, len(rs.Substitutions)),
	}
	for k, v := range rs.Countries {
		out.Countries[k] = v
	}
	for k, v := range rs.Substitutions {
		out.Substitutions[k] = v
	}
	out.SingleDishPatterns = append(out.SingleDishPatterns, o.SingleDishPatterns...)
	if len(o.Default.Forbidden) > 0 || len(o.Default.Required) > 0 || len(o.Default.Structure) > 0 {
		out.Default = o.Default
	}
	for k, v := range o.Countries {
		out.Countries[strings.ToUpper(k)] = v
	}
	for k, v := range o.Substitutions {
		out.Substitutions[k] = v
	}

	overridden := make(map[string]Composite, len(o.Composites))
	for _, c := range o.Composites {
		overridden[c.Key] = c
	}
	for _, c := range rs.Composites {
		if oc, ok := overridden[c.Key]; ok {
			out.Composites = append(out.Composites, oc)
			delete(overridden, c.Key)
			continue
		}
		out.Composites = append(out.Composites, c)
	}
	for _, c := range o.Composites {
		if _, pending := overridden[c.Key]; pending {
			out.Composites = append(out.Composites, c)
		}
	}
	return out
}
