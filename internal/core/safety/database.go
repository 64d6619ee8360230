package safety

import (
	_ "embed"
	"fmt"
	"sort"

	"meal-generator/internal/core/catalog"
	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/restrictions.yaml
var embeddedRestrictions []byte

// Restriction 一個不耐 / 過敏 / 飲食限制
type Restriction struct {
	Key       string   `yaml:"-" json:"key"`
	Aliases   []string `yaml:"aliases" json:"aliases,omitempty"`
	Tags      []string `yaml:"tags" json:"tags,omitempty"`
	Keys      []string `yaml:"keys" json:"keys,omitempty"`
	Terms     []string `yaml:"terms" json:"terms,omitempty"`
	SafeWords []string `yaml:"safe_words" json:"safe_words,omitempty"`
}

type restrictionFile struct {
	Restrictions map[string]*Restriction `yaml:"restrictions"`
}

// Database 限制條件資料庫，建立後唯讀
type Database struct {
	restrictions map[string]*Restriction
	aliases      map[string]string // folded 別名 -> key
	keys         []string
}

// ParseDatabase 解析 YAML 格式的限制表
func ParseDatabase(data []byte) (*Database, error) {
	var f restrictionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse restrictions: %w", err)
	}
	if len(f.Restrictions) == 0 {
		return nil, fmt.Errorf("parse restrictions: empty table")
	}
	return NewDatabase(f.Restrictions), nil
}

// EmbeddedDatabase 內建的限制表
func EmbeddedDatabase() (*Database, error) {
	return ParseDatabase(embeddedRestrictions)
}

// NewDatabase 由限制表建立資料庫，詞彙在此統一 fold
func NewDatabase(restrictions map[string]*Restriction) *Database {
	db := &Database{
		restrictions: make(map[string]*Restriction, len(restrictions)),
		aliases:      make(map[string]string),
	}
	for key, r := range restrictions {
		if r == nil {
			continue
		}
		key = common.FoldText(key)
		clean := &Restriction{
			Key:       key,
			Aliases:   r.Aliases,
			Tags:      r.Tags,
			Keys:      r.Keys,
			Terms:     foldAll(r.Terms),
			SafeWords: foldAll(r.SafeWords),
		}
		if _, dup := db.restrictions[key]; !dup {
			db.keys = append(db.keys, key)
		}
		db.restrictions[key] = clean
	}
	sort.Strings(db.keys)

	// 別名不覆蓋正式 key
	for _, key := range db.keys {
		db.aliases[key] = key
	}
	for _, key := range db.keys {
		for _, a := range db.restrictions[key].Aliases {
			fa := common.FoldText(a)
			if _, taken := db.aliases[fa]; !taken {
				db.aliases[fa] = key
			}
		}
	}
	return db
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := common.FoldText(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Keys 所有限制 key
func (db *Database) Keys() []string {
	out := make([]string, len(db.keys))
	copy(out, db.keys)
	return out
}

// Restriction 取得限制定義
func (db *Database) Restriction(key string) (*Restriction, bool) {
	r, ok := db.restrictions[key]
	return r, ok
}

// Canonical 將使用者輸入的限制名稱轉為正式 key
func (db *Database) Canonical(name string) (string, bool) {
	key, ok := db.aliases[common.FoldText(name)]
	return key, ok
}

// Normalize 轉換並去重一組限制，無法辨識的項目記錄後略過
func (db *Database) Normalize(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key, ok := db.Canonical(n)
		if !ok {
			if common.FoldText(n) != "" {
				common.LogDebug("未知的限制條件", zap.String("restriction", n))
			}
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// BlockedFor 回傳成分違反的限制（已排序），安全時為空
func (db *Database) BlockedFor(ing *catalog.Ingredient, restrictions []string) []string {
	var blocked []string
	for _, key := range restrictions {
		r, ok := db.restrictions[key]
		if !ok {
			continue
		}
		if r.blocks(ing) {
			blocked = append(blocked, key)
		}
	}
	sort.Strings(blocked)
	return blocked
}

// IsSafe 成分是否符合所有限制
func (db *Database) IsSafe(ing *catalog.Ingredient, restrictions []string) bool {
	return len(db.BlockedFor(ing, restrictions)) == 0
}

// BlockedForName 只有名稱（無法對應目錄）時的判斷
func (db *Database) BlockedForName(name string, restrictions []string) []string {
	folded := common.FoldText(name)
	var blocked []string
	for _, key := range restrictions {
		r, ok := db.restrictions[key]
		if !ok {
			continue
		}
		if r.matchesName(folded) {
			blocked = append(blocked, key)
		}
	}
	sort.Strings(blocked)
	return blocked
}

// blocks 標籤與 key 為權威判斷；名稱比對可被 safe word 解除
func (r *Restriction) blocks(ing *catalog.Ingredient) bool {
	for _, tag := range r.Tags {
		if ing.Has(tag) {
			return true
		}
	}
	for _, k := range r.Keys {
		if k == ing.Key {
			return true
		}
	}
	if r.matchesName(common.FoldText(ing.Key)) {
		return true
	}
	for _, n := range ing.Names {
		if r.matchesName(common.FoldText(n)) {
			return true
		}
	}
	return false
}

func (r *Restriction) matchesName(folded string) bool {
	if folded == "" {
		return false
	}
	for _, sw := range r.SafeWords {
		if common.ContainsWord(folded, sw) {
			return false
		}
	}
	for _, term := range r.Terms {
		if common.ContainsWord(folded, term) {
			return true
		}
	}
	return false
}

// merge 以覆寫表取代同 key 的限制，回傳新的資料庫
func (db *Database) merge(overrides map[string]*Restriction) *Database {
	combined := make(map[string]*Restriction, len(db.restrictions)+len(overrides))
	for k, r := range db.restrictions {
		combined[k] = r
	}
	// 覆寫的 key 與內建表一樣先 fold，才能取代同一個限制
	for k, r := range overrides {
		combined[common.FoldText(k)] = r
	}
	return NewDatabase(combined)
}
