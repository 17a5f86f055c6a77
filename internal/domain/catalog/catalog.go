package catalog

import (
	"fmt"
	"sort"
)

// Recipe 描述一種飯糰口味的組成與計價屬性
type Recipe struct {
	Protein     string   `yaml:"protein,omitempty"`
	Price       int      `yaml:"price"`
	HeavyPrice  int      `yaml:"heavy_price,omitempty"` // 0 表示沒有重量版，需店家確認
	OnlyLarge   bool     `yaml:"only_large,omitempty"`  // 只有加大、沒有重量
	Ingredients []string `yaml:"ingredients,omitempty"`
}

// DrinkEntry 描述一種飲料的正式名稱與糖度預設
type DrinkEntry struct {
	Name  string `yaml:"name"`
	Sugar string `yaml:"sugar,omitempty"` // 別名本身帶糖度時使用（例：清漿 = 無糖豆漿）
}

// Catalog 是開店時載入一次的唯讀菜單資料。
// Router 與 Parser 只透過查詢方法使用，不得修改。
type Catalog struct {
	recipes           map[string]Recipe
	recipeKeys        []string // 長字優先排序
	flavorAliases     map[string]string
	flavorAliasKeys   []string // 長字優先排序
	ambiguousProteins map[string]struct{}
	oralRiceball      []string // 只說「飯糰」時的口語關鍵字
	defaultFlavor     string

	riceAliases map[string]string
	riceMix     []string // 混米同義詞要先判斷，避免被紫/白吃掉
	riceChoices []string

	drinkAliases   map[string]DrinkEntry
	drinkAliasKeys []string
	drinkPrices    map[string]int
	sizeMap        map[string]string
	tempMap        map[string]string
	sugarMap       map[string]string

	carriers      []string
	carrierPrices map[string]int // 「口味+載體」組合 → 價格

	eggPancakeAliases   map[string]string
	eggPancakeAliasKeys []string
	eggPancakePrices    map[string]int

	snackPrices map[string]int

	standaloneOnly map[string]struct{} // 只能整詞出現的關鍵字（例：蛋餅）

	ingredientSynonyms map[string]string
	addonPrices        map[string]int

	norm normalizeRules
}

// Definition 是組 Catalog 用的宣告式資料，可由 YAML 覆蓋
type Definition struct {
	Recipes           map[string]Recipe     `yaml:"recipes"`
	FlavorAliases     map[string]string     `yaml:"flavor_aliases"`
	AmbiguousProteins []string              `yaml:"ambiguous_proteins"`
	OralRiceball      []string              `yaml:"oral_riceball"`
	DefaultFlavor     string                `yaml:"default_flavor"`
	RiceAliases       map[string]string     `yaml:"rice_aliases"`
	RiceMix           []string              `yaml:"rice_mix"`
	RiceChoices       []string              `yaml:"rice_choices"`
	DrinkAliases      map[string]DrinkEntry `yaml:"drink_aliases"`
	DrinkPrices       map[string]int        `yaml:"drink_prices"`
	SizeMap           map[string]string     `yaml:"size_map"`
	TempMap           map[string]string     `yaml:"temp_map"`
	SugarMap          map[string]string     `yaml:"sugar_map"`
	Carriers          []string              `yaml:"carriers"`
	CarrierPrices     map[string]int        `yaml:"carrier_prices"`
	EggPancakeAliases map[string]string     `yaml:"egg_pancake_aliases"`
	EggPancakePrices  map[string]int        `yaml:"egg_pancake_prices"`
	SnackPrices       map[string]int        `yaml:"snack_prices"`
	StandaloneOnly    []string              `yaml:"standalone_only"`
	IngredientSyns    map[string]string     `yaml:"ingredient_synonyms"`
	AddonPrices       map[string]int        `yaml:"addon_prices"`
	TextAliases       map[string]string     `yaml:"text_aliases"`
	FillerTokens      []string              `yaml:"filler_tokens"`
}

// New 依 Definition 建立 Catalog
func New(def Definition) (*Catalog, error) {
	if len(def.Recipes) == 0 {
		return nil, fmt.Errorf("catalog: recipes must not be empty")
	}
	if def.DefaultFlavor != "" {
		if _, ok := def.Recipes[def.DefaultFlavor]; !ok {
			return nil, fmt.Errorf("catalog: default flavor %q has no recipe", def.DefaultFlavor)
		}
	}

	c := &Catalog{
		recipes:             def.Recipes,
		flavorAliases:       def.FlavorAliases,
		ambiguousProteins:   toSet(def.AmbiguousProteins),
		oralRiceball:        def.OralRiceball,
		defaultFlavor:       def.DefaultFlavor,
		riceAliases:         def.RiceAliases,
		riceMix:             def.RiceMix,
		riceChoices:         def.RiceChoices,
		drinkAliases:        def.DrinkAliases,
		drinkPrices:         def.DrinkPrices,
		sizeMap:             def.SizeMap,
		tempMap:             def.TempMap,
		sugarMap:            def.SugarMap,
		carriers:            def.Carriers,
		carrierPrices:       def.CarrierPrices,
		eggPancakeAliases:   def.EggPancakeAliases,
		eggPancakePrices:    def.EggPancakePrices,
		snackPrices:         def.SnackPrices,
		standaloneOnly:      toSet(def.StandaloneOnly),
		ingredientSynonyms:  def.IngredientSyns,
		addonPrices:         def.AddonPrices,
	}

	c.recipeKeys = sortedLongestFirst(mapKeys(def.Recipes))
	c.flavorAliasKeys = sortedLongestFirst(mapKeys(def.FlavorAliases))
	c.drinkAliasKeys = sortedLongestFirst(mapKeys(def.DrinkAliases))
	c.eggPancakeAliasKeys = sortedLongestFirst(mapKeys(def.EggPancakeAliases))

	norm, err := newNormalizeRules(def.TextAliases, def.FillerTokens)
	if err != nil {
		return nil, err
	}
	c.norm = norm

	return c, nil
}

// RecipeKeys 回傳口味 key，長字優先
func (c *Catalog) RecipeKeys() []string {
	return c.recipeKeys
}

// Recipe 查詢口味配方
func (c *Catalog) Recipe(flavor string) (Recipe, bool) {
	r, ok := c.recipes[flavor]
	return r, ok
}

// FlavorAliasKeys 回傳口味別名，長字優先
func (c *Catalog) FlavorAliasKeys() []string {
	return c.flavorAliasKeys
}

// FlavorAlias 查詢口味別名對應的正式口味
func (c *Catalog) FlavorAlias(alias string) (string, bool) {
	v, ok := c.flavorAliases[alias]
	return v, ok
}

// IsAmbiguousProtein 判斷單獨出現的詞是否只是蛋白質、不是合法口味
func (c *Catalog) IsAmbiguousProtein(token string) bool {
	_, ok := c.ambiguousProteins[token]
	return ok
}

// OralRiceballKeywords 回傳口語上的飯糰稱呼（飯糰/飯團）
func (c *Catalog) OralRiceballKeywords() []string {
	return c.oralRiceball
}

// DefaultFlavor 回傳只說「飯糰」時的預設口味
func (c *Catalog) DefaultFlavor() string {
	return c.defaultFlavor
}

// RiceChoices 回傳米種選項（白米/紫米/混米）
func (c *Catalog) RiceChoices() []string {
	return c.riceChoices
}

// RiceFor 從一句話找出米種；混米同義詞優先判斷
func (c *Catalog) RiceFor(text string) (string, bool) {
	for _, kw := range c.riceMix {
		if kw != "" && contains(text, kw) {
			return "混米", true
		}
	}
	for _, alias := range sortedLongestFirst(mapKeys(c.riceAliases)) {
		if contains(text, alias) {
			return c.riceAliases[alias], true
		}
	}
	return "", false
}

// IsRiceOnly 判斷整句（正規化後）是否就是一個米種答案
func (c *Catalog) IsRiceOnly(text string) bool {
	if text == "" {
		return false
	}
	if _, ok := c.RiceFor(text); !ok {
		return false
	}
	rest := text
	for _, kw := range c.riceMix {
		rest = removeAll(rest, kw)
	}
	for alias := range c.riceAliases {
		rest = removeAll(rest, alias)
	}
	return rest == ""
}

// DrinkAliasKeys 回傳飲料別名，長字優先
func (c *Catalog) DrinkAliasKeys() []string {
	return c.drinkAliasKeys
}

// DrinkAlias 查詢飲料別名
func (c *Catalog) DrinkAlias(alias string) (DrinkEntry, bool) {
	v, ok := c.drinkAliases[alias]
	return v, ok
}

// DrinkPrice 查詢飲料價格（中杯基準）
func (c *Catalog) DrinkPrice(name string) (int, bool) {
	v, ok := c.drinkPrices[name]
	return v, ok
}

// SizeFor / TempFor / SugarFor 逐一比對杯型、溫度、糖度關鍵字
func (c *Catalog) SizeFor(text string) (string, bool)  { return lookupByContains(text, c.sizeMap) }
func (c *Catalog) TempFor(text string) (string, bool)  { return lookupByContains(text, c.tempMap) }
func (c *Catalog) SugarFor(text string) (string, bool) { return lookupByContains(text, c.sugarMap) }

// Carriers 回傳載體清單（漢堡/吐司/饅頭）
func (c *Catalog) Carriers() []string {
	return c.carriers
}

// CarrierMenuKeys 回傳載體菜單的組合名，長字優先
func (c *Catalog) CarrierMenuKeys() []string {
	return sortedLongestFirst(mapKeys(c.carrierPrices))
}

// CarrierPrice 查詢「口味+載體」組合價格
func (c *Catalog) CarrierPrice(name string) (int, bool) {
	v, ok := c.carrierPrices[name]
	return v, ok
}

// EggPancakeAliasKeys 回傳蛋餅口味別名，長字優先
func (c *Catalog) EggPancakeAliasKeys() []string {
	return c.eggPancakeAliasKeys
}

// EggPancakeAlias 查詢蛋餅口味別名
func (c *Catalog) EggPancakeAlias(alias string) (string, bool) {
	v, ok := c.eggPancakeAliases[alias]
	return v, ok
}

// EggPancakePrice 查詢蛋餅價格
func (c *Catalog) EggPancakePrice(name string) (int, bool) {
	v, ok := c.eggPancakePrices[name]
	return v, ok
}

// SnackKeys 回傳單點品項名稱，長字優先
func (c *Catalog) SnackKeys() []string {
	return sortedLongestFirst(mapKeys(c.snackPrices))
}

// SnackPrice 查詢單點品項價格
func (c *Catalog) SnackPrice(name string) (int, bool) {
	v, ok := c.snackPrices[name]
	return v, ok
}

// IsStandaloneOnly 判斷關鍵字是否只能整詞計分
func (c *Catalog) IsStandaloneOnly(keyword string) bool {
	_, ok := c.standaloneOnly[keyword]
	return ok
}

// LongerKeysContaining 回傳包含指定關鍵字的更長口味 key（例：蛋餅 → 蛋餅飯糰）
func (c *Catalog) LongerKeysContaining(keyword string) []string {
	var out []string
	for _, k := range c.recipeKeys {
		if k != keyword && contains(k, keyword) {
			out = append(out, k)
		}
	}
	return out
}

// IngredientSynonym 查詢配料同義詞
func (c *Catalog) IngredientSynonym(raw string) string {
	if v, ok := c.ingredientSynonyms[raw]; ok {
		return v
	}
	return raw
}

// IngredientSynonymKeys 回傳配料同義詞，長字優先
func (c *Catalog) IngredientSynonymKeys() []string {
	return sortedLongestFirst(mapKeys(c.ingredientSynonyms))
}

// AddonPrice 查詢加料價格
func (c *Catalog) AddonPrice(ingredient string) (int, bool) {
	v, ok := c.addonPrices[ingredient]
	return v, ok
}

func toSet(xs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		set[x] = struct{}{}
	}
	return set
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// sortedLongestFirst 長字優先、同長度依字典序，讓比對結果穩定
func sortedLongestFirst(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func lookupByContains(text string, m map[string]string) (string, bool) {
	for _, k := range sortedLongestFirst(mapKeys(m)) {
		if contains(text, k) {
			return m[k], true
		}
	}
	return "", false
}
