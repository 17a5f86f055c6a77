package parser

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

var (
	quantityRe = regexp.MustCompile(`([一兩三])\s*[顆個]`)
	onlyRe     = regexp.MustCompile(`只要(.+)`)
)

var quantityMap = map[string]int{"一": 1, "兩": 2, "三": 3}

// specialOnlyPatterns 是「只要飯…」的固定句型，一律走人工定價
var specialOnlyPatterns = []string{"只要飯跟蛋", "只要飯和蛋", "只要飯蛋", "只要飯"}

// RiceballParser 解析飯糰的一句話：口味、米種、加大/重量/加蛋、客製
type RiceballParser struct {
	cat *catalog.Catalog
}

// NewRiceballParser 建立飯糰解析器
func NewRiceballParser(cat *catalog.Catalog) *RiceballParser {
	return &RiceballParser{cat: cat}
}

// Parse 解析一句話。口味比對長字優先且必須整詞出現：
// 短詞只是更長口味 key 的開頭時不算命中（例：蛋餅 對 蛋餅飯糰）。
func (p *RiceballParser) Parse(text string) order.Frame {
	t := strings.TrimSpace(text)

	f := order.Frame{
		Type:     routing.RouteRiceball,
		RawText:  text,
		Quantity: p.parseQuantity(t),
		Large:    strings.Contains(t, "加大") || strings.Contains(t, "大顆"),
		Heavy:    strings.Contains(t, "重量"),
		ExtraEgg: strings.Contains(t, "加蛋"),
	}

	if rice, ok := p.cat.RiceFor(t); ok {
		f.Rice = rice
	}

	f.Flavor = p.matchFlavor(t)

	// 口語預設：只說「飯糰」沒講口味 = 預設口味；有口味就不覆蓋。
	// 句子裡有模糊蛋白質詞（里肌等）時不預設，留給狀態機追問口味。
	if f.Flavor == "" && !p.hasAmbiguousProtein(t) {
		for _, kw := range p.cat.OralRiceballKeywords() {
			if strings.Contains(t, kw) {
				f.Flavor = p.cat.DefaultFlavor()
				break
			}
		}
	}

	p.parseCustomization(t, &f)

	// 點了重量但這口味沒有重量價，要先跟店家確認
	if f.Heavy && f.Flavor != "" {
		if recipe, ok := p.cat.Recipe(f.Flavor); ok && recipe.HeavyPrice == 0 && !recipe.OnlyLarge {
			f.NeedsPriceConfirm = true
		}
	}

	return f
}

func (p *RiceballParser) hasAmbiguousProtein(t string) bool {
	for _, key := range p.cat.RecipeKeys() {
		recipe, _ := p.cat.Recipe(key)
		if recipe.Protein != "" && p.cat.IsAmbiguousProtein(recipe.Protein) && strings.Contains(t, recipe.Protein) {
			return true
		}
	}
	return false
}

// matchFlavor 先比正式口味 key、再比別名，皆為長字優先。
// 單獨的蛋白質詞（里肌等）不是合法口味，留給狀態機追問。
func (p *RiceballParser) matchFlavor(t string) string {
	for _, key := range p.cat.RecipeKeys() {
		if strings.Contains(t, key) {
			return key
		}
	}
	for _, alias := range p.cat.FlavorAliasKeys() {
		if strings.Contains(t, alias) {
			canonical, _ := p.cat.FlavorAlias(alias)
			return canonical
		}
	}
	return ""
}

func (p *RiceballParser) parseQuantity(t string) int {
	m := quantityRe.FindStringSubmatch(t)
	if m == nil {
		return 1
	}
	if n, ok := quantityMap[m[1]]; ok {
		return n
	}
	return 1
}

// parseCustomization 處理 只要…/加…/不要… 的客製句型。
// only 模式屬極端客製，需要人工確認價格。
func (p *RiceballParser) parseCustomization(t string, f *order.Frame) {
	for _, pat := range specialOnlyPatterns {
		if strings.Contains(t, pat) {
			f.OnlyMode = true
			f.NeedsPriceConfirm = true
			if strings.Contains(pat, "蛋") {
				f.OnlyIngredients = append(f.OnlyIngredients, "蛋")
			}
			break
		}
	}

	if !f.OnlyMode {
		if m := onlyRe.FindStringSubmatch(t); m != nil {
			f.OnlyMode = true
			f.NeedsPriceConfirm = true
			f.OnlyIngredients = p.matchOnlyIngredients(m[1])
		}
	}

	// 加X / 再加X（加蛋已由 ExtraEgg 表達，避免重算）
	for _, syn := range p.cat.IngredientSynonymKeys() {
		if syn == "加蛋" || syn == "蛋" {
			continue
		}
		if strings.Contains(t, "加"+syn) || strings.Contains(t, "再加"+syn) {
			f.AddIngredients = appendUnique(f.AddIngredients, p.cat.IngredientSynonym(syn))
		}
	}

	// 不要/去掉/拿掉X
	for _, syn := range p.cat.IngredientSynonymKeys() {
		if strings.Contains(t, "不要"+syn) || strings.Contains(t, "去掉"+syn) || strings.Contains(t, "拿掉"+syn) {
			f.RemoveIngredients = appendUnique(f.RemoveIngredients, p.cat.IngredientSynonym(syn))
		}
	}
}

// matchOnlyIngredients 從「只要…」後段比對配料。
// 單字同義詞會造成子字串誤判（例：肉鬆 被「肉」吃掉），只收兩個字以上的。
func (p *RiceballParser) matchOnlyIngredients(part string) []string {
	candidates := map[string]struct{}{}
	for _, key := range p.cat.RecipeKeys() {
		recipe, _ := p.cat.Recipe(key)
		for _, ing := range recipe.Ingredients {
			candidates[ing] = struct{}{}
		}
	}
	for _, syn := range p.cat.IngredientSynonymKeys() {
		if utf8.RuneCountInString(syn) >= 2 {
			candidates[syn] = struct{}{}
		}
	}

	keys := make([]string, 0, len(candidates))
	for c := range candidates {
		keys = append(keys, c)
	}

	var out []string
	for _, c := range sortLongestFirst(keys) {
		if strings.Contains(part, c) {
			out = appendUnique(out, p.cat.IngredientSynonym(c))
		}
	}
	return out
}

func appendUnique(xs []string, x string) []string {
	for _, v := range xs {
		if v == x {
			return xs
		}
	}
	return append(xs, x)
}

func sortLongestFirst(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
