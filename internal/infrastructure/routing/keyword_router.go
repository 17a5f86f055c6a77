package routing

import (
	"fmt"
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// singleItemMarkers 是單點句型，優先於品類關鍵字
var singleItemMarkers = []string{"單點", "單獨"}

// domainPriority 是同句多品類關鍵字同時命中時的固定優先序。
// 飯糰最高：組合口味常把其他品項名稱當成口味描述（例：蛋餅飯糰）。
var domainPriority = []routing.Route{
	routing.RouteRiceball,
	routing.RouteEggPancake,
	routing.RouteCarrier,
	routing.RouteDrink,
	routing.RouteSnack,
}

// KeywordRouter 用關鍵字規則把一句話分到品類，規則依嚴格優先序逐條測試
type KeywordRouter struct {
	cat *catalog.Catalog
}

// NewKeywordRouter 建立關鍵字路由器
func NewKeywordRouter(cat *catalog.Catalog) *KeywordRouter {
	return &KeywordRouter{cat: cat}
}

// Route 依序測試規則，第一條命中即回傳；全部落空回 unknown。
// 文字應已經過 Normalize。
func (r *KeywordRouter) Route(text string, sctx routing.Context) routing.Result {
	t := strings.TrimSpace(text)

	// 1. 組合款整名保護：蛋餅飯糰之類的整名永遠是飯糰
	for _, key := range r.comboExclusiveKeys() {
		if strings.Contains(t, key) {
			return routing.NewResult(routing.RouteRiceball, 0.95,
				"組合款整名命中", "exact_sku_guard:"+key)
		}
	}

	// 2. 單點
	for _, marker := range singleItemMarkers {
		if strings.Contains(t, marker) {
			return routing.NewResult(routing.RouteSnack, 0.85,
				"單點句型", "single_item_context")
		}
	}

	// 3. 飯糰關鍵字
	for _, kw := range r.cat.OralRiceballKeywords() {
		if strings.Contains(t, kw) {
			return routing.NewResult(routing.RouteRiceball, 0.9,
				"飯糰關鍵字", "hit:riceball_keywords")
		}
	}

	// 4. 米種上下文：訂單已有主食或正在等米種時，米種答案沿用飯糰
	if sctx.HasMainItem || sctx.AwaitingRoute == routing.RouteRiceball {
		if _, ok := r.cat.RiceFor(t); ok {
			return routing.NewResult(routing.RouteRiceball, 0.85,
				"米種接話", "hit:rice_keyword_context")
		}
	}

	// 5. 載體菜單整名：培根蛋漢堡之類的整名不能被口味別名（培根）搶走
	for _, name := range r.cat.CarrierMenuKeys() {
		if strings.Contains(t, name) {
			return routing.NewResult(routing.RouteCarrier, 0.9,
				"載體菜單整名", "hit:carrier_menu")
		}
	}

	// 6. 蛋餅菜單整名：火腿蛋餅不能被口味別名（火腿）搶走
	for _, name := range r.cat.EggPancakeAliasKeys() {
		if strings.Contains(t, name) {
			return routing.NewResult(routing.RouteEggPancake, 0.9,
				"蛋餅菜單整名", "hit:egg_pancake_menu")
		}
	}

	// 7. 口味命中（正式 key、別名、單獨的蛋白質詞都算飯糰意圖）
	if note, ok := r.flavorHit(t); ok {
		return routing.NewResult(routing.RouteRiceball, 0.85, "口味關鍵字", note)
	}

	// 8. 米種兜底
	if _, ok := r.cat.RiceFor(t); ok {
		return routing.NewResult(routing.RouteRiceball, 0.75,
			"米種關鍵字", "hit:rice_keyword_fallback")
	}

	// 9. 蛋餅：只能整詞計分的關鍵字要先排除組合款殘影
	if r.standaloneHit(t, "蛋餅") {
		return routing.NewResult(routing.RouteEggPancake, 0.85,
			"蛋餅關鍵字", "hit:egg_pancake_keywords")
	}

	// 10. 載體
	for _, c := range r.cat.Carriers() {
		if strings.Contains(t, c) {
			return routing.NewResult(routing.RouteCarrier, 0.85,
				"載體關鍵字", "hit:carrier")
		}
	}

	// 11. 飲料
	for _, alias := range r.cat.DrinkAliasKeys() {
		if strings.Contains(t, alias) {
			return routing.NewResult(routing.RouteDrink, 0.85,
				"飲料關鍵字", "hit:drink_keywords")
		}
	}

	return routing.NewResult(routing.RouteUnknown, 0, "無關鍵字命中", "")
}

// Priority 回傳固定的品類優先序表
func Priority() []routing.Route {
	return domainPriority
}

// comboExclusiveKeys 回傳包含 standalone 關鍵字的更長口味 key
func (r *KeywordRouter) comboExclusiveKeys() []string {
	var keys []string
	for _, kw := range []string{"蛋餅"} {
		if r.cat.IsStandaloneOnly(kw) {
			keys = append(keys, r.cat.LongerKeysContaining(kw)...)
		}
	}
	return keys
}

// standaloneHit 判斷只能整詞計分的關鍵字：
// 把包含它的長 key 先移掉，殘句還有關鍵字才算命中。
func (r *KeywordRouter) standaloneHit(t, kw string) bool {
	if !strings.Contains(t, kw) {
		return false
	}
	rest := t
	for _, longer := range r.cat.LongerKeysContaining(kw) {
		rest = strings.ReplaceAll(rest, longer, "")
	}
	return strings.Contains(rest, kw)
}

func (r *KeywordRouter) flavorHit(t string) (string, bool) {
	for _, key := range r.cat.RecipeKeys() {
		if strings.Contains(t, key) {
			return fmt.Sprintf("hit:flavor(%s)", key), true
		}
	}
	for _, alias := range r.cat.FlavorAliasKeys() {
		if strings.Contains(t, alias) {
			canonical, _ := r.cat.FlavorAlias(alias)
			return fmt.Sprintf("hit:flavor(%s)", canonical), true
		}
	}
	for _, key := range r.cat.RecipeKeys() {
		recipe, _ := r.cat.Recipe(key)
		if recipe.Protein != "" && strings.Contains(t, recipe.Protein) && r.cat.IsAmbiguousProtein(recipe.Protein) {
			return fmt.Sprintf("hit:protein_ambiguous(%s)", recipe.Protein), true
		}
	}
	return "", false
}
