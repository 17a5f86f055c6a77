package routing

import (
	"testing"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.Default()
}

func newTestRouter(t *testing.T) *KeywordRouter {
	t.Helper()
	return NewKeywordRouter(defaultCatalog(t))
}

func TestKeywordRouterBasicRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		text string
		want routing.Route
	}{
		{"oral riceball", "我要一個飯糰", routing.RouteRiceball},
		{"flavor only", "韓式泡菜", routing.RouteRiceball},
		{"flavor alias", "泡菜加蛋", routing.RouteRiceball},
		{"drink", "大冰豆", routing.RouteDrink},
		{"carrier", "豬排漢堡", routing.RouteCarrier},
		{"egg pancake", "原味蛋餅", routing.RouteEggPancake},
		{"single item", "單點薯餅", routing.RouteSnack},
		{"greeting", "你好", routing.RouteUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Route(tt.text, routing.Context{})
			if got.Route != tt.want {
				t.Errorf("Route(%q) = %s, want %s (note=%s)", tt.text, got.Route, tt.want, got.Note)
			}
		})
	}
}

func TestKeywordRouterComboGuard(t *testing.T) {
	r := newTestRouter(t)

	// 蛋餅飯糰是飯糰口味，不能被「蛋餅」關鍵字搶走
	got := r.Route("我要蛋餅飯糰", routing.Context{})
	if got.Route != routing.RouteRiceball {
		t.Errorf("蛋餅飯糰 routed to %s, want riceball", got.Route)
	}
	if got.Note != "exact_sku_guard:蛋餅飯糰" {
		t.Errorf("unexpected note %q", got.Note)
	}

	// 單獨的蛋餅還是蛋餅
	got = r.Route("蛋餅", routing.Context{})
	if got.Route != routing.RouteEggPancake {
		t.Errorf("蛋餅 routed to %s, want egg_pancake", got.Route)
	}
}

func TestKeywordRouterRiceContext(t *testing.T) {
	r := newTestRouter(t)

	// 沒有上下文時，米種走兜底規則，還是飯糰但 note 不同
	got := r.Route("白米", routing.Context{})
	if got.Route != routing.RouteRiceball {
		t.Fatalf("白米 routed to %s, want riceball", got.Route)
	}
	if got.Note != "hit:rice_keyword_fallback" {
		t.Errorf("no-context note = %q, want hit:rice_keyword_fallback", got.Note)
	}

	// 訂單已有主食時，米種答案沿用飯糰且走上下文規則
	got = r.Route("白米", routing.Context{HasMainItem: true})
	if got.Note != "hit:rice_keyword_context" {
		t.Errorf("context note = %q, want hit:rice_keyword_context", got.Note)
	}

	// 正在等飯糰補槽時同樣成立
	got = r.Route("紫米", routing.Context{AwaitingRoute: routing.RouteRiceball})
	if got.Route != routing.RouteRiceball || got.Note != "hit:rice_keyword_context" {
		t.Errorf("awaiting: route=%s note=%q", got.Route, got.Note)
	}
}

func TestKeywordRouterAmbiguousProtein(t *testing.T) {
	r := newTestRouter(t)

	// 單獨的蛋白質詞視為飯糰意圖，由 Parser 留空口味再追問
	got := r.Route("里肌", routing.Context{})
	if got.Route != routing.RouteRiceball {
		t.Errorf("里肌 routed to %s, want riceball", got.Route)
	}
	if got.Note != "hit:protein_ambiguous(里肌)" {
		t.Errorf("unexpected note %q", got.Note)
	}
}

func TestKeywordRouterSingleItemBeatsKeywords(t *testing.T) {
	r := newTestRouter(t)

	// 單點句型優先於飲料關鍵字
	got := r.Route("單點豆漿", routing.Context{})
	if got.Route != routing.RouteSnack {
		t.Errorf("單點豆漿 routed to %s, want snack", got.Route)
	}
}

func TestPriorityTableStable(t *testing.T) {
	want := []routing.Route{
		routing.RouteRiceball,
		routing.RouteEggPancake,
		routing.RouteCarrier,
		routing.RouteDrink,
		routing.RouteSnack,
	}
	got := Priority()
	if len(got) != len(want) {
		t.Fatalf("priority length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("priority[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
