package routing

// Route 是一句話被分到的品類
type Route string

// 品類定義。Tie-break 優先序見 infrastructure/routing 的 priority 表。
const (
	RouteRiceball   Route = "riceball"    // 飯糰
	RouteEggPancake Route = "egg_pancake" // 蛋餅
	RouteCarrier    Route = "carrier"     // 漢堡/吐司/饅頭
	RouteDrink      Route = "drink"       // 飲料
	RouteSnack      Route = "snack"       // 單點點心
	RouteUnknown    Route = "unknown"     // 無法判斷
)

// String 回傳 Route 的字串表示
func (r Route) String() string {
	return string(r)
}

// Known 判斷是否為可點餐的品類
func (r Route) Known() bool {
	switch r {
	case RouteRiceball, RouteEggPancake, RouteCarrier, RouteDrink, RouteSnack:
		return true
	}
	return false
}

// Context 是路由需要的會話脈絡摘要
type Context struct {
	HasMainItem   bool     // 訂單已有主食
	AwaitingRoute Route    // 正在補槽的品類，沒有則為 unknown
	AwaitingSlots []string // 正在補槽的 slot
}

// Result 是一次路由判斷的結果
type Result struct {
	Route      Route   // 判斷出的品類
	Confidence float64 // 確信度（0.0 - 1.0）
	Reasoning  string  // 判斷理由
	Note       string  // 命中的規則，供測試與除錯
}

// NewResult 建立路由結果
func NewResult(route Route, confidence float64, reasoning, note string) Result {
	return Result{
		Route:      route,
		Confidence: confidence,
		Reasoning:  reasoning,
		Note:       note,
	}
}
