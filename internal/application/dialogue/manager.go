package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
	"github.com/yuanfantuan/voiceorder/internal/domain/session"
	"github.com/yuanfantuan/voiceorder/internal/infrastructure/parser"
)

// 固定回覆句
const (
	replyFallback     = "請再說清楚一點～"
	replyUnknown      = "想點哪一類？飯糰、蛋餅、漢堡、饅頭、飲料或單點？"
	replyEmptyOrder   = "還沒有點任何東西喔！想點哪一類？飯糰、蛋餅、漢堡、饅頭、飲料或單點？"
	replyNeedMoreTmpl = "已加入：%s。還需要什麼嗎？"
	replyBothTmpl     = "%s都已加入，還需要什麼嗎？"
	replyCheckoutTmpl = "這樣一共：\n%s共 %d 個品項，共 %d 元，請稍候結帳！"
)

var checkoutMarkers = []string{"結帳", "買單"}

// checkoutSoftMarkers 要整句等於才算結帳，「就這樣的口味」不是結帳
var checkoutSoftMarkers = []string{"就這樣就好", "就這樣", "這樣就好"}

var conjunctions = []string{"跟", "和"}

// Router 把一句話分到品類
type Router interface {
	Route(ctx context.Context, text string, sctx routing.Context) routing.Result
}

// SessionRepository 是會話持久化介面
type SessionRepository interface {
	Save(ctx context.Context, sess *session.Session) error
	Load(ctx context.Context, id string) (*session.Session, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Reply 是一輪對話的結果
type Reply struct {
	Text      string
	Route     routing.Route
	SessionID string
	Done      bool // 結帳完成，會話已結束
}

// Manager 是點餐狀態機：每輪載入會話、路由、解析、改訂單、回話。
// 同一個會話的輪次由呼叫端序列化。
type Manager struct {
	cat       *catalog.Catalog
	router    Router
	parsers   *parser.Set
	sessions  SessionRepository
	clarifier *Clarifier
}

// NewManager 建立對話狀態機
func NewManager(cat *catalog.Catalog, router Router, parsers *parser.Set, sessions SessionRepository, clarifier *Clarifier) *Manager {
	return &Manager{
		cat:       cat,
		router:    router,
		parsers:   parsers,
		sessions:  sessions,
		clarifier: clarifier,
	}
}

// Process 處理顧客的一句話
func (m *Manager) Process(ctx context.Context, sessionID, text string) (Reply, error) {
	sess, err := m.loadOrCreate(ctx, sessionID)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load or create session: %w", err)
	}
	sess.NextTurn()

	normalized := m.cat.Normalize(text)
	if normalized == "" {
		return m.respond(ctx, sess, Reply{Text: replyFallback, Route: routing.RouteUnknown})
	}

	// 結帳在路由之前攔截，結帳不是口味也不是品項
	if isCheckout(normalized) {
		return m.checkout(ctx, sess)
	}

	// 補槽接話：回答只套用到佇列裡最早的未完成品項
	if reply, handled := m.tryContinue(ctx, sess, normalized); handled {
		return m.respond(ctx, sess, reply)
	}

	return m.addItems(ctx, sess, normalized)
}

// loadOrCreate 載入會話，不存在就開新會話
func (m *Manager) loadOrCreate(ctx context.Context, id string) (*session.Session, error) {
	sess, err := m.sessions.Load(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return session.NewSession(id), nil
		}
		return nil, err
	}
	return sess, nil
}

// respond 保存會話並回覆
func (m *Manager) respond(ctx context.Context, sess *session.Session, reply Reply) (Reply, error) {
	reply.SessionID = sess.ID()
	if err := m.sessions.Save(ctx, sess); err != nil {
		return Reply{}, fmt.Errorf("failed to save session: %w", err)
	}
	return reply, nil
}

// tryContinue 嘗試把這句話當成補槽回答。
// 明確指向其他品類、或同品類但換了品名的句子不算接話。
func (m *Manager) tryContinue(ctx context.Context, sess *session.Session, normalized string) (Reply, bool) {
	p := sess.Order().FirstIncomplete()
	if p == nil {
		return Reply{}, false
	}
	missing := p.Missing()

	// 價格確認槽走是/否，不走解析
	if missing[0] == order.SlotPriceConfirm {
		return m.handlePriceConfirm(ctx, sess, p, normalized)
	}

	sctx := routingContext(sess)
	result := m.router.Route(ctx, normalized, sctx)
	if result.Route.Known() && result.Route != p.Frame.Type && result.Note != "hit:rice_keyword_context" {
		return Reply{}, false
	}

	ps, ok := m.parsers.ForRoute(p.Frame.Type)
	if !ok {
		return Reply{}, false
	}
	parsed := ps.Parse(normalized)

	// 同品類但講了另一個品名，當成新品項
	if prim := primarySlot(parsed); prim != "" && primarySlot(p.Frame) != "" && prim != primarySlot(p.Frame) {
		return Reply{}, false
	}

	merged := p.Frame.Merge(parsed)
	if len(merged.MissingSlots()) >= len(missing) {
		if result.Route.Known() {
			// 有路由意圖但補不了槽，走新品項流程
			return Reply{}, false
		}
		// 聽不懂的接話：重問同一個缺槽
		q := m.clarifier.Question(ctx, p.Frame.Type, missing[0], Digest(sess))
		return Reply{Text: q, Route: p.Frame.Type}, true
	}

	p.Frame = merged
	folded := sess.Order().FoldComplete()
	sess.SetLastRoute(p.Frame.Type)
	return m.progressReply(ctx, sess, folded), true
}

// handlePriceConfirm 處理極端客製的價格確認回答
func (m *Manager) handlePriceConfirm(ctx context.Context, sess *session.Session, p *order.PendingItem, normalized string) (Reply, bool) {
	switch {
	case containsAny(normalized, []string{"不要", "算了", "取消"}):
		sess.Order().Remove(p)
		return Reply{Text: "好的，這項先取消。還需要什麼嗎？", Route: p.Frame.Type}, true

	case containsAny(normalized, []string{"好", "可以", "沒問題", "確認"}):
		p.Frame.ConfirmedPrice = m.estimatePrice(p.Frame)
		folded := sess.Order().FoldComplete()
		return m.progressReply(ctx, sess, folded), true
	}

	q := m.clarifier.Question(ctx, p.Frame.Type, order.SlotPriceConfirm, Digest(sess))
	return Reply{Text: q, Route: p.Frame.Type}, true
}

// addItems 處理新品項：多品項句先拆段，逐段路由解析後排隊
func (m *Manager) addItems(ctx context.Context, sess *session.Session, normalized string) (Reply, error) {
	sctx := routingContext(sess)
	segments := m.splitSegments(ctx, normalized, sctx)

	routedAny := false
	for _, seg := range segments {
		result := m.router.Route(ctx, seg, sctx)
		if !result.Route.Known() {
			continue
		}
		ps, ok := m.parsers.ForRoute(result.Route)
		if !ok {
			continue
		}
		frame := ps.Parse(seg)
		sess.Order().Enqueue(frame)
		sess.SetLastRoute(result.Route)
		routedAny = true
		// 後續段落看得到前面剛排進來的品項
		sctx = routingContext(sess)
	}

	if !routedAny {
		return m.respond(ctx, sess, Reply{Text: replyUnknown, Route: routing.RouteUnknown})
	}

	folded := sess.Order().FoldComplete()

	// 多品項句：完整的段先默默入單，回覆只追問最早的缺槽
	if len(segments) > 1 {
		if p := sess.Order().FirstIncomplete(); p != nil {
			q := m.clarifier.Question(ctx, p.Frame.Type, p.Missing()[0], Digest(sess))
			return m.respond(ctx, sess, Reply{Text: q, Route: p.Frame.Type})
		}
	}
	return m.respond(ctx, sess, m.progressReply(ctx, sess, folded))
}

// splitSegments 依連接詞拆多品項句；任一段拆出來認不得就不拆
func (m *Manager) splitSegments(ctx context.Context, text string, sctx routing.Context) []string {
	for _, conj := range conjunctions {
		if !strings.Contains(text, conj) {
			continue
		}
		parts := strings.Split(text, conj)
		ok := len(parts) > 1
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				ok = false
				break
			}
			if !m.router.Route(ctx, part, sctx).Route.Known() {
				ok = false
				break
			}
		}
		if ok {
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return []string{text}
}

// progressReply 依訂單目前狀態組回覆：先報剛完成的，再追問下一個缺槽。
// 全部補齊且訂單剛好湊滿兩個品項時，改報雙品項確認。
func (m *Manager) progressReply(ctx context.Context, sess *session.Session, folded []order.Frame) Reply {
	route := sess.LastRoute()

	if p := sess.Order().FirstIncomplete(); p != nil {
		q := m.clarifier.Question(ctx, p.Frame.Type, p.Missing()[0], Digest(sess))
		if len(folded) > 0 {
			// 已完成的先報，缺槽接著問
			return Reply{Text: fmt.Sprintf("已加入：%s。%s", foldedLabels(folded), q), Route: p.Frame.Type}
		}
		return Reply{Text: q, Route: p.Frame.Type}
	}

	if len(folded) == 0 {
		return Reply{Text: replyFallback, Route: route}
	}
	if items := sess.Order().Items(); len(items) == 2 {
		return Reply{Text: fmt.Sprintf(replyBothTmpl, items[0].ShortLabel()+"、"+items[1].ShortLabel()), Route: route}
	}
	if len(folded) == 1 {
		return Reply{Text: fmt.Sprintf(replyNeedMoreTmpl, folded[0].Label()), Route: route}
	}
	labels := make([]string, 0, len(folded))
	for _, f := range folded {
		labels = append(labels, f.ShortLabel())
	}
	return Reply{Text: fmt.Sprintf(replyBothTmpl, strings.Join(labels, "、")), Route: route}
}

func foldedLabels(folded []order.Frame) string {
	labels := make([]string, 0, len(folded))
	for _, f := range folded {
		labels = append(labels, f.Label())
	}
	return strings.Join(labels, "、")
}

// checkout 結算訂單：缺槽品項要先補完才放行
func (m *Manager) checkout(ctx context.Context, sess *session.Session) (Reply, error) {
	ord := sess.Order()
	if ord.Empty() {
		return m.respond(ctx, sess, Reply{Text: replyEmptyOrder, Route: routing.RouteUnknown})
	}
	if p := ord.FirstIncomplete(); p != nil {
		q := m.clarifier.Question(ctx, p.Frame.Type, p.Missing()[0], Digest(sess))
		return m.respond(ctx, sess, Reply{Text: "結帳前先補一下：" + q, Route: p.Frame.Type})
	}

	var b strings.Builder
	total := 0
	for _, f := range ord.Items() {
		price, err := m.itemPrice(f)
		if err != nil {
			log.Printf("checkout pricing failed for %s: %v", f.Label(), err)
			fmt.Fprintf(&b, "- %s x%d（價格請店家確認）\n", f.Label(), f.Qty())
			continue
		}
		fmt.Fprintf(&b, "- %s x%d = %d元\n", f.Label(), f.Qty(), price)
		total += price
	}
	text := fmt.Sprintf(replyCheckoutTmpl, b.String(), ord.ItemCount(), total)

	if err := m.sessions.Delete(ctx, sess.ID()); err != nil {
		return Reply{}, fmt.Errorf("failed to close session: %w", err)
	}
	return Reply{Text: text, Route: routing.RouteUnknown, SessionID: sess.ID(), Done: true}, nil
}

// itemPrice 依菜單計算整列品項價格（含數量與加料）
func (m *Manager) itemPrice(f order.Frame) (int, error) {
	var unit int
	switch f.Type {
	case routing.RouteRiceball:
		if f.NeedsPriceConfirm && f.ConfirmedPrice > 0 {
			unit = f.ConfirmedPrice
		} else {
			q, err := m.cat.QuoteRiceball(f.Flavor, f.Large, f.Heavy, f.ExtraEgg)
			if err != nil {
				return 0, err
			}
			if q.NeedsConfirm {
				return 0, fmt.Errorf("price needs confirmation: %s", f.Label())
			}
			unit = q.Total
		}
		for _, ing := range f.AddIngredients {
			if p, ok := m.cat.AddonPrice(ing); ok {
				unit += p
			}
		}

	case routing.RouteDrink:
		price, err := m.cat.QuoteDrink(f.Drink, f.Size)
		if err != nil {
			return 0, err
		}
		unit = price

	case routing.RouteCarrier:
		price, ok := m.cat.CarrierPrice(f.Flavor)
		if !ok {
			return 0, fmt.Errorf("unknown carrier item %q", f.Flavor)
		}
		unit = price

	case routing.RouteEggPancake:
		price, ok := m.cat.EggPancakePrice(f.Flavor)
		if !ok {
			return 0, fmt.Errorf("unknown egg pancake %q", f.Flavor)
		}
		unit = price

	case routing.RouteSnack:
		price, ok := m.cat.SnackPrice(f.Flavor)
		if !ok {
			return 0, fmt.Errorf("unknown snack %q", f.Flavor)
		}
		unit = price

	default:
		return 0, fmt.Errorf("unpriceable item type %s", f.Type)
	}

	return unit * f.Qty(), nil
}

// estimatePrice 算價格確認通過後的暫定價：能報價就用報價，否則用口味底價
func (m *Manager) estimatePrice(f order.Frame) int {
	q, err := m.cat.QuoteRiceball(f.Flavor, f.Large, f.Heavy, f.ExtraEgg)
	if err == nil && !q.NeedsConfirm {
		return q.Total
	}
	if recipe, ok := m.cat.Recipe(f.Flavor); ok {
		return recipe.Price
	}
	return 0
}

// primarySlot 回傳品項的主識別 slot（口味或飲料品名）
func primarySlot(f order.Frame) string {
	if f.Type == routing.RouteDrink {
		return f.Drink
	}
	return f.Flavor
}

// isCheckout 判斷結帳句：硬性詞看包含，軟性詞要整句相等
func isCheckout(text string) bool {
	if containsAny(text, checkoutMarkers) {
		return true
	}
	for _, marker := range checkoutSoftMarkers {
		if text == marker {
			return true
		}
	}
	return false
}

func containsAny(text string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
