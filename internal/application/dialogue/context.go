package dialogue

import (
	"fmt"
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

// Digest 產生目前訂單狀態的一行摘要，只給澄清提示詞用，不含價格
func Digest(sess *session.Session) string {
	ord := sess.Order()
	if ord.Empty() {
		return "訂單是空的"
	}

	var parts []string
	if items := ord.Items(); len(items) > 0 {
		labels := make([]string, 0, len(items))
		for _, f := range items {
			labels = append(labels, f.Label())
		}
		parts = append(parts, "已點："+strings.Join(labels, "、"))
	}
	for _, p := range ord.Pending() {
		missing := p.Missing()
		names := make([]string, 0, len(missing))
		for _, s := range missing {
			names = append(names, slotName(s))
		}
		parts = append(parts, fmt.Sprintf("補槽中：%s（缺%s）", p.Frame.Label(), strings.Join(names, "、")))
	}
	return strings.Join(parts, "；")
}

// routingContext 組出路由需要的會話脈絡
func routingContext(sess *session.Session) routing.Context {
	sctx := routing.Context{AwaitingRoute: routing.RouteUnknown}
	for _, f := range sess.Order().Items() {
		if isMainItem(f.Type) {
			sctx.HasMainItem = true
			break
		}
	}
	if !sctx.HasMainItem {
		for _, p := range sess.Order().Pending() {
			if isMainItem(p.Frame.Type) {
				sctx.HasMainItem = true
				break
			}
		}
	}
	if p := sess.Order().FirstIncomplete(); p != nil {
		sctx.AwaitingRoute = p.Frame.Type
		sctx.AwaitingSlots = p.Missing()
	}
	return sctx
}

// isMainItem 判斷品類是否算主食（米種接話只在有主食時成立）
func isMainItem(r routing.Route) bool {
	switch r {
	case routing.RouteRiceball, routing.RouteEggPancake, routing.RouteCarrier:
		return true
	}
	return false
}
