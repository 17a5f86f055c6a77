package parser

import (
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// CarrierParser 解析載體品項（漢堡/吐司/饅頭）
type CarrierParser struct {
	cat *catalog.Catalog
}

// NewCarrierParser 建立載體解析器
func NewCarrierParser(cat *catalog.Catalog) *CarrierParser {
	return &CarrierParser{cat: cat}
}

// Parse 先認載體，再從菜單組合認口味；
// 只講「饅頭夾蛋/饅頭加蛋」時推回菜單上的「饅頭夾蛋」。
func (p *CarrierParser) Parse(text string) order.Frame {
	t := strings.TrimSpace(text)

	f := order.Frame{
		Type:     routing.RouteCarrier,
		RawText:  text,
		Quantity: 1,
	}

	for _, c := range p.cat.Carriers() {
		if strings.Contains(t, c) {
			f.Carrier = c
			break
		}
	}

	f.Flavor = p.matchMenuItem(t, f.Carrier)
	if f.Flavor != "" && f.Carrier == "" {
		// 整名命中時載體跟著組合名走
		for _, c := range p.cat.Carriers() {
			if strings.Contains(f.Flavor, c) {
				f.Carrier = c
				break
			}
		}
	}

	if f.Flavor == "" && f.Carrier == "饅頭" &&
		(strings.Contains(t, "夾蛋") || strings.Contains(t, "加蛋")) {
		if _, ok := p.cat.CarrierPrice("饅頭夾蛋"); ok {
			f.Flavor = "饅頭夾蛋"
		}
	}

	return f
}

// matchMenuItem 比對菜單組合名：整名命中優先；
// 否則載體已知時，用「組合名去掉載體」的剩餘部分比對（例：漢堡＋豬排 → 豬排漢堡）。
func (p *CarrierParser) matchMenuItem(t, carrier string) string {
	menu := p.cat.CarrierMenuKeys()

	for _, name := range menu {
		if strings.Contains(t, name) {
			return name
		}
	}

	if carrier == "" {
		return ""
	}
	for _, name := range menu {
		if !strings.Contains(name, carrier) {
			continue
		}
		rest := strings.ReplaceAll(name, carrier, "")
		if rest != "" && strings.Contains(t, rest) {
			return name
		}
	}
	return ""
}
