package parser

import (
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// SnackParser 解析單點品項（薯餅/熱狗/荷包蛋…）
type SnackParser struct {
	cat *catalog.Catalog
}

// NewSnackParser 建立單點解析器
func NewSnackParser(cat *catalog.Catalog) *SnackParser {
	return &SnackParser{cat: cat}
}

// Parse 先比對單點菜單名，比不到時留空由狀態機追問
func (p *SnackParser) Parse(text string) order.Frame {
	t := strings.TrimSpace(text)

	f := order.Frame{
		Type:     routing.RouteSnack,
		RawText:  text,
		Quantity: 1,
	}
	if m := quantityRe.FindStringSubmatch(t); m != nil {
		if n, ok := quantityMap[m[1]]; ok {
			f.Quantity = n
		}
	}

	for _, name := range p.cat.SnackKeys() {
		if strings.Contains(t, name) {
			f.Flavor = name
			break
		}
	}

	return f
}
