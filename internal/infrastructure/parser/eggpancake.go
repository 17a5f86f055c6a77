package parser

import (
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// EggPancakeParser 解析蛋餅：口味別名長字優先，只說「蛋餅」要追問口味
type EggPancakeParser struct {
	cat *catalog.Catalog
}

// NewEggPancakeParser 建立蛋餅解析器
func NewEggPancakeParser(cat *catalog.Catalog) *EggPancakeParser {
	return &EggPancakeParser{cat: cat}
}

// Parse 解析一句話
func (p *EggPancakeParser) Parse(text string) order.Frame {
	t := strings.TrimSpace(text)

	f := order.Frame{
		Type:     routing.RouteEggPancake,
		RawText:  text,
		Quantity: 1,
	}
	if m := quantityRe.FindStringSubmatch(t); m != nil {
		if n, ok := quantityMap[m[1]]; ok {
			f.Quantity = n
		}
	}

	for _, alias := range p.cat.EggPancakeAliasKeys() {
		if strings.Contains(t, alias) {
			f.Flavor, _ = p.cat.EggPancakeAlias(alias)
			break
		}
	}

	return f
}
