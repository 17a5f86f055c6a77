package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

var drinkQuantityRe = regexp.MustCompile(`(\d+)\s*杯?`)

var drinkCupMap = map[string]int{"一": 1, "兩": 2, "三": 3}

// DrinkParser 解析飲料：品名長字優先，杯型/溫度/糖度分開抓
type DrinkParser struct {
	cat *catalog.Catalog
}

// NewDrinkParser 建立飲料解析器
func NewDrinkParser(cat *catalog.Catalog) *DrinkParser {
	return &DrinkParser{cat: cat}
}

// Parse 先拆杯型/溫度/糖度/數量，再比對品名
func (p *DrinkParser) Parse(text string) order.Frame {
	t := strings.TrimSpace(text)

	f := order.Frame{
		Type:     routing.RouteDrink,
		RawText:  text,
		Quantity: p.parseQuantity(t),
	}

	if size, ok := p.cat.SizeFor(t); ok {
		f.Size = size
	}
	if temp, ok := p.cat.TempFor(t); ok {
		f.Temp = temp
	}
	if sugar, ok := p.cat.SugarFor(t); ok {
		f.Sugar = sugar
	}

	// 品名：長字優先，別名本身帶糖度時一併帶入（例：清漿 = 無糖豆漿）
	for _, alias := range p.cat.DrinkAliasKeys() {
		if strings.Contains(t, alias) {
			entry, _ := p.cat.DrinkAlias(alias)
			f.Drink = entry.Name
			if f.Sugar == "" && entry.Sugar != "" {
				f.Sugar = entry.Sugar
			}
			// 大冰簡寫同時決定杯型與溫度
			if strings.HasPrefix(alias, "大冰") {
				if f.Size == "" {
					f.Size = "大杯"
				}
				if f.Temp == "" {
					f.Temp = "冰"
				}
			}
			break
		}
	}

	return f
}

func (p *DrinkParser) parseQuantity(t string) int {
	if m := drinkQuantityRe.FindStringSubmatch(t); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	for zh, n := range drinkCupMap {
		if strings.Contains(t, zh+"杯") {
			return n
		}
	}
	return 1
}
