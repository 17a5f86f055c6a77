package parser

import (
	"github.com/yuanfantuan/voiceorder/internal/domain/catalog"
	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// Parser 把一句話解析成單一品類的訂單框架。
// 解析不到的 slot 一律留空，由狀態機決定怎麼追問。
type Parser interface {
	Parse(text string) order.Frame
}

// Set 是一組固定品類的解析器，依 Route 明確分派
type Set struct {
	riceball   *RiceballParser
	drink      *DrinkParser
	carrier    *CarrierParser
	eggPancake *EggPancakeParser
	snack      *SnackParser
}

// NewSet 建立解析器組
func NewSet(cat *catalog.Catalog) *Set {
	return &Set{
		riceball:   NewRiceballParser(cat),
		drink:      NewDrinkParser(cat),
		carrier:    NewCarrierParser(cat),
		eggPancake: NewEggPancakeParser(cat),
		snack:      NewSnackParser(cat),
	}
}

// ForRoute 依品類取得解析器；封閉集合，沒有動態分派
func (s *Set) ForRoute(r routing.Route) (Parser, bool) {
	switch r {
	case routing.RouteRiceball:
		return s.riceball, true
	case routing.RouteDrink:
		return s.drink, true
	case routing.RouteCarrier:
		return s.carrier, true
	case routing.RouteEggPancake:
		return s.eggPancake, true
	case routing.RouteSnack:
		return s.snack, true
	}
	return nil, false
}
