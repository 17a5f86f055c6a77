package catalog

import "fmt"

const (
	largeSurcharge    = 5
	extraEggSurcharge = 10
)

// Quote 是一次報價結果
type Quote struct {
	Flavor       string
	BasePrice    int
	Total        int
	Large        bool
	Heavy        bool
	ExtraEgg     bool
	NeedsConfirm bool
	Message      string
}

// QuoteRiceball 計算飯糰價格：
// 加大 +5；重量版用重量價；只有加大的口味點重量會折回加大；加蛋 +10。
func (c *Catalog) QuoteRiceball(flavor string, large, heavy, extraEgg bool) (Quote, error) {
	recipe, ok := c.recipes[flavor]
	if !ok {
		return Quote{}, fmt.Errorf("catalog: unknown riceball flavor %q", flavor)
	}

	isLarge, isHeavy := large, heavy
	if recipe.OnlyLarge && isHeavy {
		isLarge = true
		isHeavy = false
	}

	q := Quote{
		Flavor:    flavor,
		BasePrice: recipe.Price,
		Large:     isLarge,
		Heavy:     isHeavy,
		ExtraEgg:  extraEgg,
	}

	if isHeavy {
		if recipe.HeavyPrice == 0 {
			q.NeedsConfirm = true
			q.Message = fmt.Sprintf("%s重量版需店家確認價格", flavor)
			return q, nil
		}
		q.Total = recipe.HeavyPrice
	} else {
		q.Total = recipe.Price
		if isLarge {
			q.Total += largeSurcharge
		}
	}

	if extraEgg {
		q.Total += extraEggSurcharge
	}

	q.Message = fmt.Sprintf("%s%s%s%s = %d元",
		flavor,
		mark(isLarge, "·加大"),
		mark(isHeavy, "·重量"),
		mark(extraEgg, "·加蛋"),
		q.Total)
	return q, nil
}

// QuoteDrink 計算飲料價格，大杯 +5
func (c *Catalog) QuoteDrink(name, size string) (int, error) {
	base, ok := c.drinkPrices[name]
	if !ok {
		return 0, fmt.Errorf("catalog: unknown drink %q", name)
	}
	if size == "大杯" {
		return base + largeSurcharge, nil
	}
	return base, nil
}

func mark(on bool, s string) string {
	if on {
		return s
	}
	return ""
}
