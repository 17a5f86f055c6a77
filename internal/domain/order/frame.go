package order

import (
	"strings"

	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// Slot 名稱。MissingSlots 的回傳順序即追問順序。
const (
	SlotFlavor       = "flavor"
	SlotRice         = "rice"
	SlotPriceConfirm = "price_confirm"
	SlotDrink        = "drink"
	SlotTemp         = "temp"
	SlotSize         = "size"
	SlotCarrier      = "carrier"
)

// Frame 是一句話在單一品類下解析出的訂單框架。
// 空字串/零值代表 slot 未填，解析器不猜預設值。
type Frame struct {
	Type routing.Route `json:"type"`

	// 飯糰
	Flavor   string `json:"flavor,omitempty"`
	Rice     string `json:"rice,omitempty"`
	Large    bool   `json:"large,omitempty"`
	Heavy    bool   `json:"heavy,omitempty"`
	ExtraEgg bool   `json:"extra_egg,omitempty"`

	// 客製（只要/加/不要），極端客製需人工確認價格
	OnlyMode          bool     `json:"only_mode,omitempty"`
	OnlyIngredients   []string `json:"only_ingredients,omitempty"`
	AddIngredients    []string `json:"add_ingredients,omitempty"`
	RemoveIngredients []string `json:"remove_ingredients,omitempty"`
	NeedsPriceConfirm bool     `json:"needs_price_confirm,omitempty"`
	ConfirmedPrice    int      `json:"confirmed_price,omitempty"`

	// 飲料
	Drink string `json:"drink,omitempty"`
	Temp  string `json:"temp,omitempty"`
	Size  string `json:"size,omitempty"`
	Sugar string `json:"sugar,omitempty"`

	// 載體（漢堡/吐司/饅頭）
	Carrier string `json:"carrier,omitempty"`

	Quantity int    `json:"quantity,omitempty"`
	RawText  string `json:"raw_text,omitempty"`
}

// MissingSlots 依品類的必填 slot 表重新計算缺槽，不另外儲存
func (f Frame) MissingSlots() []string {
	var missing []string

	switch f.Type {
	case routing.RouteRiceball:
		if f.Flavor == "" {
			missing = append(missing, SlotFlavor)
		}
		if f.Rice == "" {
			missing = append(missing, SlotRice)
		}
		if f.NeedsPriceConfirm && f.ConfirmedPrice == 0 {
			missing = append(missing, SlotPriceConfirm)
		}

	case routing.RouteDrink:
		if f.Drink == "" {
			missing = append(missing, SlotDrink)
		}
		if f.Temp == "" {
			missing = append(missing, SlotTemp)
		}
		if f.Size == "" {
			missing = append(missing, SlotSize)
		}

	case routing.RouteCarrier:
		if f.Carrier == "" {
			missing = append(missing, SlotCarrier)
		}
		if f.Flavor == "" {
			missing = append(missing, SlotFlavor)
		}

	case routing.RouteEggPancake:
		if f.Flavor == "" {
			missing = append(missing, SlotFlavor)
		}

	case routing.RouteSnack:
		if f.Flavor == "" {
			missing = append(missing, SlotFlavor)
		}
	}

	return missing
}

// Complete 判斷必填 slot 是否都已補齊
func (f Frame) Complete() bool {
	return len(f.MissingSlots()) == 0
}

// Merge 把另一個 frame 的非空 slot 併進來，已有的值不被覆蓋
func (f Frame) Merge(other Frame) Frame {
	if f.Flavor == "" {
		f.Flavor = other.Flavor
	}
	if f.Rice == "" {
		f.Rice = other.Rice
	}
	if f.Drink == "" {
		f.Drink = other.Drink
	}
	if f.Temp == "" {
		f.Temp = other.Temp
	}
	if f.Size == "" {
		f.Size = other.Size
	}
	if f.Sugar == "" {
		f.Sugar = other.Sugar
	}
	if f.Carrier == "" {
		f.Carrier = other.Carrier
	}
	if f.ConfirmedPrice == 0 {
		f.ConfirmedPrice = other.ConfirmedPrice
	}
	f.Large = f.Large || other.Large
	f.Heavy = f.Heavy || other.Heavy
	f.ExtraEgg = f.ExtraEgg || other.ExtraEgg
	return f
}

// Label 組出顧客看得懂的品項名稱，結帳摘要與加入確認都用它
func (f Frame) Label() string {
	switch f.Type {
	case routing.RouteDrink:
		var parts []string
		if f.Size != "" {
			parts = append(parts, f.Size)
		}
		if f.Temp != "" {
			parts = append(parts, f.Temp)
		}
		if f.Sugar != "" {
			parts = append(parts, f.Sugar)
		}
		name := f.Drink
		if name == "" {
			name = "飲料"
		}
		parts = append(parts, name)
		return strings.Join(parts, " ")

	case routing.RouteRiceball:
		flavor := f.Flavor
		if flavor == "" {
			flavor = "未知口味"
		}
		var b strings.Builder
		if f.Rice != "" {
			b.WriteString(f.Rice)
			b.WriteString("·")
		}
		b.WriteString(flavor)
		if f.Large {
			b.WriteString("·加大")
		}
		if f.Heavy {
			b.WriteString("·重量")
		}
		if f.ExtraEgg {
			b.WriteString("·加蛋")
		}
		return b.String()

	case routing.RouteCarrier:
		switch {
		case f.Flavor != "":
			// 口味通常已是「豬排漢堡」這種組合名，載體不重複拼
			if f.Carrier != "" && !strings.Contains(f.Flavor, f.Carrier) {
				return f.Flavor + f.Carrier
			}
			return f.Flavor
		case f.Carrier != "":
			return f.Carrier
		}
		return "餐點"

	case routing.RouteEggPancake:
		if f.Flavor != "" {
			return f.Flavor
		}
		return "蛋餅"

	case routing.RouteSnack:
		if f.Flavor != "" {
			return f.Flavor
		}
		return "單點"
	}

	return "未知品項"
}

// ShortLabel 是「口味+米種」的短稱（例：醬燒里肌白米），雙品項確認用
func (f Frame) ShortLabel() string {
	if f.Type == routing.RouteRiceball {
		return f.Flavor + f.Rice
	}
	return f.Label()
}

// Qty 回傳數量，未填視為 1
func (f Frame) Qty() int {
	if f.Quantity <= 0 {
		return 1
	}
	return f.Quantity
}
