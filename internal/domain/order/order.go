package order

// PendingItem 是還在補槽的品項，缺槽永遠從 Frame 重新推導
type PendingItem struct {
	Frame Frame
}

// Missing 回傳尚缺的 slot，依追問順序
func (p *PendingItem) Missing() []string {
	return p.Frame.MissingSlots()
}

// Complete 判斷是否可以併入訂單
func (p *PendingItem) Complete() bool {
	return p.Frame.Complete()
}

// Order 是一筆訂單：已完成品項 + 依提及順序排隊的補槽品項。
// 只有對話狀態機可以改它。
type Order struct {
	items   []Frame
	pending []*PendingItem
}

// NewOrder 建立空訂單
func NewOrder() *Order {
	return &Order{}
}

// Items 回傳已完成品項（依加入順序）
func (o *Order) Items() []Frame {
	return o.items
}

// AddItem 直接加入一個已完成品項
func (o *Order) AddItem(f Frame) {
	o.items = append(o.items, f)
}

// Enqueue 把缺槽品項排進補槽佇列（依提及順序）
func (o *Order) Enqueue(f Frame) *PendingItem {
	p := &PendingItem{Frame: f}
	o.pending = append(o.pending, p)
	return p
}

// Pending 回傳補槽佇列
func (o *Order) Pending() []*PendingItem {
	return o.pending
}

// FirstIncomplete 回傳佇列中最早的未完成品項；補槽回答只套用到它
func (o *Order) FirstIncomplete() *PendingItem {
	for _, p := range o.pending {
		if !p.Complete() {
			return p
		}
	}
	return nil
}

// FoldComplete 把補齊的品項依佇列順序移入訂單，回傳移入的 frame
func (o *Order) FoldComplete() []Frame {
	var folded []Frame
	var remain []*PendingItem
	for _, p := range o.pending {
		if p.Complete() {
			o.items = append(o.items, p.Frame)
			folded = append(folded, p.Frame)
		} else {
			remain = append(remain, p)
		}
	}
	o.pending = remain
	return folded
}

// Remove 把指定品項移出補槽佇列（顧客取消時用）
func (o *Order) Remove(target *PendingItem) {
	var remain []*PendingItem
	for _, p := range o.pending {
		if p != target {
			remain = append(remain, p)
		}
	}
	o.pending = remain
}

// HasPending 判斷是否還有品項在補槽
func (o *Order) HasPending() bool {
	return len(o.pending) > 0
}

// Empty 判斷訂單是否完全沒有品項
func (o *Order) Empty() bool {
	return len(o.items) == 0 && len(o.pending) == 0
}

// ItemCount 回傳已完成品項的總數量（含 quantity）
func (o *Order) ItemCount() int {
	total := 0
	for _, f := range o.items {
		total += f.Qty()
	}
	return total
}
