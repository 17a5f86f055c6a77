package session

import (
	"errors"
	"time"

	"github.com/yuanfantuan/voiceorder/internal/domain/order"
	"github.com/yuanfantuan/voiceorder/internal/domain/routing"
)

// ErrSessionNotFound 表示找不到會話
var ErrSessionNotFound = errors.New("session not found")

// Session 是一個點餐會話：一張訂單、上一輪的路由脈絡、輪次計數。
// 同一個 session 的回合由外層序列化處理，這裡不另外上鎖。
type Session struct {
	id        string
	ord       *order.Order
	lastRoute routing.Route // 上一輪路由結果，補槽接話用
	turns     int
	createdAt time.Time
	updatedAt time.Time
}

// NewSession 建立新會話
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		ord:       order.NewOrder(),
		lastRoute: routing.RouteUnknown,
		createdAt: now,
		updatedAt: now,
	}
}

// ID 回傳會話 ID
func (s *Session) ID() string {
	return s.id
}

// Order 回傳會話持有的訂單
func (s *Session) Order() *order.Order {
	return s.ord
}

// LastRoute 回傳上一輪的路由結果
func (s *Session) LastRoute() routing.Route {
	return s.lastRoute
}

// SetLastRoute 記錄本輪路由結果
func (s *Session) SetLastRoute(r routing.Route) {
	s.lastRoute = r
	s.updatedAt = time.Now()
}

// Turns 回傳已處理的輪次
func (s *Session) Turns() int {
	return s.turns
}

// NextTurn 輪次 +1
func (s *Session) NextTurn() {
	s.turns++
	s.updatedAt = time.Now()
}

// CreatedAt 回傳建立時間
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt 回傳最後更新時間
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// Snapshot 是持久化用的外部表示
type Snapshot struct {
	ID        string        `json:"id"`
	Items     []order.Frame `json:"items"`
	Pending   []order.Frame `json:"pending"`
	LastRoute string        `json:"last_route"`
	Turns     int           `json:"turns"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Snapshot 匯出會話狀態
func (s *Session) Snapshot() Snapshot {
	sn := Snapshot{
		ID:        s.id,
		Items:     append([]order.Frame(nil), s.ord.Items()...),
		LastRoute: s.lastRoute.String(),
		Turns:     s.turns,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	for _, p := range s.ord.Pending() {
		sn.Pending = append(sn.Pending, p.Frame)
	}
	return sn
}

// FromSnapshot 從持久化層還原會話（保留時間戳）
func FromSnapshot(sn Snapshot) *Session {
	ord := order.NewOrder()
	for _, f := range sn.Items {
		ord.AddItem(f)
	}
	for _, f := range sn.Pending {
		ord.Enqueue(f)
	}
	return &Session{
		id:        sn.ID,
		ord:       ord,
		lastRoute: routing.Route(sn.LastRoute),
		turns:     sn.Turns,
		createdAt: sn.CreatedAt,
		updatedAt: sn.UpdatedAt,
	}
}
