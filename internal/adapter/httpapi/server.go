package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yuanfantuan/voiceorder/internal/application/dialogue"
	"github.com/yuanfantuan/voiceorder/internal/domain/session"
)

// messageRequest 是一輪對話的請求
type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

// messageResponse 是一輪對話的回覆
type messageResponse struct {
	Reply     string `json:"reply"`
	Route     string `json:"route"`
	SessionID string `json:"session_id"`
	Done      bool   `json:"done"`
}

// orderItem 是訂單摘要的一列
type orderItem struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	Pending  bool   `json:"pending"`
}

// Server 是點餐引擎的 HTTP 介面，只做編解碼與驗證，不含點餐邏輯
type Server struct {
	manager  *dialogue.Manager
	sessions dialogue.SessionRepository
	apiKey   string
	engine   *gin.Engine
}

// NewServer 建立 HTTP 介面；apiKey 為空字串時不驗證
func NewServer(manager *dialogue.Manager, sessions dialogue.SessionRepository, apiKey string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		manager:  manager,
		sessions: sessions,
		apiKey:   apiKey,
		engine:   gin.New(),
	}
	s.routes()
	return s
}

// Handler 回傳 http.Handler，給 http.Server 與測試用
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Content-Type", "X-API-Key"},
	}))

	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api/v1", s.requireAPIKey)
	api.POST("/sessions/:id/messages", s.handleMessage)
	api.GET("/sessions/:id/order", s.handleOrder)
	api.DELETE("/sessions/:id", s.handleDelete)
}

// requireAPIKey 驗證 X-API-Key；未設定金鑰時放行
func (s *Server) requireAPIKey(c *gin.Context) {
	if s.apiKey == "" {
		return
	}
	if c.GetHeader("X-API-Key") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	reply, err := s.manager.Process(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		log.Printf("process message failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, messageResponse{
		Reply:     reply.Text,
		Route:     reply.Route.String(),
		SessionID: reply.SessionID,
		Done:      reply.Done,
	})
}

func (s *Server) handleOrder(c *gin.Context) {
	sess, err := s.sessions.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		log.Printf("load session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	items := make([]orderItem, 0)
	for _, f := range sess.Order().Items() {
		items = append(items, orderItem{Label: f.Label(), Quantity: f.Qty()})
	}
	for _, p := range sess.Order().Pending() {
		items = append(items, orderItem{Label: p.Frame.Label(), Quantity: p.Frame.Qty(), Pending: true})
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID(),
		"items":      items,
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("delete session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListenAndServe 啟動 HTTP 服務，ctx 取消時優雅關閉
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
