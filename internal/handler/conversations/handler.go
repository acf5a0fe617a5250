package conversations

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	insightService "github.com/zainjo/insight-dashboard/backend/internal/service/insight"
	"github.com/zainjo/insight-dashboard/backend/pkg/utils"
)

// Handler 会话列表与分析指标的HTTP处理器
type Handler struct {
	insightSvc *insightService.Service
	log        zerolog.Logger
}

// New 创建会话列表处理器
func New(insightSvc *insightService.Service, log zerolog.Logger) *Handler {
	return &Handler{
		insightSvc: insightSvc,
		log:        log.With().Str("component", "conversations-handler").Logger(),
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/conversations/zainjo", h.handleList)
	r.Get("/analytics/zainjo", h.handleAnalytics)
}

// handleList 返回导航侧栏使用的会话摘要列表
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	summaries := h.insightSvc.ListConversations(limit, offset)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": summaries,
		"total":         h.insightSvc.TotalConversations(),
		"offset":        offset,
	})
}

// handleAnalytics 返回单个Sender的分析指标
func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	senderID := r.URL.Query().Get("senderID")
	if senderID == "" {
		utils.RespondError(w, http.StatusBadRequest, "senderID query parameter is required")
		return
	}

	entry, ok := h.insightSvc.AnalyticsForSender(senderID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "no analytics found for sender")
		return
	}

	utils.RespondJSON(w, http.StatusOK, entry)
}

// queryInt 解析可选的整数查询参数，非法输入直接响应400
func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		utils.RespondError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return value, true
}
