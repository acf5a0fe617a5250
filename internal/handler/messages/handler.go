package messages

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	insightService "github.com/zainjo/insight-dashboard/backend/internal/service/insight"
	"github.com/zainjo/insight-dashboard/backend/pkg/utils"
)

// Handler 会话消息查询的HTTP处理器
type Handler struct {
	insightSvc *insightService.Service
	log        zerolog.Logger
}

// New 创建消息处理器
func New(insightSvc *insightService.Service, log zerolog.Logger) *Handler {
	return &Handler{
		insightSvc: insightSvc,
		log:        log.With().Str("component", "messages-handler").Logger(),
	}
}

// RegisterRoutes 注册消息相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/messages/zainjo", h.handleGetConversation)
}

// handleGetConversation 根据会话ID或SenderID返回整段会话
func (h *Handler) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := insightService.Request{
		ConversationID: query.Get("id"),
		SenderID:       query.Get("senderID"),
	}

	view, err := h.insightSvc.BuildConversation(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, insightService.ErrIdentifierRequired),
			errors.Is(err, insightService.ErrUnresolvedID):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, insightService.ErrNoMessages):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		default:
			h.log.Error().Err(err).
				Str("id", req.ConversationID).
				Str("senderID", req.SenderID).
				Msg("conversation lookup failed")
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, view)
}
