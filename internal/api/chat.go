package api

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/JaimeStill/neurocore/internal/llm"
	"github.com/JaimeStill/neurocore/internal/supervisor"
	"github.com/JaimeStill/neurocore/internal/threads"
	"github.com/JaimeStill/neurocore/internal/tools"
	"github.com/JaimeStill/neurocore/pkg/handlers"
	"github.com/JaimeStill/neurocore/pkg/middleware"
	"github.com/JaimeStill/neurocore/pkg/routes"
)

const maxChatBody = 64 << 10

var ErrEmptyMessage = errors.New("message is required")

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`
}

// ChatResponse is the reply to a chat request.
type ChatResponse struct {
	ThreadID string `json:"thread_id"`
	Agent    string `json:"agent"`
	Reply    string `json:"reply"`
}

// ChatHandler runs chat turns through the supervisor and persists the thread.
type ChatHandler struct {
	sup     *supervisor.Supervisor
	threads threads.System
	logger  *slog.Logger
}

func NewChatHandler(sup *supervisor.Supervisor, ths threads.System, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		sup:     sup,
		threads: ths,
		logger:  logger.With("handler", "chat"),
	}
}

// Routes returns the chat endpoint route group.
func (h *ChatHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/chat",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Chat},
		},
	}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, tools.ErrMissingIdentity)
		return
	}

	req, err := handlers.DecodeJSON[ChatRequest](w, r, maxChatBody)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyMessage)
		return
	}

	thread := &threads.Thread{ID: threads.NewID(), OwnerID: owner}
	if req.ThreadID != "" {
		thread, err = h.threads.Find(r.Context(), owner, req.ThreadID)
		if err != nil {
			handlers.RespondError(w, h.logger, threads.MapHTTPStatus(err), err)
			return
		}
	}

	transcript := append(slices.Clone(thread.Messages), llm.UserMessage(message))

	ctx := tools.WithCaller(r.Context(), tools.Caller{UserID: owner})
	result, err := h.sup.Run(ctx, transcript)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	thread.Agent = result.Agent
	thread.Messages = append(transcript, llm.AssistantMessage(result.Reply))

	if _, err := h.threads.Save(r.Context(), thread); err != nil {
		handlers.RespondError(w, h.logger, threads.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ChatResponse{
		ThreadID: thread.ID,
		Agent:    result.Agent,
		Reply:    result.Reply,
	})
}
