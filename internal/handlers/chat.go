package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"ROBOTICS-BOOK_BACK-END/internal/config"
	"ROBOTICS-BOOK_BACK-END/internal/dto"
	"ROBOTICS-BOOK_BACK-END/internal/utils"
)

// ChatHandler proxies reader questions to the book's chatbot backend.
// The endpoint is resolved once from config at startup.
type ChatHandler struct {
	endpoint string
	client   *http.Client
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(cfg *config.ChatbotConfig) *ChatHandler {
	return &ChatHandler{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Chat forwards a question to the chatbot API and relays the answer
// @Summary Ask the book chatbot
// @Description Forward a question to the retrieval-augmented chatbot backend
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} map[string]any "Chatbot answer"
// @Failure 400 {object} dto.ErrorResponse "Missing message"
// @Failure 502 {object} dto.ErrorResponse "Chatbot backend unavailable"
// @Router /api/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Message is required")
		return
	}

	body, err := json.Marshal(req)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Something went wrong")
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.endpoint+"/chat", bytes.NewReader(body))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error", "Something went wrong")
		return
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(upstream)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadGateway, "Bad Gateway", "Chatbot backend unavailable")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}
