package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vismay-farm/agri-market/internal/assistant"
	"github.com/vismay-farm/agri-market/internal/feedback"
)

// AssistantHandler serves the scripted equipment advisor.
type AssistantHandler struct{}

func NewAssistantHandler() *AssistantHandler { return &AssistantHandler{} }

// Intro handles GET /v1/assistant: the greeting plus the fixed
// recommendation list the UI shows before any chat happens.
func (h *AssistantHandler) Intro(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"greeting":        assistant.Greeting,
		"recommendations": assistant.Recommendations,
	})
}

type chatReq struct {
	Prompt string `json:"prompt"`
}

// Chat handles POST /v1/assistant/chat.
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return feedback.Validation(c, "invalid request body")
	}
	if req.Prompt == "" {
		return feedback.Validation(c, "prompt is required")
	}
	return c.JSON(http.StatusOK, echo.Map{"reply": assistant.Reply(req.Prompt)})
}
