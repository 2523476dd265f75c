package handler

import (
	"credit-arcade/internal/adapter/http/dto"
	"credit-arcade/internal/adapter/http/middleware"
	"credit-arcade/internal/core/ports"
	"credit-arcade/pkg/apperror"
	"credit-arcade/pkg/response"

	"github.com/gin-gonic/gin"
)

// MinesHandler exposes the Mines game engine.
type MinesHandler struct {
	minesSvc ports.MinesService
}

// NewMinesHandler creates a new MinesHandler.
func NewMinesHandler(minesSvc ports.MinesService) *MinesHandler {
	return &MinesHandler{minesSvc: minesSvc}
}

// Current handles GET /api/v1/mines.
func (h *MinesHandler) Current(c *gin.Context) {
	game, err := h.minesSvc.Current(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewGameView(game))
}

// Start handles POST /api/v1/mines/start.
func (h *MinesHandler) Start(c *gin.Context) {
	var req dto.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.minesSvc.Start(c.Request.Context(), middleware.Identity(c), string(req.Bet), *req.MineCount)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, result.Game.ID.String())
	response.Created(c, dto.NewStartGameResponse(result))
}

// Reveal handles POST /api/v1/mines/reveal.
func (h *MinesHandler) Reveal(c *gin.Context) {
	var req dto.RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.minesSvc.Reveal(c.Request.Context(), middleware.Identity(c), *req.Tile)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, result.Game.ID.String())
	response.OK(c, dto.NewRevealResponse(result))
}

// Cashout handles POST /api/v1/mines/cashout.
func (h *MinesHandler) Cashout(c *gin.Context) {
	result, err := h.minesSvc.Cashout(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, result.Game.ID.String())
	response.OK(c, dto.NewCashoutResponse(result))
}

// Reset handles POST /api/v1/mines/reset.
func (h *MinesHandler) Reset(c *gin.Context) {
	if err := h.minesSvc.Reset(c.Request.Context(), middleware.Identity(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"reset": true})
}
