package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/constants"
	"github.com/luccabranco/wildspire/internal/service"
)

type ActionRequest struct {
	ActionType string `json:"action_type"`
	AbilityKey string `json:"ability_key"`
	SwapSlot   int    `json:"swap_slot"`
}

// SubmitAction stores a tamer's chosen action for the current round. When
// the last pending human submits, the round resolves in the same request and
// the response carries the event log.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	// Path param contains the join code. Resolve to internal ID.
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	actionType := battle.PendingActionType(req.ActionType)
	b2, report, err := service.SubmitAction(h.repo, h.cat, b.ID, email, actionType, req.AbilityKey, req.SwapSlot, h.actionTimeout)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if report != nil {
		out, mErr := MarshalForContext(c, report)
		if mErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
			return
		}
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Round resolved", "round": b2.RoundCount, "report": out})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Action stored. Waiting for opponent."})
}

// AdvanceRound forces resolution of the current round. Bot-only battles use
// it to step forward; for human battles it fails until everyone submitted.
func (h *BattleHandler) AdvanceRound(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	report, err := service.AdvanceRound(h.repo, h.cat, b.ID, h.actionTimeout)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	out, mErr := MarshalForContext(c, report)
	if mErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func (h *BattleHandler) writeServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrBattleNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case service.ErrBattleNotInProgress:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
	case service.ErrActionsLocked:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionsLockedResolvingRound})
	case service.ErrTamerNotInBattle:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTamerNotInBattle})
	case service.ErrNoActiveCreature:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoActiveCreature})
	case service.ErrUnknownAbility, service.ErrBadSwapSlot:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	case service.ErrNoActionsSubmitted:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoActionsSubmitted})
	case service.ErrWaitingForActions:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
	}
}
