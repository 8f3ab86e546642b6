package api

import (
	"math/rand"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/constants"
	"github.com/luccabranco/wildspire/internal/logging"
	"github.com/luccabranco/wildspire/internal/service"
)

type CreateBattlePayload struct {
	TamerName   string               `json:"tamer_name"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Private     bool                 `json:"private"`
	VsBot       bool                 `json:"vs_bot"`
	Roster      []service.RosterPick `json:"roster"`
}

// CreateBattle creates a new battle with the caller as first tamer and
// returns its ID and join code. With vs_bot set a bot opponent with a
// randomly drafted roster is seated immediately.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	// Derive identity from session
	email := sessionEmail(c)
	if req.TamerName == "" {
		req.TamerName = sessionTamerName(c)
	}

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNameExceeds})
		return
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDescriptionExceeds})
		return
	}

	roster, err := service.BuildRoster(h.cat, req.Roster)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoster, constants.JSONKeyDetails: err.Error()})
		return
	}

	newBattle := battle.Battle{
		Name:        req.Name,
		Description: req.Description,
		Private:     req.Private,
		Status:      battle.StatusWaitingForTamers,
		JoinCode:    generateJoinCode(),
		Tamers: []battle.Tamer{
			{TamerUUID: uuid.NewString(), TamerName: req.TamerName, TamerEmail: email, Creatures: roster},
		},
		Message: "Battle created. Waiting for an opponent.",
	}

	if req.VsBot {
		botRoster, err := h.draftBotRoster(len(roster))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
			return
		}
		newBattle.Tamers = append(newBattle.Tamers, battle.Tamer{
			TamerUUID: uuid.NewString(),
			TamerName: "Wild Tamer",
			IsBot:     true,
			Creatures: botRoster,
		})
		newBattle.Private = true
		newBattle.Message = "Battle created against a bot. Ready to start."
	}

	_ = h.repo.UpsertUser(email, newBattle.Tamers[0].TamerUUID, req.TamerName)

	if err := h.repo.CreateBattle(&newBattle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle_id": newBattle.ID,
		"join_code": newBattle.JoinCode,
	})
}

// draftBotRoster samples size random species templates for a bot opponent.
func (h *BattleHandler) draftBotRoster(size int) ([]battle.Creature, error) {
	species, err := h.repo.GetSpecies()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 1
	}
	picks := make([]service.RosterPick, 0, size)
	perm := rand.Perm(len(species))
	for _, idx := range perm {
		if len(picks) == size {
			break
		}
		picks = append(picks, service.RosterPick{SpeciesName: species[idx].Name})
	}
	return service.BuildRoster(h.cat, picks)
}

type JoinBattlePayload struct {
	JoinCode  string               `json:"join_code"`
	TamerName string               `json:"tamer_name"`
	Roster    []service.RosterPick `json:"roster"`
}

// JoinBattle allows a second tamer to join a battle via join code.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if req.TamerName == "" {
		req.TamerName = sessionTamerName(c)
	}

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	if len(b.Tamers) >= 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		return
	}

	roster, err := service.BuildRoster(h.cat, req.Roster)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoster, constants.JSONKeyDetails: err.Error()})
		return
	}

	newTamer := battle.Tamer{TamerUUID: uuid.NewString(), TamerName: req.TamerName, TamerEmail: email, Creatures: roster}
	b.Tamers = append(b.Tamers, newTamer)
	b.Status = battle.StatusWaitingForTamers
	b.Message = "Second tamer joined. Waiting for the battle to start."

	_ = h.repo.UpsertUser(email, newTamer.TamerUUID, req.TamerName)

	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"battle_id": b.ID,
		"join_code": b.JoinCode,
		"message":   "Successfully joined battle",
	})
}

// StartBattle activates lead creatures, seeds the battle RNG and opens the
// first planning phase.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	short, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	b, err := h.repo.GetBattleByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	if len(b.Tamers) < 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughTamers})
		return
	}
	if b.Status != battle.StatusWaitingForTamers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleAlreadyStartingOrStarted})
		return
	}
	for i := range b.Tamers {
		if len(b.Tamers[i].Creatures) == 0 {
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBothTamersMustPickRosters})
			return
		}
	}

	if err := service.StartBattle(h.repo, b, h.actionTimeout); err != nil {
		logging.Error("failed to start battle", err, logging.Fields{constants.LogFieldBattleID: b.ID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}

	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle started", "round": b.RoundCount})
}

// LeaveBattle removes a tamer from a waiting room.
func (h *BattleHandler) LeaveBattle(c *gin.Context) {
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
	if b.Status != battle.StatusWaitingForTamers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterBattleStarted})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	var leaving *battle.Tamer
	for i := range b.Tamers {
		if b.Tamers[i].TamerEmail == email {
			leaving = &b.Tamers[i]
			break
		}
	}
	if leaving == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTamerNotInThisBattle})
		return
	}
	if err := h.repo.RemoveTamerByUUID(b.ID, leaving.TamerUUID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemoveTamer})
		return
	}
	// Reflect removal in the in-memory model so the update below does not
	// re-attach the removed tamer via FullSaveAssociations.
	filtered := make([]battle.Tamer, 0, len(b.Tamers))
	for i := range b.Tamers {
		if b.Tamers[i].TamerEmail != email {
			filtered = append(filtered, b.Tamers[i])
		}
	}
	b.Tamers = filtered
	b.Message = "A tamer left. Waiting for a new participant."
	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemoveTamer})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Tamer removed"})
}

// EndBattle lets a participant resign; the match finishes for both sides.
// Resignations only increment the quitter's resignation stat and do not
// award a win to anyone.
func (h *BattleHandler) EndBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	short, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	b, err := h.repo.GetBattleByID(short.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var loser *battle.Tamer
	for i := range b.Tamers {
		if b.Tamers[i].TamerEmail == email {
			loser = &b.Tamers[i]
			break
		}
	}
	if loser == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTamerNotInThisBattle})
		return
	}

	b.Status = battle.StatusFinished
	b.Phase = battle.PhaseResolved
	b.Winner = ""
	b.Outcome = battle.OutcomeDraw
	b.Message = "Tamer resigned: " + loser.TamerName
	b.ActionDeadline = time.Time{}

	if !b.StatsCounted {
		_ = h.repo.UpdateStatsOnBattleEnd(b, loser.TamerEmail)
		_ = h.repo.WriteBackRoster(b)
		b.StatsCounted = true
	}
	if err := h.repo.UpdateBattle(b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEndBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle ended"})
}
