package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/luccabranco/wildspire/internal/battle"
	"github.com/luccabranco/wildspire/internal/constants"
)

// ListSpecies returns all available species templates.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	species, err := h.repo.GetSpecies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSpecies})
		return
	}
	c.JSON(http.StatusOK, species)
}

// ListAbilities returns the definitions for the requested ability keys, or
// every definition known to the catalog when no keys are given.
func (h *BattleHandler) ListAbilities(c *gin.Context) {
	keysParam := c.Query("keys")
	if keysParam == "" {
		c.JSON(http.StatusOK, h.cat.Abilities())
		return
	}
	out := make([]*battle.AbilityDefinition, 0)
	for _, k := range strings.Split(keysParam, ",") {
		if def, ok := h.cat.Ability(strings.TrimSpace(k)); ok {
			out = append(out, def)
		}
	}
	c.JSON(http.StatusOK, out)
}

// ListElements returns the element names plus the effectiveness table so
// clients can render matchup hints.
func (h *BattleHandler) ListElements(c *gin.Context) {
	type pair struct {
		Attacker   battle.Element `json:"attacker"`
		Defender   battle.Element `json:"defender"`
		Multiplier float64        `json:"multiplier"`
	}
	pairs := make([]pair, 0)
	for _, atk := range battle.Elements {
		for _, def := range battle.Elements {
			if m := h.cat.Effectiveness(atk, def); m != 1.0 {
				pairs = append(pairs, pair{Attacker: atk, Defender: def, Multiplier: m})
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"elements": battle.Elements, "matchups": pairs})
}

// ListPublicBattles returns public battles waiting for tamers or in progress.
func (h *BattleHandler) ListPublicBattles(c *gin.Context) {
	battles, err := h.repo.GetPublicBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out, err := MarshalForContext(c, battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top tamers by wins (desc), top 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	users, err := h.repo.GetTopTamers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns a battle looked up by its join code, with rosters and
// ability slots preloaded.
func (h *BattleHandler) GetBattle(c *gin.Context) {
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
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetTamerStats returns aggregated stats for the session tamer (or an
// explicit ?email= when provided).
func (h *BattleHandler) GetTamerStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = sessionEmail(c)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	u, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, u)
}

var tamerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

// UpdateTamerProfile updates the authenticated tamer's display name.
func (h *BattleHandler) UpdateTamerProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	trimmed := strings.TrimSpace(body.Name)
	if !tamerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Invalid tamer name"})
		return
	}

	u, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	u.TamerName = trimmed
	if err := h.repo.SaveUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// GetRoster returns the session tamer's persistent collection.
func (h *BattleHandler) GetRoster(c *gin.Context) {
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	rows, err := h.repo.GetRoster(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, rows)
}
