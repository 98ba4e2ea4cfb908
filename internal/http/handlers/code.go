package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mikayuko/projectbingsu/internal/http/response"
	"github.com/Mikayuko/projectbingsu/internal/platform/ctxutil"
	"github.com/Mikayuko/projectbingsu/internal/repos"
	"github.com/Mikayuko/projectbingsu/internal/services"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type CodeHandler struct {
	codeService services.MenuCodeService
}

func NewCodeHandler(codeService services.MenuCodeService) *CodeHandler {
	return &CodeHandler{codeService: codeService}
}

func (ch *CodeHandler) Generate(c *gin.Context) {
	var req struct {
		CupSize string `json:"cup_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cupSize, ok := types.ParseCupSize(req.CupSize)
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "invalid_cup_size", fmt.Errorf("cup size must be S, M or L"))
		return
	}
	createdBy := uuid.Nil
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		createdBy = rd.UserID
	}
	code, err := ch.codeService.Generate(c.Request.Context(), cupSize, createdBy)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, code)
}

func (ch *CodeHandler) Validate(c *gin.Context) {
	validation, err := ch.codeService.Validate(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, validation)
}

func (ch *CodeHandler) List(c *gin.Context) {
	filter := repos.MenuCodeFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("used"); raw != "" {
		used, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_used_filter", err)
			return
		}
		filter.Used = &used
	}
	if raw := c.Query("expired"); raw != "" {
		expired, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_expired_filter", err)
			return
		}
		filter.Expired = &expired
	}
	codes, err := ch.codeService.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"codes": codes})
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
