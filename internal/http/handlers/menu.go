package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mikayuko/projectbingsu/internal/http/response"
	"github.com/Mikayuko/projectbingsu/internal/services"
	"github.com/Mikayuko/projectbingsu/internal/types"
)

type MenuHandler struct {
	menuService services.MenuService
}

func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// ListPublic returns only items a customer can actually order.
func (mh *MenuHandler) ListPublic(c *gin.Context) {
	items, err := mh.menuService.ListPublic(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

func (mh *MenuHandler) ListAll(c *gin.Context) {
	var kind *types.MenuItemKind
	if raw := c.Query("kind"); raw != "" {
		parsed, ok := types.ParseMenuItemKind(raw)
		if !ok {
			response.RespondError(c, http.StatusBadRequest, "invalid_kind_filter", fmt.Errorf("kind must be flavor or topping"))
			return
		}
		kind = &parsed
	}
	items, err := mh.menuService.ListAll(c.Request.Context(), kind)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

func (mh *MenuHandler) Create(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := mh.menuService.CreateItem(c.Request.Context(), req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, item)
}

func (mh *MenuHandler) Update(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := mh.menuService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, item)
}

func (mh *MenuHandler) Delete(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_item_id", err)
		return
	}
	if err := mh.menuService.DeleteItem(c.Request.Context(), itemID); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
