// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tradecraft/backend/internal/services"
	"github.com/tradecraft/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	summary, err := h.cartService.GetUserCart(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.cartService.AddToCart(userID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.cartService.UpdateQuantity(userID, itemID, req.Quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.cartService.RemoveFromCart(userID, itemID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "item removed"})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.cartService.ClearCart(userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "cart cleared"})
}
