// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/services"
	"github.com/tradecraft/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder turns the caller's cart into an order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.CreateOrderFromCart(userID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	params := services.OrderSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if status := c.Query("status"); status != "" {
		orderStatus := models.OrderStatus(status)
		if !orderStatus.Valid() {
			utils.BadRequestResponse(c, "Invalid order status", nil)
			return
		}
		params.Status = &orderStatus
	}

	orders, total, err := h.orderService.ListUserOrders(userID, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := h.orderService.GetOrder(orderID, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	orderNumber := c.Param("number")
	if orderNumber == "" {
		utils.BadRequestResponse(c, "Order number is required", nil)
		return
	}

	order, err := h.orderService.GetOrderByNumber(orderNumber, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// CancelOrder cancels the caller's own order and restocks its items.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := h.orderService.CancelOrder(orderID, userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}
