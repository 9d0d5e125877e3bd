// internal/handlers/admin.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradecraft/backend/internal/models"
	"github.com/tradecraft/backend/internal/services"
	"github.com/tradecraft/backend/internal/utils"
)

// AdminHandler groups the back-office endpoints: catalog CRUD, stock
// adjustments, order management, user management and asset uploads.
type AdminHandler struct {
	productService *services.ProductService
	orderService   *services.OrderService
	userService    *services.UserService
	storageService *services.StorageService
}

func NewAdminHandler(
	productService *services.ProductService,
	orderService *services.OrderService,
	userService *services.UserService,
	storageService *services.StorageService,
) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		orderService:   orderService,
		userService:    userService,
		storageService: storageService,
	}
}

// Products

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

func (h *AdminHandler) GetProduct(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	// Admin view keeps all locales and currencies.
	product, err := h.productService.GetProduct(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "product deleted"})
}

func (h *AdminHandler) AdjustStock(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.AdjustStock(id, req.Delta)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *AdminHandler) SetProductStatus(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Status models.ProductStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.SetStatus(id, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *AdminHandler) GetLowStockProducts(c *gin.Context) {
	threshold := 10
	if raw := c.Query("threshold"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			threshold = value
		}
	}

	products, err := h.productService.GetLowStockProducts(threshold)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// Orders

func (h *AdminHandler) ListOrders(c *gin.Context) {
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

	orders, total, err := h.orderService.ListOrders(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := h.orderService.GetOrderAdmin(orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *AdminHandler) MarkOrderPaid(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.MarkAsPaid(orderID, req.TransactionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *AdminHandler) MarkOrderShipped(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		TrackingNumber string `json:"tracking_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.MarkAsShipped(orderID, req.TrackingNumber)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *AdminHandler) MarkOrderDelivered(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := h.orderService.MarkAsDelivered(orderID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// OverrideOrderStatus sets the status directly, without the guarded
// transitions and without restocking.
func (h *AdminHandler) OverrideOrderStatus(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *AdminHandler) GetOrderStats(c *gin.Context) {
	stats, err := h.orderService.GetOrderStats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// Users

func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.UpdateUserStatus(userID, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// Uploads

func (h *AdminHandler) UploadProductImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "File is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.ProductImageOptions())
	if err != nil {
		utils.BadRequestResponse(c, "Upload failed", err.Error())
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *AdminHandler) GetAssetDownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "key is required", nil)
		return
	}

	url, err := h.storageService.GeneratePresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url, "expires_in": int((15 * time.Minute).Seconds())})
}

