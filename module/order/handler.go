package order

import (
	"net/http"

	"LandokProject/logger"
	ordermodel "LandokProject/module/order/model"
	"LandokProject/module/order/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler maps the order HTTP surface onto the submission orchestrator
// and the order storage.
type Handler struct {
	svc        *service.OrderService
	adminToken string
}

func NewHandler(svc *service.OrderService, adminToken string) *Handler {
	return &Handler{svc: svc, adminToken: adminToken}
}

// HandlerCreate handles POST /orders.
func (h *Handler) HandlerCreate(c *gin.Context) {
	var req service.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields."})
		return
	}

	order, err := h.svc.PlaceOrder(c.Request.Context(), c.ClientIP(), &req)
	if err != nil {
		var unavailable *service.ItemUnavailableError
		switch {
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many orders from this IP. Please try again later.",
			})
		case errors.Is(err, service.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items in order."})
		case errors.As(err, &unavailable):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Food item not available: " + unavailable.FoodID,
			})
		default:
			logger.Errorf("[order] create failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// HandlerBlockedIPs handles GET /orders/blocked-ips: an admin diagnostic
// listing addresses currently over the limit, timestamps in epoch millis.
func (h *Handler) HandlerBlockedIPs(c *gin.Context) {
	if c.Query("token") != h.adminToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	blocked := make(map[string][]int64)
	for addr, times := range h.svc.Blocked() {
		ms := make([]int64, 0, len(times))
		for _, t := range times {
			ms = append(ms, t.UnixMilli())
		}
		blocked[addr] = ms
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocked})
}

// HandlerList handles GET /orders, newest first.
func (h *Handler) HandlerList(c *gin.Context) {
	m := &ordermodel.Order{}
	out, err := m.List(c.Request.Context())
	if err != nil {
		logger.Errorf("[order] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while fetching orders."})
		return
	}
	c.JSON(http.StatusOK, out)
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

// HandlerUpdateStatus handles PUT /orders/:id/status.
func (h *Handler) HandlerUpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	switch req.Status {
	case ordermodel.StatusPending, ordermodel.StatusPreparing,
		ordermodel.StatusDelivered, ordermodel.StatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	m := &ordermodel.Order{}
	updated, err := m.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		logger.Errorf("[order] status update failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status."})
		return
	}
	logger.Infof("[order] id=%s status=%s", id.Hex(), req.Status)
	c.JSON(http.StatusOK, updated)
}

// HandlerDelete handles DELETE /orders/:id.
func (h *Handler) HandlerDelete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	m := &ordermodel.Order{}
	if err := m.DeleteByID(c.Request.Context(), id); err != nil {
		logger.Errorf("[order] delete failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRoutes mounts the order surface under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/blocked-ips", h.HandlerBlockedIPs)
	rg.POST("", h.HandlerCreate)
	rg.GET("", h.HandlerList)
	rg.PUT("/:id/status", h.HandlerUpdateStatus)
	rg.DELETE("/:id", h.HandlerDelete)
}
