package food

import (
	"encoding/json"
	"net/http"

	"LandokProject/logger"
	foodmodel "LandokProject/module/food/model"
	"LandokProject/service/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createReq struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Available   *bool    `json:"available"`
	Stock       int      `json:"stock"`
}

// HandlerCreate handles POST /foods.
func HandlerCreate(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required."})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	doc := &foodmodel.Food{
		Name:        req.Name,
		Price:       *req.Price,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Available:   available,
		Stock:       req.Stock,
	}

	m := &foodmodel.Food{}
	if err := m.Insert(c.Request.Context(), doc); err != nil {
		logger.Errorf("[food] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	storage.InvalidateMenu(c.Request.Context())
	c.JSON(http.StatusCreated, doc)
}

// HandlerList handles GET /foods; the list is served through the Redis
// cache when available.
func HandlerList(c *gin.Context) {
	ctx := c.Request.Context()
	if raw, ok := storage.GetMenu(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
		return
	}

	m := &foodmodel.Food{}
	foods, err := m.List(ctx)
	if err != nil {
		logger.Errorf("[food] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if raw, err := json.Marshal(foods); err == nil {
		storage.SetMenu(ctx, raw)
	}
	c.JSON(http.StatusOK, foods)
}

// HandlerUpdate handles PUT /foods/:id; arbitrary subsets of the mutable
// fields may be sent, matching the admin UI.
func HandlerUpdate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid body"})
		return
	}

	fields := bson.M{}
	for _, k := range []string{"name", "description", "price", "image", "category", "available", "hidden", "stock"} {
		if v, ok := body[k]; ok {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}

	m := &foodmodel.Food{}
	updated, err := m.UpdateByID(c.Request.Context(), id, fields)
	if err != nil {
		logger.Errorf("[food] update failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	storage.InvalidateMenu(c.Request.Context())
	c.JSON(http.StatusOK, updated)
}

// HandlerDelete handles DELETE /foods/:id.
func HandlerDelete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	m := &foodmodel.Food{}
	if err := m.DeleteByID(c.Request.Context(), id); err != nil {
		logger.Errorf("[food] delete failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	storage.InvalidateMenu(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
}

type decrementReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

// HandlerDecrementStock handles PUT /foods/:id/decrement-stock, flooring
// the stock at zero.
func HandlerDecrementStock(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var req decrementReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
		return
	}

	m := &foodmodel.Food{}
	stock, err := m.DecrementStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	storage.InvalidateMenu(c.Request.Context())
	logger.Infof("[food] stock decremented id=%s by=%d now=%d", id.Hex(), req.Quantity, stock)
	c.JSON(http.StatusOK, gin.H{"stock": stock})
}

// RegisterRoutes mounts the food CRUD under the given group.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", HandlerCreate)
	rg.GET("", HandlerList)
	rg.PUT("/:id", HandlerUpdate)
	rg.DELETE("/:id", HandlerDelete)
	rg.PUT("/:id/decrement-stock", HandlerDecrementStock)
}
