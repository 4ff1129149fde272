package category

import (
	"net/http"

	"LandokProject/logger"
	catmodel "LandokProject/module/category/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandlerList handles GET /categories, ordered for display.
func HandlerList(c *gin.Context) {
	m := &catmodel.Category{}
	cats, err := m.List(c.Request.Context())
	if err != nil {
		logger.Errorf("[category] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

type createReq struct {
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
}

// HandlerCreate handles POST /categories.
func HandlerCreate(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required"})
		return
	}
	doc := &catmodel.Category{Name: req.Name, Order: req.Order}
	m := &catmodel.Category{}
	if err := m.Insert(c.Request.Context(), doc); err != nil {
		logger.Errorf("[category] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

type updateReq struct {
	Order int `json:"order"`
}

// HandlerUpdate handles PUT /categories/:id, reordering only.
func HandlerUpdate(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid body"})
		return
	}
	m := &catmodel.Category{}
	updated, err := m.UpdateOrder(c.Request.Context(), id, req.Order)
	if err != nil {
		logger.Errorf("[category] update failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandlerDelete handles DELETE /categories/:id.
func HandlerDelete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}
	m := &catmodel.Category{}
	if err := m.DeleteByID(c.Request.Context(), id); err != nil {
		logger.Errorf("[category] delete failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// RegisterRoutes mounts the category CRUD under the given group.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", HandlerList)
	rg.POST("", HandlerCreate)
	rg.PUT("/:id", HandlerUpdate)
	rg.DELETE("/:id", HandlerDelete)
}
