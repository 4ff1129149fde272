package admin

import (
	"crypto/subtle"
	"net/http"

	"LandokProject/logger"

	"github.com/gin-gonic/gin"
)

// Handler answers the admin login check. There is no session or token
// issuance; the client keeps the result.
type Handler struct {
	username string
	password string
}

func NewHandler(username, password string) *Handler {
	return &Handler{username: username, password: password}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandlerLogin handles POST /admin/login.
func (h *Handler) HandlerLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !userOK || !passOK {
		logger.Warnf("[admin] failed login user=%q ip=%s", req.Username, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRoutes mounts the admin surface under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.HandlerLogin)
}
