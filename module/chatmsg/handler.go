package chatmsg

import (
	"net/http"

	"LandokProject/logger"
	chatmodel "LandokProject/module/chatmsg/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createReq struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// HandlerCreate handles POST /chat. Messages without an explicit receiver
// go to the admin; admin replies are born seen from the admin's side.
func HandlerCreate(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Sender == "" || req.Content == "" || req.Timestamp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender, content and timestamp are required"})
		return
	}

	receiver := req.Receiver
	if receiver == "" {
		receiver = chatmodel.AdminReceiver
	}
	doc := &chatmodel.ChatMessage{
		Sender:    req.Sender,
		Receiver:  receiver,
		Content:   req.Content,
		Timestamp: req.Timestamp,
		Seen:      receiver != chatmodel.AdminReceiver,
	}

	m := &chatmodel.ChatMessage{}
	if err := m.Insert(c.Request.Context(), doc); err != nil {
		logger.Errorf("[chat] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// HandlerListAll handles GET /chat, oldest first.
func HandlerListAll(c *gin.Context) {
	m := &chatmodel.ChatMessage{}
	out, err := m.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("[chat] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandlerInbox handles GET /chat/inbox/all: one row per sender with that
// sender's latest message, newest thread first.
func HandlerInbox(c *gin.Context) {
	m := &chatmodel.ChatMessage{}
	out, err := m.Inbox(c.Request.Context())
	if err != nil {
		logger.Errorf("[chat] inbox failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandlerThread handles GET /chat/thread/:sender. Opening a thread marks
// that sender's messages seen before returning the conversation.
func HandlerThread(c *gin.Context) {
	sender := c.Param("sender")
	ctx := c.Request.Context()

	m := &chatmodel.ChatMessage{}
	if _, err := m.MarkSeen(ctx, sender); err != nil {
		logger.Warnf("[chat] mark seen failed sender=%s: %v", sender, err)
	}
	out, err := m.Conversation(ctx, sender)
	if err != nil {
		logger.Errorf("[chat] thread failed sender=%s: %v", sender, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandlerMarkSeen handles PATCH /chat/seen/:sender.
func HandlerMarkSeen(c *gin.Context) {
	sender := c.Param("sender")
	m := &chatmodel.ChatMessage{}
	n, err := m.MarkSeen(c.Request.Context(), sender)
	if err != nil {
		logger.Errorf("[chat] mark seen failed sender=%s: %v", sender, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// HandlerDelete handles DELETE /chat/message/:id.
func HandlerDelete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	m := &chatmodel.ChatMessage{}
	deleted, err := m.DeleteByID(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("[chat] delete failed id=%s: %v", id.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandlerDeleteThread handles DELETE /chat/thread/:sender, wiping both
// directions of the conversation.
func HandlerDeleteThread(c *gin.Context) {
	sender := c.Param("sender")
	m := &chatmodel.ChatMessage{}
	n, err := m.DeleteThread(c.Request.Context(), sender)
	if err != nil {
		logger.Errorf("[chat] delete thread failed sender=%s: %v", sender, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No messages for sender"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// RegisterRoutes mounts the chat history surface under the given group.
// Static prefixes (thread, seen, message) keep wildcard routes from
// colliding in the router tree.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", HandlerCreate)
	rg.GET("", HandlerListAll)
	rg.GET("/inbox/all", HandlerInbox)
	rg.GET("/thread/:sender", HandlerThread)
	rg.PATCH("/seen/:sender", HandlerMarkSeen)
	rg.DELETE("/message/:id", HandlerDelete)
	rg.DELETE("/thread/:sender", HandlerDeleteThread)
}
