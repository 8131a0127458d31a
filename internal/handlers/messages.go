package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetworks/internal/database"
	"fleetworks/internal/models"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

func SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "recipient_id and body are required")
		return
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		fail(c, http.StatusBadRequest, "body is required")
		return
	}

	var recipient models.User
	if err := database.DB.First(&recipient, req.RecipientID).Error; err != nil {
		fail(c, http.StatusNotFound, "recipient not found")
		return
	}

	identity, _ := currentIdentity(c)

	msg := models.Message{
		SenderID:    identity.UserID,
		RecipientID: recipient.ID,
		Body:        body,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		failInternal(c, "message_send", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func ListMessages(c *gin.Context) {
	identity, _ := currentIdentity(c)

	dbq := database.DB.Where("recipient_id = ?", identity.UserID).Order("created_at desc")
	if c.Query("unread") == "true" {
		dbq = dbq.Where("read_at IS NULL")
	}

	var messages []models.Message
	if err := dbq.Find(&messages).Error; err != nil {
		failInternal(c, "message_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func MarkMessageRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid message ID")
		return
	}

	var msg models.Message
	if err := database.DB.First(&msg, id).Error; err != nil {
		fail(c, http.StatusNotFound, "message not found")
		return
	}

	identity, _ := currentIdentity(c)
	if msg.RecipientID != identity.UserID {
		fail(c, http.StatusForbidden, "only the recipient can mark a message read")
		return
	}

	if msg.ReadAt == nil {
		now := time.Now()
		msg.ReadAt = &now
		if err := database.DB.Save(&msg).Error; err != nil {
			failInternal(c, "message_read", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
