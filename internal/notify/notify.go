// Package notify delivers fire-and-forget notifications as internal
// messages. Delivery failures are logged and dropped.
package notify

import (
	"log"

	"fleetworks/internal/database"
	"fleetworks/internal/models"
)

// system sender: notifications have no human author
const systemSenderID = 0

func Send(recipientID uint, body string) {
	if recipientID == 0 || body == "" {
		return
	}
	msg := models.Message{
		SenderID:    systemSenderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		log.Printf("failed to deliver notification to user %d: %v", recipientID, err)
	}
}
