package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetworks/internal/database"
	"fleetworks/internal/models"

	"github.com/gin-gonic/gin"
)

const minTaskCommentLen = 5

type taskCommentRequest struct {
	Body string `json:"body"`
}

func CreateTaskComment(c *gin.Context) {
	task, ok := loadTask(c)
	if !ok {
		return
	}

	var req taskCommentRequest
	_ = c.ShouldBindJSON(&req)

	body := strings.TrimSpace(req.Body)
	if len(body) < minTaskCommentLen {
		fail(c, http.StatusBadRequest, "comment must be at least 5 characters")
		return
	}

	identity, _ := currentIdentity(c)

	comment := models.TaskComment{
		TaskID:   task.ID,
		AuthorID: identity.UserID,
		Body:     body,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		failInternal(c, "task_comment_create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

func UpdateTaskComment(c *gin.Context) {
	comment, ok := loadOwnComment(c)
	if !ok {
		return
	}

	var req taskCommentRequest
	_ = c.ShouldBindJSON(&req)

	body := strings.TrimSpace(req.Body)
	if len(body) < minTaskCommentLen {
		fail(c, http.StatusBadRequest, "comment must be at least 5 characters")
		return
	}

	comment.Body = body
	if err := database.DB.Save(&comment).Error; err != nil {
		failInternal(c, "task_comment_update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func DeleteTaskComment(c *gin.Context) {
	comment, ok := loadOwnComment(c)
	if !ok {
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		failInternal(c, "task_comment_delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// loadOwnComment fetches the comment and enforces that only its author may
// touch it. Status history events have no such route: they are append-only.
func loadOwnComment(c *gin.Context) (models.TaskComment, bool) {
	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil || commentID <= 0 {
		fail(c, http.StatusBadRequest, "invalid comment ID")
		return models.TaskComment{}, false
	}

	var comment models.TaskComment
	if err := database.DB.First(&comment, commentID).Error; err != nil {
		fail(c, http.StatusNotFound, "comment not found")
		return models.TaskComment{}, false
	}

	identity, ok := currentIdentity(c)
	if !ok || comment.AuthorID != identity.UserID {
		fail(c, http.StatusForbidden, "only the author can modify a comment")
		return models.TaskComment{}, false
	}
	return comment, true
}
