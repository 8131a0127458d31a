package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fleetworks/internal/database"
	"fleetworks/internal/models"

	"github.com/gin-gonic/gin"
)

func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Preload("Subcategories").Order("name asc").Find(&categories).Error; err != nil {
		failInternal(c, "category_list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}

	var count int64
	database.DB.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count)
	if count > 0 {
		fail(c, http.StatusBadRequest, "category already exists")
		return
	}

	category := models.Category{Name: name}
	if err := database.DB.Create(&category).Error; err != nil {
		failInternal(c, "category_create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

type subcategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

func CreateSubcategory(c *gin.Context) {
	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "category_id and name are required")
		return
	}

	var category models.Category
	if err := database.DB.First(&category, req.CategoryID).Error; err != nil {
		fail(c, http.StatusNotFound, "category not found")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}

	sub := models.Subcategory{CategoryID: category.ID, Name: name}
	if err := database.DB.Create(&sub).Error; err != nil {
		failInternal(c, "subcategory_create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subcategory": sub})
}

func DeleteSubcategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid subcategory ID")
		return
	}

	var sub models.Subcategory
	if err := database.DB.First(&sub, id).Error; err != nil {
		fail(c, http.StatusNotFound, "subcategory not found")
		return
	}

	var inUse int64
	database.DB.Model(&models.WorkshopTask{}).
		Where("subcategory_id = ?", sub.ID).
		Count(&inUse)
	if inUse > 0 {
		fail(c, http.StatusBadRequest, "subcategory is in use by workshop tasks")
		return
	}

	if err := database.DB.Delete(&sub).Error; err != nil {
		failInternal(c, "subcategory_delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}
