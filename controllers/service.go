// controllers/service.go
package controllers

import (
	"net/http"

	"vetcare-backend/config"
	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string          `json:"nombre" binding:"required"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio" binding:"required"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	Status      *int             `json:"estado"`
}

func CreateService(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	creatorUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Price.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
		return
	}

	service := models.Service{
		CreatedByUserID: creatorUUID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Status:          models.ServicioDisponible,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Where("estado <> 0").Order("nombre ASC").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func GetService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ? AND estado <> 0", serviceUUID).First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, service)
}

func UpdateService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ? AND estado <> 0", serviceUUID).First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["nombre"] = *input.Name
	}
	if input.Description != nil {
		updates["descripcion"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
			return
		}
		updates["precio"] = *input.Price
	}
	if input.Status != nil {
		updates["estado"] = *input.Status
	}

	if err := config.DB.Model(&service).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

func DeleteService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ? AND estado <> 0", serviceUUID).First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	if err := config.DB.Model(&service).Update("estado", models.EstadoEliminado).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
