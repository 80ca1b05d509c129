// controllers/medication.go
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

type CreateMedicationInput struct {
	Name            string          `json:"nombre" binding:"required"`
	Image           *string         `json:"imagen"`
	Code            *string         `json:"codigo"`
	Description     *string         `json:"descripcion"`
	Directions      *string         `json:"indicaciones"`
	Unit            *string         `json:"unidadMedida"`
	Stock           int             `json:"stock" binding:"min=0"`
	QuantityPerUnit int             `json:"cantidadPorUnidad" binding:"min=1"`
	Price           decimal.Decimal `json:"precio" binding:"required"`
	Type            string          `json:"tipo" binding:"required"`
}

type UpdateMedicationInput struct {
	Name            *string          `json:"nombre"`
	Image           *string          `json:"imagen"`
	Code            *string          `json:"codigo"`
	Description     *string          `json:"descripcion"`
	Directions      *string          `json:"indicaciones"`
	Unit            *string          `json:"unidadMedida"`
	Stock           *int             `json:"stock"`
	QuantityPerUnit *int             `json:"cantidadPorUnidad"`
	Remainder       *int             `json:"sobrante"`
	Price           *decimal.Decimal `json:"precio"`
	Type            *string          `json:"tipo"`
	Status          *int             `json:"estado"`
}

func validMedicationType(tipo string) bool {
	for _, t := range models.TiposMedicamento {
		if t == tipo {
			return true
		}
	}
	return false
}

func CreateMedication(c *gin.Context) {
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

	var input CreateMedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validMedicationType(input.Type) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication type")
		return
	}
	if input.Price.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
		return
	}

	status := models.MedicamentoEnStock
	if input.Stock == 0 {
		status = models.MedicamentoAgotado
	}

	medication := models.Medication{
		CreatedByUserID: creatorUUID,
		Name:            input.Name,
		Image:           input.Image,
		Code:            input.Code,
		Description:     input.Description,
		Directions:      input.Directions,
		Unit:            input.Unit,
		Stock:           input.Stock,
		QuantityPerUnit: input.QuantityPerUnit,
		Price:           input.Price,
		Type:            input.Type,
		Status:          status,
	}

	if err := config.DB.Create(&medication).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create medication")
		return
	}

	c.JSON(http.StatusCreated, medication)
}

func GetMedications(c *gin.Context) {
	var medications []models.Medication
	err := config.DB.Where("estado <> 0").
		Order("estado ASC, nombre ASC").
		Find(&medications).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve medications")
		return
	}

	c.JSON(http.StatusOK, medications)
}

func GetMedication(c *gin.Context) {
	medicationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication ID format")
		return
	}

	var medication models.Medication
	if err := config.DB.Where("id = ? AND estado <> 0", medicationUUID).First(&medication).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Medication not found")
		return
	}

	c.JSON(http.StatusOK, medication)
}

func UpdateMedication(c *gin.Context) {
	medicationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication ID format")
		return
	}

	var input UpdateMedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var medication models.Medication
	if err := config.DB.Where("id = ? AND estado <> 0", medicationUUID).First(&medication).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Medication not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["nombre"] = *input.Name
	}
	if input.Image != nil {
		updates["imagen"] = *input.Image
	}
	if input.Code != nil {
		updates["codigo"] = *input.Code
	}
	if input.Description != nil {
		updates["descripcion"] = *input.Description
	}
	if input.Directions != nil {
		updates["indicaciones"] = *input.Directions
	}
	if input.Unit != nil {
		updates["unidad_medida"] = *input.Unit
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Stock must not be negative")
			return
		}
		updates["stock"] = *input.Stock
	}
	if input.QuantityPerUnit != nil {
		updates["cantidad_por_unidad"] = *input.QuantityPerUnit
	}
	if input.Remainder != nil {
		updates["sobrante"] = *input.Remainder
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
			return
		}
		updates["precio"] = *input.Price
	}
	if input.Type != nil {
		if !validMedicationType(*input.Type) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication type")
			return
		}
		updates["tipo"] = *input.Type
	}
	if input.Status != nil {
		updates["estado"] = *input.Status
	}

	if err := config.DB.Model(&medication).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update medication")
		return
	}

	c.JSON(http.StatusOK, medication)
}

func DeleteMedication(c *gin.Context) {
	medicationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid medication ID format")
		return
	}

	var medication models.Medication
	if err := config.DB.Where("id = ? AND estado <> 0", medicationUUID).First(&medication).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Medication not found")
		return
	}

	if err := config.DB.Model(&medication).Update("estado", models.EstadoEliminado).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete medication")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medication deleted"})
}
