// controllers/pet.go
package controllers

import (
	"net/http"
	"time"

	"vetcare-backend/config"
	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePetInput struct {
	Name       string     `json:"nombre" binding:"required"`
	Image      *string    `json:"imagen"`
	Species    string     `json:"especie" binding:"required"`
	Breed      *string    `json:"raza"`
	BirthDate  *time.Time `json:"fechaNacimiento"`
	Sex        string     `json:"sexo" binding:"required"`
	Details    *string    `json:"detalles"`
	Weight     *float64   `json:"peso"`
	Sterilized *bool      `json:"esterilizado"`
	OwnerID    *uuid.UUID `json:"idPropietario"`
}

type UpdatePetInput struct {
	Name       *string    `json:"nombre"`
	Image      *string    `json:"imagen"`
	Breed      *string    `json:"raza"`
	BirthDate  *time.Time `json:"fechaNacimiento"`
	Details    *string    `json:"detalles"`
	Weight     *float64   `json:"peso"`
	Sterilized *bool      `json:"esterilizado"`
	Status     *int       `json:"estado"`
	OwnerID    *uuid.UUID `json:"idPropietario"`
}

// CreatePet registers a pet and opens its medical history in the same
// transaction: a pet without a history never becomes visible.
func CreatePet(c *gin.Context) {
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

	var input CreatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pet := models.Pet{
		OwnerID:         input.OwnerID,
		CreatedByUserID: creatorUUID,
		Name:            input.Name,
		Image:           input.Image,
		Species:         input.Species,
		Breed:           input.Breed,
		BirthDate:       input.BirthDate,
		Sex:             input.Sex,
		Details:         input.Details,
		Weight:          input.Weight,
		Sterilized:      input.Sterilized,
		Status:          models.MascotaRegistrada,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pet).Error; err != nil {
			return err
		}
		history := models.MedicalHistory{
			PetID:           pet.ID,
			CreatedByUserID: creatorUUID,
			Status:          models.HistorialNuevo,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pet")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func GetPets(c *gin.Context) {
	var pets []models.Pet
	if err := config.DB.Where("estado <> 0").
		Preload("Owner").
		Preload("History").
		Order("created_at DESC").
		Find(&pets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pets")
		return
	}

	c.JSON(http.StatusOK, pets)
}

func GetPet(c *gin.Context) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	var pet models.Pet
	err = config.DB.Where("id = ? AND estado <> 0", petUUID).
		Preload("Owner").
		Preload("History").
		Preload("History.Treatments", func(db *gorm.DB) *gorm.DB {
			return db.Where("estado <> 0")
		}).
		First(&pet).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	c.JSON(http.StatusOK, pet)
}

func UpdatePet(c *gin.Context) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	var input UpdatePetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var pet models.Pet
	if err := config.DB.Where("id = ? AND estado <> 0", petUUID).First(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["nombre"] = *input.Name
	}
	if input.Image != nil {
		updates["imagen"] = *input.Image
	}
	if input.Breed != nil {
		updates["raza"] = *input.Breed
	}
	if input.BirthDate != nil {
		updates["fecha_nacimiento"] = *input.BirthDate
	}
	if input.Details != nil {
		updates["detalles"] = *input.Details
	}
	if input.Weight != nil {
		updates["peso"] = *input.Weight
	}
	if input.Sterilized != nil {
		updates["esterilizado"] = *input.Sterilized
	}
	if input.Status != nil {
		updates["estado"] = *input.Status
	}
	if input.OwnerID != nil {
		updates["owner_id"] = *input.OwnerID
	}

	if err := config.DB.Model(&pet).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pet")
		return
	}

	c.JSON(http.StatusOK, pet)
}

// DeletePet soft-deletes the pet together with its medical history.
func DeletePet(c *gin.Context) {
	petUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pet ID format")
		return
	}

	var pet models.Pet
	if err := config.DB.Where("id = ? AND estado <> 0", petUUID).First(&pet).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pet not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&pet).Update("estado", models.EstadoEliminado).Error; err != nil {
			return err
		}
		return tx.Model(&models.MedicalHistory{}).
			Where("pet_id = ?", pet.ID).
			Update("estado", models.EstadoEliminado).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete pet")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted"})
}
