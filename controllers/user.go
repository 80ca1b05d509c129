// controllers/user.go
package controllers

import (
	"net/http"

	"vetcare-backend/config"
	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateUserInput struct {
	Name            *string `json:"name"`
	PaternalSurname *string `json:"apellidoPat"`
	MaternalSurname *string `json:"apellidoMat"`
	Phone           *string `json:"celular"`
	Address         *string `json:"direccion"`
	Role            *string `json:"rol"`
	Status          *int    `json:"estado"`
}

// GetUsers lists every non-removed user, newest first.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("estado <> 0").Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

func GetUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	err = config.DB.Where("id = ? AND estado <> 0", userUUID).
		Preload("Pets").
		First(&user).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

func UpdateUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("id = ? AND estado <> 0", userUUID).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Phone != nil && *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.PaternalSurname != nil {
		updates["apellido_pat"] = *input.PaternalSurname
	}
	if input.MaternalSurname != nil {
		updates["apellido_mat"] = *input.MaternalSurname
	}
	if input.Phone != nil {
		updates["celular"] = *input.Phone
	}
	if input.Address != nil {
		updates["direccion"] = *input.Address
	}
	if input.Role != nil {
		updates["rol"] = *input.Role
	}
	if input.Status != nil {
		updates["estado"] = *input.Status
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser soft-deletes by flipping the record's status to removed.
func DeleteUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.Where("id = ? AND estado <> 0", userUUID).First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := config.DB.Model(&user).Update("estado", models.EstadoEliminado).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
