// controllers/reservation.go
package controllers

import (
	"net/http"
	"time"

	"vetcare-backend/config"
	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateReservationInput struct {
	ScheduledAt time.Time `json:"fechaReserva" binding:"required"`
	Details     string    `json:"detalles"`
}

type UpdateReservationInput struct {
	ScheduledAt *time.Time `json:"fechaReserva"`
	Details     *string    `json:"detalles"`
	Status      *int       `json:"estado"`
}

// CreateReservation books an appointment for the authenticated user.
func CreateReservation(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.ScheduledAt.Before(time.Now()) {
		utils.RespondWithError(c, http.StatusBadRequest, "Reservation date must be in the future")
		return
	}

	reservation := models.Reservation{
		UserID:      userUUID,
		ScheduledAt: input.ScheduledAt,
		Details:     input.Details,
		Status:      models.ReservaPendiente,
	}

	if err := config.DB.Create(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations: staff see every booking, clients only
// their own.
func GetReservations(c *gin.Context) {
	role, _ := c.Get("rol")
	userID, _ := c.Get("userId")

	query := config.DB.Where("estado <> 0").
		Preload("User").
		Order("fecha_reserva ASC")

	if role != models.RolAdministrador && role != models.RolVeterinario {
		query = query.Where("user_id = ?", userID)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

func GetReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var reservation models.Reservation
	err = config.DB.Where("id = ? AND estado <> 0", reservationUUID).
		Preload("User").
		First(&reservation).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	role, _ := c.Get("rol")
	userID, _ := c.Get("userId")
	if role != models.RolAdministrador && role != models.RolVeterinario &&
		reservation.UserID.String() != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to view this reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func UpdateReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND estado <> 0", reservationUUID).First(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	updates := map[string]interface{}{}
	if input.ScheduledAt != nil {
		updates["fecha_reserva"] = *input.ScheduledAt
	}
	if input.Details != nil {
		updates["detalles"] = *input.Details
	}
	if input.Status != nil {
		updates["estado"] = *input.Status
	}

	if err := config.DB.Model(&reservation).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func DeleteReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND estado <> 0", reservationUUID).First(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	if err := config.DB.Model(&reservation).Update("estado", models.EstadoEliminado).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted"})
}
