// controllers/treatment.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"vetcare-backend/config"
	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentMedicationInput struct {
	MedicationID uuid.UUID `json:"medicamentoId" binding:"required"`
	Quantity     int       `json:"cantidad" binding:"required,min=1"`
	Dosage       *string   `json:"dosificacion"`
}

type TreatmentServiceInput struct {
	ServiceID uuid.UUID `json:"servicioId" binding:"required"`
}

type CreateTreatmentInput struct {
	PetID       uuid.UUID                  `json:"mascotaId" binding:"required"`
	Description string                     `json:"descripcion" binding:"required"`
	Diagnosis   *string                    `json:"diagnostico"`
	Medications []TreatmentMedicationInput `json:"medicamentos"`
	Services    []TreatmentServiceInput    `json:"servicios"`
}

type UpdateTreatmentInput struct {
	Description *string `json:"descripcion"`
	Diagnosis   *string `json:"diagnostico"`
	Status      *int    `json:"estado"`
}

type BillTreatmentInput struct {
	Method       string  `json:"metodoPago" binding:"required"`
	Details      *string `json:"detalle"`
	VoluntaryAid bool    `json:"esAyudaVoluntaria"`
}

// CreateTreatment opens a treatment on the pet's medical history. Line items
// capture unit prices at time of use and medication stock is decremented in
// the same transaction, so an out-of-stock item rolls the whole thing back.
func CreateTreatment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	vetUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var history models.MedicalHistory
	err = config.DB.Where("pet_id = ? AND estado <> 0", input.PetID).First(&history).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Medical history not found for pet")
		return
	}

	treatment := models.Treatment{
		MedicalHistoryID: history.PetID,
		CreatedByUserID:  vetUUID,
		Description:      input.Description,
		Diagnosis:        input.Diagnosis,
		Status:           models.TratamientoEnProgreso,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&treatment).Error; err != nil {
			return err
		}

		for _, mi := range input.Medications {
			var medication models.Medication
			if err := tx.Where("id = ? AND estado <> 0", mi.MedicationID).First(&medication).Error; err != nil {
				return fmt.Errorf("medication %s: %w", mi.MedicationID, err)
			}
			if medication.Stock < mi.Quantity {
				return fmt.Errorf("medication %s: insufficient stock", medication.Name)
			}

			line := models.TreatmentMedication{
				TreatmentID:  treatment.ID,
				MedicationID: medication.ID,
				Quantity:     mi.Quantity,
				UnitCost:     medication.Price,
				Dosage:       mi.Dosage,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}

			newStock := medication.Stock - mi.Quantity
			updates := map[string]interface{}{"stock": newStock}
			if newStock == 0 {
				updates["estado"] = models.MedicamentoAgotado
			}
			if err := tx.Model(&medication).Updates(updates).Error; err != nil {
				return err
			}
		}

		for _, si := range input.Services {
			var service models.Service
			if err := tx.Where("id = ? AND estado = ?", si.ServiceID, models.ServicioDisponible).
				First(&service).Error; err != nil {
				return fmt.Errorf("service %s: %w", si.ServiceID, err)
			}

			line := models.TreatmentService{
				TreatmentID: treatment.ID,
				ServiceID:   service.ID,
				Price:       service.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		// The history now carries an open treatment
		return tx.Model(&history).Update("estado", models.HistorialTratamientoPendiente).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Failed to create treatment: "+err.Error())
		return
	}

	config.DB.
		Preload("Medications.Medication").
		Preload("Services.Service").
		First(&treatment, "id = ?", treatment.ID)

	c.JSON(http.StatusCreated, treatment)
}

func GetTreatments(c *gin.Context) {
	var treatments []models.Treatment
	err := config.DB.Where("estado <> 0").
		Preload("History.Pet").
		Preload("Medications.Medication").
		Preload("Services.Service").
		Preload("Payment").
		Order("created_at DESC").
		Find(&treatments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve treatments")
		return
	}

	c.JSON(http.StatusOK, treatments)
}

func GetTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var treatment models.Treatment
	err = config.DB.Where("id = ? AND estado <> 0", treatmentUUID).
		Preload("History.Pet").
		Preload("History.Pet.Owner").
		Preload("Medications.Medication").
		Preload("Services.Service").
		Preload("Payment").
		First(&treatment).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		return
	}

	c.JSON(http.StatusOK, treatment)
}

func UpdateTreatment(c *gin.Context) {
	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var input UpdateTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var treatment models.Treatment
	if err := config.DB.Where("id = ? AND estado <> 0", treatmentUUID).First(&treatment).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["descripcion"] = *input.Description
	}
	if input.Diagnosis != nil {
		updates["diagnostico"] = *input.Diagnosis
	}
	if input.Status != nil {
		updates["estado"] = *input.Status
	}

	if err := config.DB.Model(&treatment).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update treatment")
		return
	}

	c.JSON(http.StatusOK, treatment)
}

// BillTreatment creates the payment for a treatment, totalling its line
// items. One payment per treatment; billing an already billed treatment is
// a conflict.
func BillTreatment(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	staffUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	treatmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid treatment ID format")
		return
	}

	var input BillTreatmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !validPaymentMethod(input.Method) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}

	var treatment models.Treatment
	err = config.DB.Where("id = ? AND estado <> 0", treatmentUUID).
		Preload("Medications").
		Preload("Services").
		First(&treatment).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Treatment not found")
		return
	}

	var existing models.Payment
	result := config.DB.Where("treatment_id = ? AND estado <> 0", treatment.ID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Treatment already billed")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	payment := models.Payment{
		TreatmentID:     treatment.ID,
		CreatedByUserID: staffUUID,
		Total:           treatment.LineTotal(),
		Method:          &input.Method,
		Details:         input.Details,
		VoluntaryAid:    input.VoluntaryAid,
		Status:          models.PagoPendiente,
	}

	if err := config.DB.Create(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// CompletePayment marks a pending payment as completed, stamping the paid
// date and closing the treatment.
func CompletePayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var payment models.Payment
	if err := config.DB.Where("id = ? AND estado <> 0", paymentUUID).First(&payment).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		return
	}
	if payment.Status != models.PagoPendiente {
		utils.RespondWithError(c, http.StatusConflict, "Payment is not pending")
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&payment).Updates(map[string]interface{}{
			"estado":     models.PagoCompletado,
			"fecha_pago": now,
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Treatment{}).
			Where("id = ?", payment.TreatmentID).
			Update("estado", models.TratamientoCompletado).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete payment")
		return
	}

	c.JSON(http.StatusOK, payment)
}

func validPaymentMethod(method string) bool {
	for _, m := range models.MetodosPago {
		if m == method {
			return true
		}
	}
	return false
}
