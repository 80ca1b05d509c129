package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Treatment struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MedicalHistoryID uuid.UUID `gorm:"type:uuid;index;not null" json:"historialMascotaId"`
	CreatedByUserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"idUsuario"`

	Description string  `gorm:"column:descripcion;type:text;not null" json:"descripcion"`
	Diagnosis   *string `gorm:"column:diagnostico;type:text" json:"diagnostico"`

	// 0 = removed, 1 = in progress, 2 = completed, 3 = cancelled
	Status int `gorm:"column:estado;not null;default:1" json:"estado"`

	History     MedicalHistory        `gorm:"foreignKey:MedicalHistoryID" json:"historialMascota,omitempty"`
	Medications []TreatmentMedication `gorm:"foreignKey:TreatmentID" json:"medicamentos,omitempty"`
	Services    []TreatmentService    `gorm:"foreignKey:TreatmentID" json:"servicios,omitempty"`
	Payment     *Payment              `gorm:"foreignKey:TreatmentID" json:"pago,omitempty"`

	CreatedAt time.Time  `json:"creadoEn"`
	UpdatedAt *time.Time `json:"actualizadoEn"`
}

func (t *Treatment) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// LineTotal computes the billable amount of the treatment: medication lines
// at their captured unit cost plus service lines at their captured price.
func (t *Treatment) LineTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range t.Medications {
		total = total.Add(m.UnitCost.Mul(decimal.NewFromInt(int64(m.Quantity))))
	}
	for _, s := range t.Services {
		total = total.Add(s.Price)
	}
	return total
}

// TreatmentMedication is a line item: quantity and cost are captured at time
// of use, decoupled from the medication's current catalog price.
type TreatmentMedication struct {
	TreatmentID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"tratamientoId"`
	MedicationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"medicamentoId"`

	Quantity int             `gorm:"column:cantidad;not null;default:1" json:"cantidad"`
	UnitCost decimal.Decimal `gorm:"column:costo_unitario;type:decimal(10,2);not null" json:"costoUnitario"`
	Dosage   *string         `gorm:"column:dosificacion" json:"dosificacion"`

	Medication Medication `gorm:"foreignKey:MedicationID" json:"medicamento,omitempty"`
	Treatment  Treatment  `gorm:"foreignKey:TreatmentID" json:"tratamiento,omitempty"`
}

// TreatmentService is a line item carrying the service price at time of use.
type TreatmentService struct {
	TreatmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"tratamientoId"`
	ServiceID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"servicioId"`

	Price decimal.Decimal `gorm:"column:precio_servicio;type:decimal(10,2);not null" json:"precioServicio"`

	Service   Service   `gorm:"foreignKey:ServiceID" json:"servicio,omitempty"`
	Treatment Treatment `gorm:"foreignKey:TreatmentID" json:"tratamiento,omitempty"`
}
