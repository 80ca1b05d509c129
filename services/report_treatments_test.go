// services/report_treatments_test.go
package services

import (
	"testing"
	"time"

	"vetcare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func vetTreatment(vetID uuid.UUID, status int, payment *models.Payment, createdAt time.Time) models.Treatment {
	return models.Treatment{
		ID:              uuid.New(),
		CreatedByUserID: vetID,
		Description:     "Consulta",
		Status:          status,
		Payment:         payment,
		CreatedAt:       createdAt,
		History: models.MedicalHistory{
			Pet: models.Pet{ID: uuid.New(), Name: "Firulais", Species: models.EspeciePerro},
		},
	}
}

func completedPayment(total string) *models.Payment {
	return &models.Payment{
		Total:  decimal.RequireFromString(total),
		Status: models.PagoCompletado,
	}
}

func TestBuildTreatmentReportRevenue(t *testing.T) {
	createdAt := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	vetID := uuid.New()

	treatments := []models.Treatment{
		// completed and paid: counts toward revenue
		vetTreatment(vetID, models.TratamientoCompletado, completedPayment("30.00"), createdAt),
		// completed but payment still pending: no revenue
		vetTreatment(vetID, models.TratamientoCompletado, &models.Payment{
			Total: decimal.RequireFromString("40.00"), Status: models.PagoPendiente,
		}, createdAt),
		// paid but treatment still in progress: no revenue
		vetTreatment(vetID, models.TratamientoEnProgreso, completedPayment("50.00"), createdAt),
		// no payment at all
		vetTreatment(vetID, models.TratamientoCancelado, nil, createdAt),
	}

	data := BuildTreatmentReport(treatments, nil)

	stats := data.Estadisticas
	if stats.IngresosTotales != "30.00" {
		t.Errorf("IngresosTotales = %q, want 30.00", stats.IngresosTotales)
	}
	if stats.TratamientosEnProgreso != 1 || stats.TratamientosCompletados != 2 || stats.TratamientosCancelados != 1 {
		t.Errorf("status counts = %d/%d/%d", stats.TratamientosEnProgreso,
			stats.TratamientosCompletados, stats.TratamientosCancelados)
	}

	months := data.Graficos.IngresosPorMes
	if len(months) != 1 || months[0].Ingresos != "30.00" {
		t.Errorf("IngresosPorMes = %+v, want one month at 30.00", months)
	}
}

func TestBuildTreatmentReportEffectiveness(t *testing.T) {
	createdAt := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	vetID := uuid.New()

	// 2 completed, 1 in progress, 1 cancelled: cancelled rows do not count
	// against effectiveness, so 2 of 3 valid = 66.67 (rounded by Ratio).
	treatments := []models.Treatment{
		vetTreatment(vetID, models.TratamientoCompletado, nil, createdAt),
		vetTreatment(vetID, models.TratamientoCompletado, nil, createdAt),
		vetTreatment(vetID, models.TratamientoEnProgreso, nil, createdAt),
		vetTreatment(vetID, models.TratamientoCancelado, nil, createdAt),
	}

	data := BuildTreatmentReport(treatments, nil)

	got := data.Estadisticas.PorcentajeEfectividad
	want := Ratio(2, 3) * 100
	if got != want {
		t.Errorf("PorcentajeEfectividad = %v, want %v", got, want)
	}
}

func TestBuildTreatmentReportPerVet(t *testing.T) {
	createdAt := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	busyID, idleID := uuid.New(), uuid.New()
	surname := "Rojas"
	vets := map[uuid.UUID]models.User{
		busyID: {ID: busyID, Name: "Laura", PaternalSurname: &surname, Role: models.RolVeterinario},
	}

	treatments := []models.Treatment{
		vetTreatment(busyID, models.TratamientoCompletado, completedPayment("25.00"), createdAt),
		vetTreatment(busyID, models.TratamientoCompletado, completedPayment("25.00"), createdAt),
		vetTreatment(idleID, models.TratamientoEnProgreso, nil, createdAt),
	}

	data := BuildTreatmentReport(treatments, vets)

	rows := data.Graficos.TratamientosPorVeterinario
	if len(rows) != 2 {
		t.Fatalf("TratamientosPorVeterinario len = %d, want 2", len(rows))
	}
	if rows[0].Veterinario != "Laura Rojas" || rows[0].Cantidad != 2 {
		t.Errorf("rows[0] = %+v, want Laura Rojas with 2", rows[0])
	}
	if rows[0].Ingresos != "50.00" {
		t.Errorf("Laura Ingresos = %q, want 50.00", rows[0].Ingresos)
	}
	if rows[1].Veterinario != "Desconocido" {
		t.Errorf("unresolved staff label = %q, want Desconocido", rows[1].Veterinario)
	}

	// rows resolve the attending vet when the lookup map has them
	var resolved int
	for _, r := range data.Tratamientos {
		if r.Veterinario != nil {
			resolved++
		}
	}
	if resolved != 2 {
		t.Errorf("resolved vet rows = %d, want 2", resolved)
	}
}

func TestBuildTreatmentReportLineAverages(t *testing.T) {
	createdAt := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	vetID := uuid.New()

	withLines := vetTreatment(vetID, models.TratamientoEnProgreso, nil, createdAt)
	withLines.Medications = []models.TreatmentMedication{
		{Quantity: 2, Medication: models.Medication{Name: "Amoxicilina"}},
		{Quantity: 1, Medication: models.Medication{Name: "Ivermectina"}},
	}
	withLines.Services = []models.TreatmentService{
		{Service: models.Service{Name: "Baño"}},
	}
	bare := vetTreatment(vetID, models.TratamientoEnProgreso, nil, createdAt)

	data := BuildTreatmentReport([]models.Treatment{withLines, bare}, nil)

	stats := data.Estadisticas
	if stats.PromedioMedicamentosPorTratamiento != 1 {
		t.Errorf("PromedioMedicamentosPorTratamiento = %v, want 1", stats.PromedioMedicamentosPorTratamiento)
	}
	if stats.PromedioServiciosPorTratamiento != 0.5 {
		t.Errorf("PromedioServiciosPorTratamiento = %v, want 0.5", stats.PromedioServiciosPorTratamiento)
	}

	meds := data.Graficos.MedicamentosMasUsados
	if len(meds) != 2 || meds[0].Nombre != "Amoxicilina" || meds[0].Cantidad != 2 {
		t.Errorf("MedicamentosMasUsados = %+v", meds)
	}
}
