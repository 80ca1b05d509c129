// services/report_medications_test.go
package services

import (
	"testing"

	"vetcare-backend/models"

	"github.com/shopspring/decimal"
)

func med(name, tipo, price string, stock, status int) models.Medication {
	return models.Medication{
		Name:   name,
		Type:   tipo,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Status: status,
	}
}

func TestBuildMedicationReportStockFlags(t *testing.T) {
	medications := []models.Medication{
		med("Amoxicilina", models.TipoAntibiotico, "10.00", 10, models.MedicamentoEnStock),
		med("Ivermectina", models.TipoAntiparasitario, "8.00", 200, models.MedicamentoEnStock),
		med("Carprofeno", models.TipoAnalgesico, "12.00", 0, models.MedicamentoAgotado),
		med("Vacuna Rabia", models.TipoVacuna, "25.00", 40, models.MedicamentoVencido),
		med("Doxiciclina", models.TipoAntibiotico, "11.00", LowStockThreshold, models.MedicamentoEnStock),
	}

	data := BuildMedicationReport(medications)

	stats := data.Estadisticas
	if stats.TotalMedicamentos != 5 {
		t.Fatalf("TotalMedicamentos = %d, want 5", stats.TotalMedicamentos)
	}
	// Only in-stock rows strictly under the threshold count as low; neither
	// the expired row with 40 units nor the row sitting exactly at the
	// threshold does.
	if stats.MedicamentosBajoStock != 1 {
		t.Errorf("MedicamentosBajoStock = %d, want 1", stats.MedicamentosBajoStock)
	}
	if stats.MedicamentosAgotados != 1 {
		t.Errorf("MedicamentosAgotados = %d, want 1", stats.MedicamentosAgotados)
	}

	byState := data.Graficos.MedicamentosPorEstado
	if byState[0].Cantidad != 3 || byState[1].Cantidad != 1 || byState[2].Cantidad != 1 {
		t.Errorf("MedicamentosPorEstado = %+v", byState)
	}
}

func TestBuildMedicationReportTypeBreakdown(t *testing.T) {
	medications := []models.Medication{
		med("Amoxicilina", models.TipoAntibiotico, "10.00", 10, models.MedicamentoEnStock),
		med("Cefalexina", models.TipoAntibiotico, "20.00", 10, models.MedicamentoEnStock),
		med("Misterioso", "Homeopatico", "5.00", 10, models.MedicamentoEnStock),
	}

	data := BuildMedicationReport(medications)

	stats := data.Estadisticas
	if stats.MedicamentosPorTipo[models.TipoAntibiotico] != 2 {
		t.Errorf("antibioticos = %d, want 2", stats.MedicamentosPorTipo[models.TipoAntibiotico])
	}
	// Unknown catalog types fold into Otro.
	if stats.MedicamentosPorTipo[models.TipoOtro] != 1 {
		t.Errorf("otros = %d, want 1", stats.MedicamentosPorTipo[models.TipoOtro])
	}
	if stats.PromedioPrecioPorTipo[models.TipoAntibiotico] != 15 {
		t.Errorf("antibiotico avg = %v, want 15", stats.PromedioPrecioPorTipo[models.TipoAntibiotico])
	}
	if stats.PromedioPrecioPorTipo[models.TipoVacuna] != 0 {
		t.Errorf("empty type avg = %v, want 0", stats.PromedioPrecioPorTipo[models.TipoVacuna])
	}

	// Every catalog category appears in the chart, empty ones included.
	if got := len(data.Graficos.MedicamentosPorTipo); got != len(models.TiposMedicamento) {
		t.Errorf("MedicamentosPorTipo len = %d, want %d", got, len(models.TiposMedicamento))
	}
}

func TestBuildMedicationReportSalesAndConsumption(t *testing.T) {
	m := med("Amoxicilina", models.TipoAntibiotico, "10.00", 10, models.MedicamentoEnStock)
	m.Treatments = []models.TreatmentMedication{
		{
			Quantity: 3,
			UnitCost: decimal.RequireFromString("10.10"),
			Treatment: models.Treatment{
				History: models.MedicalHistory{Pet: models.Pet{Species: models.EspeciePerro}},
			},
		},
		{
			Quantity: 1,
			UnitCost: decimal.RequireFromString("9.00"),
			Treatment: models.Treatment{
				History: models.MedicalHistory{Pet: models.Pet{Species: models.EspecieGato}},
			},
		},
	}

	data := BuildMedicationReport([]models.Medication{m})

	sales := data.Graficos.CantidadVendidaPorMedicamento
	if len(sales) != 1 || sales[0].Cantidad != 4 {
		t.Fatalf("sales = %+v", sales)
	}
	if sales[0].Total != "39.30" {
		t.Errorf("sales total = %q, want 39.30", sales[0].Total)
	}

	consumption := data.Graficos.ConsumoPorEspecie
	if len(consumption) != 2 || consumption[0].Especie != models.EspecieGato {
		t.Errorf("ConsumoPorEspecie = %+v, want Gato first", consumption)
	}
}

func TestBuildMedicationReportTopPrices(t *testing.T) {
	medications := []models.Medication{
		med("Barato", models.TipoOtro, "2.00", 10, models.MedicamentoEnStock),
		med("Caro", models.TipoOtro, "100.00", 10, models.MedicamentoEnStock),
		med("Medio", models.TipoOtro, "30.00", 10, models.MedicamentoEnStock),
	}

	data := BuildMedicationReport(medications)

	pricey := data.Estadisticas.MedicamentosMasCaros
	if pricey[0].Nombre != "Caro" || pricey[1].Nombre != "Medio" || pricey[2].Nombre != "Barato" {
		t.Errorf("MedicamentosMasCaros = %+v", pricey)
	}
}
