// services/report_treatments.go
package services

import (
	"context"
	"log"
	"sort"

	"vetcare-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TreatmentPetRow struct {
	ID      uuid.UUID    `json:"id"`
	Nombre  string       `json:"nombre"`
	Especie string       `json:"especie"`
	Usuario *PetOwnerRow `json:"usuario"`
}

type TreatmentVetRow struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"name"`
	ApellidoPat *string   `json:"apellidoPat"`
	ApellidoMat *string   `json:"apellidoMat"`
	Rol         string    `json:"rol"`
}

type TreatmentReportRow struct {
	ID                uuid.UUID        `json:"id"`
	Descripcion       string           `json:"descripcion"`
	Estado            int              `json:"estado"`
	Diagnostico       *string          `json:"diagnostico"`
	HistorialID       uuid.UUID        `json:"historialMascotaId"`
	CreadoEn          string           `json:"creadoEn"`
	Mascota           TreatmentPetRow  `json:"mascota"`
	Veterinario       *TreatmentVetRow `json:"veterinario"`
	TotalMedicamentos int              `json:"totalMedicamentos"`
	TotalServicios    int              `json:"totalServicios"`
	CostoTotal        string           `json:"costoTotal"`
}

type VeterinarioResumen struct {
	Veterinario string  `json:"veterinario"`
	Cantidad    int     `json:"cantidad"`
	Ingresos    string  `json:"ingresos"`
	Efectividad float64 `json:"efectividad"`
}

type TreatmentReportData struct {
	Tratamientos []TreatmentReportRow  `json:"tratamientos"`
	Estadisticas TreatmentReportStats  `json:"estadisticas"`
	Graficos     TreatmentReportCharts `json:"graficos"`
}

type TreatmentReportStats struct {
	TotalTratamientos                  int     `json:"totalTratamientos"`
	TratamientosEnProgreso             int     `json:"tratamientosEnProgreso"`
	TratamientosCompletados            int     `json:"tratamientosCompletados"`
	TratamientosCancelados             int     `json:"tratamientosCancelados"`
	PromedioMedicamentosPorTratamiento float64 `json:"promedioMedicamentosPorTratamiento"`
	PromedioServiciosPorTratamiento    float64 `json:"promedioServiciosPorTratamiento"`
	IngresosTotales                    string  `json:"ingresosTotales"`
	PorcentajeEfectividad              float64 `json:"porcentajeEfectividad"`
}

type TreatmentReportCharts struct {
	TratamientosPorEstado      []EstadoCantidad     `json:"tratamientosPorEstado"`
	TratamientosPorEspecie     []EspecieCantidad    `json:"tratamientosPorEspecie"`
	IngresosPorMes             []MesIngresos        `json:"ingresosPorMes"`
	MedicamentosMasUsados      []NombreCantidad     `json:"medicamentosMasUsados"`
	ServiciosMasRequeridos     []NombreCantidad     `json:"serviciosMasRequeridos"`
	TratamientosPorVeterinario []VeterinarioResumen `json:"tratamientosPorVeterinario"`
}

// TreatmentReport builds the treatment-domain report for the given filter.
// A second query resolves the attending staff for the fetched treatments.
func (s *ReportService) TreatmentReport(ctx context.Context, filter ReportFilter) (*TreatmentReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var treatments []models.Treatment
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("History.Pet").
		Preload("History.Pet.Owner").
		Preload("Payment").
		Preload("Medications").
		Preload("Medications.Medication").
		Preload("Services").
		Preload("Services.Service").
		Order("created_at DESC").
		Find(&treatments).Error
	if err != nil {
		log.Printf("[REPORT] tratamientos: query failed: %v", err)
		return BuildTreatmentReport(nil, nil), nil
	}

	vetIDs := make([]uuid.UUID, 0)
	seen := map[uuid.UUID]bool{}
	for _, t := range treatments {
		if !seen[t.CreatedByUserID] {
			seen[t.CreatedByUserID] = true
			vetIDs = append(vetIDs, t.CreatedByUserID)
		}
	}

	vets := map[uuid.UUID]models.User{}
	if len(vetIDs) > 0 {
		var users []models.User
		if err := s.db.WithContext(ctx).Where("id IN ?", vetIDs).Find(&users).Error; err != nil {
			log.Printf("[REPORT] tratamientos: staff lookup failed: %v", err)
		} else {
			for _, u := range users {
				vets[u.ID] = u
			}
		}
	}

	return BuildTreatmentReport(treatments, vets), nil
}

// BuildTreatmentReport reduces fetched treatments into the report shape.
// Revenue counts only completed treatments whose payment is completed.
func BuildTreatmentReport(treatments []models.Treatment, vets map[uuid.UUID]models.User) *TreatmentReportData {
	stats := TreatmentReportStats{TotalTratamientos: len(treatments)}
	totalMedLines, totalSvcLines := 0, 0
	totalIncome := decimal.Zero
	bySpecies := map[string]int{}
	incomePerMonth := map[string]decimal.Decimal{}
	medicationUse := map[string]int{}
	serviceUse := map[string]int{}

	type vetAgg struct {
		count     int
		completed int
		cancelled int
		income    decimal.Decimal
	}
	perVet := map[uuid.UUID]*vetAgg{}

	rows := make([]TreatmentReportRow, 0, len(treatments))
	for _, t := range treatments {
		switch t.Status {
		case models.TratamientoEnProgreso:
			stats.TratamientosEnProgreso++
		case models.TratamientoCompletado:
			stats.TratamientosCompletados++
		case models.TratamientoCancelado:
			stats.TratamientosCancelados++
		}
		totalMedLines += len(t.Medications)
		totalSvcLines += len(t.Services)

		bySpecies[t.History.Pet.Species]++

		paid := t.Status == models.TratamientoCompletado &&
			t.Payment != nil && t.Payment.Status == models.PagoCompletado
		if paid {
			totalIncome = totalIncome.Add(t.Payment.Total)
			key := monthKey(t.CreatedAt)
			incomePerMonth[key] = incomePerMonth[key].Add(t.Payment.Total)
		}

		for _, m := range t.Medications {
			medicationUse[m.Medication.Name] += m.Quantity
		}
		for _, sv := range t.Services {
			serviceUse[sv.Service.Name]++
		}

		agg := perVet[t.CreatedByUserID]
		if agg == nil {
			agg = &vetAgg{income: decimal.Zero}
			perVet[t.CreatedByUserID] = agg
		}
		agg.count++
		switch t.Status {
		case models.TratamientoCompletado:
			agg.completed++
		case models.TratamientoCancelado:
			agg.cancelled++
		}
		if paid {
			agg.income = agg.income.Add(t.Payment.Total)
		}

		row := TreatmentReportRow{
			ID:                t.ID,
			Descripcion:       t.Description,
			Estado:            t.Status,
			Diagnostico:       t.Diagnosis,
			HistorialID:       t.MedicalHistoryID,
			CreadoEn:          dayKey(t.CreatedAt),
			TotalMedicamentos: len(t.Medications),
			TotalServicios:    len(t.Services),
			CostoTotal:        "0",
			Mascota: TreatmentPetRow{
				ID:      t.History.Pet.ID,
				Nombre:  t.History.Pet.Name,
				Especie: t.History.Pet.Species,
			},
		}
		if t.Payment != nil {
			row.CostoTotal = t.Payment.Total.StringFixed(2)
		}
		if owner := t.History.Pet.Owner; owner != nil {
			row.Mascota.Usuario = &PetOwnerRow{
				ID:          owner.ID,
				Nombre:      owner.Name,
				ApellidoPat: owner.PaternalSurname,
				ApellidoMat: owner.MaternalSurname,
				Email:       owner.Email,
			}
		}
		if vet, ok := vets[t.CreatedByUserID]; ok {
			row.Veterinario = &TreatmentVetRow{
				ID:          vet.ID,
				Nombre:      vet.Name,
				ApellidoPat: vet.PaternalSurname,
				ApellidoMat: vet.MaternalSurname,
				Rol:         vet.Role,
			}
		}
		rows = append(rows, row)
	}

	stats.PromedioMedicamentosPorTratamiento = Ratio(totalMedLines, len(treatments))
	stats.PromedioServiciosPorTratamiento = Ratio(totalSvcLines, len(treatments))
	stats.IngresosTotales = totalIncome.StringFixed(2)

	valid := stats.TotalTratamientos - stats.TratamientosCancelados
	stats.PorcentajeEfectividad = Ratio(stats.TratamientosCompletados, valid) * 100

	species := make([]EspecieCantidad, 0, len(bySpecies))
	for name, n := range bySpecies {
		species = append(species, EspecieCantidad{Especie: name, Cantidad: n})
	}
	sort.Slice(species, func(i, j int) bool { return species[i].Especie < species[j].Especie })

	vetRows := make([]VeterinarioResumen, 0, len(perVet))
	for id, agg := range perVet {
		name := "Desconocido"
		if vet, ok := vets[id]; ok {
			name = vet.Name
			if vet.PaternalSurname != nil {
				name += " " + *vet.PaternalSurname
			}
		}
		validVet := agg.count - agg.cancelled
		vetRows = append(vetRows, VeterinarioResumen{
			Veterinario: name,
			Cantidad:    agg.count,
			Ingresos:    agg.income.StringFixed(2),
			Efectividad: Ratio(agg.completed, validVet) * 100,
		})
	}
	sort.Slice(vetRows, func(i, j int) bool {
		if vetRows[i].Cantidad != vetRows[j].Cantidad {
			return vetRows[i].Cantidad > vetRows[j].Cantidad
		}
		return vetRows[i].Veterinario < vetRows[j].Veterinario
	})

	return &TreatmentReportData{
		Tratamientos: rows,
		Estadisticas: stats,
		Graficos: TreatmentReportCharts{
			TratamientosPorEstado: []EstadoCantidad{
				{Estado: "En Progreso", Cantidad: stats.TratamientosEnProgreso},
				{Estado: "Completados", Cantidad: stats.TratamientosCompletados},
				{Estado: "Cancelados", Cantidad: stats.TratamientosCancelados},
			},
			TratamientosPorEspecie:     species,
			IngresosPorMes:             monthRevenueSeries(incomePerMonth),
			MedicamentosMasUsados:      topCounts(medicationUse, 15),
			ServiciosMasRequeridos:     topCounts(serviceUse, 15),
			TratamientosPorVeterinario: vetRows,
		},
	}
}
