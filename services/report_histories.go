// services/report_histories.go
package services

import (
	"context"
	"log"
	"sort"

	"vetcare-backend/models"
)

type HistoryReportData struct {
	Historiales  []models.MedicalHistory `json:"historiales"`
	Estadisticas HistoryReportStats      `json:"estadisticas"`
	Graficos     HistoryReportCharts     `json:"graficos"`
}

type HistoryReportStats struct {
	TotalHistoriales                     int              `json:"totalHistoriales"`
	HistorialesNuevos                    int              `json:"historialesNuevos"`
	HistorialesConTratamientoPendiente   int              `json:"historialesConTratamientoPendiente"`
	HistorialesConTratamientosRealizados int              `json:"historialesConTratamientosRealizados"`
	HistorialesArchivados                int              `json:"historialesArchivados"`
	PromedioTratamientosPorHistorial     float64          `json:"promedioTratamientosPorHistorial"`
	PromedioMedicamentosPorTratamiento   float64          `json:"promedioMedicamentosPorTratamiento"`
	PromedioServiciosPorTratamiento      float64          `json:"promedioServiciosPorTratamiento"`
	MascotasConMasTratamientos           []NombreCantidad `json:"mascotasConMasTratamientos"`
}

type HistoryReportCharts struct {
	HistorialesPorEstado      []EstadoCantidad  `json:"historialesPorEstado"`
	HistorialesPorEspecie     []EspecieCantidad `json:"historialesPorEspecie"`
	TratamientosPorMes        []MesCantidad     `json:"tratamientosPorMes"`
	Top10MedicamentosUsados   []NombreCantidad  `json:"top10MedicamentosUsados"`
	Top10ServiciosSolicitados []NombreCantidad  `json:"top10ServiciosSolicitados"`
	DistribucionEdadMascotas  []RangoCantidad   `json:"distribucionEdadMascotas"`
}

// HistoryReport builds the medical-history report for the given filter.
func (s *ReportService) HistoryReport(ctx context.Context, filter ReportFilter) (*HistoryReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var histories []models.MedicalHistory
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("Pet").
		Preload("Pet.Owner").
		Preload("Treatments", notRemoved).
		Preload("Treatments.Medications").
		Preload("Treatments.Medications.Medication").
		Preload("Treatments.Services").
		Preload("Treatments.Services.Service").
		Order("created_at DESC").
		Find(&histories).Error
	if err != nil {
		log.Printf("[REPORT] historiales: query failed: %v", err)
		return BuildHistoryReport(nil), nil
	}

	return BuildHistoryReport(histories), nil
}

// BuildHistoryReport reduces fetched histories into the report shape.
func BuildHistoryReport(histories []models.MedicalHistory) *HistoryReportData {
	if histories == nil {
		histories = []models.MedicalHistory{}
	}

	stats := HistoryReportStats{TotalHistoriales: len(histories)}
	totalTreatments, totalMedLines, totalSvcLines := 0, 0, 0
	bySpecies := map[string]int{}
	treatmentsPerMonth := map[string]int{}
	medicationUse := map[string]int{}
	serviceUse := map[string]int{}
	ageBuckets := []RangoCantidad{
		{Rango: "Menos de 1 año"}, {Rango: "1-2 años"}, {Rango: "3-5 años"},
		{Rango: "6-8 años"}, {Rango: "9+ años"},
	}
	perPet := make([]NombreCantidad, 0, len(histories))

	for _, h := range histories {
		switch h.Status {
		case models.HistorialNuevo:
			stats.HistorialesNuevos++
		case models.HistorialTratamientoPendiente:
			stats.HistorialesConTratamientoPendiente++
		case models.HistorialTratamientosRealizados:
			stats.HistorialesConTratamientosRealizados++
		case models.HistorialArchivado:
			stats.HistorialesArchivados++
		}

		totalTreatments += len(h.Treatments)
		perPet = append(perPet, NombreCantidad{Nombre: h.Pet.Name, Cantidad: len(h.Treatments)})
		bySpecies[h.Pet.Species]++

		for _, t := range h.Treatments {
			treatmentsPerMonth[monthKey(t.CreatedAt)]++
			totalMedLines += len(t.Medications)
			totalSvcLines += len(t.Services)
			for _, m := range t.Medications {
				medicationUse[m.Medication.Name] += m.Quantity
			}
			for _, sv := range t.Services {
				serviceUse[sv.Service.Name]++
			}
		}

		if h.Pet.BirthDate != nil {
			years := yearsBetween(*h.Pet.BirthDate, h.CreatedAt)
			switch {
			case years < 1:
				ageBuckets[0].Cantidad++
			case years < 3:
				ageBuckets[1].Cantidad++
			case years < 6:
				ageBuckets[2].Cantidad++
			case years < 9:
				ageBuckets[3].Cantidad++
			default:
				ageBuckets[4].Cantidad++
			}
		}
	}

	stats.PromedioTratamientosPorHistorial = Ratio(totalTreatments, len(histories))
	stats.PromedioMedicamentosPorTratamiento = Ratio(totalMedLines, totalTreatments)
	stats.PromedioServiciosPorTratamiento = Ratio(totalSvcLines, totalTreatments)

	sort.SliceStable(perPet, func(i, j int) bool {
		return perPet[i].Cantidad > perPet[j].Cantidad
	})
	if len(perPet) > 5 {
		perPet = perPet[:5]
	}
	stats.MascotasConMasTratamientos = perPet

	species := make([]EspecieCantidad, 0, len(bySpecies))
	for name, n := range bySpecies {
		species = append(species, EspecieCantidad{Especie: name, Cantidad: n})
	}
	sort.Slice(species, func(i, j int) bool { return species[i].Especie < species[j].Especie })

	return &HistoryReportData{
		Historiales: histories,
		Estadisticas: stats,
		Graficos: HistoryReportCharts{
			HistorialesPorEstado: []EstadoCantidad{
				{Estado: "Nuevo", Cantidad: stats.HistorialesNuevos},
				{Estado: "Con Tratamiento Pendiente", Cantidad: stats.HistorialesConTratamientoPendiente},
				{Estado: "Con Tratamientos Realizados", Cantidad: stats.HistorialesConTratamientosRealizados},
				{Estado: "Archivado", Cantidad: stats.HistorialesArchivados},
			},
			HistorialesPorEspecie:     species,
			TratamientosPorMes:        monthSeries(treatmentsPerMonth),
			Top10MedicamentosUsados:   topCounts(medicationUse, 10),
			Top10ServiciosSolicitados: topCounts(serviceUse, 10),
			DistribucionEdadMascotas:  ageBuckets,
		},
	}
}
