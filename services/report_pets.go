// services/report_pets.go
package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"vetcare-backend/models"

	"github.com/google/uuid"
)

type PetOwnerRow struct {
	ID          uuid.UUID `json:"id"`
	Nombre      string    `json:"name"`
	ApellidoPat *string   `json:"apellidoPat"`
	ApellidoMat *string   `json:"apellidoMat"`
	Email       string    `json:"email"`
	Celular     *string   `json:"celular"`
}

type PetHistorySummary struct {
	Estado               int     `json:"estado"`
	Descripcion          *string `json:"descripcionTratamientos"`
	CantidadTratamientos int     `json:"cantidadTratamientos"`
}

type PetReportRow struct {
	ID              uuid.UUID          `json:"id"`
	Nombre          string             `json:"nombre"`
	Imagen          *string            `json:"imagen"`
	Especie         string             `json:"especie"`
	Raza            *string            `json:"raza"`
	FechaNacimiento *time.Time         `json:"fechaNacimiento"`
	Edad            string             `json:"edad"`
	Sexo            string             `json:"sexo"`
	Peso            *float64           `json:"peso"`
	Estado          int                `json:"estado"`
	Esterilizado    *bool              `json:"esterilizado"`
	CreadoEn        time.Time          `json:"creadoEn"`
	Propietario     *PetOwnerRow       `json:"propietario"`
	Historial       *PetHistorySummary `json:"historial"`
}

type TopMascotaTratamientos struct {
	NombreMascota        string `json:"nombreMascota"`
	CantidadTratamientos int    `json:"cantidadTratamientos"`
	NombrePropietario    string `json:"nombrePropietario"`
}

type PetReportData struct {
	Mascotas     []PetReportRow  `json:"mascotas"`
	Estadisticas PetReportStats  `json:"estadisticas"`
	Graficos     PetReportCharts `json:"graficos"`
	Tablas       PetReportTables `json:"tablas"`
}

type PetReportStats struct {
	TotalMascotas                  int     `json:"totalMascotas"`
	MascotasRegistradas            int     `json:"mascotasRegistradas"`
	MascotasAtendidas              int     `json:"mascotasAtendidas"`
	MascotasEnTratamiento          int     `json:"mascotasEnTratamiento"`
	MascotasAltaMedica             int     `json:"mascotasAltaMedica"`
	MascotasInternadas             int     `json:"mascotasInternadas"`
	MascotasFallecidas             int     `json:"mascotasFallecidas"`
	MascotasEsterilizadas          int     `json:"mascotasEsterilizadas"`
	TotalMachos                    int     `json:"totalMachos"`
	TotalHembras                   int     `json:"totalHembras"`
	EdadPromedio                   float64 `json:"edadPromedio"`
	PesoPromedio                   float64 `json:"pesoPromedio"`
	TotalPerros                    int     `json:"totalPerros"`
	TotalGatos                     int     `json:"totalGatos"`
	TotalOtros                     int     `json:"totalOtros"`
	MascotasConTratamientos        int     `json:"mascotasConTratamientos"`
	PromedioTratamientosPorMascota float64 `json:"promedioTratamientosPorMascota"`
}

type PetReportCharts struct {
	MascotasPorEstado         []EstadoCantidad         `json:"mascotasPorEstado"`
	MascotasPorEspecie        []EspecieCantidad        `json:"mascotasPorEspecie"`
	MascotasPorSexo           []SexoCantidad           `json:"mascotasPorSexo"`
	MascotasPorEdad           []RangoCantidad          `json:"mascotasPorEdad"`
	MascotasPorPeso           []RangoCantidad          `json:"mascotasPorPeso"`
	TopMascotasTratamientos   []TopMascotaTratamientos `json:"topMascotasTratamientos"`
	DistribucionEsterilizados []EstadoCantidad         `json:"distribucionEsterilizados"`
	MascotasNuevasPorMes      []MesCantidad            `json:"mascotasNuevasPorMes"`
}

type PetReportTables struct {
	MascotasEnTratamiento []PetReportRow `json:"mascotasEnTratamiento"`
	MascotasNuevas        []PetReportRow `json:"mascotasNuevas"`
	MascotasInternadas    []PetReportRow `json:"mascotasInternadas"`
}

// ageLabel renders an age in whole years, falling back to months for
// animals under a year old.
func ageLabel(birth *time.Time, now time.Time) string {
	if birth == nil {
		return "No registrada"
	}
	years := yearsBetween(*birth, now)
	if years > 0 {
		if years == 1 {
			return "1 año"
		}
		return fmt.Sprintf("%d años", years)
	}
	months := monthsBetween(*birth, now)
	if months == 1 {
		return "1 mes"
	}
	return fmt.Sprintf("%d meses", months)
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// PetReport builds the pet-domain report for the given filter.
func (s *ReportService) PetReport(ctx context.Context, filter ReportFilter) (*PetReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var pets []models.Pet
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("Owner").
		Preload("History", notRemoved).
		Preload("History.Treatments", notRemoved).
		Order("created_at DESC").
		Find(&pets).Error
	if err != nil {
		log.Printf("[REPORT] mascotas: query failed: %v", err)
		return BuildPetReport(nil, time.Now()), nil
	}

	return BuildPetReport(pets, time.Now()), nil
}

// BuildPetReport reduces fetched pets into the report shape. Ages are
// computed against the supplied reference time so the reduction stays
// deterministic.
func BuildPetReport(pets []models.Pet, now time.Time) *PetReportData {
	rows := make([]PetReportRow, 0, len(pets))
	for _, p := range pets {
		row := PetReportRow{
			ID:              p.ID,
			Nombre:          p.Name,
			Imagen:          p.Image,
			Especie:         p.Species,
			Raza:            p.Breed,
			FechaNacimiento: p.BirthDate,
			Edad:            ageLabel(p.BirthDate, now),
			Sexo:            p.Sex,
			Peso:            p.Weight,
			Estado:          p.Status,
			Esterilizado:    p.Sterilized,
			CreadoEn:        p.CreatedAt,
		}
		if p.Owner != nil {
			row.Propietario = &PetOwnerRow{
				ID:          p.Owner.ID,
				Nombre:      p.Owner.Name,
				ApellidoPat: p.Owner.PaternalSurname,
				ApellidoMat: p.Owner.MaternalSurname,
				Email:       p.Owner.Email,
				Celular:     p.Owner.Phone,
			}
		}
		if p.History != nil {
			row.Historial = &PetHistorySummary{
				Estado:               p.History.Status,
				Descripcion:          p.History.Notes,
				CantidadTratamientos: len(p.History.Treatments),
			}
		}
		rows = append(rows, row)
	}

	stats := PetReportStats{TotalMascotas: len(rows)}
	ageMonthsSum, withBirth := 0, 0
	weightSum, withWeight := 0.0, 0
	totalTreatments, withTreatments := 0, 0
	newPerMonth := map[string]int{}
	ageBuckets := []RangoCantidad{
		{Rango: "0-1 año"}, {Rango: "1-3 años"}, {Rango: "3-7 años"}, {Rango: "7+ años"},
	}
	weightBuckets := []RangoCantidad{
		{Rango: "0-5 kg"}, {Rango: "5-15 kg"}, {Rango: "15-30 kg"}, {Rango: "30+ kg"},
	}

	for _, p := range pets {
		switch p.Status {
		case models.MascotaRegistrada:
			stats.MascotasRegistradas++
		case models.MascotaAtendida:
			stats.MascotasAtendidas++
		case models.MascotaEnTratamiento:
			stats.MascotasEnTratamiento++
		case models.MascotaAltaMedica:
			stats.MascotasAltaMedica++
		case models.MascotaInternada:
			stats.MascotasInternadas++
		case models.MascotaFallecida:
			stats.MascotasFallecidas++
		}
		if p.Sterilized != nil && *p.Sterilized {
			stats.MascotasEsterilizadas++
		}
		switch p.Sex {
		case models.SexoMacho:
			stats.TotalMachos++
		case models.SexoHembra:
			stats.TotalHembras++
		}
		switch p.Species {
		case models.EspeciePerro:
			stats.TotalPerros++
		case models.EspecieGato:
			stats.TotalGatos++
		default:
			stats.TotalOtros++
		}

		if p.BirthDate != nil {
			withBirth++
			ageMonthsSum += monthsBetween(*p.BirthDate, now)
			years := yearsBetween(*p.BirthDate, now)
			switch {
			case years <= 1:
				ageBuckets[0].Cantidad++
			case years <= 3:
				ageBuckets[1].Cantidad++
			case years <= 7:
				ageBuckets[2].Cantidad++
			default:
				ageBuckets[3].Cantidad++
			}
		}
		if p.Weight != nil {
			withWeight++
			weightSum += *p.Weight
			switch {
			case *p.Weight <= 5:
				weightBuckets[0].Cantidad++
			case *p.Weight <= 15:
				weightBuckets[1].Cantidad++
			case *p.Weight <= 30:
				weightBuckets[2].Cantidad++
			default:
				weightBuckets[3].Cantidad++
			}
		}
		if p.History != nil {
			n := len(p.History.Treatments)
			totalTreatments += n
			if n > 0 {
				withTreatments++
			}
		}

		newPerMonth[monthKey(p.CreatedAt)]++
	}

	if withBirth > 0 {
		stats.EdadPromedio = float64(ageMonthsSum) / float64(withBirth) / 12
	}
	if withWeight > 0 {
		stats.PesoPromedio = weightSum / float64(withWeight)
	}
	stats.MascotasConTratamientos = withTreatments
	stats.PromedioTratamientosPorMascota = Ratio(totalTreatments, len(pets))

	// Top 10 pets by treatment count
	top := make([]TopMascotaTratamientos, 0)
	for _, r := range rows {
		if r.Historial == nil || r.Historial.CantidadTratamientos == 0 {
			continue
		}
		owner := "Sin propietario"
		if r.Propietario != nil {
			owner = r.Propietario.Nombre
			if r.Propietario.ApellidoPat != nil {
				owner += " " + *r.Propietario.ApellidoPat
			}
		}
		top = append(top, TopMascotaTratamientos{
			NombreMascota:        r.Nombre,
			CantidadTratamientos: r.Historial.CantidadTratamientos,
			NombrePropietario:    owner,
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].CantidadTratamientos > top[j].CantidadTratamientos
	})
	if len(top) > 10 {
		top = top[:10]
	}

	inTreatment := make([]PetReportRow, 0)
	registered := make([]PetReportRow, 0)
	hospitalized := make([]PetReportRow, 0)
	for _, r := range rows {
		switch r.Estado {
		case models.MascotaEnTratamiento:
			inTreatment = append(inTreatment, r)
		case models.MascotaRegistrada:
			registered = append(registered, r)
		case models.MascotaInternada:
			hospitalized = append(hospitalized, r)
		}
	}

	return &PetReportData{
		Mascotas:     rows,
		Estadisticas: stats,
		Graficos: PetReportCharts{
			MascotasPorEstado: []EstadoCantidad{
				{Estado: "Registradas", Cantidad: stats.MascotasRegistradas},
				{Estado: "Atendidas", Cantidad: stats.MascotasAtendidas},
				{Estado: "En Tratamiento", Cantidad: stats.MascotasEnTratamiento},
				{Estado: "Dados de Alta", Cantidad: stats.MascotasAltaMedica},
				{Estado: "Internadas", Cantidad: stats.MascotasInternadas},
				{Estado: "Fallecidas", Cantidad: stats.MascotasFallecidas},
			},
			MascotasPorEspecie: []EspecieCantidad{
				{Especie: "Perros", Cantidad: stats.TotalPerros},
				{Especie: "Gatos", Cantidad: stats.TotalGatos},
				{Especie: "Otros", Cantidad: stats.TotalOtros},
			},
			MascotasPorSexo: []SexoCantidad{
				{Sexo: "Machos", Cantidad: stats.TotalMachos},
				{Sexo: "Hembras", Cantidad: stats.TotalHembras},
			},
			MascotasPorEdad:         ageBuckets,
			MascotasPorPeso:         weightBuckets,
			TopMascotasTratamientos: top,
			DistribucionEsterilizados: []EstadoCantidad{
				{Estado: "Esterilizados", Cantidad: stats.MascotasEsterilizadas},
				{Estado: "No Esterilizados", Cantidad: stats.TotalMascotas - stats.MascotasEsterilizadas},
			},
			MascotasNuevasPorMes: monthSeries(newPerMonth),
		},
		Tablas: PetReportTables{
			MascotasEnTratamiento: inTreatment,
			MascotasNuevas:        registered,
			MascotasInternadas:    hospitalized,
		},
	}
}
