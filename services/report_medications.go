// services/report_medications.go
package services

import (
	"context"
	"log"
	"sort"

	"vetcare-backend/models"

	"github.com/shopspring/decimal"
)

// Stock strictly below this level flags a medication as low.
const LowStockThreshold = 50

type TipoCantidad struct {
	Tipo     string `json:"tipo"`
	Cantidad int    `json:"cantidad"`
}

type TipoPrecioPromedio struct {
	Tipo           string  `json:"tipo"`
	PrecioPromedio float64 `json:"precioPromedio"`
}

type NombreStock struct {
	Nombre string `json:"nombre"`
	Stock  int    `json:"stock"`
}

type NombrePrecio struct {
	Nombre string `json:"nombre"`
	Precio string `json:"precio"`
}

type NombreVecesUsado struct {
	Nombre     string `json:"nombre"`
	VecesUsado int    `json:"vecesUsado"`
}

type ConsumoEspecie struct {
	Especie     string `json:"especie"`
	Medicamento string `json:"medicamento"`
	VecesUsado  int    `json:"vecesUsado"`
}

type VentaMedicamento struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
	Total    string `json:"precioTotalPorCantidad"`
}

type MedicationReportData struct {
	Medicamentos []models.Medication    `json:"medicamentos"`
	Estadisticas MedicationReportStats  `json:"estadisticas"`
	Graficos     MedicationReportCharts `json:"graficos"`
}

type MedicationReportStats struct {
	TotalMedicamentos          int                `json:"totalMedicamentos"`
	MedicamentosBajoStock      int                `json:"medicamentosBajoStock"`
	MedicamentosAgotados       int                `json:"medicamentosAgotados"`
	MedicamentosPorTipo        map[string]int     `json:"medicamentosPorTipo"`
	PromedioPrecioPorTipo      map[string]float64 `json:"promedioPrecioPorTipo"`
	MedicamentosMasSolicitados []NombreVecesUsado `json:"medicamentosMasSolicitados"`
	MedicamentosMasCaros       []NombrePrecio     `json:"medicamentosMasCaros"`
}

type MedicationReportCharts struct {
	StockPorMedicamento           []NombreStock        `json:"stockPorMedicamento"`
	MedicamentosPorTipo           []TipoCantidad       `json:"medicamentosPorTipo"`
	MedicamentosPorEstado         []EstadoCantidad     `json:"medicamentosPorEstado"`
	PrecioPromedioPorTipo         []TipoPrecioPromedio `json:"precioPromedioPorTipo"`
	ConsumoPorEspecie             []ConsumoEspecie     `json:"consumoPorEspecie"`
	CantidadVendidaPorMedicamento []VentaMedicamento   `json:"cantidadVendidaPorMedicamento"`
}

// MedicationReport builds the inventory report for the given filter.
func (s *ReportService) MedicationReport(ctx context.Context, filter ReportFilter) (*MedicationReportData, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var medications []models.Medication
	err := s.db.WithContext(ctx).
		Scopes(filter.scope("created_at")).
		Preload("Treatments").
		Preload("Treatments.Treatment").
		Preload("Treatments.Treatment.History.Pet").
		Order("estado ASC, nombre ASC").
		Find(&medications).Error
	if err != nil {
		log.Printf("[REPORT] medicamentos: query failed: %v", err)
		return BuildMedicationReport(nil), nil
	}

	return BuildMedicationReport(medications), nil
}

// BuildMedicationReport reduces fetched medications into the report shape.
// Type breakdowns cover every catalog category, including empty ones.
func BuildMedicationReport(medications []models.Medication) *MedicationReportData {
	if medications == nil {
		medications = []models.Medication{}
	}

	stats := MedicationReportStats{
		TotalMedicamentos:     len(medications),
		MedicamentosPorTipo:   map[string]int{},
		PromedioPrecioPorTipo: map[string]float64{},
	}

	typeTotals := map[string]decimal.Decimal{}
	for _, tipo := range models.TiposMedicamento {
		stats.MedicamentosPorTipo[tipo] = 0
		typeTotals[tipo] = decimal.Zero
	}

	inStock, depleted, expired := 0, 0, 0
	stockChart := make([]NombreStock, 0, len(medications))
	requested := make([]NombreVecesUsado, 0, len(medications))
	pricey := make([]NombrePrecio, 0, len(medications))
	sales := make([]VentaMedicamento, 0, len(medications))
	consumption := map[string]map[string]int{}

	for _, m := range medications {
		if m.Stock < LowStockThreshold && m.Status == models.MedicamentoEnStock {
			stats.MedicamentosBajoStock++
		}
		if m.Stock == 0 || m.Status == models.MedicamentoAgotado {
			stats.MedicamentosAgotados++
		}
		switch m.Status {
		case models.MedicamentoEnStock:
			inStock++
		case models.MedicamentoAgotado:
			depleted++
		case models.MedicamentoVencido:
			expired++
		}

		if _, known := stats.MedicamentosPorTipo[m.Type]; known {
			stats.MedicamentosPorTipo[m.Type]++
			typeTotals[m.Type] = typeTotals[m.Type].Add(m.Price)
		} else {
			stats.MedicamentosPorTipo[models.TipoOtro]++
			typeTotals[models.TipoOtro] = typeTotals[models.TipoOtro].Add(m.Price)
		}

		stockChart = append(stockChart, NombreStock{Nombre: m.Name, Stock: m.Stock})
		requested = append(requested, NombreVecesUsado{Nombre: m.Name, VecesUsado: len(m.Treatments)})
		pricey = append(pricey, NombrePrecio{Nombre: m.Name, Precio: m.Price.StringFixed(2)})

		soldQty := 0
		soldTotal := decimal.Zero
		for _, tm := range m.Treatments {
			soldQty += tm.Quantity
			soldTotal = soldTotal.Add(tm.UnitCost.Mul(decimal.NewFromInt(int64(tm.Quantity))))

			especie := tm.Treatment.History.Pet.Species
			if especie != "" {
				if consumption[especie] == nil {
					consumption[especie] = map[string]int{}
				}
				consumption[especie][m.Name]++
			}
		}
		sales = append(sales, VentaMedicamento{
			Nombre:   m.Name,
			Cantidad: soldQty,
			Total:    soldTotal.StringFixed(2),
		})
	}

	for tipo, n := range stats.MedicamentosPorTipo {
		if n > 0 {
			avg, _ := typeTotals[tipo].Div(decimal.NewFromInt(int64(n))).Round(2).Float64()
			stats.PromedioPrecioPorTipo[tipo] = avg
		} else {
			stats.PromedioPrecioPorTipo[tipo] = 0
		}
	}

	sort.SliceStable(requested, func(i, j int) bool { return requested[i].VecesUsado > requested[j].VecesUsado })
	if len(requested) > 10 {
		requested = requested[:10]
	}
	stats.MedicamentosMasSolicitados = requested

	sort.SliceStable(pricey, func(i, j int) bool {
		a, _ := decimal.NewFromString(pricey[i].Precio)
		b, _ := decimal.NewFromString(pricey[j].Precio)
		return a.GreaterThan(b)
	})
	if len(pricey) > 10 {
		pricey = pricey[:10]
	}
	stats.MedicamentosMasCaros = pricey

	typeChart := make([]TipoCantidad, 0, len(models.TiposMedicamento))
	avgChart := make([]TipoPrecioPromedio, 0, len(models.TiposMedicamento))
	for _, tipo := range models.TiposMedicamento {
		typeChart = append(typeChart, TipoCantidad{Tipo: tipo, Cantidad: stats.MedicamentosPorTipo[tipo]})
		avgChart = append(avgChart, TipoPrecioPromedio{Tipo: tipo, PrecioPromedio: stats.PromedioPrecioPorTipo[tipo]})
	}

	consumptionChart := make([]ConsumoEspecie, 0)
	speciesKeys := make([]string, 0, len(consumption))
	for especie := range consumption {
		speciesKeys = append(speciesKeys, especie)
	}
	sort.Strings(speciesKeys)
	for _, especie := range speciesKeys {
		names := make([]string, 0, len(consumption[especie]))
		for name := range consumption[especie] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			consumptionChart = append(consumptionChart, ConsumoEspecie{
				Especie:     especie,
				Medicamento: name,
				VecesUsado:  consumption[especie][name],
			})
		}
	}

	return &MedicationReportData{
		Medicamentos: medications,
		Estadisticas: stats,
		Graficos: MedicationReportCharts{
			StockPorMedicamento: stockChart,
			MedicamentosPorTipo: typeChart,
			MedicamentosPorEstado: []EstadoCantidad{
				{Estado: "En Stock", Cantidad: inStock},
				{Estado: "Agotado", Cantidad: depleted},
				{Estado: "Vencido", Cantidad: expired},
			},
			PrecioPromedioPorTipo:         avgChart,
			ConsumoPorEspecie:             consumptionChart,
			CantidadVendidaPorMedicamento: sales,
		},
	}
}
