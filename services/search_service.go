// services/search_service.go
//
// Cross-entity search for the admin top bar. Every domain runs its own
// query concurrently and the results come back in a fixed domain order so
// the list is stable across calls.
package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"vetcare-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoriaTodo         = "todo"
	CategoriaUsuarios     = "usuarios"
	CategoriaMascotas     = "mascotas"
	CategoriaServicios    = "servicios"
	CategoriaMedicamentos = "medicamentos"
	CategoriaReservas     = "reservas"
	CategoriaTratamientos = "tratamientos"
	CategoriaPagos        = "pagos"
)

// SearchResult is one hit in any domain. Ruta points at the admin page for
// the matched record.
type SearchResult struct {
	Tipo      string                 `json:"tipo"`
	ID        uuid.UUID              `json:"id"`
	Titulo    string                 `json:"titulo"`
	Subtitulo string                 `json:"subtitulo,omitempty"`
	Estado    int                    `json:"estado"`
	Ruta      string                 `json:"ruta"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type searcher struct {
	category string
	run      func(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error)
}

// SearchService fans a text query out across the seven searchable domains.
type SearchService struct {
	db        *gorm.DB
	searchers []searcher
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{
		db: db,
		searchers: []searcher{
			{CategoriaUsuarios, searchUsers},
			{CategoriaMascotas, searchPets},
			{CategoriaServicios, searchServices},
			{CategoriaMedicamentos, searchMedications},
			{CategoriaReservas, searchReservations},
			{CategoriaTratamientos, searchTreatments},
			{CategoriaPagos, searchPayments},
		},
	}
}

// Search runs the domain searchers matching the category and concatenates
// their hits in registration order. An empty category behaves like "todo".
// If any domain fails, the whole search logs and comes back empty rather
// than returning a partial list.
func (s *SearchService) Search(ctx context.Context, query, category string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	buckets := make([][]SearchResult, len(s.searchers))
	errs := make([]error, len(s.searchers))
	var wg sync.WaitGroup
	for i, sr := range s.searchers {
		if category != "" && category != CategoriaTodo && category != sr.category {
			continue
		}
		wg.Add(1)
		go func(i int, sr searcher) {
			defer wg.Done()
			hits, err := sr.run(ctx, s.db, query)
			if err != nil {
				errs[i] = err
				return
			}
			buckets[i] = hits
		}(i, sr)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			log.Printf("[SEARCH] %s: %v", s.searchers[i].category, err)
			return []SearchResult{}, nil
		}
	}

	results := make([]SearchResult, 0)
	for _, hits := range buckets {
		results = append(results, hits...)
	}
	return results, nil
}

func pattern(query string) string {
	return "%" + query + "%"
}

// compoundNameTerms splits a multi-word query into first-name and paternal
// surname patterns so "Ana Perez" matches across both columns. Single-token
// queries get no compound clause.
func compoundNameTerms(query string) (first, last string, ok bool) {
	parts := strings.Fields(query)
	if len(parts) < 2 {
		return "", "", false
	}
	return pattern(parts[0]), pattern(parts[1]), true
}

func searchUsers(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	tx := db.WithContext(ctx).Where("estado <> 0")

	cond := db.Session(&gorm.Session{NewDB: true}).
		Where("name ILIKE ?", p).
		Or("apellido_pat ILIKE ?", p).
		Or("apellido_mat ILIKE ?", p).
		Or("email ILIKE ?", p)

	if first, last, ok := compoundNameTerms(query); ok {
		cond = cond.Or("name ILIKE ? AND apellido_pat ILIKE ?", first, last)
	}

	var users []models.User
	if err := tx.Where(cond).Find(&users).Error; err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, SearchResult{
			Tipo:      "usuario",
			ID:        u.ID,
			Titulo:    u.FullName(),
			Subtitulo: u.Email,
			Estado:    u.Status,
			Ruta:      "/admin/usuarios/" + u.ID.String(),
			Metadata:  map[string]interface{}{"rol": u.Role},
		})
	}
	return results, nil
}

func searchPets(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	var pets []models.Pet
	err := db.WithContext(ctx).
		Where("estado <> 0").
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("nombre ILIKE ?", p).
			Or("raza ILIKE ?", p)).
		Preload("Owner").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(pets))
	for _, pet := range pets {
		subtitle := "Sin dueño asignado"
		if pet.Owner != nil {
			subtitle = "Dueño: " + pet.Owner.FullName()
		}
		sterilized := "No"
		if pet.Sterilized != nil && *pet.Sterilized {
			sterilized = "Sí"
		}
		results = append(results, SearchResult{
			Tipo:      "mascota",
			ID:        pet.ID,
			Titulo:    pet.Name,
			Subtitulo: subtitle,
			Estado:    pet.Status,
			Ruta:      "/admin/mascotas/" + pet.ID.String(),
			Metadata: map[string]interface{}{
				"especie":      pet.Species,
				"raza":         pet.Breed,
				"peso":         pet.Weight,
				"esterilizado": sterilized,
			},
		})
	}
	return results, nil
}

func searchServices(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	var services []models.Service
	err := db.WithContext(ctx).
		Where("estado <> 0").
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("nombre ILIKE ?", p).
			Or("descripcion ILIKE ?", p)).
		Find(&services).Error
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(services))
	for _, svc := range services {
		results = append(results, SearchResult{
			Tipo:      "servicio",
			ID:        svc.ID,
			Titulo:    svc.Name,
			Subtitulo: svc.Description,
			Estado:    svc.Status,
			Ruta:      "/admin/servicios/" + svc.ID.String(),
			Metadata: map[string]interface{}{
				"precio":      svc.Price.StringFixed(2),
				"descripcion": svc.Description,
			},
		})
	}
	return results, nil
}

func searchMedications(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	var medications []models.Medication
	err := db.WithContext(ctx).
		Where("estado <> 0").
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("nombre ILIKE ?", p).
			Or("descripcion ILIKE ?", p).
			Or("codigo ILIKE ?", p)).
		Find(&medications).Error
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(medications))
	for _, m := range medications {
		desc := "Sin descripción"
		if m.Description != nil {
			desc = *m.Description
		}
		results = append(results, SearchResult{
			Tipo:      "medicamento",
			ID:        m.ID,
			Titulo:    m.Name,
			Subtitulo: m.Type + " - " + desc,
			Estado:    m.Status,
			Ruta:      "/admin/medicamentos/" + m.ID.String(),
			Metadata: map[string]interface{}{
				"stock":  m.Stock,
				"precio": m.Price.StringFixed(2),
				"tipo":   m.Type,
				"codigo": m.Code,
			},
		})
	}
	return results, nil
}

func searchReservations(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	var reservations []models.Reservation
	err := db.WithContext(ctx).
		Where("reservations.estado <> 0").
		Joins("JOIN users ON users.id = reservations.user_id").
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("reservations.detalles ILIKE ?", p).
			Or("users.name ILIKE ?", p).
			Or("users.email ILIKE ?", p)).
		Preload("User").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(reservations))
	for _, r := range reservations {
		results = append(results, SearchResult{
			Tipo:      "reserva",
			ID:        r.ID,
			Titulo:    "Reserva: " + r.User.FullName(),
			Subtitulo: r.Details,
			Estado:    r.Status,
			Ruta:      "/admin/reservas/" + r.ID.String(),
			Metadata: map[string]interface{}{
				"fecha":    r.ScheduledAt,
				"email":    r.User.Email,
				"detalles": r.Details,
			},
		})
	}
	return results, nil
}

func searchTreatments(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	var treatments []models.Treatment
	err := db.WithContext(ctx).
		Where("treatments.estado <> 0").
		Joins("JOIN medical_histories ON medical_histories.pet_id = treatments.medical_history_id").
		Joins("JOIN pets ON pets.id = medical_histories.pet_id").
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("treatments.descripcion ILIKE ?", p).
			Or("treatments.diagnostico ILIKE ?", p).
			Or("pets.nombre ILIKE ?", p)).
		Preload("History.Pet").
		Preload("Payment").
		Find(&treatments).Error
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(treatments))
	for _, t := range treatments {
		paid := "No"
		if t.Payment != nil {
			paid = "Sí"
		}
		results = append(results, SearchResult{
			Tipo:      "tratamiento",
			ID:        t.ID,
			Titulo:    t.Description,
			Subtitulo: "Mascota: " + t.History.Pet.Name + " (" + t.History.Pet.Species + ")",
			Estado:    t.Status,
			Ruta:      "/admin/tratamientos/" + t.ID.String(),
			Metadata: map[string]interface{}{
				"diagnostico": t.Diagnosis,
				"mascota":     t.History.Pet.Name,
				"especie":     t.History.Pet.Species,
				"raza":        t.History.Pet.Breed,
				"pagado":      paid,
			},
		})
	}
	return results, nil
}

func searchPayments(ctx context.Context, db *gorm.DB, query string) ([]SearchResult, error) {
	p := pattern(query)
	var payments []models.Payment
	err := db.WithContext(ctx).
		Where("payments.estado <> 0").
		Joins("JOIN treatments ON treatments.id = payments.treatment_id").
		Where(db.Session(&gorm.Session{NewDB: true}).
			Where("payments.detalle ILIKE ?", p).
			Or("treatments.descripcion ILIKE ?", p)).
		Preload("Treatment").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(payments))
	for _, pay := range payments {
		results = append(results, SearchResult{
			Tipo:      "pago",
			ID:        pay.ID,
			Titulo:    "Pago #" + shortID(pay.ID),
			Subtitulo: pay.Treatment.Description,
			Estado:    pay.Status,
			Ruta:      "/admin/pagos/" + pay.ID.String(),
			Metadata: map[string]interface{}{
				"total":      pay.Total.StringFixed(2),
				"metodoPago": pay.Method,
			},
		})
	}
	return results, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
