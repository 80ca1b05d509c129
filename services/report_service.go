// services/report_service.go
package services

import (
	"gorm.io/gorm"
)

// ReportService produces the per-domain reports, the dashboard statistics
// and the activity time series. It is strictly read-only: no method mutates
// the store, and none of them performs cache invalidation; that belongs to
// the presentation layer.
//
// Failure contract for the eight domain reports: a store error is logged
// with domain context and the zeroed report shape is returned with a nil
// error. Only an invalid filter produces an error.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

func notRemoved(db *gorm.DB) *gorm.DB {
	return db.Where("estado <> 0")
}
