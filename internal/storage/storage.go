package storage

import "ignitionPayout/internal/model"

// Storage defines a sink for payout reports.
type Storage interface {
	PutReports(reports []model.Report) error
}
