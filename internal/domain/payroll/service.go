package payroll

import "context"

// PayrollService defines business logic for the payroll ledger
type PayrollService interface {
	ListRecords(ctx context.Context) ([]RecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	// CreateRecord recomputes derived totals before persisting
	CreateRecord(ctx context.Context, req RecordRequest) (RecordResponse, error)
	UpdateRecord(ctx context.Context, id string, req RecordRequest) (RecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error
}
