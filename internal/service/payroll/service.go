package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/emsportal/ems/internal/pkg/validator"
	"github.com/emsportal/ems/internal/repository/postgresql"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	tx          postgresql.Transactor
	payrollRepo payroll.PayrollRepository
}

func NewPayrollService(tx postgresql.Transactor, payrollRepo payroll.PayrollRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:          tx,
		payrollRepo: payrollRepo,
	}
}

// ListRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRecords(ctx context.Context) ([]payroll.RecordResponse, error) {
	records, err := s.payrollRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.NewRecordResponse(rec))
	}
	return responses, nil
}

// GetRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
	}
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.NewRecordResponse(rec), nil
}

// toRecord validates the request and returns a record with totals derived from its amounts.
func toRecord(req payroll.RecordRequest) (payroll.Record, error) {
	if err := req.Validate(); err != nil {
		return payroll.Record{}, err
	}
	rec := req.ToRecord()
	if rec.PayPeriodStart != nil && rec.PayPeriodEnd != nil && rec.PayPeriodEnd.Before(*rec.PayPeriodStart) {
		return payroll.Record{}, payroll.ErrInvalidPeriod
	}
	rec.PayrollCode = strings.TrimSpace(rec.PayrollCode)
	return rec, nil
}

// CreateRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateRecord(ctx context.Context, req payroll.RecordRequest) (payroll.RecordResponse, error) {
	rec, err := toRecord(req)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to generate payroll id: %w", err)
	}
	rec.ID = id.String()

	var created payroll.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if rec.PayrollCode == "" {
			codes, err := s.payrollRepo.ListCodes(ctx)
			if err != nil {
				return err
			}
			rec.PayrollCode = payroll.NextCode(codes)
		} else {
			exists, err := s.payrollRepo.ExistsByCode(ctx, rec.PayrollCode, nil)
			if err != nil {
				return err
			}
			if exists {
				return payroll.ErrPayrollCodeExists
			}
		}

		created, err = s.payrollRepo.Create(ctx, rec)
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	slog.Info("Payroll record created", "payroll_id", created.ID, "payroll_code", created.PayrollCode, "net_pay", created.NetPay.StringFixed(2))
	return payroll.NewRecordResponse(created), nil
}

// UpdateRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateRecord(ctx context.Context, id string, req payroll.RecordRequest) (payroll.RecordResponse, error) {
	if !validator.IsValidUUID(id) {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
	}
	rec, err := toRecord(req)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	var updated payroll.Record
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt

		switch {
		case rec.PayrollCode == "":
			rec.PayrollCode = existing.PayrollCode
		case rec.PayrollCode != existing.PayrollCode:
			exists, err := s.payrollRepo.ExistsByCode(ctx, rec.PayrollCode, &existing.ID)
			if err != nil {
				return err
			}
			if exists {
				return payroll.ErrPayrollCodeExists
			}
		}

		updated, err = s.payrollRepo.Update(ctx, rec)
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.NewRecordResponse(updated), nil
}

// DeleteRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayrollRecordNotFound
	}
	if err := s.payrollRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Payroll record deleted", "payroll_id", id)
	return nil
}
