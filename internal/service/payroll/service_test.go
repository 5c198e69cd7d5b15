package payroll

import (
	"context"
	"sync"
	"testing"

	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memoryPayrollRepository struct {
	mu      sync.Mutex
	order   []string
	records map[string]payroll.Record
}

func newMemoryPayrollRepository() *memoryPayrollRepository {
	return &memoryPayrollRepository{records: make(map[string]payroll.Record)}
}

func (m *memoryPayrollRepository) List(ctx context.Context) ([]payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]payroll.Record, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.records[id]; ok {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (m *memoryPayrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (m *memoryPayrollRepository) ListCodes(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	codes := make([]string, 0, len(m.records))
	for _, rec := range m.records {
		codes = append(codes, rec.PayrollCode)
	}
	return codes, nil
}

func (m *memoryPayrollRepository) ExistsByCode(ctx context.Context, payrollCode string, excludeID *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rec := range m.records {
		if rec.PayrollCode == payrollCode && (excludeID == nil || *excludeID != id) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryPayrollRepository) Create(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return rec, nil
}

func (m *memoryPayrollRepository) Update(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *memoryPayrollRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func sampleRequest() payroll.RecordRequest {
	return payroll.RecordRequest{
		EmployeeCode:    "EMP001",
		EmployeeName:    "Ann Lee",
		Department:      "Engineering",
		PayPeriodStart:  "2024-03-01",
		PayPeriodEnd:    "2024-03-31",
		BaseSalary:      decimal.NewFromInt(5000),
		Overtime:        decimal.NewFromInt(200),
		Bonus:           decimal.NewFromInt(100),
		TaxWithholding:  decimal.NewFromInt(800),
		HealthInsurance: decimal.NewFromInt(150),
		Retirement401k:  decimal.NewFromInt(250),
	}
}

func TestPayrollService_CreateRecomputesTotals(t *testing.T) {
	svc := NewPayrollService(passthroughTransactor{}, newMemoryPayrollRepository())

	req := sampleRequest()
	req.NetPay = decimal.NewFromInt(1)
	req.GrossPay = decimal.NewFromInt(1)

	resp, err := svc.CreateRecord(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "PR0001", resp.PayrollCode)
	assert.Equal(t, "5300.00", resp.GrossPay.StringFixed(2))
	assert.Equal(t, "1200.00", resp.TotalDeductions.StringFixed(2))
	assert.Equal(t, "4100.00", resp.NetPay.StringFixed(2))
	assert.Equal(t, "Draft", resp.Status)
	assert.Equal(t, "2024-03-01", resp.PayPeriodStart)
}

func TestPayrollService_CodeSequence(t *testing.T) {
	svc := NewPayrollService(passthroughTransactor{}, newMemoryPayrollRepository())
	ctx := context.Background()

	req := sampleRequest()
	req.PayrollCode = "PR0041"
	_, err := svc.CreateRecord(ctx, req)
	require.NoError(t, err)

	next, err := svc.CreateRecord(ctx, sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "PR0042", next.PayrollCode)

	_, err = svc.CreateRecord(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollCodeExists)
}

func TestPayrollService_InvalidPeriod(t *testing.T) {
	svc := NewPayrollService(passthroughTransactor{}, newMemoryPayrollRepository())

	req := sampleRequest()
	req.PayPeriodEnd = "2024-02-01"
	_, err := svc.CreateRecord(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPayrollService_UpdateRecomputes(t *testing.T) {
	svc := NewPayrollService(passthroughTransactor{}, newMemoryPayrollRepository())
	ctx := context.Background()

	created, err := svc.CreateRecord(ctx, sampleRequest())
	require.NoError(t, err)

	req := sampleRequest()
	req.Bonus = decimal.NewFromInt(600)
	req.Status = "Paid"
	req.PayDate = "2024-04-05"
	updated, err := svc.UpdateRecord(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.PayrollCode, updated.PayrollCode)
	assert.Equal(t, "5800.00", updated.GrossPay.StringFixed(2))
	assert.Equal(t, "4600.00", updated.NetPay.StringFixed(2))
	assert.Equal(t, "Paid", updated.Status)
	assert.Equal(t, "2024-04-05", updated.PayDate)
}

func TestPayrollService_NotFound(t *testing.T) {
	svc := NewPayrollService(passthroughTransactor{}, newMemoryPayrollRepository())
	ctx := context.Background()

	_, err := svc.GetRecord(ctx, "42")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	missing := uuid.Must(uuid.NewV7()).String()
	_, err = svc.UpdateRecord(ctx, missing, sampleRequest())
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	assert.ErrorIs(t, svc.DeleteRecord(ctx, missing), payroll.ErrPayrollRecordNotFound)
}
