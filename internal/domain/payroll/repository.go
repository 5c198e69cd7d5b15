package payroll

import "context"

type PayrollRepository interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	ListCodes(ctx context.Context) ([]string, error)
	ExistsByCode(ctx context.Context, payrollCode string, excludeID *string) (bool, error)
	Create(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	Delete(ctx context.Context, id string) error
}
