package payments

import (
	"context"

	studentsdomain "cafeteria-qr-go/internal/domain/students"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListPayments(ctx context.Context) ([]Payment, error)
	CreatePayment(ctx context.Context, payment *Payment) error
	GetStudent(ctx context.Context, id int64) (*studentsdomain.Student, error)
	PackageExists(ctx context.Context, id int64) (bool, error)
}
