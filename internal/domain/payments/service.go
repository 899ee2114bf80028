package payments

import (
	"context"
	"time"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPayments(ctx context.Context) ([]Payment, error) {
	return s.repo.ListPayments(ctx)
}

// CreatePayment records a payment billed to the student's responsible party.
func (s *Service) CreatePayment(ctx context.Context, input CreateInput) (*Payment, error) {
	if input.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	var result Payment
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		student, err := tx.GetStudent(ctx, input.StudentID)
		if err != nil {
			return err
		}

		exists, err := tx.PackageExists(ctx, input.PackageID)
		if err != nil {
			return err
		}
		if !exists {
			return packagesdomain.ErrPackageNotFound
		}

		payment := Payment{
			Date:               dateOnly(input.Date),
			Amount:             input.Amount.Round(2),
			PackageID:          input.PackageID,
			ResponsiblePartyID: student.ResponsiblePartyID,
			StudentID:          student.ID,
		}
		if err := tx.CreatePayment(ctx, &payment); err != nil {
			return err
		}

		result = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
