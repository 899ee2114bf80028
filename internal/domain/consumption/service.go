package consumption

import (
	"context"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register stores one consumption record for the student on input.Date.
//
// The same-day check runs before the student and package lookups, so a
// duplicate is reported as ErrConsumptionExists even when the package id is
// wrong. The whole sequence runs in one transaction; the unique index on
// (student, date) catches requests that race past the check.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Record, error) {
	date := DateOnly(input.Date)

	var result Record
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.ExistsForStudentOnDate(ctx, input.StudentID, date)
		if err != nil {
			return err
		}
		if exists {
			return ErrConsumptionExists
		}

		studentExists, err := tx.StudentExists(ctx, input.StudentID)
		if err != nil {
			return err
		}
		if !studentExists {
			return studentsdomain.ErrStudentNotFound
		}

		packageExists, err := tx.PackageExists(ctx, input.PackageID)
		if err != nil {
			return err
		}
		if !packageExists {
			return packagesdomain.ErrPackageNotFound
		}

		record := Record{
			StudentID: input.StudentID,
			PackageID: input.PackageID,
			Date:      date,
		}
		if err := tx.CreateRecord(ctx, &record); err != nil {
			return err
		}

		result = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID int64) ([]Record, error) {
	exists, err := s.repo.StudentExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, studentsdomain.ErrStudentNotFound
	}
	return s.repo.ListByStudent(ctx, studentID)
}
