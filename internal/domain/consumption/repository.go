package consumption

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ExistsForStudentOnDate(ctx context.Context, studentID int64, date time.Time) (bool, error)
	StudentExists(ctx context.Context, studentID int64) (bool, error)
	PackageExists(ctx context.Context, packageID int64) (bool, error)
	// CreateRecord returns ErrConsumptionExists when the store rejects a
	// second record for the same student and date.
	CreateRecord(ctx context.Context, record *Record) error
	ListByStudent(ctx context.Context, studentID int64) ([]Record, error)
}
