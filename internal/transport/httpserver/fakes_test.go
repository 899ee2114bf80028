package httpserver

import (
	"context"
	"errors"
	"sort"
	"time"

	consumptiondomain "cafeteria-qr-go/internal/domain/consumption"
	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	paymentsdomain "cafeteria-qr-go/internal/domain/payments"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
)

var errStoreDown = errors.New("connection refused: 10.0.0.5:5432")

// fakeStore backs every repository interface with in-memory slices.
type fakeStore struct {
	students []studentsdomain.Student
	packages []packagesdomain.Package
	payments []paymentsdomain.Payment
	records  []consumptiondomain.Record
	nextID   int64
	failing  bool
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) studentByID(id int64) (*studentsdomain.Student, bool) {
	for _, student := range s.students {
		if student.ID == id {
			found := student
			return &found, true
		}
	}
	return nil, false
}

func (s *fakeStore) packageExists(id int64) bool {
	for _, item := range s.packages {
		if item.ID == id {
			return true
		}
	}
	return false
}

type studentsRepo struct{ *fakeStore }

func (r studentsRepo) ListStudents(ctx context.Context) ([]studentsdomain.Student, error) {
	if r.failing {
		return nil, errStoreDown
	}
	return append([]studentsdomain.Student(nil), r.students...), nil
}

func (r studentsRepo) GetStudent(ctx context.Context, id int64) (*studentsdomain.Student, error) {
	student, ok := r.studentByID(id)
	if !ok {
		return nil, studentsdomain.ErrStudentNotFound
	}
	return student, nil
}

type packagesRepo struct{ *fakeStore }

func (r packagesRepo) ListPackages(ctx context.Context) ([]packagesdomain.Package, error) {
	return append([]packagesdomain.Package(nil), r.packages...), nil
}

func (r packagesRepo) GetPackage(ctx context.Context, id int64) (*packagesdomain.Package, error) {
	for _, item := range r.packages {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, packagesdomain.ErrPackageNotFound
}

type paymentsRepo struct{ *fakeStore }

func (r paymentsRepo) Transaction(ctx context.Context, fn func(paymentsdomain.Repository) error) error {
	snapshot := len(r.payments)
	if err := fn(r); err != nil {
		r.payments = r.payments[:snapshot]
		return err
	}
	return nil
}

func (r paymentsRepo) ListPayments(ctx context.Context) ([]paymentsdomain.Payment, error) {
	return append([]paymentsdomain.Payment(nil), r.payments...), nil
}

func (r paymentsRepo) CreatePayment(ctx context.Context, payment *paymentsdomain.Payment) error {
	payment.ID = r.id()
	r.payments = append(r.payments, *payment)
	return nil
}

func (r paymentsRepo) GetStudent(ctx context.Context, id int64) (*studentsdomain.Student, error) {
	return studentsRepo(r).GetStudent(ctx, id)
}

func (r paymentsRepo) PackageExists(ctx context.Context, id int64) (bool, error) {
	return r.packageExists(id), nil
}

type consumptionRepo struct{ *fakeStore }

func (r consumptionRepo) Transaction(ctx context.Context, fn func(consumptiondomain.Repository) error) error {
	snapshot := len(r.records)
	if err := fn(r); err != nil {
		r.records = r.records[:snapshot]
		return err
	}
	return nil
}

func (r consumptionRepo) ExistsForStudentOnDate(ctx context.Context, studentID int64, date time.Time) (bool, error) {
	if r.failing {
		return false, errStoreDown
	}
	for _, record := range r.records {
		if record.StudentID == studentID && record.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r consumptionRepo) StudentExists(ctx context.Context, studentID int64) (bool, error) {
	_, ok := r.studentByID(studentID)
	return ok, nil
}

func (r consumptionRepo) PackageExists(ctx context.Context, packageID int64) (bool, error) {
	return r.packageExists(packageID), nil
}

func (r consumptionRepo) CreateRecord(ctx context.Context, record *consumptiondomain.Record) error {
	record.ID = r.id()
	r.records = append(r.records, *record)
	return nil
}

func (r consumptionRepo) ListByStudent(ctx context.Context, studentID int64) ([]consumptiondomain.Record, error) {
	var result []consumptiondomain.Record
	for _, record := range r.records {
		if record.StudentID == studentID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}
