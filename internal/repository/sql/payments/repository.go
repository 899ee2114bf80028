package payments

import (
	"context"
	"errors"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	paymentsdomain "cafeteria-qr-go/internal/domain/payments"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SQLRepository struct {
	db *gorm.DB
}

func NewSQL(db *gorm.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Transaction(ctx context.Context, fn func(paymentsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLRepository{db: tx})
	})
}

func (r *SQLRepository) ListPayments(ctx context.Context) ([]paymentsdomain.Payment, error) {
	var items []paymentsdomain.Payment
	if err := r.db.WithContext(ctx).Order("id_pago asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLRepository) CreatePayment(ctx context.Context, payment *paymentsdomain.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error
}

func (r *SQLRepository) GetStudent(ctx context.Context, id int64) (*studentsdomain.Student, error) {
	var student studentsdomain.Student
	if err := r.db.WithContext(ctx).Where("id_alumno = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, studentsdomain.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *SQLRepository) PackageExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&packagesdomain.Package{}).Where("id_paquete = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
