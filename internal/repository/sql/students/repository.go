package students

import (
	"context"
	"errors"

	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"gorm.io/gorm"
)

type SQLRepository struct {
	db *gorm.DB
}

func NewSQL(db *gorm.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) ListStudents(ctx context.Context) ([]studentsdomain.Student, error) {
	var items []studentsdomain.Student
	if err := r.db.WithContext(ctx).Order("id_alumno asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
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
