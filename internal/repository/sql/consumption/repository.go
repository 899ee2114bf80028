package consumption

import (
	"context"
	"time"

	consumptiondomain "cafeteria-qr-go/internal/domain/consumption"
	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"cafeteria-qr-go/internal/repository/sql/sqlerr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SQLRepository struct {
	db *gorm.DB
}

func NewSQL(db *gorm.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Transaction(ctx context.Context, fn func(consumptiondomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLRepository{db: tx})
	})
}

func (r *SQLRepository) ExistsForStudentOnDate(ctx context.Context, studentID int64, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&consumptiondomain.Record{}).
		Where("id_alumno = ? AND fecha = ?", studentID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLRepository) StudentExists(ctx context.Context, studentID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&studentsdomain.Student{}).Where("id_alumno = ?", studentID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLRepository) PackageExists(ctx context.Context, packageID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&packagesdomain.Package{}).Where("id_paquete = ?", packageID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SQLRepository) CreateRecord(ctx context.Context, record *consumptiondomain.Record) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
	if sqlerr.IsUniqueViolation(err) {
		return consumptiondomain.ErrConsumptionExists
	}
	return err
}

func (r *SQLRepository) ListByStudent(ctx context.Context, studentID int64) ([]consumptiondomain.Record, error) {
	var items []consumptiondomain.Record
	if err := r.db.WithContext(ctx).
		Where("id_alumno = ?", studentID).
		Order("fecha desc").
		Order("id_registro desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
