package packages

import (
	"context"
	"errors"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	"gorm.io/gorm"
)

type SQLRepository struct {
	db *gorm.DB
}

func NewSQL(db *gorm.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) ListPackages(ctx context.Context) ([]packagesdomain.Package, error) {
	var items []packagesdomain.Package
	if err := r.db.WithContext(ctx).Order("id_paquete asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLRepository) GetPackage(ctx context.Context, id int64) (*packagesdomain.Package, error) {
	var item packagesdomain.Package
	if err := r.db.WithContext(ctx).Where("id_paquete = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, packagesdomain.ErrPackageNotFound
		}
		return nil, err
	}
	return &item, nil
}
