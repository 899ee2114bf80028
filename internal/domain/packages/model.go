package packages

import "github.com/shopspring/decimal"

// Package is a purchasable bundle of meals.
type Package struct {
	ID             int64           `gorm:"column:id_paquete;primaryKey;autoIncrement"`
	Description    string          `gorm:"column:descripcion;type:text;not null"`
	AvailableMeals int             `gorm:"column:comidas_disponibles;not null"`
	Price          decimal.Decimal `gorm:"column:precio;type:numeric(10,2);not null"`
}

func (Package) TableName() string {
	return "paquete"
}
