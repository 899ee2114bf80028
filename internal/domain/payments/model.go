package payments

import (
	"time"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID                 int64           `gorm:"column:id_pago;primaryKey;autoIncrement"`
	Date               time.Time       `gorm:"column:fecha;type:date;not null"`
	Amount             decimal.Decimal `gorm:"column:monto;type:numeric(10,2);not null"`
	PackageID          int64           `gorm:"column:id_paquete;not null;index"`
	ResponsiblePartyID int64           `gorm:"column:id_responsable;not null;index"`
	StudentID          int64           `gorm:"column:id_alumno;not null;index"`

	Package          packagesdomain.Package           `gorm:"foreignKey:PackageID;references:ID"`
	ResponsibleParty studentsdomain.ResponsibleParty `gorm:"foreignKey:ResponsiblePartyID;references:ID"`
	Student          studentsdomain.Student          `gorm:"foreignKey:StudentID;references:ID"`
}

func (Payment) TableName() string {
	return "pago"
}

type CreateInput struct {
	StudentID int64
	PackageID int64
	Amount    decimal.Decimal
	Date      time.Time
}
