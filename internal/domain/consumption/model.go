package consumption

import (
	"time"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
)

// Record is evidence that a student used a meal package on a given date.
// The (StudentID, Date) pair is unique.
type Record struct {
	ID        int64     `gorm:"column:id_registro;primaryKey;autoIncrement"`
	StudentID int64     `gorm:"column:id_alumno;not null;uniqueIndex:idx_registro_consumo_alumno_fecha,priority:1"`
	PackageID int64     `gorm:"column:id_paquete;not null;index"`
	Date      time.Time `gorm:"column:fecha;type:date;not null;uniqueIndex:idx_registro_consumo_alumno_fecha,priority:2"`

	Student studentsdomain.Student `gorm:"foreignKey:StudentID;references:ID"`
	Package packagesdomain.Package `gorm:"foreignKey:PackageID;references:ID"`
}

func (Record) TableName() string {
	return "registro_consumo"
}

type RegisterInput struct {
	StudentID int64
	PackageID int64
	Date      time.Time
}

// DateOnly drops the clock part so records compare by calendar day.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
