package students

// ResponsibleParty is the guardian who pays for one or more students.
type ResponsibleParty struct {
	ID        int64  `gorm:"column:id_responsable;primaryKey;autoIncrement"`
	FirstName string `gorm:"column:nombre;size:100;not null"`
	LastName  string `gorm:"column:apellido;size:100;not null"`
	Phone     string `gorm:"column:celular;size:15;not null"`
}

func (ResponsibleParty) TableName() string {
	return "responsable"
}

type Student struct {
	ID                 int64   `gorm:"column:id_alumno;primaryKey;autoIncrement"`
	FirstName          string  `gorm:"column:nombre;size:100;not null"`
	LastName           string  `gorm:"column:apellido;size:100;not null"`
	Grade              *string `gorm:"column:grado;size:50"`
	ResponsiblePartyID int64   `gorm:"column:id_responsable;not null;index"`

	ResponsibleParty ResponsibleParty `gorm:"foreignKey:ResponsiblePartyID;references:ID"`
}

func (Student) TableName() string {
	return "alumno"
}
