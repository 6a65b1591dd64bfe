package models

// Activity is a camp activity campers can sign up for.
type Activity struct {
	ID         uint `gorm:"primaryKey"`
	Name       string
	Difficulty int

	Signups []Signup `gorm:"constraint:OnDelete:CASCADE"`
}

type Camper struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null" validate:"required"`
	Age  int    `validate:"min=8,max=18"`

	Signups []Signup `gorm:"constraint:OnDelete:CASCADE"`
}

// Signup places one camper in one activity at a given hour of the day.
type Signup struct {
	ID         uint `gorm:"primaryKey"`
	Time       int  `validate:"min=0,max=23"`
	CamperID   uint `gorm:"index;not null" validate:"required"`
	ActivityID uint `gorm:"index;not null" validate:"required"`

	Camper   Camper   `validate:"-"`
	Activity Activity `validate:"-"`
}

const (
	MinAge = 8
	MaxAge = 18

	FirstHour = 0
	LastHour  = 23
)

// AgeInRange reports whether age is an acceptable camper age.
func AgeInRange(age int) bool {
	return age >= MinAge && age <= MaxAge
}
