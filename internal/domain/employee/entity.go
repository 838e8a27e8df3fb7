package employee

import (
	"time"
)

type Employee struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Department string
	Age        int
	Gender     Gender
	IsAdmin    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == Male || g == Female
}
