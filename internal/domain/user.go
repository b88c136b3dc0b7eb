package domain

import "time"

// User is a resident of the complex. Identity management is external to this
// service; only existence and the active flag matter here.
type User struct {
	ID          int64
	Name        string
	Email       string
	CPF         string
	Phone       *string
	HouseNumber string
	Street      *string
	Active      bool
	Admin       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
