package user

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        uint
	Email     string
	Password  string
	FullName  *string
	Role      Role
	CreatedAt time.Time
}
