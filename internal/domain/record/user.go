package record

import "github.com/hms/hms/internal/platform/storage"

// User roles.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
)

// User maps to the users table and doubles as the session identity shape
// consumed by the auth gate.
type User struct {
	UserID   int64
	Username string
	Password string
	Role     string
}

func (u *User) Table() string { return "users" }

func (u *User) ID() int64 { return u.UserID }

func (u *User) SetID(id int64) { u.UserID = id }

func (u *User) Validate() (bool, string) {
	if isBlank(u.Username) {
		return false, "Username is required"
	}
	switch u.Role {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return true, "Valid"
	}
	return false, "Invalid role"
}

func (u *User) Row() storage.Row {
	return storage.Row{
		"id":       u.UserID,
		"username": u.Username,
		"password": u.Password,
		"role":     u.Role,
	}
}

// UserFromRow decodes a users row; missing keys default to empty.
func UserFromRow(r storage.Row) *User {
	return &User{
		UserID:   rowInt64(r, "id"),
		Username: rowString(r, "username"),
		Password: rowString(r, "password"),
		Role:     rowString(r, "role"),
	}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsDoctor() bool { return u.Role == RoleDoctor }

func (u *User) IsReceptionist() bool { return u.Role == RoleReceptionist }
