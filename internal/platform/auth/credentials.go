package auth

import "github.com/hms/hms/internal/domain/record"

// DefaultCredentials returns the built-in credential set. Passwords are
// plain text; real credential storage is out of scope for this system.
func DefaultCredentials() []record.User {
	return []record.User{
		{UserID: 1, Username: "admin", Password: "admin123", Role: record.RoleAdmin},
		{UserID: 2, Username: "doctor", Password: "doctor123", Role: record.RoleDoctor},
		{UserID: 3, Username: "receptionist", Password: "reception123", Role: record.RoleReceptionist},
	}
}
