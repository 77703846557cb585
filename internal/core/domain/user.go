package domain

// Role determines which views a user can reach.
type Role string

const (
	RoleDriver     Role = "driver"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDriver, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// User is the session principal. Credentials never appear here; they live
// only in CredentialRecord.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Role             Role   `json:"role"`
	Location         string `json:"location,omitempty"`
	Department       string `json:"department,omitempty"`
	VehicleID        string `json:"vehicleId,omitempty"`
	HealthKitEnabled bool   `json:"healthKitEnabled,omitempty"`
}

// Complete reports whether u carries the fields every persisted session
// must have.
func (u *User) Complete() bool {
	return u != nil && u.ID != "" && u.Email != "" && u.Role.Valid()
}

// CredentialRecord is a registry entry keyed by email.
type CredentialRecord struct {
	Email            string
	PasswordHash     string
	ID               string
	Name             string
	Role             Role
	Location         string
	Department       string
	VehicleID        string
	HealthKitEnabled bool
}

// User returns the profile of the record with the credential stripped.
func (r CredentialRecord) User() *User {
	return &User{
		ID:               r.ID,
		Email:            r.Email,
		Name:             r.Name,
		Role:             r.Role,
		Location:         r.Location,
		Department:       r.Department,
		VehicleID:        r.VehicleID,
		HealthKitEnabled: r.HealthKitEnabled,
	}
}
