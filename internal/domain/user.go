package domain

type UserRole string

const (
	UserRoleOwner  UserRole = "OWNER"
	UserRoleTenant UserRole = "TENANT"
)

// User is the minimal slice of the account record this service needs for
// notifications and ownership checks. Account management lives in the
// hosted auth platform.
type User struct {
	ID          int32    `json:"id"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	CreatedOn   string   `json:"created_on"`
	UpdatedOn   string   `json:"updated_on"`
}
