package constants

// Registrant kinds referenced generically from payments, logs and certificates.
const (
	EntityHostCollege = "host_college"
	EntityFaculty     = "faculty"
)

func IsValidEntityType(s string) bool {
	return s == EntityHostCollege || s == EntityFaculty
}
