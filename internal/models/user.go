package models

// User profiles. Stored as plain strings so the store schema stays flat.
const (
	ProfileAdmin = "ADMIN"
	ProfileUser  = "USER"
)

// Profiles returns every known profile value.
func Profiles() []string {
	return []string{ProfileAdmin, ProfileUser}
}

// User is the directory entry managed by this service.
//
// ID is assigned by the store on first save and is empty before that.
// Password holds the hashed form at rest; plaintext only exists between
// request decoding and the service's hash step.
type User struct {
	ID       string
	Profile  string
	Name     string
	Email    string
	Password string
	Address  string
	Phone    string
}

// SameIdentity reports whether a and b refer to the same stored entity.
// Two users with empty IDs are never the same entity, field equality
// must be checked with SameRecord instead.
func SameIdentity(a, b *User) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID == "" || b.ID == "" {
		return false
	}
	return a.ID == b.ID
}

// SameRecord reports whether a and b are field-for-field equal.
func SameRecord(a, b *User) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
