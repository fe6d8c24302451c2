package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStudent RoleType = "STUDENT"
	RoleWarden  RoleType = "WARDEN"
	RoleMentor  RoleType = "MENTOR"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleWarden, RoleMentor:
		return true
	}
	return false
}

// Gender defines a hostel's gender designation
type Gender string

const (
	GenderBoys  Gender = "BOYS"
	GenderGirls Gender = "GIRLS"
)

// IsValid reports whether the gender designation is known.
func (g Gender) IsValid() bool {
	return g == GenderBoys || g == GenderGirls
}

// Category defines the complaint category
type Category string

const (
	CategoryElectric Category = "ELECTRIC"
	CategoryToilet   Category = "TOILET"
	CategoryWiFi     Category = "WIFI"
	CategoryMess     Category = "MESS"
	CategoryPersonal Category = "PERSONAL"
	CategoryOthers   Category = "OTHERS"
)

// IsValid reports whether the category is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryElectric, CategoryToilet, CategoryWiFi, CategoryMess, CategoryPersonal, CategoryOthers:
		return true
	}
	return false
}

// Actor is the authenticated identity and role performing an operation.
// Controllers build it from the JWT claims set by the auth middleware.
type Actor struct {
	UserID int64
	Role   RoleType
}
