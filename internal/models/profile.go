package models

// Rôles connus du système
const (
	RoleUser              = "user"
	RoleCampusAdmin       = "campusAdmin"
	RoleSuperAdmin        = "superAdmin"
	RoleRestaurantManager = "restaurantManager"
)

// Profile est le document "users" : rôle + affectation campus/restaurant.
// Relu à chaque requête (jamais mis en cache : une réaffectation de campus
// doit prendre effet immédiatement).
type Profile struct {
	UID          string `bson:"uid" json:"uid"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Role         string `bson:"role" json:"role"`
	CampusID     string `bson:"campusId,omitempty" json:"campusId,omitempty"`
	RestaurantID string `bson:"restaurantId,omitempty" json:"restaurantId,omitempty"`
}

// KnownRole indique si le rôle fait partie de l'ensemble reconnu
func (p Profile) KnownRole() bool {
	switch p.Role {
	case RoleUser, RoleCampusAdmin, RoleSuperAdmin, RoleRestaurantManager:
		return true
	}
	return false
}
