// Package policy centralise la matrice d'accès des commandes. Chaque
// prédicat dérive le scope depuis le profil, jamais depuis les paramètres
// client : ceux-ci sont comparés, pas substitués.
package policy

import (
	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/store"
)

// Codes machine stables de refus (exposés dans les réponses 403)
const (
	CodeForbidden      = "FORBIDDEN"
	CodeNoCampus       = "NO_CAMPUS"
	CodeCampusMismatch = "CAMPUS_MISMATCH"
)

// Denial est un refus d'autorisation typé. nil = autorisé.
type Denial struct {
	Code    string
	Message string
}

func forbid(message string) *Denial {
	return &Denial{Code: CodeForbidden, Message: message}
}

// CanCreateOrder : user, campusAdmin et restaurantManager peuvent commander,
// uniquement sur leur propre campus. Un mismatch est un refus franc, jamais
// une correction silencieuse du campusId soumis.
func CanCreateOrder(p models.Profile, campusID string) *Denial {
	switch p.Role {
	case models.RoleUser, models.RoleCampusAdmin, models.RoleRestaurantManager:
	default:
		return forbid("Ce rôle ne peut pas passer de commande")
	}

	if p.CampusID == "" {
		return &Denial{Code: CodeNoCampus, Message: "Aucun campus affecté à ce profil"}
	}
	if campusID != p.CampusID {
		return &Denial{Code: CodeCampusMismatch, Message: "Le campus de la commande ne correspond pas au campus affecté"}
	}

	return nil
}

// ListScope est le périmètre de lecture dérivé du rôle
type ListScope struct {
	All      bool
	CampusID string
}

// CanListOrders : campusAdmin voit son campus, superAdmin voit tout
func CanListOrders(p models.Profile) (ListScope, *Denial) {
	switch p.Role {
	case models.RoleCampusAdmin:
		return ListScope{CampusID: p.CampusID}, nil
	case models.RoleSuperAdmin:
		return ListScope{All: true}, nil
	}
	return ListScope{}, forbid("Accès réservé aux administrateurs")
}

// CanListAll : listing global explicite, superAdmin uniquement
func CanListAll(p models.Profile) *Denial {
	if p.Role != models.RoleSuperAdmin {
		return forbid("Accès réservé au super administrateur")
	}
	return nil
}

// UpdateScope est le périmètre de mutation de statut dérivé du rôle
type UpdateScope struct {
	CampusID     string
	RestaurantID string
}

// CanUpdateStatus : campusAdmin sur son campus, restaurantManager sur les
// commandes contenant ses articles. Le superAdmin est explicitement refusé :
// rôle de supervision, pas d'opération.
func CanUpdateStatus(p models.Profile) (UpdateScope, *Denial) {
	switch p.Role {
	case models.RoleCampusAdmin:
		return UpdateScope{CampusID: p.CampusID}, nil
	case models.RoleRestaurantManager:
		if p.RestaurantID == "" {
			return UpdateScope{}, forbid("Aucun restaurant affecté à ce profil")
		}
		return UpdateScope{RestaurantID: p.RestaurantID}, nil
	case models.RoleSuperAdmin:
		return UpdateScope{}, forbid("Le super administrateur ne modifie pas les statuts de commande")
	}
	return UpdateScope{}, forbid("Ce rôle ne peut pas modifier les commandes")
}

// CanViewRestaurantOrders : restaurantManager, et uniquement pour son propre
// restaurant — la comparaison tolère les deux encodages d'identifiant.
func CanViewRestaurantOrders(p models.Profile, restaurantID string) *Denial {
	if p.Role != models.RoleRestaurantManager {
		return forbid("Accès réservé aux gérants de restaurant")
	}
	if p.RestaurantID == "" || !store.SameID(restaurantID, p.RestaurantID) {
		return forbid("Ce restaurant n'est pas affecté à ce profil")
	}
	return nil
}

// CanManageCampus : écriture des données de référence d'un campus
// (restaurants, menu, mart, settings) — superAdmin partout, campusAdmin
// sur son campus uniquement.
func CanManageCampus(p models.Profile, campusID string) *Denial {
	switch p.Role {
	case models.RoleSuperAdmin:
		return nil
	case models.RoleCampusAdmin:
		if p.CampusID == campusID {
			return nil
		}
		return forbid("Campus hors du périmètre de ce profil")
	}
	return forbid("Accès réservé aux administrateurs")
}
