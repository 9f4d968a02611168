package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"campusbites_back_end/internal/models"
	"campusbites_back_end/internal/policy"
)

func TestCanCreateOrder(t *testing.T) {
	tests := []struct {
		name     string
		profile  models.Profile
		campusID string
		wantCode string // "" = autorisé
	}{
		{"user sur son campus", models.Profile{Role: models.RoleUser, CampusID: "C1"}, "C1", ""},
		{"campusAdmin sur son campus", models.Profile{Role: models.RoleCampusAdmin, CampusID: "C1"}, "C1", ""},
		{"restaurantManager sur son campus", models.Profile{Role: models.RoleRestaurantManager, CampusID: "C1", RestaurantID: "R1"}, "C1", ""},
		{"campus différent", models.Profile{Role: models.RoleUser, CampusID: "C1"}, "C2", policy.CodeCampusMismatch},
		{"campus plausible mais étranger", models.Profile{Role: models.RoleUser, CampusID: "C1"}, "C1 ", policy.CodeCampusMismatch},
		{"profil sans campus", models.Profile{Role: models.RoleUser}, "C1", policy.CodeNoCampus},
		{"superAdmin ne commande pas", models.Profile{Role: models.RoleSuperAdmin}, "C1", policy.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denial := policy.CanCreateOrder(tt.profile, tt.campusID)
			if tt.wantCode == "" {
				require.Nil(t, denial)
			} else {
				require.NotNil(t, denial)
				require.Equal(t, tt.wantCode, denial.Code)
			}
		})
	}
}

func TestCanListOrders(t *testing.T) {
	scope, denial := policy.CanListOrders(models.Profile{Role: models.RoleCampusAdmin, CampusID: "C1"})
	require.Nil(t, denial)
	require.False(t, scope.All)
	require.Equal(t, "C1", scope.CampusID)

	scope, denial = policy.CanListOrders(models.Profile{Role: models.RoleSuperAdmin})
	require.Nil(t, denial)
	require.True(t, scope.All)

	_, denial = policy.CanListOrders(models.Profile{Role: models.RoleUser, CampusID: "C1"})
	require.NotNil(t, denial)

	_, denial = policy.CanListOrders(models.Profile{Role: models.RoleRestaurantManager, RestaurantID: "R1"})
	require.NotNil(t, denial)
}

func TestCanListAll_SuperAdminOnly(t *testing.T) {
	require.Nil(t, policy.CanListAll(models.Profile{Role: models.RoleSuperAdmin}))

	for _, role := range []string{models.RoleUser, models.RoleCampusAdmin, models.RoleRestaurantManager} {
		require.NotNil(t, policy.CanListAll(models.Profile{Role: role, CampusID: "C1"}), role)
	}
}

func TestCanUpdateStatus(t *testing.T) {
	scope, denial := policy.CanUpdateStatus(models.Profile{Role: models.RoleCampusAdmin, CampusID: "C1"})
	require.Nil(t, denial)
	require.Equal(t, "C1", scope.CampusID)

	scope, denial = policy.CanUpdateStatus(models.Profile{Role: models.RoleRestaurantManager, CampusID: "C1", RestaurantID: "R1"})
	require.Nil(t, denial)
	require.Equal(t, "R1", scope.RestaurantID)

	// Le superAdmin supervise, il n'opère pas : toujours refusé, quel que
	// soit le périmètre
	_, denial = policy.CanUpdateStatus(models.Profile{Role: models.RoleSuperAdmin})
	require.NotNil(t, denial)
	require.Equal(t, policy.CodeForbidden, denial.Code)

	_, denial = policy.CanUpdateStatus(models.Profile{Role: models.RoleUser, CampusID: "C1"})
	require.NotNil(t, denial)

	_, denial = policy.CanUpdateStatus(models.Profile{Role: models.RoleRestaurantManager})
	require.NotNil(t, denial)
}

func TestCanViewRestaurantOrders(t *testing.T) {
	manager := models.Profile{Role: models.RoleRestaurantManager, RestaurantID: "64a1b2c3d4e5f6a7b8c9d0e1"}

	require.Nil(t, policy.CanViewRestaurantOrders(manager, "64a1b2c3d4e5f6a7b8c9d0e1"))

	// Autre restaurant : refusé même pour un manager
	require.NotNil(t, policy.CanViewRestaurantOrders(manager, "64a1b2c3d4e5f6a7b8c9d0e2"))

	// Autres rôles : refusés même sur un id quelconque
	for _, role := range []string{models.RoleUser, models.RoleCampusAdmin, models.RoleSuperAdmin} {
		require.NotNil(t, policy.CanViewRestaurantOrders(models.Profile{Role: role}, "64a1b2c3d4e5f6a7b8c9d0e1"), role)
	}
}

func TestCanManageCampus(t *testing.T) {
	require.Nil(t, policy.CanManageCampus(models.Profile{Role: models.RoleSuperAdmin}, "C1"))
	require.Nil(t, policy.CanManageCampus(models.Profile{Role: models.RoleCampusAdmin, CampusID: "C1"}, "C1"))
	require.NotNil(t, policy.CanManageCampus(models.Profile{Role: models.RoleCampusAdmin, CampusID: "C1"}, "C2"))
	require.NotNil(t, policy.CanManageCampus(models.Profile{Role: models.RoleUser, CampusID: "C1"}, "C1"))
}
