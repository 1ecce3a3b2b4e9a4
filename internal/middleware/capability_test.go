package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestRoleHasCapability(t *testing.T) {
	require.True(t, RoleHasCapability("teacher", CapGradesRecord))
	require.True(t, RoleHasCapability("Teacher", CapGradesRecord))
	require.False(t, RoleHasCapability("student", CapGradesRecord))
	require.False(t, RoleHasCapability("parent", CapGradesRecord))
	require.True(t, RoleHasCapability("admin", CapGradesRecord))

	require.True(t, RoleHasCapability("student", CapSubmissionsCreate))
	require.False(t, RoleHasCapability("teacher", CapSubmissionsCreate))

	require.True(t, RoleHasCapability("parent", CapDashboardView))
	require.False(t, RoleHasCapability("unknown", CapDashboardView))

	// No role enumerates the admin overview; only admins reach it.
	require.True(t, RoleHasCapability("admin", CapAdminOverview))
	require.False(t, RoleHasCapability("teacher", CapAdminOverview))
	require.False(t, RoleHasCapability("parent", CapAdminOverview))
}

func capabilityApp(role string, capability Capability) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Get("/guarded", RequireCapability(capability), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireCapability(t *testing.T) {
	cases := []struct {
		name       string
		role       string
		capability Capability
		status     int
	}{
		{"teacher records grades", "teacher", CapGradesRecord, fiber.StatusOK},
		{"student blocked from grading", "student", CapGradesRecord, fiber.StatusForbidden},
		{"admin passes everywhere", "admin", CapStudentsManage, fiber.StatusOK},
		{"anonymous unauthorized", "", CapGradesView, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := capabilityApp(tc.role, tc.capability)
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
