package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/avalon-edu/campus-api/internal/utils"
)

// Capability names one operation a role may perform. Routes declare the
// capability they need instead of listing roles, so the role-to-permission
// mapping lives in exactly one place.
type Capability string

const (
	CapGradesRecord      Capability = "grades:record"
	CapGradesView        Capability = "grades:view"
	CapGradebookView     Capability = "gradebook:view"
	CapCoursesManage     Capability = "courses:manage"
	CapAssignmentsManage Capability = "assignments:manage"
	CapSubmissionsCreate Capability = "submissions:create"
	CapSubmissionsView   Capability = "submissions:view"
	CapAttendanceMark    Capability = "attendance:mark"
	CapAttendanceView    Capability = "attendance:view"
	CapDashboardView     Capability = "dashboard:view"
	CapAdminOverview     Capability = "dashboard:admin"
	CapStudentsManage    Capability = "students:manage"
	CapMessagesSend      Capability = "messages:send"
	CapAnnouncePost      Capability = "announcements:post"
	CapCalendarManage    Capability = "calendar:manage"
	CapActivityView      Capability = "activity:view"
)

// policy maps each role to the capabilities it holds. Admins hold everything,
// so they are handled separately instead of being enumerated here.
var policy = map[string]map[Capability]struct{}{
	"teacher": capSet(
		CapGradesRecord, CapGradesView, CapGradebookView,
		CapCoursesManage, CapAssignmentsManage,
		CapSubmissionsView, CapAttendanceMark, CapAttendanceView,
		CapMessagesSend, CapAnnouncePost, CapCalendarManage, CapActivityView,
	),
	"student": capSet(
		CapGradesView, CapSubmissionsCreate, CapSubmissionsView,
		CapAttendanceView, CapDashboardView, CapMessagesSend,
	),
	"parent": capSet(
		CapGradesView, CapAttendanceView, CapDashboardView, CapMessagesSend,
	),
}

func capSet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, capability := range caps {
		set[capability] = struct{}{}
	}
	return set
}

// RoleHasCapability reports whether the role is allowed the capability.
func RoleHasCapability(role string, capability Capability) bool {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "admin" {
		return true
	}

	caps, ok := policy[normalized]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}

// RequireCapability guards a route group with one capability check against
// the authenticated user's role.
func RequireCapability(capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := normalizeRoleValue(c.Locals("user_role"))
		if role == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !RoleHasCapability(role, capability) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
