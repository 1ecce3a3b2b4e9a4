package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avalon-edu/campus-api/internal/config"
	"github.com/avalon-edu/campus-api/internal/handler"
	"github.com/avalon-edu/campus-api/internal/middleware"
	"github.com/avalon-edu/campus-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	GradeHandler      *handler.GradeHandler
	GradebookHandler  *handler.GradebookHandler
	SubmissionHandler *handler.SubmissionHandler
	AssignmentHandler *handler.AssignmentHandler
	CourseHandler     *handler.CourseHandler
	StudentHandler    *handler.StudentHandler
	AttendanceHandler *handler.AttendanceHandler
	DashboardHandler  *handler.DashboardHandler
	MessageHandler    *handler.MessageHandler
	CalendarHandler   *handler.CalendarHandler
	ActivityHandler   *handler.ActivityHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.GradeHandler != nil {
		grades := api.Group("/grades", jwtMiddleware)
		readGroup := grades.Group("", middleware.RequireCapability(middleware.CapGradesView))
		deps.GradeHandler.Register(readGroup)

		rateWindow := cfg.GradeWriteRateWindow
		if rateWindow <= 0 {
			rateWindow = time.Minute
		}
		writeGroup := grades.Group("",
			middleware.RequireCapability(middleware.CapGradesRecord),
			middleware.RateLimit("grade-write", cfg.GradeWriteRateLimit, rateWindow),
		)
		deps.GradeHandler.RegisterWrites(writeGroup)
	}

	if deps.GradebookHandler != nil {
		gradebook := api.Group("/gradebook", jwtMiddleware, middleware.RequireCapability(middleware.CapGradebookView))
		deps.GradebookHandler.Register(gradebook)
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.Register(submissions.Group("", middleware.RequireCapability(middleware.CapSubmissionsView)))
		deps.SubmissionHandler.RegisterWrites(submissions.Group("", middleware.RequireCapability(middleware.CapSubmissionsCreate)))
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware)
		deps.AssignmentHandler.Register(assignments)
		deps.AssignmentHandler.RegisterWrites(assignments.Group("", middleware.RequireCapability(middleware.CapAssignmentsManage)))
	}

	if deps.CourseHandler != nil {
		courses := api.Group("/courses", jwtMiddleware)
		deps.CourseHandler.Register(courses)
		deps.CourseHandler.RegisterWrites(courses.Group("", middleware.RequireCapability(middleware.CapCoursesManage)))
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware, middleware.RequireCapability(middleware.CapStudentsManage))
		deps.StudentHandler.Register(students)
	}

	if deps.AttendanceHandler != nil {
		attendance := api.Group("/attendance", jwtMiddleware)
		deps.AttendanceHandler.Register(attendance.Group("", middleware.RequireCapability(middleware.CapAttendanceView)))
		deps.AttendanceHandler.RegisterWrites(attendance.Group("", middleware.RequireCapability(middleware.CapAttendanceMark)))
	}

	if deps.DashboardHandler != nil {
		dashboards := api.Group("/dashboards", jwtMiddleware)
		deps.DashboardHandler.RegisterAdmin(dashboards.Group("", middleware.RequireCapability(middleware.CapAdminOverview)))
		deps.DashboardHandler.Register(dashboards.Group("", middleware.RequireCapability(middleware.CapDashboardView)))
	}

	if deps.MessageHandler != nil {
		messages := api.Group("/messages", jwtMiddleware, middleware.RequireCapability(middleware.CapMessagesSend))
		deps.MessageHandler.Register(messages)

		announcements := api.Group("/announcements", jwtMiddleware)
		deps.MessageHandler.RegisterAnnouncements(
			announcements,
			announcements.Group("", middleware.RequireCapability(middleware.CapAnnouncePost)),
		)
	}

	if deps.CalendarHandler != nil {
		calendar := api.Group("/calendar", jwtMiddleware)
		deps.CalendarHandler.Register(calendar)
		deps.CalendarHandler.RegisterWrites(calendar.Group("", middleware.RequireCapability(middleware.CapCalendarManage)))
	}

	if deps.ActivityHandler != nil {
		activity := api.Group("/activity", jwtMiddleware, middleware.RequireCapability(middleware.CapActivityView))
		deps.ActivityHandler.Register(activity)
	}
}
