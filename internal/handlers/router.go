package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorhub/dashboard-service/internal/services"
	"github.com/mentorhub/dashboard-service/internal/utils"
)

type HandlerManager struct {
	dashboardHandler    *DashboardHandler
	studentHandler      *StudentHandler
	userHandler         *UserHandler
	batchHandler        *BatchHandler
	notificationHandler *NotificationHandler
	exportHandler       *ExportHandler
}

type Services struct {
	Dashboard    services.DashboardService
	Student      services.StudentService
	User         services.UserService
	Batch        services.BatchService
	Package      services.PackageService
	Notification services.NotificationService
	Export       services.ExportService
}

func NewHandlerManager(svcs Services, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		dashboardHandler:    NewDashboardHandler(svcs.Dashboard, logger),
		studentHandler:      NewStudentHandler(svcs.Student, svcs.Dashboard, logger),
		userHandler:         NewUserHandler(svcs.User, logger),
		batchHandler:        NewBatchHandler(svcs.Batch, svcs.Package, logger),
		notificationHandler: NewNotificationHandler(svcs.Notification, logger),
		exportHandler:       NewExportHandler(svcs.Export, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "dashboard-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", hm.dashboardHandler.GetStats)
			dashboard.GET("/coordinator/:id", hm.dashboardHandler.GetCoordinatorStats)
			dashboard.GET("/mentor/:id", hm.dashboardHandler.GetMentorStats)
		}

		students := v1.Group("/students")
		{
			students.POST("", hm.studentHandler.CreateStudent)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.PUT("/:id", hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
			students.GET("/:id/progress", hm.studentHandler.GetStudentProgress)
			students.POST("/:id/assign-mentor", hm.studentHandler.AssignMentor)
			students.POST("/:id/assign-package", hm.studentHandler.AssignPackage)
			students.POST("/:id/sessions", hm.studentHandler.RecordSession)
			students.POST("/:id/payments", hm.studentHandler.RecordPayment)
		}

		users := v1.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/mentors", hm.userHandler.ListMentors)
			users.GET("/coordinators", hm.userHandler.ListCoordinators)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		// Session and UI preference endpoints
		session := v1.Group("/session")
		{
			session.POST("/sign-in", hm.userHandler.SignIn)
			session.POST("/sign-out", hm.userHandler.SignOut)
			session.GET("/current", hm.userHandler.GetCurrentUser)
			session.GET("/theme", hm.userHandler.GetTheme)
			session.PUT("/theme", hm.userHandler.SetTheme)
		}

		batches := v1.Group("/batches")
		{
			batches.POST("", hm.batchHandler.CreateBatch)
			batches.GET("", hm.batchHandler.ListBatches)
			batches.GET("/:id", hm.batchHandler.GetBatch)
			batches.PUT("/:id", hm.batchHandler.UpdateBatch)
			batches.DELETE("/:id", hm.batchHandler.DeleteBatch)
		}

		packages := v1.Group("/packages")
		{
			packages.POST("", hm.batchHandler.CreatePackage)
			packages.GET("", hm.batchHandler.ListPackages)
			packages.GET("/:id", hm.batchHandler.GetPackage)
			packages.PUT("/:id", hm.batchHandler.UpdatePackage)
			packages.DELETE("/:id", hm.batchHandler.DeletePackage)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.POST("", hm.notificationHandler.CreateNotification)
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.GET("/unread-count", hm.notificationHandler.GetUnreadCount)
			notifications.PUT("/read-all", hm.notificationHandler.MarkAllAsRead)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkAsRead)
			notifications.DELETE("", hm.notificationHandler.ClearNotifications)
			notifications.GET("/settings", hm.notificationHandler.GetSettings)
			notifications.PUT("/settings", hm.notificationHandler.UpdateSettings)
		}

		export := v1.Group("/export")
		{
			export.GET("/students.xlsx", hm.exportHandler.ExportStudentsXLSX)
			export.GET("/students.csv", hm.exportHandler.ExportStudentsCSV)
			export.GET("/stats.xlsx", hm.exportHandler.ExportStatsXLSX)
		}
	}
}
