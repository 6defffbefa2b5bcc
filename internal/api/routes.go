package api

import (
	"coachdesk/coach-console/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	studentService service.StudentService,
	dashboardService service.DashboardService,
	protocolService service.ProtocolService,
) {

	authHandler := NewAuthHandler(authService)
	studentHandler := NewStudentHandler(studentService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	protocolHandler := NewProtocolHandler(protocolService)
	anamnesisHandler := NewAnamnesisHandler(studentService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public intake flow; possession of the token is the access control.
	router.GET("/anamnese/:token", anamnesisHandler.GetIntakeForm)
	router.POST("/anamnese/:token", anamnesisHandler.SubmitIntakeForm)

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			coachID, err := getCoachIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get coach ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"coachId": coachID})
		})

		// --- Student Routes ---
		studentGroup := protected.Group("/students")
		{
			studentGroup.GET("", studentHandler.ListStudents)
			studentGroup.POST("", studentHandler.CreateStudent)
			studentGroup.GET("/:id", studentHandler.GetStudent)
			studentGroup.PUT("/:id", studentHandler.UpdateStudent)
			studentGroup.DELETE("/:id", studentHandler.DeleteStudent)
			studentGroup.PATCH("/:id/kanban", studentHandler.MoveKanban)
			studentGroup.PATCH("/:id/notion-link", studentHandler.UpdateNotionLink)
			studentGroup.POST("/:id/anamnesis-link", studentHandler.GenerateAnamnesisLink)
		}

		// --- Dashboard / Finance ---
		protected.GET("/dashboard/stats", dashboardHandler.GetStats)
		protected.GET("/finance/yearly", dashboardHandler.GetYearlyFinance)

		// --- Protocol Editor ---
		protocolGroup := protected.Group("/protocol")
		{
			protocolGroup.GET("", protocolHandler.GetProtocol)
			protocolGroup.PUT("/title", protocolHandler.SetTitle)
			protocolGroup.POST("/sections", protocolHandler.AddSection)
			protocolGroup.DELETE("/sections/:sectionId", protocolHandler.RemoveSection)
			protocolGroup.POST("/sections/:sectionId/blocks", protocolHandler.AddBlock)
			protocolGroup.POST("/sections/:sectionId/blocks/reorder", protocolHandler.ReorderBlocks)
			protocolGroup.PATCH("/sections/:sectionId/blocks/:blockId", protocolHandler.UpdateBlock)
			protocolGroup.DELETE("/sections/:sectionId/blocks/:blockId", protocolHandler.RemoveBlock)
			protocolGroup.POST("/reset", protocolHandler.ResetProtocol)
			protocolGroup.POST("/template", protocolHandler.SaveAsTemplate)
			protocolGroup.GET("/templates", protocolHandler.ListTemplates)
			protocolGroup.POST("/export", protocolHandler.ExportProtocol)
		}
	}
}
