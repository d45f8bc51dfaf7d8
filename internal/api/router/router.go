package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hinterbergers/mycliniq-sub000/config"
	"github.com/hinterbergers/mycliniq-sub000/internal/api/handler"
	"github.com/hinterbergers/mycliniq-sub000/internal/api/middleware"
	"github.com/hinterbergers/mycliniq-sub000/pkg/jwt"
	"github.com/hinterbergers/mycliniq-sub000/pkg/redis"
)

// Setup builds the gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// coverage catalog
		roles := v1.Group("/service-roles")
		{
			roles.GET("", h.ServiceRole.List)
			roles.GET("/:id", h.ServiceRole.Get)
			roles.POST("", middleware.RoleAuth("admin"), h.ServiceRole.Create)
			roles.PUT("/:id", middleware.RoleAuth("admin"), h.ServiceRole.Update)
			roles.DELETE("/:id", middleware.RoleAuth("admin"), h.ServiceRole.Delete)
		}

		// staff
		employees := v1.Group("/employees")
		{
			employees.GET("", middleware.RoleAuth("admin", "planner"), h.Employee.List)
			employees.GET("/:id", middleware.RoleAuth("admin", "planner"), h.Employee.Get)
			employees.POST("", middleware.RoleAuth("admin"), h.Employee.Create)
			employees.PUT("/:id", middleware.RoleAuth("admin"), h.Employee.Update)
			employees.DELETE("/:id", middleware.RoleAuth("admin"), h.Employee.Delete)
			employees.GET("/:id/absences", middleware.RoleAuth("admin", "planner"), h.Employee.ListAbsences)
		}

		// absences
		absences := v1.Group("/absences")
		{
			absences.POST("", middleware.RoleAuth("admin", "planner"), h.Employee.CreateAbsence)
			absences.DELETE("/:id", middleware.RoleAuth("admin", "planner"), h.Employee.DeleteAbsence)
		}

		// planning periods
		periods := v1.Group("/periods/:year/:month")
		{
			periods.GET("/state", h.Plan.State)

			periods.PUT("/wishes", h.Wish.Submit)
			periods.GET("/wishes", middleware.RoleAuth("admin", "planner"), h.Wish.List)
			periods.GET("/wishes/:employeeId", h.Wish.GetForEmployee)

			periods.GET("/locks", middleware.RoleAuth("admin", "planner"), h.Lock.List)
			periods.PUT("/locks/:slotId", middleware.RoleAuth("admin", "planner"), h.Lock.Set)
			periods.DELETE("/locks/:slotId", middleware.RoleAuth("admin", "planner"), h.Lock.Delete)

			solve := periods.Group("")
			solve.Use(middleware.RoleAuth("admin", "planner"))
			solve.Use(middleware.RateLimit(rdb, 10, time.Minute))
			{
				solve.GET("/input", h.Plan.BuildInput)
				solve.POST("/preview", h.Plan.Preview)
				solve.POST("/run", h.Plan.Run)
			}

			periods.GET("/runs", middleware.RoleAuth("admin", "planner"), h.Plan.ListRuns)

			periods.GET("/export/xlsx", h.Export.ExportXLSX)
			periods.GET("/export/ics", h.Export.ExportICS)
		}

		v1.GET("/runs/:id", middleware.RoleAuth("admin", "planner"), h.Plan.GetRun)
	}

	return r
}
