package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maintdesk/workorder-service/api"
	"github.com/maintdesk/workorder-service/internal/config"
	"github.com/maintdesk/workorder-service/internal/handler"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const pathSwagger = "/swagger"

func New(cfg *config.Config, workOrders *handler.WorkOrderHandler, vendors *handler.VendorHandler, imports *handler.ImportHandler) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)

	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/workorders", workOrders.List)
		v1.POST("/workorders", workOrders.Create)
		v1.DELETE("/workorders", workOrders.Clear)
		v1.GET("/workorders/filters", workOrders.FilterOptions)
		v1.GET("/workorders/:id", workOrders.Get)
		v1.PATCH("/workorders/:id", workOrders.Update)
		v1.POST("/workorders/:id/status", workOrders.SetStatus)
		v1.DELETE("/workorders/:id", workOrders.Delete)

		v1.POST("/import/preview", imports.Preview)
		v1.POST("/import/commit", imports.Commit)
		v1.POST("/import/cancel", imports.Cancel)

		v1.GET("/vendors", vendors.List)
		v1.POST("/vendors", vendors.Create)
		v1.GET("/vendors/:id", vendors.Get)
		v1.PATCH("/vendors/:id", vendors.Update)
		v1.DELETE("/vendors/:id", vendors.Delete)
	}

	return r
}

// corsConfig: в development без явного списка разрешаем всё (страница может
// открываться с file:// или dev-сервера), в production — только allowlist.
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	if cfg.CORSAllowedOrigins == "" {
		c.AllowAllOrigins = true
		return c
	}
	var origins []string
	for _, o := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
