package api

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the engine with the standard middleware chain and all
// analytics routes.
func NewRouter(handler *Handler, logger *logrus.Logger, allowedOrigins []string) *gin.Engine {
	useFormFieldNames()

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger), Recovery(logger), CORS(allowedOrigins))
	router.NoRoute(func(c *gin.Context) {
		notFound(c, "Not Found")
	})

	SetupRoutes(router, handler)
	return router
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/", handler.Root)

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/markets", handler.ListMarkets)
		api.GET("/markets/:market_id", handler.GetMarketOverview)
		api.GET("/markets/:market_id/properties", handler.GetMarketProperties)
		api.GET("/markets/:market_id/properties/geojson", handler.GetMarketPropertiesGeoJSON)
		api.GET("/properties/:property_id/market-performance", handler.GetPropertyMarketPerformance)
	}
}

// useFormFieldNames makes validation errors report query parameter names
// instead of Go field names.
func useFormFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}
