package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/controller"
	"github.com/mariyae/catalog-backend/internal/middleware"
)

const apiPrefix = "/api/v1"

// maxMultipartMemory bounds the in-memory part of product and banner forms.
const maxMultipartMemory = 64 << 20

type Router struct {
	categoryController   *controller.CategoryController
	productController    *controller.ProductController
	bulkController       *controller.BulkController
	bannerController     *controller.BannerController
	handpickedController *controller.HandpickedController
	uploadController     *controller.UploadController
	config               *config.Config
}

func NewRouter(
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	bulkController *controller.BulkController,
	bannerController *controller.BannerController,
	handpickedController *controller.HandpickedController,
	uploadController *controller.UploadController,
	cfg *config.Config,
) *Router {
	return &Router{
		categoryController:   categoryController,
		productController:    productController,
		bulkController:       bulkController,
		bannerController:     bannerController,
		handpickedController: handpickedController,
		uploadController:     uploadController,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(corsConfig(r.config.CORS.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "healthy",
			"message": "Catalog API is running",
			"routes":  apiRoutes(router),
		})
	})

	v1 := router.Group(apiPrefix)
	{
		categories := v1.Group("/categories")
		{
			categories.GET("/main", r.categoryController.ListMainCategories)
			categories.POST("/main", r.categoryController.CreateMainCategory)
			categories.PUT("/main/:id", r.categoryController.UpdateMainCategory)
			categories.DELETE("/main/:id", r.categoryController.DeleteMainCategory)

			categories.GET("/sub", r.categoryController.ListSubCategories)
			categories.POST("/sub", r.categoryController.CreateSubCategory)
			categories.PUT("/sub/:id", r.categoryController.UpdateSubCategory)
			categories.DELETE("/sub/:id", r.categoryController.DeleteSubCategory)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.POST("", r.productController.CreateProduct)

			products.POST("/bulk", r.bulkController.ImportProducts)
			products.POST("/bulk/upload", r.bulkController.UploadProducts)
			products.GET("/bulk/template", r.bulkController.DownloadTemplate)

			products.GET("/:id", r.productController.GetProductByID)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)
		}

		banners := v1.Group("/banners")
		{
			banners.GET("", r.bannerController.ListBanners)
			banners.POST("", r.bannerController.CreateBanner)
			banners.PUT("/:id", r.bannerController.UpdateBanner)
			banners.DELETE("/:id", r.bannerController.DeleteBanner)
		}

		handpicked := v1.Group("/handpicked")
		{
			handpicked.GET("", r.handpickedController.ListItems)
			handpicked.POST("", r.handpickedController.SaveItem)
			handpicked.DELETE("/:slot", r.handpickedController.DeleteItem)
		}

		upload := v1.Group("/upload")
		{
			upload.POST("/sign", r.uploadController.SignUpload)
		}
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour

	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// apiRoutes lists "METHOD path" for every versioned route.
func apiRoutes(engine *gin.Engine) []string {
	var routes []string
	for _, route := range engine.Routes() {
		if strings.HasPrefix(route.Path, apiPrefix) {
			routes = append(routes, route.Method+" "+route.Path)
		}
	}
	return routes
}
