// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fdp_backend/internals/configs"
	adminRoutes "fdp_backend/internals/features/admin/routes"
	adminService "fdp_backend/internals/features/admin/service"
	certRoutes "fdp_backend/internals/features/certificates/routes"
	commRoutes "fdp_backend/internals/features/communications/routes"
	couponRoutes "fdp_backend/internals/features/coupons/routes"
	eventRoutes "fdp_backend/internals/features/events/routes"
	paymentRoutes "fdp_backend/internals/features/payments/routes"
	pipelineService "fdp_backend/internals/features/pipeline/service"
	regRoutes "fdp_backend/internals/features/registrations/routes"
	"fdp_backend/internals/helpers/blob"
	"fdp_backend/internals/middlewares"
	authMiddleware "fdp_backend/internals/middlewares/auth"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	DB       *gorm.DB
	Config   *configs.Config
	Pipeline *pipelineService.Pipeline
	Auth     *adminService.AuthService
	Blobs    blob.Store
}

var startTime time.Time

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, d)

	api := app.Group("/api")
	adminOnly := authMiddleware.AuthAdmin(d.Auth)
	st := d.Pipeline.Store()
	storage := d.Config.Storage

	log.Println("[INFO] Mounting admin auth routes...")
	adminRoutes.AdminRoutes(api, d.Auth, middlewares.LoginRateLimiter(), adminOnly)

	log.Println("[INFO] Mounting FDP event routes...")
	eventRoutes.EventPublicRoutes(api, st)
	eventRoutes.EventAdminRoutes(api, st, adminOnly)

	log.Println("[INFO] Mounting registration routes...")
	regRoutes.RegistrationPublicRoutes(api, d.Pipeline, d.Blobs, storage, middlewares.RegistrationRateLimiter())
	regRoutes.RegistrationAdminRoutes(api, d.Pipeline, d.Blobs, storage, adminOnly)

	log.Println("[INFO] Mounting payment routes...")
	paymentRoutes.PaymentPublicRoutes(api, d.Pipeline)
	paymentRoutes.PaymentAdminRoutes(api, d.Pipeline, adminOnly)

	log.Println("[INFO] Mounting coupon routes...")
	couponRoutes.CouponPublicRoutes(api, d.Pipeline)
	couponRoutes.CouponAdminRoutes(api, d.Pipeline, adminOnly)

	log.Println("[INFO] Mounting certificate routes...")
	certRoutes.CertificatePublicRoutes(api, d.Pipeline)
	certRoutes.CertificateAdminRoutes(api, d.Pipeline, adminOnly)

	log.Println("[INFO] Mounting communication routes...")
	commRoutes.CommunicationAdminRoutes(api, d.Pipeline, adminOnly)
}
