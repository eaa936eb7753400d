package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/fishmaster-api/internal/audit"
	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/config"
	"github.com/BruksfildServices01/fishmaster-api/internal/domain/verification"
	"github.com/BruksfildServices01/fishmaster-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/fishmaster-api/internal/infra/repository"
	"github.com/BruksfildServices01/fishmaster-api/internal/mailer"
	"github.com/BruksfildServices01/fishmaster-api/internal/middleware"
	"github.com/BruksfildServices01/fishmaster-api/internal/ratelimit"
	"github.com/BruksfildServices01/fishmaster-api/internal/storage"
	ucAccount "github.com/BruksfildServices01/fishmaster-api/internal/usecase/account"
	ucOnboarding "github.com/BruksfildServices01/fishmaster-api/internal/usecase/onboarding"
	ucProfile "github.com/BruksfildServices01/fishmaster-api/internal/usecase/profile"
	ucTank "github.com/BruksfildServices01/fishmaster-api/internal/usecase/tank"
)

// Deps carries the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Tokens *auth.TokenManager
	Log    logrus.FieldLogger

	Mail     mailer.Queue
	Audit    audit.Recorder
	AuditLog *audit.Logger

	// Optional. Nil disables photo uploads, rate limiting and the MX check
	// respectively; a nil Codes falls back to crypto/rand.
	Photos      storage.PhotoStore
	Limiter     ratelimit.Limiter
	DomainCheck func(email string) bool
	Codes       ucAccount.CodeSource
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	tankRepo := infraRepo.NewTankGormRepository(d.DB)

	codes := d.Codes
	if codes == nil {
		codes = verification.NewGenerator()
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	signupUC := ucAccount.NewSignup(userRepo, codes, d.Mail, d.Audit, d.Log, ucAccount.SignupOptions{
		DomainCheck:  d.DomainCheck,
		DashboardURL: d.Config.DashboardURL,
	})
	loginUC := ucAccount.NewLogin(userRepo, d.Tokens, d.Audit)
	verifyUC := ucAccount.NewVerifyEmail(userRepo, d.Audit)
	resendUC := ucAccount.NewResendCode(userRepo, codes, d.Mail, d.Log, d.Config.DashboardURL)

	profileSvc := ucProfile.NewService(userRepo, d.AuditLog, d.Audit)
	tankSvc := ucTank.NewService(tankRepo, d.Photos, d.Audit, d.Log)

	fishTypesUC := ucOnboarding.NewListFishTypes(tankRepo)
	statusUC := ucOnboarding.NewGetStatus(tankRepo)
	completeUC := ucOnboarding.NewComplete(tankRepo, d.Audit, d.Log)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(signupUC, loginUC, verifyUC, resendUC, d.Log)
	meHandler := handlers.NewMeHandler(profileSvc, d.Log)
	tankHandler := handlers.NewTankHandler(tankSvc, d.Log)
	onboardingHandler := handlers.NewOnboardingHandler(fishTypesUC, statusUC, completeUC, d.Log)
	systemHandler := handlers.NewSystemHandler(d.DB)

	// ======================================================
	// 🌍 PUBLIC
	// ======================================================
	r.GET("/hello", systemHandler.Hello)
	r.GET("/health", systemHandler.Health)

	authGroup := r.Group("/auth")
	if d.Limiter != nil {
		authGroup.Use(middleware.RateLimit(d.Limiter, d.Log))
	}
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/verify", authHandler.Verify)
		authGroup.POST("/resend", authHandler.Resend)
	}

	// ======================================================
	// 🔐 SECURED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Tokens))
	{
		secured.GET("/users/me", meHandler.GetMe)
		secured.PUT("/users/me", meHandler.UpdateMe)
		secured.DELETE("/users/me", meHandler.DeleteMe)
		secured.GET("/users/me/audit-logs", meHandler.AuditLogs)

		// ------------------------------
		// TANKS
		// ------------------------------
		secured.GET("/tanks", tankHandler.List)
		secured.POST("/tanks", tankHandler.Create)
		secured.GET("/tanks/:id", tankHandler.Get)
		secured.PUT("/tanks/:id", tankHandler.Update)
		secured.DELETE("/tanks/:id", tankHandler.Delete)

		secured.POST("/tanks/:id/fish", tankHandler.AddFish)
		secured.DELETE("/tanks/:id/fish/:fishId", tankHandler.RemoveFish)

		secured.GET("/tanks/:id/water-parameters", tankHandler.GetWaterParameters)
		secured.PUT("/tanks/:id/water-parameters", tankHandler.SetWaterParameters)
		secured.POST("/tanks/:id/water-parameters/recalculate", tankHandler.RecalculateWaterParameters)

		secured.GET("/tanks/:id/alerts", tankHandler.GetAlerts)
		secured.PUT("/tanks/:id/alerts", tankHandler.SetAlerts)

		secured.PUT("/tanks/:id/photo", tankHandler.UploadPhoto)
		secured.GET("/tanks/:id/photo", tankHandler.Photo)

		// ------------------------------
		// ONBOARDING
		// ------------------------------
		secured.GET("/api/onboarding/fish-types", onboardingHandler.FishTypes)
		secured.GET("/api/onboarding/status", onboardingHandler.Status)
		secured.POST("/api/onboarding/complete", onboardingHandler.Complete)
	}
}
