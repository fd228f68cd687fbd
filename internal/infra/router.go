package infra

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shixiaoya/materials/internal/auth"
	"github.com/shixiaoya/materials/internal/cache"
	"github.com/shixiaoya/materials/internal/config"
	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/handlers"
	"github.com/shixiaoya/materials/internal/mail"
	"github.com/shixiaoya/materials/internal/middleware"
	"github.com/shixiaoya/materials/internal/repository"
	"github.com/shixiaoya/materials/internal/service"
	"github.com/shixiaoya/materials/internal/validation"
	"github.com/shixiaoya/materials/pkg/db/transactor"
)

const (
	productsCacheTimeToLive = 5 * time.Minute
	casesCacheTimeToLive    = 10 * time.Minute
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Router wires repositories, services and handlers into an echo application
func Router(
	cfg config.Config,
	pgPool *pgxpool.Pool,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler

	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	translator, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to build echo validator because of missing en translations")
	}
	e.Validator = validation.Echo(validator.New(), translator)

	// Transactors
	trx := transactor.NewPgxTransactor(pgPool)

	// Configs
	jwtCfg := cfg.AuthCfg.JwtCfg
	rfrTokenCfg := cfg.AuthCfg.RefreshTokenCfg

	// Extra functionality
	jwtIssuer := auth.NewJwtIssuer(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.TimeToLive, jwtCfg.PrivateKey)
	jwtValidator := auth.NewJwtValidator(jwtCfg.SigningMethod, jwtCfg.PublicKey)
	rfrTokenIssuer := auth.NewRefreshTokenIssuer(rfrTokenCfg.MaxCount, rfrTokenCfg.TimeToLive)
	catalogCache := cache.NewCatalogCache(redisClient)
	mailer := mail.NewSMTPMailer(cfg.SMTPCfg)

	// Middleware
	authorizeMw := middleware.Authorize(jwtValidator)
	adminMw := middleware.RequireAdmin()

	// Repositories
	inquiryRepo, err := repository.NewFileInquiryRepository(cfg.StorageCfg.DataDir)
	if err != nil {
		return nil, err
	}
	userRepo := repository.NewPostgresUserRepository(trx)
	rfrTokenRepo := repository.NewPostgresRefreshTokenRepository(trx)
	productRepo := repository.NewPostgresProductRepository(pgPool)
	caseStudyRepo := repository.NewPostgresCaseStudyRepository(pgPool)
	visitRepo := repository.NewMongoVisitRepository(mongoClient)

	// Services
	authSrv := service.NewAuthService(jwtIssuer, rfrTokenIssuer, userRepo, rfrTokenRepo, trx)
	inquirySrv := service.NewInquiryService(inquiryRepo, mailer)
	catalogSrv := service.NewCatalogService(productRepo, caseStudyRepo, catalogCache)
	statsSrv := service.NewStatsService(inquiryRepo, productRepo, caseStudyRepo, visitRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(Version)
	authHandler := handlers.NewAuthHandler(authSrv, false)
	inquiryHandler := handlers.NewInquiryHandler(inquirySrv)
	catalogHandler := handlers.NewCatalogHandler(catalogSrv)
	uploadHandler := handlers.NewUploadHandler(cfg.StorageCfg.UploadDir)
	statsHandler := handlers.NewStatsHandler(statsSrv)

	e.GET("/health", healthHandler.Health)
	e.Static("/uploads", cfg.StorageCfg.UploadDir)

	// API routes
	api := e.Group("/api")

	// auth
	authAPI := api.Group("/auth")
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/logout", authHandler.Logout)
	authAPI.POST("/refresh", authHandler.Refresh)
	authAPI.GET("/me", authHandler.Me, authorizeMw, adminMw)
	authAPI.PUT("/password", authHandler.ChangePassword, authorizeMw, adminMw)

	// inquiries
	inquiriesAPI := api.Group("/inquiries")
	inquiriesAPI.POST("", inquiryHandler.Post)
	inquiriesAPI.GET("", inquiryHandler.GetAll, authorizeMw, adminMw)
	inquiriesAPI.GET("/export/csv", inquiryHandler.ExportCSV, authorizeMw, adminMw)
	inquiriesAPI.GET("/:id", inquiryHandler.Get, authorizeMw, adminMw)
	inquiriesAPI.PATCH("/:id/status", inquiryHandler.PatchStatus, authorizeMw, adminMw)
	inquiriesAPI.PUT("/:id", inquiryHandler.Put, authorizeMw, adminMw)
	inquiriesAPI.DELETE("/:id", inquiryHandler.DeleteByID, authorizeMw, adminMw)
	inquiriesAPI.POST("/batch", inquiryHandler.Batch, authorizeMw, adminMw)

	// products
	productsAPI := api.Group("/products")
	productsAPI.GET("", catalogHandler.GetProducts, middleware.CacheResponse(redisClient, productsCacheTimeToLive))
	productsAPI.GET("/:slug", catalogHandler.GetProduct)
	productsAPI.POST("", catalogHandler.PostProduct, authorizeMw, adminMw)
	productsAPI.PUT("/:id", catalogHandler.PutProduct, authorizeMw, adminMw)
	productsAPI.DELETE("/:id", catalogHandler.DeleteProduct, authorizeMw, adminMw)

	// case studies
	casesAPI := api.Group("/cases")
	casesAPI.GET("", catalogHandler.GetCaseStudies, middleware.CacheResponse(redisClient, casesCacheTimeToLive))
	casesAPI.GET("/:slug", catalogHandler.GetCaseStudy)
	casesAPI.POST("", catalogHandler.PostCaseStudy, authorizeMw, adminMw)

	// uploads
	uploadAPI := api.Group("/upload", authorizeMw, adminMw)
	uploadAPI.POST("/image", uploadHandler.UploadImage)
	uploadAPI.POST("/images", uploadHandler.UploadImages)

	// stats
	statsAPI := api.Group("/stats")
	statsAPI.POST("/visit", statsHandler.RecordVisit)
	statsAPI.GET("/dashboard", statsHandler.Dashboard, authorizeMw, adminMw)
	statsAPI.GET("/inquiry-trends", statsHandler.InquiryTrends, authorizeMw, adminMw)

	return e, nil
}

// failure is the response shape of every failed request
type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	resp := failure{Message: "服务器内部错误"}

	var (
		payloadErr    *validation.PayloadError
		notFoundErr   *apperrors.NotFoundErr
		invalidArgErr *apperrors.InvalidArgumentErr
		businessErr   *apperrors.BusinessErr
		unauthErr     *apperrors.UnauthorizedErr
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &payloadErr):
		status = http.StatusBadRequest
		resp.Message = "数据验证失败"
		resp.Errors = payloadErr.Violations()
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		resp.Message = notFoundErr.Error()
	case errors.As(err, &invalidArgErr):
		status = http.StatusBadRequest
		resp.Message = invalidArgErr.Error()
	case errors.As(err, &businessErr):
		status = http.StatusBadRequest
		resp.Message = businessErr.Error()
		resp.Errors = []any{businessErr}
	case errors.As(err, &unauthErr):
		status = http.StatusUnauthorized
		resp.Message = unauthErr.Error()
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			resp.Message = msg
		}
	default:
		logrus.WithError(err).Error("request failed with unexpected error")
	}

	if err := c.JSON(status, &resp); err != nil {
		logrus.WithError(err).Error("failed to write error response")
	}
}
