package infra

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rocketstore/customers-api/internal/cache"
	"github.com/rocketstore/customers-api/internal/geocode"
	"github.com/rocketstore/customers-api/internal/handlers"
	"github.com/rocketstore/customers-api/internal/repository"
	"github.com/rocketstore/customers-api/internal/service"
	"github.com/rocketstore/customers-api/internal/validation"
	"github.com/rocketstore/customers-api/pkg/db/transactor"
	"go.mongodb.org/mongo-driver/mongo"
)

// Router wires application dependencies and builds echo router
func Router(pgPool *pgxpool.Pool, mongoClient *mongo.Client, redisClient *redis.Client, geocoder geocode.Geocoder) (*echo.Echo, error) {
	e := echo.New()
	e.HTTPErrorHandler = handlers.ErrorHandler(e)

	// validator for request payloads
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to build echo validator because of missing en translations")
	}
	e.Validator = validation.Echo(validator.New(), trans)

	// repositories
	txExecutor := transactor.NewPgxWithinTransactionExecutor(pgPool)
	pgCustomerRps := repository.NewPostgresCustomerRepository(txExecutor)
	mongoCustomerRps := repository.NewMongoCustomerRepository(mongoClient)

	// cache
	customerCache := cache.NewRedisCustomerCache(redisClient)

	// services
	customerSvcV1 := service.NewCustomerService(pgCustomerRps, customerCache, geocoder)
	customerSvcV2 := service.NewCustomerService(mongoCustomerRps, customerCache, geocoder)

	// handlers
	customerHandlerV1 := handlers.NewCustomerHTTPHandler(customerSvcV1)
	customerHandlerV2 := handlers.NewCustomerHTTPHandler(customerSvcV2)

	// API routes
	api := e.Group("/api")

	// customers v1
	customersAPIV1 := api.Group("/v1/customers")
	customersAPIV1.GET("", customerHandlerV1.GetAll)
	customersAPIV1.GET("/:id", customerHandlerV1.Get)
	customersAPIV1.POST("", customerHandlerV1.Post)
	customersAPIV1.DELETE("/:id", customerHandlerV1.DeleteByID)

	// customers v2
	customersAPIV2 := api.Group("/v2/customers")
	customersAPIV2.GET("", customerHandlerV2.GetAll)
	customersAPIV2.GET("/:id", customerHandlerV2.Get)
	customersAPIV2.POST("", customerHandlerV2.Post)
	customersAPIV2.DELETE("/:id", customerHandlerV2.DeleteByID)

	return e, nil
}
