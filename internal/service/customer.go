package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rocketstore/customers-api/internal/cache"
	"github.com/rocketstore/customers-api/internal/errors"
	"github.com/rocketstore/customers-api/internal/geocode"
	"github.com/rocketstore/customers-api/internal/model"
	"github.com/rocketstore/customers-api/internal/repository"
	"github.com/sirupsen/logrus"
)

// geocoding is best-effort, it must not hold the primary result hostage
const geocodeTimeout = 2 * time.Second

// CustomerService allows retrieving, creating and deleting customers.
// Business rule violations are returned as *errors.BusinessErr with
// stable codes, any other error means infrastructure fault
type CustomerService interface {
	Create(context.Context, *model.Customer) (*model.Customer, error)
	FindAll(context.Context, repository.CustomerFilter) ([]model.CustomerSummary, error)
	FindByID(context.Context, string) (*model.CustomerDetail, error)
	DeleteByID(context.Context, string) error
}

type customerService struct {
	customerRepo  repository.CustomerRepository
	customerCache cache.CustomerCache
	geocoder      geocode.Geocoder
}

// NewCustomerService builds CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository, customerCache cache.CustomerCache, geocoder geocode.Geocoder) CustomerService {
	return &customerService{
		customerRepo:  customerRepo,
		customerCache: customerCache,
		geocoder:      geocoder,
	}
}

// Create assigns new identifier and persists provided customer.
// Email uniqueness is guaranteed by the store constraint, so concurrent
// creates with the same email can't slip through a check-then-insert gap
func (s *customerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	c.ID = uuid.NewString()

	if err := s.customerRepo.Create(ctx, c); err != nil {
		if stderrors.Is(err, repository.ErrEmailTaken) {
			logrus.Warnf("customer with email '%s' already exists", c.Email)
			return nil, errors.NewBusinessErr(
				errors.CodeCustomerAlreadyExists,
				fmt.Sprintf("a customer with email '%s' already exists", c.Email),
			)
		}
		return nil, err
	}

	logrus.Infof("customer '%s' created successfully", c.Name)
	return c, nil
}

// FindAll lists customers as summaries, optionally narrowed by
// case-insensitive substring filters on name and email. Empty result
// is a valid outcome, not an error
func (s *customerService) FindAll(ctx context.Context, filter repository.CustomerFilter) ([]model.CustomerSummary, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.CustomerSummary, 0, len(customers))
	for _, c := range customers {
		summaries = append(summaries, c.Summary())
	}
	return summaries, nil
}

// FindByID returns customer detail enriched with geolocation of the
// customer city when the geocoding provider resolves it in time
func (s *customerService) FindByID(ctx context.Context, id string) (*model.CustomerDetail, error) {
	if id == "" {
		logrus.Warn("customer retrieval requested with empty id")
		return nil, errors.NewBusinessErr(errors.CodeInvalidID, "invalid id")
	}

	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		logrus.Warnf("failed to read customer %s from cache - %v", id, err)
	}

	if c == nil {
		if c, err = s.customerRepo.FindByID(ctx, id); err != nil {
			return nil, err
		}

		if c == nil {
			logrus.Warnf("customer %s doesn't exist", id)
			return nil, errors.NewBusinessErr(errors.CodeCustomerDoesntExist, "customer doesn't exist")
		}

		if err := s.customerCache.Cache(ctx, c); err != nil {
			logrus.Warnf("failed to cache customer %s - %v", id, err)
		}
	}

	detail := c.Detail()
	detail.Forward = s.forward(ctx, c.City)
	return detail, nil
}

// DeleteByID removes customer permanently. Delete is not idempotent,
// repeated delete of the same id reports that customer doesn't exist
func (s *customerService) DeleteByID(ctx context.Context, id string) error {
	if id == "" {
		logrus.Warn("customer removal requested with empty id")
		return errors.NewBusinessErr(errors.CodeInvalidID, "invalid id")
	}

	if err := s.customerCache.EvictByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.customerRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		logrus.Warnf("customer %s doesn't exist", id)
		return errors.NewBusinessErr(errors.CodeCustomerDoesntExist, "customer doesn't exist")
	}

	logrus.Infof("customer %s deleted", id)
	return nil
}

// forward resolves geolocation for city, any provider failure or
// absent result degrades to no enrichment
func (s *customerService) forward(ctx context.Context, city string) *geocode.Location {
	geocodeCtx, cancel := context.WithTimeout(ctx, geocodeTimeout)
	defer cancel()

	loc, err := s.geocoder.Forward(geocodeCtx, city)
	if err != nil {
		logrus.Warnf("failed to resolve geolocation for city '%s' - %v", city, err)
		return nil
	}

	if loc == nil {
		logrus.Warnf("geocoding provider found nothing for city '%s'", city)
		return nil
	}
	return loc
}
