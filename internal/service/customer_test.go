package service

import (
	"context"
	"errors"
	"testing"

	cacheMocks "github.com/rocketstore/customers-api/internal/cache/mocks"
	apperrors "github.com/rocketstore/customers-api/internal/errors"
	"github.com/rocketstore/customers-api/internal/geocode"
	geocodeMocks "github.com/rocketstore/customers-api/internal/geocode/mocks"
	"github.com/rocketstore/customers-api/internal/model"
	"github.com/rocketstore/customers-api/internal/repository"
	rpsMocks "github.com/rocketstore/customers-api/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type customerTestData struct {
	ctx      context.Context
	customer *model.Customer
	location *geocode.Location
}

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc       CustomerService
	customerRpsMock   *rpsMocks.CustomerRepository
	customerCacheMock *cacheMocks.CustomerCache
	geocoderMock      *geocodeMocks.Geocoder
	testData          *customerTestData
}

func (s *customerServiceTestSuite) SetupSuite() {
	vat := "123456789"
	s.testData = &customerTestData{
		ctx: context.Background(),
		customer: &model.Customer{
			ID:        "ecc770d9-4576-4f72-affa-8b1454246692",
			Name:      "A customer",
			Email:     "a.customer@somemail.pt",
			VatNumber: &vat,
			City:      "Porto",
		},
		location: &geocode.Location{
			Latitude:  41.149,
			Longitude: -8.611,
			Name:      "Porto, Portugal",
			Type:      "locality",
			Region:    "Porto",
			Country:   "Portugal",
		},
	}
}

func (s *customerServiceTestSuite) SetupTest() {
	t := s.T()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.customerCacheMock = cacheMocks.NewCustomerCache(t)
	s.geocoderMock = geocodeMocks.NewGeocoder(t)
	s.customerSvc = NewCustomerService(s.customerRpsMock, s.customerCacheMock, s.geocoderMock)
}

func (s *customerServiceTestSuite) TestCreateSuccessfully() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("customer must be created and get new identifier assigned")
	{
		c, err := s.customerSvc.Create(ctx, &model.Customer{
			Name:  "A customer",
			Email: "a.customer@somemail.pt",
			City:  "Porto",
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(c.ID, "new identifier must be assigned")
	}
}

func (s *customerServiceTestSuite) TestCreateDuplicateEmail() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(repository.ErrEmailTaken).Once()

	s.T().Log("second creation with the same email must be rejected with stable code")
	{
		_, err := s.customerSvc.Create(ctx, &model.Customer{
			Name:  "A customer",
			Email: "a.customer@somemail.pt",
			City:  "Porto",
		})
		s.Assert().Error(err, "error must be raised")
		s.Assert().True(apperrors.FailedWith(err, apperrors.CodeCustomerAlreadyExists), "error code must be CustomerAlreadyExists")
	}
}

func (s *customerServiceTestSuite) TestCreateInfrastructureFault() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(errors.New("db err")).Once()

	s.T().Log("store fault must propagate as non-business error")
	{
		_, err := s.customerSvc.Create(ctx, s.testData.customer)
		s.Assert().Error(err, "error must be raised")
		s.Assert().Empty(apperrors.BusinessCode(err), "store fault must not be classified as business error")
	}
}

func (s *customerServiceTestSuite) TestFindByIDEmptyID() {
	ctx := s.testData.ctx

	s.T().Log("empty id must be rejected before any store access")
	{
		_, err := s.customerSvc.FindByID(ctx, "")
		s.Assert().True(apperrors.FailedWith(err, apperrors.CodeInvalidID), "error code must be InvalidID")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, "")
		s.customerCacheMock.AssertNotCalled(s.T(), "FindByID", ctx, "")
	}
}

func (s *customerServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()

	s.T().Log("customer is missing in cache and in primary datasource")
	{
		_, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().True(apperrors.FailedWith(err, apperrors.CodeCustomerDoesntExist), "error code must be CustomerDontExists")
		s.geocoderMock.AssertNotCalled(s.T(), "Forward", mock.Anything, mock.Anything)
	}
}

func (s *customerServiceTestSuite) TestFindByIDFromCache() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.geocoderMock.On("Forward", mock.Anything, customer.City).Return(nil, nil).Once()

	s.T().Log("customer must be found in cache")
	{
		detail, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer.ID, detail.ID, "detail must represent cached customer")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestFindByIDEnriched() {
	ctx := s.testData.ctx
	customer := s.testData.customer
	location := s.testData.location

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerCacheMock.On("Cache", ctx, customer).Return(nil).Once()
	s.geocoderMock.On("Forward", mock.Anything, customer.City).Return(location, nil).Once()

	s.T().Log("customer detail must be enriched with resolved geolocation")
	{
		detail, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(detail.Forward, "geolocation must be attached")
		s.Assert().Equal(location.Longitude, detail.Forward.Longitude, "resolved longitude must be preserved")
	}
}

func (s *customerServiceTestSuite) TestFindByIDGeocoderFailed() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.geocoderMock.On("Forward", mock.Anything, customer.City).Return(nil, context.DeadlineExceeded).Once()

	s.T().Log("geocoding failure must not fail customer retrieval")
	{
		detail, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(detail.Forward, "detail must stay unenriched")
	}
}

func (s *customerServiceTestSuite) TestFindByIDGeocoderFoundNothing() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.geocoderMock.On("Forward", mock.Anything, customer.City).Return(nil, nil).Once()

	s.T().Log("absent geocoding result must leave detail unenriched")
	{
		detail, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(detail.Forward, "detail must stay unenriched")
	}
}

func (s *customerServiceTestSuite) TestFindByIDCacheFailed() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, errors.New("cache err")).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerCacheMock.On("Cache", ctx, customer).Return(nil).Once()
	s.geocoderMock.On("Forward", mock.Anything, customer.City).Return(nil, nil).Once()

	s.T().Log("cache fault on read path must degrade to primary datasource")
	{
		detail, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer.ID, detail.ID, "detail must represent stored customer")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDEmptyID() {
	ctx := s.testData.ctx

	s.T().Log("empty id must be rejected before any store access")
	{
		err := s.customerSvc.DeleteByID(ctx, "")
		s.Assert().True(apperrors.FailedWith(err, apperrors.CodeInvalidID), "error code must be InvalidID")
		s.customerRpsMock.AssertNotCalled(s.T(), "DeleteByID", ctx, "")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("EvictByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(false, nil).Once()

	s.T().Log("removal of missing customer must be reported as not existing")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().True(apperrors.FailedWith(err, apperrors.CodeCustomerDoesntExist), "error code must be CustomerDontExists")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDCacheFailed() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("EvictByID", ctx, customer.ID).Return(errors.New("cache err")).Once()

	s.T().Log("delete customer from cache failed")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().Error(err, "cache raised error - error must be raised up")
		s.customerRpsMock.AssertNotCalled(s.T(), "DeleteByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("EvictByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(true, nil).Once()

	s.T().Log("deleted successfully")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertCalled(s.T(), "DeleteByID", ctx, customer.ID)
	}
}

func (s *customerServiceTestSuite) TestFindAllSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	customers := []*model.Customer{
		customer,
	}

	s.customerRpsMock.On("FindAll", ctx, repository.CustomerFilter{}).Return(customers, nil).Once()

	s.T().Log("customers must be listed as summaries")
	{
		summaries, err := s.customerSvc.FindAll(ctx, repository.CustomerFilter{})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Len(summaries, 1, "single summary must be returned")
		s.Assert().Equal(customer.Email, summaries[0].Email, "summary must carry email")
	}
}

func (s *customerServiceTestSuite) TestFindAllEmptyResult() {
	ctx := s.testData.ctx
	filter := repository.CustomerFilter{Name: "nobody"}

	s.customerRpsMock.On("FindAll", ctx, filter).Return([]*model.Customer{}, nil).Once()

	s.T().Log("empty result set is a valid outcome, not an error")
	{
		summaries, err := s.customerSvc.FindAll(ctx, filter)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Empty(summaries, "no summaries must be returned")
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
