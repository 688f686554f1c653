package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rocketstore/customers-api/internal/model"
	"github.com/rocketstore/customers-api/internal/repository"
	"github.com/rocketstore/customers-api/internal/service"
)

type newCustomer struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"emailAddress" validate:"required,email"`
	VatNumber *string `json:"vatNumber" validate:"omitempty,len=9,number"`
	City      string  `json:"city" validate:"required"`
}

type newCustomerID struct {
	ID string `json:"id"`
}

type customerFilter struct {
	Name  string `query:"name"`
	Email string `query:"emailAddress"`
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// Post creates new customer
// @Summary     New Customer
// @Description Creates new customer
// @Tags        customers
// @Accept		json
// @Produce     json
// @Param 		newCustomer body	 newCustomer true "Data for new customer"
// @Success     201    		{object} newCustomerID
// @Failure     400    		{object} echo.HTTPError
// @Failure     409    		{object} echo.HTTPError
// @Failure     500    		{object} echo.HTTPError
// @Router      /api/v1/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	customer, err := h.customerSvc.Create(c.Request().Context(), &model.Customer{
		Name:      nc.Name,
		Email:     nc.Email,
		VatNumber: nc.VatNumber,
		City:      nc.City,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("%s/%s", c.Request().URL.Path, customer.ID))
	return c.JSON(http.StatusCreated, &newCustomerID{ID: customer.ID})
}

// GetAll gets all customers
// @Summary     Get all customers
// @Description Returns all customers, optionally filtered by name and email substring
// @Tags        customers
// @Produce     json
// @Param       name         query string false "Name filter"
// @Param       emailAddress query string false "Email filter"
// @Success     200    {array}  model.CustomerSummary
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	var filter customerFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customers, err := h.customerSvc.FindAll(c.Request().Context(), repository.CustomerFilter{
		Name:  filter.Name,
		Email: filter.Email,
	})
	if err != nil {
		return err
	}

	if len(customers) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "customers not found")
	}
	return c.JSON(http.StatusOK, customers)
}

// Get gets single customer
// @Summary     Get single customer by id
// @Description Returns single customer with provided id, enriched with city geolocation when resolvable
// @Tags        customers
// @Produce     json
// @Param       id     path 	string true "Customer guid" Format(uuid)
// @Success     200    {object} model.CustomerDetail
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	customer, err := h.customerSvc.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteByID deletes customer
// @Summary     Delete customer by id
// @Description Deletes customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path 	string true "Customer guid" Format(uuid)
// @Success     204    "Successful status code"
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/v1/customers/{id} [delete]
func (h *CustomerHTTPHandler) DeleteByID(c echo.Context) error {
	if err := h.customerSvc.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
