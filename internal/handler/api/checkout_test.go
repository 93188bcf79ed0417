//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"storefront/internal/handler/api"
	"storefront/internal/usecase/commands"
	"storefront/tests/common/builder"
	"storefront/tests/common/httptest"
	"storefront/tests/common/testutil"
	commandsmock "storefront/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	handler      *api.CheckoutHandler
	sessionID    uuid.UUID
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)
	s.sessionID = uuid.New()

	sessionMiddleware := func(c *gin.Context) {
		c.Set("session_id", s.sessionID)
		c.Next()
	}

	s.router.POST("/checkout", sessionMiddleware, s.handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	url := "/checkout"
	reqBody := builder.BuildCheckoutRequestDTO()

	s.Run("success: returns 201 with the confirmation redirect", func() {
		orderID := uuid.New()
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.sessionID, gomock.Any(), "card").
			Return(&commands.CreateOrderResult{
				OrderID:        orderID,
				RedirectTarget: "/order-received/" + orderID.String(),
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(orderID.String(), body["order_id"])
		s.Equal("/order-received/"+orderID.String(), body["redirect_url"])
	})

	s.Run("error: 400 on validation errors", func() {
		missing := []struct {
			name  string
			field string
		}{
			{name: "missing field: first_name", field: "first_name"},
			{name: "missing field: last_name", field: "last_name"},
			{name: "missing field: address_1", field: "address_1"},
			{name: "missing field: email", field: "email"},
		}

		for _, tc := range missing {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(tc.field, nil))

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}

		s.Run("malformed email", func() {
			requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("email", "not-an-email"))

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		})
	})

	s.Run("error: 409 on an empty cart", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.sessionID, gomock.Any(), "card").
			Return(nil, commands.ErrEmptyCart).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Cart is empty")
	})

	s.Run("error: 423 when the cart is busy", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), s.sessionID, gomock.Any(), "card").
			Return(nil, commands.ErrCartBusy).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusLocked, "Cart is busy, try again")
	})
}
