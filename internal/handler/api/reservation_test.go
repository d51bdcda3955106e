//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/handler/api"
	"hotel-reservations/internal/handler/middleware"
	"hotel-reservations/internal/pkg/errs"
	"hotel-reservations/internal/usecase"
	"hotel-reservations/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSagas struct {
	mock.Mock
}

func (m *MockSagas) CreateReservation(ctx context.Context, in usecase.CreateReservationInput) (reservation.Reservation, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockSagas) CancelReservation(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

type MockQueries struct {
	mock.Mock
}

func (m *MockQueries) Get(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockQueries) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]reservation.Reservation, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockQueries) Modify(ctx context.Context, id uuid.UUID, in usecase.ModifyInput) (reservation.Reservation, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockQueries) CheckIn(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

func (m *MockQueries) CheckOut(ctx context.Context, id uuid.UUID) (reservation.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(reservation.Reservation), args.Error(1)
}

type ReservationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockSagas   *MockSagas
	mockQueries *MockQueries
	customerID  uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockSagas = new(MockSagas)
	s.mockQueries = new(MockQueries)
	s.customerID = uuid.New()
	handler := api.NewReservationHandler(s.mockSagas, s.mockQueries)

	// Stand-in for the JWT middleware.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("customer_id", s.customerID)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, handler.Create)
	s.router.GET("/reservations", authMiddleware, handler.ListMine)
	s.router.GET("/reservations/:id", authMiddleware, handler.Get)
	s.router.POST("/reservations/:id/cancel", authMiddleware, handler.Cancel)
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) request(method, url, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func createBody(roomID uuid.UUID, hotelID uuid.UUID) string {
	body := map[string]any{
		"hotel_id":    hotelID,
		"room_id":     roomID,
		"room_type":   "standard",
		"check_in":    "2026-03-10",
		"check_out":   "2026-03-13",
		"guest_count": 2,
		"payment":     map[string]string{"type": "card", "token": "tok_visa_4242"},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func (s *ReservationHandlerTestSuite) TestCreate() {
	b := builder.NewReservationBuilder()
	res := b.Build()

	s.Run("created", func() {
		s.SetupTest()
		s.mockSagas.On("CreateReservation", mock.Anything, mock.Anything).Return(res, nil)

		w := s.request(http.MethodPost, "/reservations", createBody(b.RoomID, b.HotelID))

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), res.ID.String())
	})

	s.Run("declined payment maps to 402", func() {
		s.SetupTest()
		declined := errs.Mark(errs.New("payment declined: insufficient funds"), errs.ErrDeclined)
		s.mockSagas.On("CreateReservation", mock.Anything, mock.Anything).
			Return(reservation.Reservation{}, declined)

		w := s.request(http.MethodPost, "/reservations", createBody(b.RoomID, b.HotelID))

		s.Equal(http.StatusPaymentRequired, w.Code)
	})

	s.Run("hold conflict maps to 409", func() {
		s.SetupTest()
		conflict := errs.Mark(errs.New("room already blocked"), errs.ErrConflict)
		s.mockSagas.On("CreateReservation", mock.Anything, mock.Anything).
			Return(reservation.Reservation{}, conflict)

		w := s.request(http.MethodPost, "/reservations", createBody(b.RoomID, b.HotelID))

		s.Equal(http.StatusConflict, w.Code)
	})

	s.Run("checkout before checkin maps to 400", func() {
		s.SetupTest()
		body := map[string]any{
			"hotel_id":    b.HotelID,
			"room_id":     b.RoomID,
			"room_type":   "standard",
			"check_in":    "2026-03-13",
			"check_out":   "2026-03-10",
			"guest_count": 2,
			"payment":     map[string]string{"type": "card", "token": "tok_visa_4242"},
		}
		raw, _ := json.Marshal(body)

		w := s.request(http.MethodPost, "/reservations", string(raw))

		s.Equal(http.StatusBadRequest, w.Code)
		s.mockSagas.AssertNotCalled(s.T(), "CreateReservation", mock.Anything, mock.Anything)
	})

	s.Run("missing room type maps to 400", func() {
		s.SetupTest()
		body := map[string]any{
			"hotel_id":    b.HotelID,
			"check_in":    "2026-03-10",
			"check_out":   "2026-03-13",
			"guest_count": 2,
			"payment":     map[string]string{"type": "card", "token": "tok_visa_4242"},
		}
		raw, _ := json.Marshal(body)

		w := s.request(http.MethodPost, "/reservations", string(raw))

		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("unauthenticated", func() {
		s.SetupTest()
		req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(createBody(b.RoomID, b.HotelID)))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestGet() {
	b := builder.NewReservationBuilder()
	res := b.Build()

	s.Run("found", func() {
		s.SetupTest()
		s.mockQueries.On("Get", mock.Anything, res.ID).Return(res, nil)

		w := s.request(http.MethodGet, "/reservations/"+res.ID.String(), "")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"status":"CONFIRMED"`)
	})

	s.Run("not found maps to 404", func() {
		s.SetupTest()
		id := uuid.New()
		s.mockQueries.On("Get", mock.Anything, id).
			Return(reservation.Reservation{}, errs.Mark(errs.New("reservation not found"), errs.ErrNotFound))

		w := s.request(http.MethodGet, "/reservations/"+id.String(), "")

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("bad id maps to 400", func() {
		s.SetupTest()
		w := s.request(http.MethodGet, "/reservations/not-a-uuid", "")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	b := builder.NewReservationBuilder()

	s.Run("cancelled", func() {
		s.SetupTest()
		cancelled := b.AsCancelled().Build()
		s.mockSagas.On("CancelReservation", mock.Anything, cancelled.ID).Return(cancelled, nil)

		w := s.request(http.MethodPost, "/reservations/"+cancelled.ID.String()+"/cancel", "")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"status":"CANCELLED"`)
	})

	s.Run("already cancelled maps to 422", func() {
		s.SetupTest()
		id := uuid.New()
		s.mockSagas.On("CancelReservation", mock.Anything, id).
			Return(reservation.Reservation{}, errs.Mark(errs.New("reservation is CANCELLED"), errs.ErrInvalidState))

		w := s.request(http.MethodPost, "/reservations/"+id.String()+"/cancel", "")

		s.Equal(http.StatusUnprocessableEntity, w.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestListMine() {
	s.Run("returns the caller's reservations", func() {
		s.SetupTest()
		list := []reservation.Reservation{
			builder.NewReservationBuilder().Build(),
			builder.NewReservationBuilder().Build(),
		}
		s.mockQueries.On("ListByCustomer", mock.Anything, s.customerID).Return(list, nil)

		w := s.request(http.MethodGet, "/reservations", "")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), list[0].ID.String())
		s.Contains(w.Body.String(), list[1].ID.String())
	})
}
