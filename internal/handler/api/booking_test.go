//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gearshare/internal/domain/booking"
	"gearshare/internal/handler/api"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/handler/middleware"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"
	"gearshare/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockBookingCommands struct{ mock.Mock }

func (m *mockBookingCommands) Create(ctx context.Context, req reqdto.CreateBookingRequest, bookerID uuid.UUID) (*queries.BookingView, error) {
	args := m.Called(ctx, req, bookerID)
	if view := args.Get(0); view != nil {
		return view.(*queries.BookingView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingCommands) Decide(ctx context.Context, actorID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error) {
	args := m.Called(ctx, actorID, bookingID, approved)
	if view := args.Get(0); view != nil {
		return view.(*queries.BookingView), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingQueries struct{ mock.Mock }

func (m *mockBookingQueries) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*queries.BookingView, error) {
	args := m.Called(ctx, actorID, id)
	if view := args.Get(0); view != nil {
		return view.(*queries.BookingView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingQueries) ListForUser(ctx context.Context, perspective booking.Perspective, userID uuid.UUID, filter booking.ViewFilter) ([]*queries.BookingView, error) {
	args := m.Called(ctx, perspective, userID, filter)
	if views := args.Get(0); views != nil {
		return views.([]*queries.BookingView), args.Error(1)
	}
	return nil, args.Error(1)
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCommands *mockBookingCommands
	mockQueries  *mockBookingQueries
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCommands = &mockBookingCommands{}
	s.mockQueries = &mockBookingQueries{}
	handler := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	bookings := s.router.Group("/bookings")
	bookings.Use(middleware.RequireIdentity())
	bookings.POST("", handler.Create)
	bookings.GET("", handler.ListForBooker)
	bookings.GET("/owner", handler.ListForOwner)
	bookings.GET("/:bookingId", handler.GetByID)
	bookings.PATCH("/:bookingId", handler.Decide)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) perform(method, url string, body any, sharerID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sharerID != "" {
		req.Header.Set(middleware.IdentityHeader, sharerID)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BookingHandlerTestSuite) TestIdentityHeader() {
	s.Run("missing header is rejected", func() {
		rec := s.perform(http.MethodGet, "/bookings", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "X-Sharer-User-Id")
	})

	s.Run("malformed header is rejected", func() {
		rec := s.perform(http.MethodGet, "/bookings", nil, "not-a-uuid")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCreate() {
	b := builder.NewBookingBuilder()

	s.Run("valid request returns 201", func() {
		s.mockCommands.On("Create", mock.Anything, mock.Anything, b.BookerID).
			Return(b.BuildView(), nil).Once()

		rec := s.perform(http.MethodPost, "/bookings", b.BuildCreateRequestDTO(), b.BookerID.String())
		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), `"status":"WAITING"`)
	})

	s.Run("unknown user maps to 404", func() {
		s.mockCommands.On("Create", mock.Anything, mock.Anything, b.BookerID).
			Return(nil, errs.ErrUserNotFound).Once()

		rec := s.perform(http.MethodPost, "/bookings", b.BuildCreateRequestDTO(), b.BookerID.String())
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("self-booking maps to 400", func() {
		s.mockCommands.On("Create", mock.Anything, mock.Anything, b.BookerID).
			Return(nil, errs.ErrOwnBookingNotAllowed).Once()

		rec := s.perform(http.MethodPost, "/bookings", b.BuildCreateRequestDTO(), b.BookerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unavailable item maps to 400", func() {
		s.mockCommands.On("Create", mock.Anything, mock.Anything, b.BookerID).
			Return(nil, errs.ErrItemUnavailable).Once()

		rec := s.perform(http.MethodPost, "/bookings", b.BuildCreateRequestDTO(), b.BookerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing body field maps to 400", func() {
		rec := s.perform(http.MethodPost, "/bookings", map[string]any{"itemId": b.ItemID}, b.BookerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
		s.mockCommands.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func (s *BookingHandlerTestSuite) TestDecide() {
	b := builder.NewBookingBuilder()
	url := "/bookings/" + b.ID.String()

	s.Run("approval returns 200", func() {
		s.mockCommands.On("Decide", mock.Anything, b.OwnerID, b.ID, true).
			Return(b.BuildView(), nil).Once()

		rec := s.perform(http.MethodPatch, url+"?approved=true", nil, b.OwnerID.String())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("non-owner maps to 403", func() {
		s.mockCommands.On("Decide", mock.Anything, b.BookerID, b.ID, true).
			Return(nil, errs.ErrNotItemOwner).Once()

		rec := s.perform(http.MethodPatch, url+"?approved=true", nil, b.BookerID.String())
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("already decided maps to 400", func() {
		s.mockCommands.On("Decide", mock.Anything, b.OwnerID, b.ID, false).
			Return(nil, errs.ErrBookingAlreadyDecided).Once()

		rec := s.perform(http.MethodPatch, url+"?approved=false", nil, b.OwnerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing approved parameter maps to 400", func() {
		rec := s.perform(http.MethodPatch, url, nil, b.OwnerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGetByID() {
	b := builder.NewBookingBuilder()
	url := "/bookings/" + b.ID.String()

	s.Run("accessible booking returns 200", func() {
		s.mockQueries.On("GetByID", mock.Anything, b.BookerID, b.ID).
			Return(b.BuildView(), nil).Once()

		rec := s.perform(http.MethodGet, url, nil, b.BookerID.String())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("no access maps to 403", func() {
		stranger := uuid.New()
		s.mockQueries.On("GetByID", mock.Anything, stranger, b.ID).
			Return(nil, errs.ErrBookingNoAccess).Once()

		rec := s.perform(http.MethodGet, url, nil, stranger.String())
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("unknown booking maps to 404", func() {
		s.mockQueries.On("GetByID", mock.Anything, b.BookerID, b.ID).
			Return(nil, errs.ErrBookingNotFound).Once()

		rec := s.perform(http.MethodGet, url, nil, b.BookerID.String())
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	b := builder.NewBookingBuilder()

	s.Run("state defaults to ALL", func() {
		s.mockQueries.On("ListForUser", mock.Anything, booking.AsBooker, b.BookerID, booking.FilterAll).
			Return([]*queries.BookingView{b.BuildView()}, nil).Once()

		rec := s.perform(http.MethodGet, "/bookings", nil, b.BookerID.String())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown state echoes the public message", func() {
		rec := s.perform(http.MethodGet, "/bookings?state=SOMETIME", nil, b.BookerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "Unknown state: SOMETIME")
		s.mockQueries.AssertNotCalled(s.T(), "ListForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	s.Run("owner listing without items maps to 400", func() {
		s.mockQueries.On("ListForUser", mock.Anything, booking.AsOwner, b.OwnerID, booking.FilterAll).
			Return(nil, errs.ErrNoItemsOwned).Once()

		rec := s.perform(http.MethodGet, "/bookings/owner", nil, b.OwnerID.String())
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
