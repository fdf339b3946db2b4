// Package handler содержит HTTP-обработчики API сервиса бронирования.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/lpg-booking-system/internal/catalog"
	"github.com/mmeshcher/lpg-booking-system/internal/middleware"
	"github.com/mmeshcher/lpg-booking-system/internal/model"
	"github.com/mmeshcher/lpg-booking-system/internal/payment"
	"github.com/mmeshcher/lpg-booking-system/internal/service"
	"github.com/mmeshcher/lpg-booking-system/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Register(ctx context.Context, fullName, email, phone, address, password string) (bool, error)
	Login(ctx context.Context, email, password string) (bool, error)
	Logout(ctx context.Context) error
	CurrentUser() (*model.User, bool)
	CreateBooking(ctx context.Context, userID, cylinderID string, quantity int, deliveryType model.DeliveryType, deliveryAddress string) (*model.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]model.Booking, error)
}

// Handler реализует HTTP-обработчики API сервиса бронирования.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
	}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Register обрабатывает регистрацию нового пользователя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.FullName == "" || req.Password == "" || !validation.IsValidEmail(req.Email) {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Register(r.Context(), req.FullName, req.Email, req.Phone, req.Address, req.Password)
	if err != nil {
		h.logger.Error("register user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !ok {
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		return
	}

	h.setSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login выполняет аутентификацию пользователя и устанавливает cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ok, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("login user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.setSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

// setSessionCookie выдаёт cookie для пользователя текущей сессии.
// Клиент получает данные пользователя отдельным запросом состояния сессии.
func (h *Handler) setSessionCookie(w http.ResponseWriter) {
	if user, ok := h.service.CurrentUser(); ok {
		h.authMiddleware.SetAuthCookie(w, user.ID)
	}
}

// Logout завершает сессию текущего пользователя. Всегда успешен.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.logger.Error("logout error", zap.Error(err))
	}

	h.authMiddleware.ClearAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

// GetSession возвращает пользователя текущей сессии (в том числе восстановленной при старте).
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	user, ok := h.service.CurrentUser()
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(user); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// ListCylinders возвращает каталог газовых баллонов.
func (h *Handler) ListCylinders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(catalog.List()); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// GetCylinder возвращает одну позицию каталога по идентификатору.
func (h *Handler) GetCylinder(w http.ResponseWriter, r *http.Request) {
	cylinder, err := catalog.Find(urlParamID(r))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cylinder); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

type bookingRequest struct {
	CylinderID      string `json:"cylinderId"`
	Quantity        int    `json:"quantity"`
	DeliveryType    string `json:"deliveryType"`
	DeliveryAddress string `json:"deliveryAddress"`
}

type bookingResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	CylinderID      string `json:"cylinderId"`
	Quantity        int    `json:"quantity"`
	DeliveryType    string `json:"deliveryType"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	TotalAmount     int64  `json:"totalAmount"`
	DeliveryCharge  int64  `json:"deliveryCharge"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`
	CreatedAt       string `json:"createdAt"`
}

func toBookingResponse(b model.Booking) bookingResponse {
	return bookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		CylinderID:      b.CylinderID,
		Quantity:        b.Quantity,
		DeliveryType:    string(b.DeliveryType),
		DeliveryAddress: b.DeliveryAddress,
		TotalAmount:     b.TotalAmount,
		DeliveryCharge:  b.DeliveryCharge,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
	}
}

// CreateBooking создаёт бронирование для текущего пользователя.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, req.CylinderID, req.Quantity,
		model.DeliveryType(req.DeliveryType), req.DeliveryAddress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, catalog.ErrCylinderNotFound):
			http.Error(w, http.StatusText(http.StatusUnprocessableEntity), http.StatusUnprocessableEntity)
		case errors.Is(err, service.ErrMissingAddress), errors.Is(err, service.ErrInvalidDeliveryType):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, payment.ErrDeclined):
			http.Error(w, http.StatusText(http.StatusPaymentRequired), http.StatusPaymentRequired)
		default:
			h.logger.Error("create booking error", zap.Error(err), zap.String("userID", userID))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toBookingResponse(*booking)); err != nil {
		h.logger.Error("encode booking error", zap.Error(err))
	}
}

// GetBookings возвращает список бронирований текущего пользователя, новые первыми.
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	bookings, err := h.service.ListBookings(r.Context(), userID)
	if err != nil {
		h.logger.Error("get bookings error", zap.Error(err), zap.String("userID", userID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(bookings) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
