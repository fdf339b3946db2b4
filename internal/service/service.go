// Package service реализует бизнес-логику сервиса бронирования газовых баллонов.
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/lpg-booking-system/internal/catalog"
	"github.com/mmeshcher/lpg-booking-system/internal/model"
	"github.com/mmeshcher/lpg-booking-system/internal/notification"
	"github.com/mmeshcher/lpg-booking-system/internal/payment"
	"github.com/mmeshcher/lpg-booking-system/internal/repository"
	"github.com/mmeshcher/lpg-booking-system/internal/validation"
)

// ErrInvalidQuantity возвращается, если количество баллонов выходит за допустимые пределы.
var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 5")
	// ErrInvalidDeliveryType возвращается при неизвестном способе получения.
	ErrInvalidDeliveryType = errors.New("unknown delivery type")
	// ErrMissingAddress возвращается, если для доставки на дом не указан адрес.
	ErrMissingAddress = errors.New("delivery address required for home delivery")
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	CreateAccount(ctx context.Context, account model.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	SaveSession(ctx context.Context, user model.User) error
	LoadSession(ctx context.Context) (*model.User, error)
	ClearSession(ctx context.Context) error
	CreateBooking(ctx context.Context, booking model.Booking) error
	GetBookingsByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

// Service содержит бизнес-логику сервиса бронирования: учётные записи,
// текущая сессия и создание бронирований.
type Service struct {
	repo     Repository
	gateway  payment.Gateway
	receipts *notification.ReceiptSender

	mu          sync.RWMutex
	currentUser *model.User
}

// NewService создаёт новый сервис с указанным репозиторием и платёжным шлюзом.
func NewService(repo Repository, gateway payment.Gateway, receipts *notification.ReceiptSender) *Service {
	return &Service{
		repo:     repo,
		gateway:  gateway,
		receipts: receipts,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// Restore восстанавливает сохранённую сессию при старте процесса без повторной
// проверки учётных данных. Отсутствие сохранённой сессии не является ошибкой.
func (s *Service) Restore(ctx context.Context) error {
	user, err := s.repo.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()

	return nil
}

// CurrentUser возвращает текущего аутентифицированного пользователя, если он есть.
func (s *Service) CurrentUser() (*model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return nil, false
	}

	u := *s.currentUser
	return &u, true
}

// Register регистрирует нового пользователя и сразу аутентифицирует его.
// Возвращает false без ошибки, если e-mail уже занят.
func (s *Service) Register(ctx context.Context, fullName, email, phone, address, password string) (bool, error) {
	account := model.Account{
		User: model.User{
			ID:       uuid.NewString(),
			Email:    email,
			FullName: fullName,
			Phone:    phone,
			Address:  address,
		},
		PasswordHash: hashPassword(email, password),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return false, nil
		}
		return false, err
	}

	if err := s.startSession(ctx, account.User); err != nil {
		return false, err
	}

	return true, nil
}

// Login проверяет e-mail и пароль и открывает сессию пользователя.
// Возвращает false без ошибки при неверных учётных данных.
func (s *Service) Login(ctx context.Context, email, password string) (bool, error) {
	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	if !hmac.Equal(hashPassword(email, password), account.PasswordHash) {
		return false, nil
	}

	if err := s.startSession(ctx, account.User); err != nil {
		return false, err
	}

	return true, nil
}

// Logout безусловно завершает сессию: состояние в памяти сбрасывается даже
// при ошибке очистки сохранённого слота.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.currentUser = nil
	s.mu.Unlock()

	return s.repo.ClearSession(ctx)
}

func (s *Service) startSession(ctx context.Context, user model.User) error {
	if err := s.repo.SaveSession(ctx, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.currentUser = &user
	s.mu.Unlock()

	return nil
}

func hashPassword(email, password string) []byte {
	sum := sha256.Sum256([]byte(email + ":" + password))
	return sum[:]
}

// CreateBooking создаёт бронирование: проверяет входные данные, рассчитывает
// стоимость, проводит оплату через платёжный шлюз и только после успешного
// подтверждения сохраняет запись.
func (s *Service) CreateBooking(ctx context.Context, userID, cylinderID string, quantity int, deliveryType model.DeliveryType, deliveryAddress string) (*model.Booking, error) {
	if !validation.IsValidQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}

	if !validation.IsValidDeliveryType(deliveryType) {
		return nil, ErrInvalidDeliveryType
	}

	cylinder, err := catalog.Find(cylinderID)
	if err != nil {
		return nil, err
	}

	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryType == model.DeliveryHome && deliveryAddress == "" {
		return nil, ErrMissingAddress
	}
	if deliveryType == model.DeliveryPickup {
		deliveryAddress = ""
	}

	deliveryCharge := model.DeliveryChargeFor(deliveryType)
	totalAmount := cylinder.Price*int64(quantity) + deliveryCharge

	if _, err := s.gateway.Charge(ctx, totalAmount); err != nil {
		return nil, fmt.Errorf("charge payment: %w", err)
	}

	booking := model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		CylinderID:      cylinderID,
		Quantity:        quantity,
		DeliveryType:    deliveryType,
		DeliveryAddress: deliveryAddress,
		TotalAmount:     totalAmount,
		DeliveryCharge:  deliveryCharge,
		Status:          model.BookingStatusConfirmed,
		PaymentStatus:   model.PaymentStatusPaid,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	if user, ok := s.CurrentUser(); ok && user.ID == userID {
		s.receipts.Send(*user, booking, *cylinder)
	}

	return &booking, nil
}

// ListBookings возвращает бронирования пользователя, новые первыми.
// Отсутствие бронирований не является ошибкой.
func (s *Service) ListBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.repo.GetBookingsByUser(ctx, userID)
}
