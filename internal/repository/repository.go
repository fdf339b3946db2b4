// Package repository содержит реализации хранилища учётных записей, сессии и бронирований.
package repository

import (
	"context"
	"errors"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

// ErrEmailExists возвращается при попытке создать учётную запись с уже занятым e-mail.
var (
	ErrEmailExists = errors.New("email already registered")
	// ErrUserNotFound возвращается, если учётная запись не найдена.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound возвращается, если сохранённая сессия отсутствует.
	ErrSessionNotFound = errors.New("session not found")
)

// Repository описывает контракт доступа к трём слотам хранилища:
// учётные записи, текущая сессия и бронирования.
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
