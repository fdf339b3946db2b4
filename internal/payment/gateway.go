// Package payment предоставляет шлюз подтверждения оплаты бронирований.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDeclined возвращается, если платёжная система отклонила списание.
var ErrDeclined = errors.New("payment declined")

// Gateway описывает контракт платёжного шлюза: списание фиксированной суммы
// с синхронным подтверждением.
type Gateway interface {
	Charge(ctx context.Context, amount int64) (string, error)
}

// Stub имитирует платёжную систему: подтверждение приходит после фиксированной
// задержки и никогда не отклоняется.
type Stub struct {
	delay time.Duration
}

// NewStub создаёт шлюз-заглушку с указанной задержкой подтверждения.
func NewStub(delay time.Duration) *Stub {
	return &Stub{delay: delay}
}

// Charge ждёт фиксированную задержку и возвращает идентификатор подтверждения.
// Прерывается только отменой контекста.
func (s *Stub) Charge(ctx context.Context, _ int64) (string, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return uuid.NewString(), nil
}
