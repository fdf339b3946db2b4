// Package notification имитирует отправку квитанций о бронировании.
package notification

import (
	"go.uber.org/zap"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

// ReceiptSender имитирует отправку e-mail квитанции: вместо реальной почты
// событие фиксируется в структурированном логе.
type ReceiptSender struct {
	logger *zap.Logger
}

// NewReceiptSender создаёт отправитель квитанций с указанным логгером.
func NewReceiptSender(logger *zap.Logger) *ReceiptSender {
	return &ReceiptSender{logger: logger}
}

// Send фиксирует отправку квитанции по бронированию на e-mail пользователя.
func (s *ReceiptSender) Send(user model.User, booking model.Booking, cylinder model.CylinderType) {
	if s == nil || s.logger == nil {
		return
	}

	s.logger.Info("sending email receipt",
		zap.String("email", user.Email),
		zap.String("bookingID", booking.ID),
		zap.String("cylinder", cylinder.Name),
		zap.Int("quantity", booking.Quantity),
		zap.String("totalAmount", model.FormatAmount(booking.TotalAmount)),
	)
}
