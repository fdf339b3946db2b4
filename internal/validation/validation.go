// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

// Количество баллонов в одном бронировании ограничено.
const (
	MinQuantity = 1
	MaxQuantity = 5
)

// IsValidQuantity проверяет, что количество баллонов находится в допустимых пределах.
func IsValidQuantity(quantity int) bool {
	return quantity >= MinQuantity && quantity <= MaxQuantity
}

// IsValidEmail проверяет минимальную корректность e-mail адреса:
// ровно один символ @, непустые локальная часть и домен с точкой.
func IsValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t") {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")

	return dot > 0 && dot < len(domain)-1
}

// IsValidDeliveryType проверяет, что способ получения является одним из поддерживаемых.
func IsValidDeliveryType(t model.DeliveryType) bool {
	return t == model.DeliveryHome || t == model.DeliveryPickup
}
