// Package model содержит доменные сущности сервиса бронирования газовых баллонов.
package model

import (
	"strconv"
	"time"
)

// User представляет публичные данные зарегистрированного пользователя (без учётных данных).
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Account представляет полную учётную запись пользователя, включая хеш пароля.
// Хранится только в репозитории и никогда не отдаётся наружу.
type Account struct {
	User
	PasswordHash []byte `json:"passwordHash"`
}

// CylinderCategory описывает категорию газового баллона в каталоге.
type CylinderCategory string

const (
	CategoryDomestic   CylinderCategory = "domestic"
	CategoryCommercial CylinderCategory = "commercial"
)

// CylinderType описывает позицию каталога газовых баллонов.
type CylinderType struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Weight      string           `json:"weight"`
	Price       int64            `json:"price"`
	Description string           `json:"description"`
	Category    CylinderCategory `json:"category"`
}

// DeliveryType описывает способ получения заказа.
type DeliveryType string

const (
	DeliveryHome   DeliveryType = "home"
	DeliveryPickup DeliveryType = "pickup"
)

// BookingStatus описывает статус обработки бронирования.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDelivered BookingStatus = "delivered"
)

// PaymentStatus описывает статус оплаты бронирования.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking описывает бронирование одного типа баллона с рассчитанной стоимостью.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	CylinderID      string        `json:"cylinderId"`
	Quantity        int           `json:"quantity"`
	DeliveryType    DeliveryType  `json:"deliveryType"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	TotalAmount     int64         `json:"totalAmount"`
	DeliveryCharge  int64         `json:"deliveryCharge"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Стоимость доставки фиксирована для каждого способа получения.
const (
	HomeDeliveryCharge   int64 = 50
	PickupDeliveryCharge int64 = 0
)

// DeliveryChargeFor возвращает стоимость доставки для указанного способа получения.
func DeliveryChargeFor(t DeliveryType) int64 {
	if t == DeliveryHome {
		return HomeDeliveryCharge
	}
	return PickupDeliveryCharge
}

// CurrencySymbol — символ валюты, используемый при отображении сумм.
const CurrencySymbol = "₹"

// FormatAmount форматирует денежную сумму с символом валюты.
// Суммы хранятся в целых рупиях, дробные единицы не моделируются.
func FormatAmount(amount int64) string {
	return CurrencySymbol + strconv.FormatInt(amount, 10)
}
