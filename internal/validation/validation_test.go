package validation

import (
	"testing"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

func TestIsValidQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		valid    bool
	}{
		{
			name:     "lower bound",
			quantity: 1,
			valid:    true,
		},
		{
			name:     "upper bound",
			quantity: 5,
			valid:    true,
		},
		{
			name:     "zero",
			quantity: 0,
			valid:    false,
		},
		{
			name:     "above limit",
			quantity: 6,
			valid:    false,
		},
		{
			name:     "negative",
			quantity: -1,
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidQuantity(tt.quantity)
			if got != tt.valid {
				t.Fatalf("IsValidQuantity(%d) = %v, want %v", tt.quantity, got, tt.valid)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{
			name:  "plain address",
			email: "a@x.com",
			valid: true,
		},
		{
			name:  "subdomain",
			email: "user@mail.example.org",
			valid: true,
		},
		{
			name:  "no at sign",
			email: "not-an-email",
			valid: false,
		},
		{
			name:  "two at signs",
			email: "a@@x.com",
			valid: false,
		},
		{
			name:  "empty local part",
			email: "@x.com",
			valid: false,
		},
		{
			name:  "no dot in domain",
			email: "a@localhost",
			valid: false,
		},
		{
			name:  "trailing dot",
			email: "a@x.",
			valid: false,
		},
		{
			name:  "contains space",
			email: "a b@x.com",
			valid: false,
		},
		{
			name:  "empty string",
			email: "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.valid {
				t.Fatalf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

func TestIsValidDeliveryType(t *testing.T) {
	if !IsValidDeliveryType(model.DeliveryHome) {
		t.Fatalf("home must be valid")
	}
	if !IsValidDeliveryType(model.DeliveryPickup) {
		t.Fatalf("pickup must be valid")
	}
	if IsValidDeliveryType("drone") {
		t.Fatalf("unknown delivery type must be invalid")
	}
	if IsValidDeliveryType("") {
		t.Fatalf("empty delivery type must be invalid")
	}
}
