// Package catalog содержит фиксированный каталог газовых баллонов.
package catalog

import (
	"errors"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

// ErrCylinderNotFound возвращается, если баллон с указанным идентификатором отсутствует в каталоге.
var ErrCylinderNotFound = errors.New("cylinder not found")

// Каталог задаётся один раз при старте процесса и никогда не изменяется.
var cylinderTypes = []model.CylinderType{
	{
		ID:          "1",
		Name:        "Standard Domestic",
		Weight:      "14.2 kg",
		Price:       850,
		Description: "Standard net weight of gas for domestic use in India",
		Category:    model.CategoryDomestic,
	},
	{
		ID:          "2",
		Name:        "Small Domestic",
		Weight:      "5 kg",
		Price:       450,
		Description: "Smaller domestic cylinder, perfect for small families",
		Category:    model.CategoryDomestic,
	},
	{
		ID:          "3",
		Name:        "Commercial",
		Weight:      "19 kg",
		Price:       1200,
		Description: "Commercial use cylinder for restaurants and businesses",
		Category:    model.CategoryCommercial,
	},
}

// List возвращает все позиции каталога в фиксированном порядке.
func List() []model.CylinderType {
	res := make([]model.CylinderType, len(cylinderTypes))
	copy(res, cylinderTypes)
	return res
}

// Find возвращает позицию каталога по идентификатору.
func Find(id string) (*model.CylinderType, error) {
	for _, c := range cylinderTypes {
		if c.ID == id {
			ct := c
			return &ct, nil
		}
	}
	return nil, ErrCylinderNotFound
}
