package service

import (
	"strings"

	"github.com/Jcgmtxt/aquashield/internal/model"
)

// SizeClassifier maps a vehicle's brand/model to a coarse size category.
// Injected into CorrosionService so the rule can evolve (e.g. a lookup
// backed by the most_used_vehicles data) without touching resolver logic.
type SizeClassifier interface {
	Classify(brand, carModel string) model.VehicleSize
}

// ListClassifier is the default classifier: substring membership against
// fixed lists of known vehicles, small checked before large, medium when
// nothing matches.
// TODO: replace the fixed lists with a table of the shop's most serviced
// vehicles and their sizes, keyed by the full brand+model name.
type ListClassifier struct {
	small []string
	large []string
}

func NewListClassifier() *ListClassifier {
	return &ListClassifier{
		small: []string{"chevrolet spark", "hyundai i10", "kia picanto"},
		large: []string{"ford explorer", "chevrolet tahoe", "toyota prado"},
	}
}

func (c *ListClassifier) Classify(brand, carModel string) model.VehicleSize {
	fullName := strings.ToLower(brand + " " + carModel)

	for _, s := range c.small {
		if strings.Contains(fullName, s) {
			return model.SizeSmall
		}
	}
	for _, l := range c.large {
		if strings.Contains(fullName, l) {
			return model.SizeExtraLarge
		}
	}
	return model.SizeMedium
}
