package model

// VehicleSize is the coarse classification used as the default pricing key.
type VehicleSize string

const (
	SizeSmall      VehicleSize = "small"
	SizeMedium     VehicleSize = "medium"
	SizeLarge      VehicleSize = "large"
	SizeExtraLarge VehicleSize = "extra_large"
)

// AvailableSizes lists every valid size with its display label.
func AvailableSizes() map[VehicleSize]string {
	return map[VehicleSize]string{
		SizeSmall:      "Pequeño",
		SizeMedium:     "Mediano",
		SizeLarge:      "Grande",
		SizeExtraLarge: "Extra Grande",
	}
}

func (s VehicleSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

func (s VehicleSize) Label() string {
	if label, ok := AvailableSizes()[s]; ok {
		return label
	}
	return string(s)
}
