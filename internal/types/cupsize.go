package types

import "strings"

// CupSize is one of the three fixed bingsu cup sizes. The size is chosen by
// staff when a menu code is issued and determines the base price.
type CupSize string

const (
	CupSizeS CupSize = "S"
	CupSizeM CupSize = "M"
	CupSizeL CupSize = "L"
)

var cupBasePrice = map[CupSize]int64{
	CupSizeS: 5000,
	CupSizeM: 7000,
	CupSizeL: 9000,
}

func ParseCupSize(raw string) (CupSize, bool) {
	size := CupSize(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := cupBasePrice[size]
	return size, ok
}

func (s CupSize) Valid() bool {
	_, ok := cupBasePrice[s]
	return ok
}

// BasePrice returns the size's base price in the shop's minor currency unit.
func (s CupSize) BasePrice() int64 {
	return cupBasePrice[s]
}
