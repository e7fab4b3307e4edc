package entities

import (
	"math"
	"strconv"
)

// Money хранится в минимальных единицах валюты (центах).
type Money int64

func MoneyFromDecimal(amount float64) Money {
	return Money(math.Round(amount * 100))
}

func (m Money) Decimal() float64 {
	return float64(m) / 100
}

func (m Money) MinorUnits() int64 {
	return int64(m)
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Decimal(), 'f', 2, 64)
}
