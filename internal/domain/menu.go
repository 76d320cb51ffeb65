package domain

import "time"

type MenuItem struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Category    string
	IsAvailable bool
	CreatedAt   time.Time
}

// RoundCents rounds a money amount to two decimal places.
func RoundCents(v float64) float64 {
	if v < 0 {
		return -RoundCents(-v)
	}
	return float64(int64(v*100+0.5)) / 100
}
