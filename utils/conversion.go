package utils

import "github.com/shopspring/decimal"

// RoundMoney rounds an amount to cents, half away from zero.
func RoundMoney(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// SumMoney adds amounts exactly and rounds the sum to cents.
func SumMoney(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	f, _ := sum.Round(2).Float64()
	return f
}
