package session

import "github.com/shopspring/decimal"

// Price snapshots the session cost from the mentor's current hourly rate,
// prorated by duration and rounded to 2 decimals.
func Price(hourlyRate string, durationMinutes int) (string, error) {
	rate, err := decimal.NewFromString(hourlyRate)
	if err != nil {
		return "", err
	}
	price := rate.Mul(decimal.NewFromInt(int64(durationMinutes))).
		Div(decimal.NewFromInt(60)).
		Round(2)
	return price.StringFixed(2), nil
}
