package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount accepts both JSON numbers and numeric strings; the receiver
// formats money with toFixed(2) and sends it quoted.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	*a = Amount(value)
	return nil
}

type Donation struct {
	Amount    Amount `json:"amount"`
	DonorName string `json:"donorName"`
	Date      string `json:"date,omitempty"`
}

// CoffeeStatus is the payload of GET /coffee-status.
type CoffeeStatus struct {
	Total            Amount   `json:"total"`
	LastDonation     Donation `json:"lastDonation"`
	TransactionCount int      `json:"transactionCount"`
	LastUpdate       string   `json:"lastUpdate,omitempty"`
}

type coffeeStatusWire struct {
	Total        *Amount `json:"total"`
	LastDonation *struct {
		Amount    Amount  `json:"amount"`
		DonorName string  `json:"donorName"`
		Donor     string  `json:"donor"`
		Date      *string `json:"date"`
	} `json:"lastDonation"`
	TransactionCount *int   `json:"transactionCount"`
	Count            *int   `json:"count"`
	LastUpdate       string `json:"lastUpdate"`
}

// DecodeCoffeeStatus requires total and lastDonation to be present. Older
// receiver builds send donor/count instead of donorName/transactionCount.
func DecodeCoffeeStatus(body []byte) (*CoffeeStatus, error) {
	var wire coffeeStatusWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCoffeeContract, err)
	}
	if wire.Total == nil {
		return nil, fmt.Errorf("%w: missing total", ErrCoffeeContract)
	}
	if wire.LastDonation == nil {
		return nil, fmt.Errorf("%w: missing lastDonation", ErrCoffeeContract)
	}

	status := &CoffeeStatus{
		Total:      *wire.Total,
		LastUpdate: wire.LastUpdate,
		LastDonation: Donation{
			Amount:    wire.LastDonation.Amount,
			DonorName: wire.LastDonation.DonorName,
		},
	}

	if status.LastDonation.DonorName == "" {
		status.LastDonation.DonorName = wire.LastDonation.Donor
	}
	if wire.LastDonation.Date != nil {
		status.LastDonation.Date = *wire.LastDonation.Date
	}

	switch {
	case wire.TransactionCount != nil:
		status.TransactionCount = *wire.TransactionCount
	case wire.Count != nil:
		status.TransactionCount = *wire.Count
	}

	return status, nil
}
