package domain

import (
	"encoding/json"
	"time"
)

// CalculatorType identifies a calculator for metering and history.
type CalculatorType string

const (
	CalculatorBuyVsRent        CalculatorType = "buy-vs-rent"
	CalculatorCompoundInterest CalculatorType = "compound-interest"
)

// Valid reports whether c names a supported calculator.
func (c CalculatorType) Valid() bool {
	return c == CalculatorBuyVsRent || c == CalculatorCompoundInterest
}

// User is an account as seen by the calculators: identity plus the one-time payment flag.
type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email,omitempty"`
	HasLifetimeAccess bool       `json:"hasLifetimeAccess"`
	SubscriptionDate  *time.Time `json:"subscriptionDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// Calculation is a persisted calculator run. Input and Result are opaque JSON blobs.
type Calculation struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	CalculatorType CalculatorType  `json:"calculatorType"`
	Input          json.RawMessage `json:"inputData"`
	Result         json.RawMessage `json:"resultData,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// UsageStatus reports how much of the free allowance a user has consumed.
// RemainingCalculations is -1 when usage is unlimited.
type UsageStatus struct {
	CanUse                bool           `json:"canUse"`
	HasLifetimeAccess     bool           `json:"hasLifetimeAccess"`
	CalculationsUsed      int            `json:"calculationsUsed"`
	RemainingCalculations int            `json:"remainingCalculations"`
	CalculatorType        CalculatorType `json:"calculatorType"`
	LastCalculation       *Calculation   `json:"lastCalculation"`
}
