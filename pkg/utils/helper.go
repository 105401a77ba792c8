package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// FormatPrice renders a monetary amount with fixed two-decimal rounding.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("R$ %.2f", amount)
}

// GenerateOrderID creates a unique order ID with timestamp
func GenerateOrderID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: ASTRA-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("ASTRA-%s-%s-%s", datePart, timePart, randomPart)
}
