package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReceiptNumber builds an order receipt reference of the form
// RCP-20060102-150405-123-4567. Uniqueness is probabilistic; the orders
// table keeps the authoritative unique public id.
func GenerateReceiptNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf(
		"RCP-%s-%03d-%04d",
		datePart,
		millis,
		n.Int64(),
	)
}
