// Package refnum mints the human-readable reference numbers stamped on sales,
// payments and ledger entries. Uniqueness relies on the second-resolution
// timestamp plus, for sales, a 5-character random suffix; collisions within a
// warehouse-day are treated as a near-zero-probability event and are not
// actively deduplicated.
package refnum

import (
	"math/rand"
	"time"

	"github.com/santoko/kasir-api/internal/domain/entity"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Mint returns the reference number for a transaction of the given kind at
// the given instant. Sales get a P prefix and a random suffix, returns an R
// prefix, anything else an S prefix.
func Mint(kind entity.TransactionKind, now time.Time) string {
	stamp := now.Format("060102") + "-" + now.Format("150405")
	switch kind {
	case entity.KindSale:
		return "P" + stamp + randomSuffix(5)
	case entity.KindReturn:
		return "R" + stamp
	default:
		return "S" + stamp
	}
}

// PaymentReference returns the secondary reference stored on payment rows.
func PaymentReference(now time.Time) string {
	return "spr-" + now.Format("20060102") + "-" + now.Format("150405")
}

// randomSuffix uses the locked top-level math/rand source; Mint runs on
// concurrent request goroutines.
func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
