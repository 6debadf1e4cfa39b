package refnum_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/refnum"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func TestMint_Sale(t *testing.T) {
	ref := refnum.Mint(entity.KindSale, fixedNow)

	assert.Regexp(t, regexp.MustCompile(`^P250314-150926[a-z0-9]{5}$`), ref,
		"sale references carry a P prefix, a second timestamp and a 5-char random suffix")
}

func TestMint_Return(t *testing.T) {
	assert.Equal(t, "R250314-150926", refnum.Mint(entity.KindReturn, fixedNow))
}

func TestMint_OtherKind(t *testing.T) {
	assert.Equal(t, "S250314-150926", refnum.Mint(entity.TransactionKind(3), fixedNow))
}

func TestMint_SaleSuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[refnum.Mint(entity.KindSale, fixedNow)] = true
	}
	assert.Greater(t, len(seen), 1, "random suffix must vary between mints")
}

func TestMint_Concurrent(t *testing.T) {
	// Mint runs on concurrent request goroutines; every result must still be
	// well formed. The race detector guards the shared random source.
	pattern := regexp.MustCompile(`^P250314-150926[a-z0-9]{5}$`)
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if !pattern.MatchString(refnum.Mint(entity.KindSale, fixedNow)) {
					t.Error("malformed reference")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestPaymentReference(t *testing.T) {
	assert.Equal(t, "spr-20250314-150926", refnum.PaymentReference(fixedNow))
}

func TestKindFromReference(t *testing.T) {
	assert.Equal(t, entity.KindReturn, entity.KindFromReference("R250314-150926"))
	assert.Equal(t, entity.KindSale, entity.KindFromReference("P250314-150926ab1cd"))
}
