package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/hanifmaulana/tokokita/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	items := []LineItem{
		{Price: "5.000", Quantity: 2},
		{Price: "10.000", Quantity: 1},
	}

	subtotal, total := Totals(items, 0)
	assert.Equal(t, 20000, subtotal)
	assert.Equal(t, 20000, total)

	subtotal, total = Totals(items, 8000)
	assert.Equal(t, 20000, subtotal)
	assert.Equal(t, 28000, total)
}

func TestTotalsSeparatorStylesAgree(t *testing.T) {
	dotted := []LineItem{{Price: "5.000", Quantity: 3}}
	comma := []LineItem{{Price: "5,000", Quantity: 3}}

	ds, _ := Totals(dotted, 0)
	cs, _ := Totals(comma, 0)
	assert.Equal(t, ds, cs)
}

func TestTotalsEmpty(t *testing.T) {
	subtotal, total := Totals(nil, 12000)
	assert.Equal(t, 0, subtotal)
	assert.Equal(t, 12000, total)
}

func TestNewRefFormat(t *testing.T) {
	re := regexp.MustCompile(`^TRX-\d+-[A-Z0-9]{6}$`)

	now := time.Now()
	for i := 0; i < 100; i++ {
		ref := NewRef(now)
		require.Regexp(t, re, ref)
		require.NoError(t, CheckRef(ref))
	}
}

func TestNewRefUniqueness(t *testing.T) {
	// 10k draws over a 36^6 suffix space. The birthday bound puts one
	// collision at ~2%, so tolerate a single repeat but no more.
	now := time.Now()
	seen := make(map[string]bool, 10000)
	dupes := 0
	for i := 0; i < 10000; i++ {
		ref := NewRef(now)
		if seen[ref] {
			dupes++
		}
		seen[ref] = true
	}
	assert.LessOrEqual(t, dupes, 1)
}

func TestDeliveryUpRejectsUnknownStage(t *testing.T) {
	for _, stage := range []DeliveryStage{"", "returned", "shipped", "PENDING"} {
		assert.Error(t, validate.Check(DeliveryUp{Status: stage}), "stage %q", stage)
	}

	for _, stage := range []DeliveryStage{
		DeliveryPending, DeliveryProcessing, DeliveryDelivering, DeliveryCompleted,
	} {
		assert.NoError(t, validate.Check(DeliveryUp{Status: stage}), "stage %q", stage)
	}
}

func TestCheckRefRejectsGarbage(t *testing.T) {
	for _, ref := range []string{
		"",
		"TRX-abc-ABCDEF",
		"TRX-123-abcdef",
		"TRX-123-ABCDE",
		"TRX-123-ABCDEFG",
		"ORD-123-ABCDEF",
		"TRX-123-ABCDEF'; DROP TABLE transactions;--",
	} {
		assert.Error(t, CheckRef(ref), "ref %q", ref)
	}
}
