package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSigned tests the per-entry balance contribution
func TestSigned(t *testing.T) {
	credit := &Transaction{Amount: 25.50, Type: TypeCredit}
	assert.Equal(t, 25.50, credit.Signed())

	debit := &Transaction{Amount: 10.00, Type: TypeDebit}
	assert.Equal(t, -10.00, debit.Signed())
}

// TestReplay tests deriving a balance from the ledger
func TestReplay(t *testing.T) {
	tests := []struct {
		name string
		txs  []*Transaction
		want float64
	}{
		{"empty ledger", nil, 0.00},
		{
			"credits only",
			[]*Transaction{
				{Amount: 50.00, Type: TypeCredit},
				{Amount: 25.00, Type: TypeCredit},
			},
			75.00,
		},
		{
			"mixed",
			[]*Transaction{
				{Amount: 100.00, Type: TypeCredit},
				{Amount: 18.50, Type: TypeDebit},
				{Amount: 0.10, Type: TypeCredit},
			},
			81.60,
		},
		{
			"overdrawn history still sums",
			[]*Transaction{
				{Amount: 10.00, Type: TypeDebit},
			},
			-10.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Replay(tt.txs))
		})
	}
}

// TestTransactionTypeIsValid tests ledger type validation
func TestTransactionTypeIsValid(t *testing.T) {
	assert.True(t, TypeCredit.IsValid())
	assert.True(t, TypeDebit.IsValid())
	assert.False(t, TransactionType("transfer").IsValid())
}
