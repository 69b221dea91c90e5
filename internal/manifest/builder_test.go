package manifest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderRendersInstructions(t *testing.T) {
	b := NewBuilder().
		CreateProofOfAmount("account_rdx1owner", "resource_rdx1badge", decimal.NewFromInt(1)).
		CallMethod("component_rdx1ignition", "withdraw_pool_units", NonFungibleGlobalID("resource_rdx1receipt", "{ab-cd}")).
		DepositBatch("account_rdx1sink")
	assert.Equal(t, 3, b.Len())

	got, err := b.Build()
	require.NoError(t, err)
	want := `CALL_METHOD
    Address("account_rdx1owner")
    "create_proof_of_amount"
    Address("resource_rdx1badge")
    Decimal("1")
;
CALL_METHOD
    Address("component_rdx1ignition")
    "withdraw_pool_units"
    NonFungibleGlobalId("resource_rdx1receipt:{ab-cd}")
;
CALL_METHOD
    Address("account_rdx1sink")
    "deposit_batch"
    Expression("ENTIRE_WORKTOP")
;
`
	assert.Equal(t, want, got)
}

func TestBuilderEmpty(t *testing.T) {
	_, err := NewBuilder().Build()
	require.Error(t, err)
}
