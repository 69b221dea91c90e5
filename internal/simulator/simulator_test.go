package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ignitionPayout/internal/gateway"
	"ignitionPayout/internal/model"
	"ignitionPayout/internal/payout"
)

const (
	testReceiptResource = "resource_rdx1n2uzpxdlg90ajqy9r597xkffeefhacl8hqd6kpvmfmt56wlda0dzk9"
	testLocalID         = "{29de6fbdb0ba2dda-4c3c88c857022ead-a5c6381a54f02f2c-bd1e1eea22df0ea8}"
	testUserResource    = "resource_rdx1thksg5ng70g9mmy9ne7wz0sc7auzrrwy7fmgcxzel2gvp8pj0xxfmf"
	testXRD             = "resource_rdx1tknxxxxxxxxxradxrdxxxxxxxxx009923554798xxxxxxxxxradxrd"
	testOwnerAccount    = "account_rdx16ykaehfl0suwzy9tvtlhgds7td8ynwx4jk3q4czaucpf6m4pps9yr4"
	testPool            = "pool_rdx1c325zs6dz3un8ykkjavy9fkvvyzarkaehgsl408qup6f95aup3le3w"
)

const receiptDataJSON = `{
  "kind": "Tuple",
  "type_name": "LiquidityReceipt",
  "fields": [
    {"kind": "String", "field_name": "name", "value": "Ignition LP: Liquidity Position"},
    {"kind": "String", "field_name": "lockup_period", "value": "9 months"},
    {"kind": "Reference", "field_name": "pool_address", "value": "` + testPool + `"},
    {"kind": "Reference", "field_name": "user_resource_address", "value": "` + testUserResource + `"},
    {"kind": "Decimal", "field_name": "user_contribution_amount", "value": "1000"},
    {"kind": "Enum", "field_name": "user_resource_volatility_classification", "variant_id": "0", "variant_name": "Volatile", "fields": []},
    {"kind": "Decimal", "field_name": "protocol_contribution_amount", "value": "2000"},
    {"kind": "I64", "field_name": "maturity_date", "type_name": "Instant", "value": "1735689600"},
    {"kind": "Tuple", "field_name": "adapter_specific_information", "fields": [
      {"kind": "Tuple", "fields": [{"kind": "I32", "value": "-120"}, {"kind": "I32", "value": "360"}]}
    ]}
  ]
}`

func testConfig(t *testing.T) Config {
	t.Helper()
	network, err := gateway.LookupNetwork("mainnet")
	require.NoError(t, err)
	cfg := Config{
		Network:           network,
		ReceiptResource:   testReceiptResource,
		IgnitionComponent: "component_rdx1cqplswlzpvw9yx687mcnvjuguy24veqk4c55rscjxl3pll7rxfs2dz",
		OracleComponent:   "component_rdx1cr3psyfptwkktqusfg8ngtupr4wwfg32kz2xvh9tqh4c7pwkvlk2kn",
		AdapterComponent:  "component_rdx1cpjs0phmgzwmhxel74l256zqdp39d2rfvj6m54e5k758k2vma8grp9",
		OwnerAccount:      testOwnerAccount,
		OwnerBadge:        "resource_rdx1t5ezhhs9cnua2thfnknmpj2rysz0rtwpexvjhvylww2ng5h3makwma",
		ReserveResource:   testXRD,
		StartEpoch:        200,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

type fakeGateway struct {
	receipt  string
	burned   bool
	preview  *gateway.PreviewResponse
	err      error
	requests []gateway.PreviewRequest
}

func (f *fakeGateway) NonFungibleData(_ context.Context, resource string, ids []string) (*gateway.NonFungibleDataResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	var data gateway.SborData
	if err := json.Unmarshal([]byte(`{"raw_hex": "5c2109", "programmatic_json": `+f.receipt+`}`), &data); err != nil {
		return nil, err
	}
	return &gateway.NonFungibleDataResponse{
		ResourceAddress: resource,
		NonFungibleIDs: []gateway.NonFungibleItem{
			{NonFungibleID: ids[0], IsBurned: f.burned, Data: &data},
		},
	}, nil
}

func (f *fakeGateway) PreviewTransaction(_ context.Context, req gateway.PreviewRequest) (*gateway.PreviewResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.preview, nil
}

func previewResponse(t *testing.T, userReturned, xrdReturned, userFee, price string) *gateway.PreviewResponse {
	t.Helper()
	raw := `{
	  "encoded_receipt": "5c22",
	  "receipt": {
	    "status": "Succeeded",
	    "output": [
	      {"hex": "5c", "programmatic_json": {"kind": "Own", "value": "internal_auth_zone_rdx1x"}},
	      {"hex": "5c", "programmatic_json": {"kind": "Array", "element_kind": "Own", "elements": []}},
	      {"hex": "5c", "programmatic_json": {"kind": "Tuple", "fields": [
	        {"kind": "Tuple", "fields": [{"kind": "Map", "key_kind": "Reference", "value_kind": "Own", "entries": []}]},
	        {"kind": "Array", "element_kind": "Own", "elements": []},
	        {"kind": "Map", "key_kind": "Reference", "value_kind": "Decimal", "entries": [
	          {"key": {"kind": "Reference", "value": "` + testUserResource + `"}, "value": {"kind": "Decimal", "value": "` + userFee + `"}},
	          {"key": {"kind": "Reference", "value": "` + testXRD + `"}, "value": {"kind": "Decimal", "value": "-1"}}
	        ]}
	      ]}},
	      {"hex": "5c", "programmatic_json": {"kind": "Tuple", "fields": []}},
	      {"hex": "5c", "programmatic_json": {"kind": "Tuple", "fields": [
	        {"kind": "Decimal", "value": "` + price + `"},
	        {"kind": "I64", "type_name": "Instant", "value": "1735689600"}
	      ]}}
	    ]
	  },
	  "resource_changes": [
	    {"index": 0, "resource_changes": [
	      {"resource_address": "` + testXRD + `", "component_entity": {"entity_address": "` + testOwnerAccount + `"}, "amount": "999"}
	    ]},
	    {"index": 3, "resource_changes": [
	      {"resource_address": "` + testUserResource + `", "component_entity": {"entity_address": "` + testOwnerAccount + `"}, "amount": "` + userReturned + `"},
	      {"resource_address": "` + testXRD + `", "component_entity": {"entity_address": "` + testOwnerAccount + `"}, "amount": "` + xrdReturned + `"},
	      {"resource_address": "` + testXRD + `", "component_entity": {"entity_address": "account_rdx1other"}, "amount": "5"}
	    ]}
	  ],
	  "logs": [{"level": "Info", "message": "closed"}]
	}`
	var resp gateway.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func TestDecodeReceipt(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON}
	sim := New(testConfig(t), gw, zap.NewNop())

	receipt, err := sim.FetchReceipt(context.Background(), testLocalID)
	require.NoError(t, err)
	assert.Equal(t, "9 months", receipt.LockupPeriod)
	assert.Equal(t, testPool, receipt.PoolAddress)
	assert.Equal(t, testUserResource, receipt.UserResource)
	assert.Equal(t, "1000", receipt.UserContribution.String())
	assert.Equal(t, "2000", receipt.ProtocolContribution.String())
	assert.Equal(t, model.Volatile, receipt.Volatility)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), receipt.MaturityDate)
	assert.Equal(t, "5c2109", receipt.RawHex)
}

func TestFetchReceiptRejectsBurned(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON, burned: true}
	_, err := New(testConfig(t), gw, nil).FetchReceipt(context.Background(), testLocalID)
	require.Error(t, err)
}

func TestFetchReceiptRejectsBadLocalID(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON}
	_, err := New(testConfig(t), gw, nil).FetchReceipt(context.Background(), "29de6fbd")
	require.Error(t, err)
}

func TestDecodeReceiptRejectsWrongShape(t *testing.T) {
	gw := &fakeGateway{receipt: `{"kind": "Tuple", "fields": [{"kind": "String", "value": "x"}]}`}
	_, err := New(testConfig(t), gw, nil).FetchReceipt(context.Background(), testLocalID)
	require.Error(t, err)

	bad := strings.Replace(receiptDataJSON, `"variant_id": "0", "variant_name": "Volatile"`, `"variant_id": "1", "variant_name": "Volatile"`, 1)
	gw = &fakeGateway{receipt: bad}
	_, err = New(testConfig(t), gw, nil).FetchReceipt(context.Background(), testLocalID)
	require.Error(t, err)
}

func TestCloseManifest(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON}
	sim := New(testConfig(t), gw, nil)
	receipt, err := sim.FetchReceipt(context.Background(), testLocalID)
	require.NoError(t, err)

	text, err := sim.CloseManifest(receipt, testLocalID)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(text, "CALL_METHOD"))
	assert.Contains(t, text, `"withdraw_pool_units"
    NonFungibleGlobalId("`+testReceiptResource+`:`+testLocalID+`")`)
	assert.Contains(t, text, `"close_liquidity_position"
    Address("`+testPool+`")
    Expression("ENTIRE_WORKTOP")
    Tuple(Tuple(-120i32, 360i32))`)
	assert.Contains(t, text, `"get_price"
    Address("`+testUserResource+`")
    Address("`+testXRD+`")`)
	assert.Contains(t, text, `Address("`+testOwnerAccount+`")
    "deposit_batch"`)
}

func TestRunWithoutILProtection(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON, preview: previewResponse(t, "1200", "3000", "50", "2")}
	sim := New(testConfig(t), gw, zap.NewNop())

	report, err := sim.Run(context.Background(), testLocalID)
	require.NoError(t, err)
	require.Len(t, gw.requests, 1)
	req := gw.requests[0]
	assert.Equal(t, uint64(200), req.StartEpochInclusive)
	assert.Equal(t, uint64(210), req.EndEpochExclusive)
	assert.True(t, req.Flags.SkipEpochCheck)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, testReceiptResource+":"+testLocalID, report.GlobalID)
	assert.False(t, report.ILProtected)
	assert.Equal(t, "1200", report.ReturnedUser.String())
	assert.Equal(t, "3000", report.ReturnedReserve.String())
	assert.Equal(t, "0", report.ReservePayout.String())
	assert.Equal(t, "1050", report.UserPayout.String())
	assert.Equal(t, "50", report.RealizedFee.String())
	assert.Equal(t, "150", report.UndisbursedUser.String())
	assert.Equal(t, testUserResource, report.Price.Base)
	assert.Equal(t, testXRD, report.Price.Quote)
}

func TestRunWithILProtection(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON, preview: previewResponse(t, "600", "500", "50", "2")}
	report, err := New(testConfig(t), gw, nil).Run(context.Background(), testLocalID)
	require.NoError(t, err)
	assert.True(t, report.ILProtected)
	assert.Equal(t, "400", report.Shortfall.String())
	assert.Equal(t, "800", report.RequiredReserve.String())
	assert.Equal(t, "500", report.ReservePayout.String())
	assert.Equal(t, "600", report.UserPayout.String())
	assert.Equal(t, "0", report.RealizedFee.String())
}

func TestSimulateClampsNegativeFees(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON, preview: previewResponse(t, "600", "500", "-3", "2")}
	sim := New(testConfig(t), gw, nil)
	receipt, err := sim.FetchReceipt(context.Background(), testLocalID)
	require.NoError(t, err)

	result, err := sim.Simulate(context.Background(), receipt, testLocalID)
	require.NoError(t, err)
	assert.True(t, result.Outcome.FeeAmount(testUserResource).IsZero())
	assert.True(t, result.Outcome.FeeAmount(testXRD).IsZero())
	assert.Equal(t, "500", result.Outcome.Returned[testXRD].String(), "other accounts and instructions are ignored")
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), result.PriceTime)
}

func TestSimulatePreviewFailure(t *testing.T) {
	resp := previewResponse(t, "600", "500", "1", "2")
	resp.Receipt.Status = gateway.StatusFailed
	resp.Receipt.ErrorMessage = "AuthZone error"
	gw := &fakeGateway{receipt: receiptDataJSON, preview: resp}

	_, err := New(testConfig(t), gw, nil).Run(context.Background(), testLocalID)
	require.ErrorIs(t, err, ErrPreviewFailed)
	assert.Contains(t, err.Error(), "AuthZone error")
}

func TestSimulateMissingOutputs(t *testing.T) {
	resp := previewResponse(t, "600", "500", "1", "2")
	resp.Receipt.Output = resp.Receipt.Output[:3]
	gw := &fakeGateway{receipt: receiptDataJSON, preview: resp}

	_, err := New(testConfig(t), gw, nil).Run(context.Background(), testLocalID)
	require.Error(t, err)
}

func TestRunZeroPrice(t *testing.T) {
	gw := &fakeGateway{receipt: receiptDataJSON, preview: previewResponse(t, "600", "500", "1", "0")}
	report, err := New(testConfig(t), gw, nil).Run(context.Background(), testLocalID)
	require.NoError(t, err, "a zero rate only fails when converting from the quote side")
	assert.Equal(t, "0", report.ReservePayout.String())
}

func TestRunGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	_, err := New(testConfig(t), gw, nil).Run(context.Background(), testLocalID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig(t)
	assert.Equal(t, testOwnerAccount, cfg.DepositAccount)
	assert.Equal(t, uint64(10), cfg.EpochWindow)

	cfg.OracleComponent = testXRD
	require.Error(t, cfg.Validate())

	cfg = testConfig(t)
	cfg.Network = gateway.Network{}
	require.Error(t, cfg.Validate())
}

func TestNewReportCopiesDecision(t *testing.T) {
	price := payout.Price{Base: testUserResource, Quote: testXRD}
	report := NewReport("id", "gid", testXRD, model.LiquidityReceipt{UserResource: testUserResource},
		price.Rate, price.Rate, price.Rate, price, payout.Decision{ILProtected: true}, time.Unix(0, 0))
	assert.True(t, report.ILProtected)
	assert.Equal(t, "id", report.RunID)
	assert.Equal(t, time.UTC, report.GeneratedAt.Location())
}
