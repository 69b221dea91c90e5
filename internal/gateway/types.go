package gateway

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"ignitionPayout/internal/sbor"
)

// NonFungibleDataRequest is the body of /state/non-fungible/data.
type NonFungibleDataRequest struct {
	ResourceAddress string   `json:"resource_address"`
	NonFungibleIDs  []string `json:"non_fungible_ids"`
}

// NonFungibleDataResponse is the reply of /state/non-fungible/data.
type NonFungibleDataResponse struct {
	ResourceAddress   string            `json:"resource_address"`
	NonFungibleIDType string            `json:"non_fungible_id_type"`
	NonFungibleIDs    []NonFungibleItem `json:"non_fungible_ids"`
}

// NonFungibleItem is a single non-fungible and its data.
type NonFungibleItem struct {
	NonFungibleID string    `json:"non_fungible_id"`
	IsBurned      bool      `json:"is_burned"`
	Data          *SborData `json:"data,omitempty"`
}

// SborData is a ledger value in both its encoded and programmatic forms.
type SborData struct {
	RawHex           string     `json:"raw_hex,omitempty"`
	Hex              string     `json:"hex,omitempty"`
	ProgrammaticJSON sbor.Value `json:"programmatic_json"`
}

// Bytes decodes the hex payload of d.
func (d SborData) Bytes() ([]byte, error) {
	raw := d.RawHex
	if raw == "" {
		raw = d.Hex
	}
	if raw == "" {
		return nil, nil
	}
	data, err := hexutil.Decode("0x" + raw)
	if err != nil {
		return nil, fmt.Errorf("decode sbor hex: %w", err)
	}
	return data, nil
}

// PublicKey identifies a signer or notary key.
type PublicKey struct {
	KeyType string `json:"key_type"`
	KeyHex  string `json:"key_hex"`
}

// PreviewFlags relax checks that do not matter for a dry run.
type PreviewFlags struct {
	UseFreeCredit            bool `json:"use_free_credit"`
	AssumeAllSignatureProofs bool `json:"assume_all_signature_proofs"`
	SkipEpochCheck           bool `json:"skip_epoch_check"`
}

// PreviewRequest is the body of /transaction/preview.
type PreviewRequest struct {
	Manifest            string       `json:"manifest"`
	BlobsHex            []string     `json:"blobs_hex,omitempty"`
	StartEpochInclusive uint64       `json:"start_epoch_inclusive"`
	EndEpochExclusive   uint64       `json:"end_epoch_exclusive"`
	NotaryPublicKey     *PublicKey   `json:"notary_public_key,omitempty"`
	NotaryIsSignatory   *bool        `json:"notary_is_signatory,omitempty"`
	TipPercentage       uint16       `json:"tip_percentage"`
	Nonce               uint32       `json:"nonce"`
	SignerPublicKeys    []PublicKey  `json:"signer_public_keys"`
	Flags               PreviewFlags `json:"flags"`
}

// Receipt statuses.
const (
	StatusSucceeded = "Succeeded"
	StatusFailed    = "Failed"
	StatusRejected  = "Rejected"
)

// PreviewResponse is the reply of /transaction/preview.
type PreviewResponse struct {
	EncodedReceipt  string                       `json:"encoded_receipt"`
	Receipt         PreviewReceipt               `json:"receipt"`
	ResourceChanges []InstructionResourceChanges `json:"resource_changes"`
	Logs            []PreviewLog                 `json:"logs"`
}

// PreviewReceipt is the JSON form of the execution receipt.
type PreviewReceipt struct {
	Status       string     `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	Output       []SborData `json:"output"`
}

// InstructionResourceChanges lists balance changes caused by one instruction.
type InstructionResourceChanges struct {
	Index           int              `json:"index"`
	ResourceChanges []ResourceChange `json:"resource_changes"`
}

// ResourceChange is one balance change of a component.
type ResourceChange struct {
	ResourceAddress string          `json:"resource_address"`
	ComponentEntity EntityReference `json:"component_entity"`
	Amount          string          `json:"amount"`
}

// EntityReference identifies a ledger entity.
type EntityReference struct {
	EntityType    string `json:"entity_type"`
	IsGlobal      bool   `json:"is_global"`
	EntityAddress string `json:"entity_address"`
}

// PreviewLog is a log line emitted during execution.
type PreviewLog struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ErrorResponse is the body of a failed gateway call.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}
