package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"ignitionPayout/internal/model"
)

// RenderReceipt writes the decoded receipt data of a position.
func RenderReceipt(w io.Writer, globalID string, r model.LiquidityReceipt, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml receipt: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	fmt.Fprintf(w, "Receipt %s\n", globalID)
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")
	rows := [][]string{
		{"Name", r.Name},
		{"Lockup period", r.LockupPeriod},
		{"Pool", r.PoolAddress},
		{"User resource", r.UserResource},
		{"User contribution", r.UserContribution.String()},
		{"Volatility", string(r.Volatility)},
		{"Protocol contribution", r.ProtocolContribution.String()},
		{"Maturity", r.MaturityDate.Format(time.RFC3339)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append receipt row: %w", err)
		}
	}
	return table.Render()
}
