package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"ignitionPayout/internal/model"
)

// Format selects how a report is printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name. An empty name selects the table.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json or yaml)", name)
	}
}

// Render writes r to w in the given format.
func Render(w io.Writer, r model.Report, format Format) error {
	switch format {
	case FormatTable, "":
		return renderTable(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func renderTable(w io.Writer, r model.Report) error {
	if r.GlobalID != "" {
		fmt.Fprintf(w, "Position %s\n", r.GlobalID)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Item", "Amount", "Resource")
	rows := [][]string{
		{"Contributed", r.ContributedUser.String(), r.UserResource},
		{"Returned by pool", r.ReturnedUser.String(), r.UserResource},
		{"Returned by pool", r.ReturnedReserve.String(), r.ReserveResource},
		{"Oracle price", r.Price.Rate.String(), r.Price.Quote + " per " + r.Price.Base},
		{"Reserve to user", r.ReservePayout.String(), r.ReserveResource},
		{"User asset to user", r.UserPayout.String(), r.UserResource},
		{"Realized fees", r.RealizedFee.String(), r.UserResource},
	}
	if r.ILProtected {
		rows = append(rows,
			[]string{"Shortfall", r.Shortfall.String(), r.UserResource},
			[]string{"Required reserve", r.RequiredReserve.String(), r.ReserveResource},
		)
	} else if r.UndisbursedUser.IsPositive() {
		rows = append(rows, []string{"Not disbursed", r.UndisbursedUser.String(), r.UserResource})
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append report row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render report table: %w", err)
	}

	_, err := fmt.Fprintf(w, "IL protection applied: %s\n", yesNo(r.ILProtected))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
