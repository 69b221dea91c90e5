package manifest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Expression values understood by the engine.
const (
	EntireWorktop = "ENTIRE_WORKTOP"
)

// Arg is a rendered manifest argument.
type Arg string

func Address(addr string) Arg {
	return Arg("Address(" + quote(addr) + ")")
}

func Decimal(d decimal.Decimal) Arg {
	return Arg("Decimal(" + quote(d.String()) + ")")
}

func NonFungibleGlobalID(resource, localID string) Arg {
	return Arg("NonFungibleGlobalId(" + quote(resource+":"+localID) + ")")
}

func Expression(expr string) Arg {
	return Arg("Expression(" + quote(expr) + ")")
}

// Raw wraps an already rendered value.
func Raw(rendered string) Arg {
	return Arg(rendered)
}

type instruction struct {
	name string
	args []Arg
}

// Builder assembles a textual transaction manifest.
type Builder struct {
	instructions []instruction
}

func NewBuilder() *Builder {
	return &Builder{}
}

// CallMethod appends a CALL_METHOD instruction.
func (b *Builder) CallMethod(component, method string, args ...Arg) *Builder {
	all := make([]Arg, 0, len(args)+2)
	all = append(all, Address(component), Arg(quote(method)))
	all = append(all, args...)
	b.instructions = append(b.instructions, instruction{name: "CALL_METHOD", args: all})
	return b
}

// CreateProofOfAmount has account create a proof of amount of resource.
func (b *Builder) CreateProofOfAmount(account, resource string, amount decimal.Decimal) *Builder {
	return b.CallMethod(account, "create_proof_of_amount", Address(resource), Decimal(amount))
}

// DepositBatch deposits everything on the worktop into account.
func (b *Builder) DepositBatch(account string) *Builder {
	return b.CallMethod(account, "deposit_batch", Expression(EntireWorktop))
}

// Len returns the number of instructions added so far.
func (b *Builder) Len() int {
	return len(b.instructions)
}

// Build renders the manifest text.
func (b *Builder) Build() (string, error) {
	if len(b.instructions) == 0 {
		return "", fmt.Errorf("manifest has no instructions")
	}
	var sb strings.Builder
	for _, inst := range b.instructions {
		sb.WriteString(inst.name)
		sb.WriteString("\n")
		for _, arg := range inst.args {
			sb.WriteString("    ")
			sb.WriteString(string(arg))
			sb.WriteString("\n")
		}
		sb.WriteString(";\n")
	}
	return sb.String(), nil
}
