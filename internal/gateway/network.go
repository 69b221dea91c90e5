package gateway

import (
	"fmt"
	"strings"
)

// Network describes a ledger network and its address encoding.
type Network struct {
	Name string
	ID   uint8
	// HRPSuffix follows the entity prefix in bech32m addresses, e.g. "rdx" in
	// "resource_rdx1...".
	HRPSuffix string
}

var networks = map[string]Network{
	"mainnet":  {Name: "mainnet", ID: 0x01, HRPSuffix: "rdx"},
	"stokenet": {Name: "stokenet", ID: 0x02, HRPSuffix: "tdx_2_"},
}

// LookupNetwork returns the network with the given name.
func LookupNetwork(name string) (Network, error) {
	n, ok := networks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Network{}, fmt.Errorf("unknown network: %s", name)
	}
	return n, nil
}

// Entity prefixes accepted by ParseAddress.
const (
	EntityResource  = "resource"
	EntityComponent = "component"
	EntityAccount   = "account"
	EntityPool      = "pool"
)

// ParseAddress validates that input is an address of one of the given entity
// kinds on network n. The bech32m checksum is left to the gateway.
func (n Network) ParseAddress(input string, entities ...string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("address is empty")
	}
	for _, entity := range entities {
		hrp := entity + "_" + n.HRPSuffix
		if !strings.HasPrefix(input, hrp+"1") {
			continue
		}
		data := input[len(hrp)+1:]
		if data == "" || strings.ToLower(data) != data {
			return "", fmt.Errorf("invalid address: %s", input)
		}
		for _, r := range data {
			if !strings.ContainsRune(bech32Charset, r) {
				return "", fmt.Errorf("invalid address character %q: %s", r, input)
			}
		}
		return input, nil
	}
	return "", fmt.Errorf("invalid %s address for %s: %s", strings.Join(entities, "/"), n.Name, input)
}

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// ParseGlobalID splits a non-fungible global id "<resource>:<local id>".
func (n Network) ParseGlobalID(input string) (resource string, localID string, err error) {
	input = strings.TrimSpace(input)
	idx := strings.Index(input, ":")
	if idx <= 0 || idx == len(input)-1 {
		return "", "", fmt.Errorf("invalid non-fungible global id: %s", input)
	}
	resource, err = n.ParseAddress(input[:idx], EntityResource)
	if err != nil {
		return "", "", err
	}
	localID = input[idx+1:]
	if err := ValidateLocalID(localID); err != nil {
		return "", "", err
	}
	return resource, localID, nil
}

// ValidateLocalID checks the shape of a non-fungible local id: #integer#,
// <string>, [bytes] or {ruid}.
func ValidateLocalID(id string) error {
	if len(id) < 3 {
		return fmt.Errorf("invalid non-fungible local id: %s", id)
	}
	first, last := id[0], id[len(id)-1]
	switch {
	case first == '#' && last == '#',
		first == '<' && last == '>',
		first == '[' && last == ']',
		first == '{' && last == '}':
		return nil
	default:
		return fmt.Errorf("invalid non-fungible local id: %s", id)
	}
}

// GlobalID joins a resource address and local id.
func GlobalID(resource, localID string) string {
	return resource + ":" + localID
}
