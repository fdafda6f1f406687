// Package params holds network profiles for the rollup deployments the SDK
// can talk to.
package params

import "github.com/ethereum/go-ethereum/common"

// Network identifies one rollup deployment: the operator endpoint and the
// rollup contract on the base chain.
type Network struct {
	Name           string
	L1ChainID      uint64
	OperatorURL    string
	RollupContract common.Address
}

var (
	// Mainnet is the production deployment settled on Ethereum mainnet.
	Mainnet = Network{
		Name:           "mainnet",
		L1ChainID:      1,
		OperatorURL:    "https://api.zksync.io/jsrpc",
		RollupContract: common.HexToAddress("0xaBEA9132b05A70803a4E85094fD0e1800777fBEF"),
	}

	// Sepolia is the public test deployment.
	Sepolia = Network{
		Name:           "sepolia",
		L1ChainID:      11155111,
		OperatorURL:    "https://sepolia-api.zksync.io/jsrpc",
		RollupContract: common.HexToAddress("0x9A6DE0f62Aa270A8bCB1e2610078650D539B1Ef9"),
	}

	// Localhost targets a local development stack.
	Localhost = Network{
		Name:        "localhost",
		L1ChainID:   9,
		OperatorURL: "http://127.0.0.1:3030",
	}
)

// ByName resolves a network profile by its name.
func ByName(name string) (Network, bool) {
	for _, n := range []Network{Mainnet, Sepolia, Localhost} {
		if n.Name == name {
			return n, true
		}
	}
	return Network{}, false
}
