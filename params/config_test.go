package params

import "testing"

func TestNetworkProfiles(t *testing.T) {
	seen := map[uint64]string{}
	for _, n := range []Network{Mainnet, Sepolia, Localhost} {
		if n.Name == "" || n.OperatorURL == "" {
			t.Fatalf("incomplete profile %+v", n)
		}
		if prev, ok := seen[n.L1ChainID]; ok {
			t.Fatalf("chain id %d shared by %s and %s", n.L1ChainID, prev, n.Name)
		}
		seen[n.L1ChainID] = n.Name
	}
}

func TestByName(t *testing.T) {
	n, ok := ByName("sepolia")
	if !ok || n.L1ChainID != Sepolia.L1ChainID {
		t.Fatalf("ByName(sepolia) = %+v, %v", n, ok)
	}
	if _, ok := ByName("nope"); ok {
		t.Fatal("ByName accepted an unknown network")
	}
}
