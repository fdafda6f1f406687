package crypto

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type signatureJSON struct {
	PubKey    hexutil.Bytes `json:"pubKey"`
	Signature hexutil.Bytes `json:"signature"`
}

// MarshalJSON encodes both fields as 0x-prefixed hex, the operator wire form.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(signatureJSON{
		PubKey:    hexutil.Bytes(s.PubKey),
		Signature: hexutil.Bytes(s.Signature),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var raw signatureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.PubKey = PublicKey(raw.PubKey)
	s.Signature = raw.Signature
	return nil
}
