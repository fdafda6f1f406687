package types

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// payloadVersion is the first byte of every canonical encoding. Bumping it
// invalidates all previously signed payloads.
const payloadVersion = 0x01

// full (unpacked) amounts occupy a 128-bit big-endian field.
const fullAmountBytes = 16

// payload accumulates the canonical byte encoding of a transaction.
// Errors from lossy fields are latched and surfaced by bytes().
type payload struct {
	buf bytes.Buffer
	err error
}

func newPayload(t TxType) *payload {
	p := &payload{}
	p.buf.WriteByte(payloadVersion)
	p.buf.WriteByte(byte(t))
	return p
}

func (p *payload) writeUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	p.buf.Write(b[:])
}

func (p *payload) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	p.buf.Write(b[:])
}

func (p *payload) writeAddress(a common.Address) {
	p.buf.Write(a.Bytes())
}

func (p *payload) writeBytes(b []byte) {
	p.buf.Write(b)
}

func (p *payload) writeToken(t TokenID) {
	p.writeUint32(uint32(t))
}

func (p *payload) writePackedAmount(v *big.Int) {
	b, err := PackAmount(v)
	if err != nil {
		p.fail(err)
		return
	}
	p.buf.Write(b)
}

func (p *payload) writePackedFee(v *big.Int) {
	b, err := PackFee(v)
	if err != nil {
		p.fail(err)
		return
	}
	p.buf.Write(b)
}

func (p *payload) writeFullAmount(v *big.Int) {
	if v == nil || v.Sign() < 0 {
		p.fail(ErrNegativeAmount)
		return
	}
	if v.BitLen() > 8*fullAmountBytes {
		p.fail(ErrAmountTooLarge)
		return
	}
	var b [fullAmountBytes]byte
	v.FillBytes(b[:])
	p.buf.Write(b[:])
}

func (p *payload) writeTimeRange(tr TimeRange) {
	eff := tr.withDefaults()
	p.writeUint64(eff.ValidFrom)
	p.writeUint64(eff.ValidUntil)
}

func (p *payload) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *payload) bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.buf.Bytes(), nil
}
