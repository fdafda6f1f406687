package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TxFeeType names a priced operation class for operator fee queries.
type TxFeeType string

const (
	FeeTransfer     TxFeeType = "Transfer"
	FeeWithdraw     TxFeeType = "Withdraw"
	FeeChangePubKey TxFeeType = "ChangePubKey"
	FeeForcedExit   TxFeeType = "ForcedExit"
	FeeMintNFT      TxFeeType = "MintNFT"
	FeeWithdrawNFT  TxFeeType = "WithdrawNFT"
	FeeSwap         TxFeeType = "Swap"
)

// FeeTypeFor maps a transaction variant to its fee query class.
func FeeTypeFor(t TxType) TxFeeType {
	return TxFeeType(t.String())
}

// Fee is the operator's advisory price breakdown for one operation. It is
// re-validated by the operator at submission time and never assumed exact.
type Fee struct {
	FeeType     TxFeeType    `json:"feeType"`
	GasTxAmount *hexutil.Big `json:"gasTxAmount"`
	GasPriceWei *hexutil.Big `json:"gasPriceWei"`
	GasFee      *hexutil.Big `json:"gasFee"`
	ZkpFee      *hexutil.Big `json:"zkpFee"`
	TotalFee    *hexutil.Big `json:"totalFee"`
}

// Total returns the total fee in the fee token's smallest unit.
func (f *Fee) Total() *big.Int {
	if f == nil || f.TotalFee == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(f.TotalFee))
}
