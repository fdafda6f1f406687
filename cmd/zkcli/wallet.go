package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli/v2"

	"github.com/wangenkai1024/zksync-era/accounts"
	"github.com/wangenkai1024/zksync-era/core/types"
	"github.com/wangenkai1024/zksync-era/signer"
)

var (
	privateKeyFlag = &cli.StringFlag{
		Name:     "privatekey",
		Usage:    "hex-encoded L1 private key; the rollup key is derived from it",
		Required: true,
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "recipient address",
	}
	amountFlag = &cli.StringFlag{
		Name:  "amount",
		Usage: "amount in the token's smallest unit",
	}
	maxFeeFlag = &cli.StringFlag{
		Name:  "max-fee",
		Usage: "abort when the resolved fee exceeds this value",
	}
	allowRoundingFlag = &cli.BoolFlag{
		Name:  "allow-rounding",
		Usage: "accept downward trimming of amounts the packed encoding cannot carry",
	}
)

func walletFromFlags(ctx *cli.Context) (*accounts.Wallet, error) {
	keyHex := strings.TrimPrefix(ctx.String(privateKeyFlag.Name), "0x")
	key, err := ethcrypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %v", err)
	}
	l1, err := signer.NewEthereumSigner(key)
	if err != nil {
		return nil, err
	}
	rollup, err := signer.DeriveRollupSigner(l1)
	if err != nil {
		return nil, err
	}
	ds, err := signer.New(rollup, l1, signer.AuthOnKeyChange)
	if err != nil {
		return nil, err
	}
	c, err := dialOperator(ctx)
	if err != nil {
		return nil, err
	}
	return accounts.NewWallet(l1.Address(), ds, c), nil
}

func bigFlag(ctx *cli.Context, flag *cli.StringFlag) (*big.Int, error) {
	raw := ctx.String(flag.Name)
	if raw == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s value %q", flag.Name, raw)
	}
	return v, nil
}

var commandTransfer = &cli.Command{
	Name:  "transfer",
	Usage: "transfer funds to another rollup account",
	Flags: []cli.Flag{
		privateKeyFlag,
		toFlag,
		tokenFlag,
		amountFlag,
		maxFeeFlag,
		allowRoundingFlag,
	},
	Action: func(ctx *cli.Context) error {
		if !common.IsHexAddress(ctx.String(toFlag.Name)) {
			return fmt.Errorf("invalid recipient %q", ctx.String(toFlag.Name))
		}
		amount, err := bigFlag(ctx, amountFlag)
		if err != nil {
			return err
		}
		if amount == nil {
			return fmt.Errorf("--amount is required")
		}
		maxFee, err := bigFlag(ctx, maxFeeFlag)
		if err != nil {
			return err
		}
		w, err := walletFromFlags(ctx)
		if err != nil {
			return err
		}
		hash, err := w.Transfer(ctx.Context, accounts.TransferParams{
			To:            common.HexToAddress(ctx.String(toFlag.Name)),
			Token:         types.TokenID(ctx.Uint(tokenFlag.Name)),
			Amount:        amount,
			MaxFee:        maxFee,
			AllowRounding: ctx.Bool(allowRoundingFlag.Name),
		})
		if err != nil {
			return err
		}
		fmt.Println(hash.Hex())
		return nil
	},
}

var commandSetSigningKey = &cli.Command{
	Name:  "set-signing-key",
	Usage: "register the derived rollup key on the account",
	Flags: []cli.Flag{
		privateKeyFlag,
		tokenFlag,
		maxFeeFlag,
	},
	Action: func(ctx *cli.Context) error {
		maxFee, err := bigFlag(ctx, maxFeeFlag)
		if err != nil {
			return err
		}
		w, err := walletFromFlags(ctx)
		if err != nil {
			return err
		}
		hash, err := w.SetSigningKey(ctx.Context, accounts.SetSigningKeyParams{
			FeeToken: types.TokenID(ctx.Uint(tokenFlag.Name)),
			MaxFee:   maxFee,
		})
		if err != nil {
			return err
		}
		fmt.Println(hash.Hex())
		return nil
	},
}
