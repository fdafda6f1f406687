package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/wangenkai1024/zksync-era/core/types"
	"github.com/wangenkai1024/zksync-era/tracker"
)

var commandAccount = &cli.Command{
	Name:      "account",
	Usage:     "show the operator's view of an account",
	ArgsUsage: "<address>",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("usage: account <address>")
		}
		if !common.IsHexAddress(ctx.Args().First()) {
			return fmt.Errorf("invalid address %q", ctx.Args().First())
		}
		c, err := dialOperator(ctx)
		if err != nil {
			return err
		}
		defer c.Close()
		state, err := c.AccountState(ctx.Context, common.HexToAddress(ctx.Args().First()))
		if err != nil {
			return err
		}
		return printJSON(state)
	},
}

var commandTokens = &cli.Command{
	Name:  "tokens",
	Usage: "list tokens registered on the rollup",
	Action: func(ctx *cli.Context) error {
		c, err := dialOperator(ctx)
		if err != nil {
			return err
		}
		defer c.Close()
		tokens, err := c.Tokens(ctx.Context)
		if err != nil {
			return err
		}
		return printJSON(tokens)
	},
}

var (
	feeTypeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "operation class to price (Transfer, Withdraw, ChangePubKey, ...)",
		Value: string(types.FeeTransfer),
	}
	tokenFlag = &cli.UintFlag{
		Name:  "token",
		Usage: "token id the fee is paid in",
	}
)

var commandFee = &cli.Command{
	Name:      "fee",
	Usage:     "estimate the fee for an operation",
	ArgsUsage: "<address>",
	Flags:     []cli.Flag{feeTypeFlag, tokenFlag},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("usage: fee <address>")
		}
		c, err := dialOperator(ctx)
		if err != nil {
			return err
		}
		defer c.Close()
		fee, err := c.EstimateFee(ctx.Context,
			types.TxFeeType(ctx.String(feeTypeFlag.Name)),
			common.HexToAddress(ctx.Args().First()),
			types.TokenID(ctx.Uint(tokenFlag.Name)))
		if err != nil {
			return err
		}
		return printJSON(fee)
	},
}

var (
	waitFlag = &cli.BoolFlag{
		Name:  "wait",
		Usage: "poll until the target stage is reached",
	}
	targetFlag = &cli.StringFlag{
		Name:  "target",
		Usage: "finality stage to wait for (committed, verified, executed)",
		Value: types.StatusCommitted.String(),
	}
)

var commandStatus = &cli.Command{
	Name:      "status",
	Usage:     "show (or wait for) the status of a transaction",
	ArgsUsage: "<tx-hash>",
	Flags:     []cli.Flag{waitFlag, targetFlag},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("usage: status <tx-hash>")
		}
		hash := common.HexToHash(ctx.Args().First())
		c, err := dialOperator(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		if !ctx.Bool(waitFlag.Name) {
			receipt, err := c.TxStatus(ctx.Context, hash)
			if err != nil {
				return err
			}
			return printJSON(receipt)
		}

		var target types.Status
		if err := target.UnmarshalText([]byte(ctx.String(targetFlag.Name))); err != nil {
			return err
		}
		receipt, err := tracker.NewMonitor(c).Wait(ctx.Context, hash, target, tracker.DefaultWaitConfig)
		if err != nil {
			return err
		}
		return printJSON(receipt)
	},
}
