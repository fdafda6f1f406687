// zkcli is a command line client for the rollup operator API: account and
// token queries, fee estimates, transaction status waits and transfers.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/wangenkai1024/zksync-era/client"
	"github.com/wangenkai1024/zksync-era/params"
)

var (
	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "network profile to use (mainnet, sepolia, localhost)",
		Value: params.Mainnet.Name,
	}
	operatorURLFlag = &cli.StringFlag{
		Name:  "operator-url",
		Usage: "operator RPC endpoint, overrides the network profile",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log RPC retries and submission details",
	}
)

var app = &cli.App{
	Name:  "zkcli",
	Usage: "rollup account client",
	Flags: []cli.Flag{
		networkFlag,
		operatorURLFlag,
		verboseFlag,
	},
	Commands: []*cli.Command{
		commandAccount,
		commandTokens,
		commandFee,
		commandStatus,
		commandTransfer,
		commandSetSigningKey,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func network(ctx *cli.Context) (params.Network, error) {
	net, ok := params.ByName(ctx.String(networkFlag.Name))
	if !ok {
		return params.Network{}, fmt.Errorf("unknown network %q", ctx.String(networkFlag.Name))
	}
	if url := ctx.String(operatorURLFlag.Name); url != "" {
		net.OperatorURL = url
	}
	return net, nil
}

func dialOperator(ctx *cli.Context) (*client.Client, error) {
	net, err := network(ctx)
	if err != nil {
		return nil, err
	}
	opts := []client.Option{}
	if ctx.Bool(verboseFlag.Name) {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithLogger(log))
	}
	return client.Dial(net.OperatorURL, opts...)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
