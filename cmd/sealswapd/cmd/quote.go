package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	ammkeeper "github.com/paw-chain/sealswap/x/amm/keeper"
	ammtypes "github.com/paw-chain/sealswap/x/amm/types"
)

const (
	flagInputMint    = "input-mint"
	flagTransferFees = "transfer-fees"
	flagEpoch        = "epoch"
)

// quoteOutput is the printed form of a quote
type quoteOutput struct {
	Direction         string `json:"direction"`
	InAmount          uint64 `json:"in_amount"`
	OutAmount         uint64 `json:"out_amount"`
	FeeAmount         uint64 `json:"fee_amount"`
	FeeMint           string `json:"fee_mint"`
	FeePercent        string `json:"fee_percent"`
	ProtocolFee       uint64 `json:"protocol_fee"`
	GrossOut          uint64 `json:"gross_out"`
	FromToLock        uint64 `json:"from_to_lock"`
	InputTransferFee  uint64 `json:"input_transfer_fee"`
	OutputTransferFee uint64 `json:"output_transfer_fee"`
}

// NewQuoteCmd prices an exact-in swap against a pool snapshot file
func NewQuoteCmd(clientCtx *clientContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [pool-snapshot.json] [amount]",
		Short: "Quote an exact-in swap against a pool snapshot",
		Long: `Quote an exact-in swap against a pool snapshot.

The amount is the gross input the trader sends; the input-side transfer fee is
deducted before pricing and the output-side transfer fee after it. Transfer fees
come from a JSON file mapping each mint to its older and newer fee entries; the
entry in force at --epoch applies. Mints missing from the file pay no fee.`,
		Example: "sealswapd quote pool.json 10000 --transfer-fees fees.json --epoch 640",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := readPoolSnapshot(args[0])
			if err != nil {
				return err
			}
			amount, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			direction := ammtypes.SwapXToY
			if mint, _ := cmd.Flags().GetString(flagInputMint); mint != "" {
				inputMint, err := solana.PublicKeyFromBase58(mint)
				if err != nil {
					return fmt.Errorf("invalid input mint: %w", err)
				}
				if direction, err = ammtypes.DirectionFromMint(pool, inputMint); err != nil {
					return err
				}
			}

			schedules, err := readTransferFeeSchedules(cmd)
			if err != nil {
				return err
			}
			epoch, _ := cmd.Flags().GetUint64(flagEpoch)
			inputFee, err := schedules.Calculator(pool.Mint(direction.SourceSide()), epoch)
			if err != nil {
				return err
			}
			outputFee, err := schedules.Calculator(pool.Mint(direction.DestinationSide()), epoch)
			if err != nil {
				return err
			}

			k := ammkeeper.NewKeeper(clientCtx.Logger)
			k.SetInstruments(clientCtx.telemetry.Instruments())
			quote, err := k.QuoteExactIn(cmd.Context(), ammtypes.QuoteRequest{
				Direction:         direction,
				Mode:              ammtypes.SwapModeExactIn,
				Pool:              pool,
				Config:            clientCtx.Config.Fees,
				OutputTransferFee: outputFee,
			}, amount, inputFee)
			if err != nil {
				return err
			}

			return printJSON(cmd, quoteOutput{
				Direction:         direction.String(),
				InAmount:          quote.InAmount,
				OutAmount:         quote.OutAmount,
				FeeAmount:         quote.FeeAmount,
				FeeMint:           quote.FeeMint.String(),
				FeePercent:        quote.FeePercent().String(),
				ProtocolFee:       quote.ProtocolFee,
				GrossOut:          quote.GrossOut,
				FromToLock:        quote.FromToLock,
				InputTransferFee:  quote.InputTransferFee,
				OutputTransferFee: quote.OutputTransferFee,
			})
		},
	}

	cmd.Flags().String(flagInputMint, "", "mint of the input token (default token X)")
	cmd.Flags().String(flagTransferFees, "", "JSON file of per-mint transfer fee schedules")
	cmd.Flags().Uint64(flagEpoch, 0, "epoch selecting the transfer fee entry")

	return cmd
}

func readPoolSnapshot(path string) (ammtypes.PoolState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return ammtypes.PoolState{}, fmt.Errorf("failed to read pool snapshot: %w", err)
	}

	var pool ammtypes.PoolState
	if err := json.Unmarshal(bz, &pool); err != nil {
		return ammtypes.PoolState{}, fmt.Errorf("failed to parse pool snapshot: %w", err)
	}
	return pool, nil
}

func readTransferFeeSchedules(cmd *cobra.Command) (ammtypes.TransferFeeSchedules, error) {
	path, _ := cmd.Flags().GetString(flagTransferFees)
	if path == "" {
		return ammtypes.TransferFeeSchedules{}, nil
	}

	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer fees: %w", err)
	}
	var schedules ammtypes.TransferFeeSchedules
	if err := json.Unmarshal(bz, &schedules); err != nil {
		return nil, fmt.Errorf("failed to parse transfer fees: %w", err)
	}
	if err := schedules.Validate(); err != nil {
		return nil, err
	}
	return schedules, nil
}
