package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	orderskeeper "github.com/paw-chain/sealswap/x/orders/keeper"
	orderstypes "github.com/paw-chain/sealswap/x/orders/types"
	"github.com/paw-chain/sealswap/x/orders/zk"
)

const (
	flagClaim = "claim"
	flagSalt  = "salt"
	flagOut   = "out"
)

type decisionOutput struct {
	Outcome   string `json:"outcome"`
	Relation  string `json:"relation,omitempty"`
	RealOut   uint64 `json:"real_out,omitempty"`
	Statement string `json:"statement,omitempty"`
}

// NewDecideCmd prints the finalization an order must take
func NewDecideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide [current-height] [deadline] [committed-min-out] [observed-output]",
		Short: "Decide whether an order settles, cancels or is slashed",
		Long: `Decide whether an order settles, cancels or is slashed.

With --claim the claimed outcome is validated instead, failing when it is not
the outcome the heights and amounts require.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]uint64, len(args))
			for i, arg := range args {
				v, err := cast.ToUint64E(arg)
				if err != nil {
					return fmt.Errorf("invalid argument %q: %w", arg, err)
				}
				values[i] = v
			}
			height, deadline, minOut, output := values[0], values[1], values[2], values[3]

			decision := orderskeeper.DecideFinalization(height, deadline, minOut, output)
			if claim, _ := cmd.Flags().GetString(flagClaim); claim != "" {
				outcome, err := orderstypes.ParseOutcome(claim)
				if err != nil {
					return err
				}
				if decision, err = orderskeeper.ValidateClaim(outcome, height, deadline, minOut, output); err != nil {
					return err
				}
			}

			out := decisionOutput{Outcome: decision.Outcome.String()}
			if decision.Obligation != nil {
				out.Relation = decision.Obligation.Relation.String()
				out.RealOut = decision.Obligation.RealOut
				out.Statement = decision.Obligation.Statement()
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().String(flagClaim, "", "validate a claimed outcome (settle, cancel or slash)")
	return cmd
}

type commitOutput struct {
	MinOut     uint64                 `json:"min_out"`
	Salt       orderstypes.Salt       `json:"salt"`
	Commitment orderstypes.Commitment `json:"commitment"`
}

// NewCommitCmd seals a minimum output under a salt
func NewCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit [min-out]",
		Short: "Seal a minimum output into an order commitment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minOut, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid min out %q: %w", args[0], err)
			}

			var salt orderstypes.Salt
			if s, _ := cmd.Flags().GetString(flagSalt); s != "" {
				if err := salt.UnmarshalText([]byte(s)); err != nil {
					return fmt.Errorf("invalid salt: %w", err)
				}
			} else if salt, err = orderstypes.NewSalt(); err != nil {
				return err
			}

			return printJSON(cmd, commitOutput{
				MinOut:     minOut,
				Salt:       salt,
				Commitment: orderstypes.Commit(minOut, salt),
			})
		},
	}

	cmd.Flags().String(flagSalt, "", "hex encoded 8-byte salt (random when empty)")
	return cmd
}

// NewExportVKCmd runs the circuit setup and writes the verifying keys
func NewExportVKCmd(clientCtx *clientContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-vk",
		Short: "Generate the settle and cancel circuit keys and export the verifying keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString(flagOut)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}

			backend := zk.NewBackend(clientCtx.Logger)
			if err := backend.Initialize(cmd.Context()); err != nil {
				return err
			}
			keys, err := backend.ExportVerifyingKeys()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(keys))
			for name := range keys {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				path := filepath.Join(dir, name+".vk")
				if err := os.WriteFile(path, keys[name], 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().String(flagOut, ".", "output directory")
	return cmd
}
