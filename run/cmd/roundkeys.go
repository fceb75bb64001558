package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	gosm4 "github.com/zhigui-projects/gosm4"
)

func RoundKeysCmd() *cobra.Command {
	roundKeysCmd := &cobra.Command{
		Use:   "roundkeys",
		Short: "Print the 32 round keys expanded from a key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKeyParam(); err != nil {
				return err
			}
			key, err := hex.DecodeString(keyHex)
			if err != nil {
				return errors.Wrap(err, "key is not valid hex")
			}
			rk, err := gosm4.NewCipherService(logger).RoundKeys(key)
			if err != nil {
				return err
			}
			for _, line := range gosm4.FormatRoundKeys(rk) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	attachFlags(roundKeysCmd, []string{"key"})

	return roundKeysCmd
}
