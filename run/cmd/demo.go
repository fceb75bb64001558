package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	gosm4 "github.com/zhigui-projects/gosm4"
)

func DemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Encrypt the standard test block under itself.",
		Long:  "Encrypt " + gosm4.DemoKey + " under itself as key and print the hex ciphertext.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := gosm4.Demo()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
