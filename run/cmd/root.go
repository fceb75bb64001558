package cmd

import (
	"github.com/spf13/cobra"
)

// MainCmd describes the tool and defaults to printing the help message.
func MainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:   "gosm4",
		Short: "Encrypt and decrypt single blocks with the SM4 block cipher",
		Long:  "Encrypt and decrypt single 16-byte blocks with the SM4 block cipher (GB/T 32907-2016)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitCmd(cmd, args)
		},
		SilenceUsage: true,
	}
	persistent := mainCmd.PersistentFlags()
	persistent.AddFlag(flags.Lookup("path"))
	persistent.AddFlag(flags.Lookup("logLevel"))

	mainCmd.AddCommand(DemoCmd())
	mainCmd.AddCommand(EncryptCmd())
	mainCmd.AddCommand(DecryptCmd())
	mainCmd.AddCommand(RoundKeysCmd())
	mainCmd.AddCommand(WorkerCmd())

	return mainCmd
}
