package cmd

import (
	"github.com/spf13/cobra"
)

var decryptCmd *cobra.Command

const decryptCmdName = "decrypt"

func DecryptCmd() *cobra.Command {
	decryptCmd = &cobra.Command{
		Use:   decryptCmdName,
		Short: "Decrypt one block.",
		Long:  "Decrypt one block. The block must be exactly 16 bytes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return encryptOrDecrypt(cmd, args)
		},
	}
	flagList := []string{
		"key",
		"block",
	}
	attachFlags(decryptCmd, flagList)

	return decryptCmd
}
