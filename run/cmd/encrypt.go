package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gosm4 "github.com/zhigui-projects/gosm4"
)

var encryptCmd *cobra.Command

const encryptCmdName = "encrypt"

func EncryptCmd() *cobra.Command {
	encryptCmd = &cobra.Command{
		Use:   encryptCmdName,
		Short: "Encrypt one block.",
		Long:  "Encrypt one block. Keys and blocks shorter than 16 bytes are left-padded with zero bytes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return encryptOrDecrypt(cmd, args)
		},
	}
	flagList := []string{
		"key",
		"block",
	}
	attachFlags(encryptCmd, flagList)

	return encryptCmd
}

func encryptOrDecrypt(cmd *cobra.Command, args []string) error {
	if err := checkCryptParams(cmd); err != nil {
		return err
	}

	service := gosm4.NewCipherService(logger)
	var out string
	var err error
	if cmd.Name() == encryptCmdName {
		out, err = service.EncryptHex(keyHex, blockHex)
	} else {
		out, err = service.DecryptHex(keyHex, blockHex)
	}
	if err != nil {
		return errors.WithMessage(err, cmd.Name()+" failed")
	}

	logger.Debug("block processed", zap.String("op", cmd.Name()))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
