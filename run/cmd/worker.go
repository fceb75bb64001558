/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	gosm4 "github.com/zhigui-projects/gosm4"
	"github.com/zhigui-projects/gosm4/queue"
)

func WorkerCmd() *cobra.Command {
	workerCmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the block job worker on the configured redis queues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runWorker(ctx, appConf.Conf.Queue)
		},
	}

	return workerCmd
}

func runWorker(ctx context.Context, conf gosm4.QueueConf) error {
	// rmq may still report into errChan after Run returns, so the logger
	// goroutine is stopped through ctx instead of closing the channel.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 10)
	go queue.LogErrors(ctx, logger, errChan)

	queues, err := queue.Open(conf, errChan)
	if err != nil {
		return err
	}

	worker := queue.NewWorker(gosm4.NewCipherService(logger), queues.Results, logger)
	return queues.Run(ctx, worker)
}
