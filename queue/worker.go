/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v3"
	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	gosm4 "github.com/zhigui-projects/gosm4"
)

const (
	ActionEncrypt = "encrypt"
	ActionDecrypt = "decrypt"
)

// Job asks for one block to be encrypted or decrypted. Key and Block are hex.
type Job struct {
	ID     string `json:"id,omitempty"`
	Action string `json:"action"`
	Key    string `json:"key"`
	Block  string `json:"block"`
}

type Result struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Block  string `json:"block,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Publisher is the part of rmq.Queue the worker publishes results with.
type Publisher interface {
	Publish(payload ...string) error
}

// Worker consumes jobs and publishes one Result per job.
type Worker struct {
	crypter gosm4.HexCrypter
	results Publisher
	logger  *zap.Logger
}

func NewWorker(crypter gosm4.HexCrypter, results Publisher, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{crypter: crypter, results: results, logger: logger}
}

// Handle runs a single job. Cipher failures are reported in the result, not
// returned.
func (w *Worker) Handle(job *Job) *Result {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	result := &Result{ID: job.ID, Action: job.Action}

	var err error
	switch job.Action {
	case ActionEncrypt:
		result.Block, err = w.crypter.EncryptHex(job.Key, job.Block)
	case ActionDecrypt:
		result.Block, err = w.crypter.DecryptHex(job.Key, job.Block)
	default:
		err = errors.Errorf("unknown action %q", job.Action)
	}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// Consume implements rmq.Consumer.
func (w *Worker) Consume(delivery rmq.Delivery) {
	logger := w.logger

	job := &Job{}
	if err := json.Unmarshal([]byte(delivery.Payload()), job); err != nil {
		logger.Warn("rejecting undecodable job", zap.Error(err))
		if err := delivery.Reject(); err != nil {
			logger.Error("reject failed", zap.Error(err))
		}
		return
	}

	result := w.Handle(job)
	logger = logger.With(zap.String("job", result.ID), zap.String("action", result.Action))
	if result.Error != "" {
		logger.Info("job failed", zap.String("error", result.Error))
	} else {
		logger.Debug("job done")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		logger.Error("result marshal failed", zap.Error(err))
		if err := delivery.Reject(); err != nil {
			logger.Error("reject failed", zap.Error(err))
		}
		return
	}
	if err := w.results.Publish(string(payload)); err != nil {
		logger.Error("result publish failed", zap.Error(err))
		if err := delivery.Reject(); err != nil {
			logger.Error("reject failed", zap.Error(err))
		}
		return
	}
	if err := delivery.Ack(); err != nil {
		logger.Error("ack failed", zap.Error(err))
	}
}

// JobQueue is the consuming side of rmq.Queue.
type JobQueue interface {
	StartConsuming(prefetchLimit int64, pollDuration time.Duration) error
	StopConsuming() <-chan struct{}
	AddConsumer(tag string, consumer rmq.Consumer) (string, error)
}

// Queues holds the job and result queues of an open rmq connection.
type Queues struct {
	Conf    gosm4.QueueConf
	Jobs    JobQueue
	Results Publisher
}

// Open connects to redis and opens the job and result queues. Background
// errors of the connection are sent to errChan.
func Open(conf gosm4.QueueConf, errChan chan<- error) (*Queues, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr,
		Password: conf.RedisPassword,
		DB:       conf.RedisDB,
	})
	if err := redisClient.Ping().Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to reach redis at %s", conf.RedisAddr)
	}

	connection, err := rmq.OpenConnectionWithRedisClient(conf.Tag, redisClient, errChan)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open rmq connection")
	}
	jobs, err := connection.OpenQueue(conf.Jobs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open queue %s", conf.Jobs)
	}
	results, err := connection.OpenQueue(conf.Results)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open queue %s", conf.Results)
	}
	return &Queues{Conf: conf, Jobs: jobs, Results: results}, nil
}

// Run consumes jobs with w until ctx is done, then waits for the deliveries
// in flight.
func (q *Queues) Run(ctx context.Context, w *Worker) error {
	if err := q.Jobs.StartConsuming(q.Conf.PrefetchLimit, q.Conf.PollDuration); err != nil {
		return errors.Wrap(err, "failed to start consuming")
	}
	if _, err := q.Jobs.AddConsumer(q.Conf.Tag, w); err != nil {
		<-q.Jobs.StopConsuming()
		return errors.Wrap(err, "failed to add consumer")
	}
	w.logger.Info("worker started", zap.String("jobs", q.Conf.Jobs), zap.String("results", q.Conf.Results))

	<-ctx.Done()
	<-q.Jobs.StopConsuming()
	w.logger.Info("worker stopped")
	return nil
}

// LogErrors logs the background errors of an rmq connection until ctx is
// done or errChan is closed.
func LogErrors(ctx context.Context, logger *zap.Logger, errChan <-chan error) {
	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case e, ok := <-errChan:
			if !ok {
				return
			}
			err = e
		}

		switch err := err.(type) {
		case *rmq.HeartbeatError:
			if err.Count == rmq.HeartbeatErrorLimit {
				logger.Error("heartbeat error (limit)", zap.Error(err))
			} else {
				logger.Warn("heartbeat error", zap.Error(err))
			}
		case *rmq.ConsumeError:
			logger.Warn("consume error", zap.Error(err))
		case *rmq.DeliveryError:
			logger.Warn("delivery error", zap.Error(err))
		default:
			logger.Warn("other error", zap.Error(err))
		}
	}
}
