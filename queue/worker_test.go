/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/adjust/rmq/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	gosm4 "github.com/zhigui-projects/gosm4"
)

const (
	testKey        = gosm4.DemoKey
	testCiphertext = "681edf34d206965e86b3e94f536e4246"
)

type memPublisher struct {
	payloads []string
	err      error
}

func (p *memPublisher) Publish(payload ...string) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload...)
	return nil
}

func (p *memPublisher) last(t *testing.T) *Result {
	require.NotEmpty(t, p.payloads)
	result := &Result{}
	require.NoError(t, json.Unmarshal([]byte(p.payloads[len(p.payloads)-1]), result))
	return result
}

func newTestWorker(t *testing.T, pub Publisher) *Worker {
	return NewWorker(gosm4.NewCipherService(zaptest.NewLogger(t)), pub, zaptest.NewLogger(t))
}

func jobPayload(t *testing.T, job *Job) string {
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return string(b)
}

func TestWorker_Handle(t *testing.T) {
	w := newTestWorker(t, &memPublisher{})

	res := w.Handle(&Job{ID: "1", Action: ActionEncrypt, Key: testKey, Block: testKey})
	assert.Equal(t, &Result{ID: "1", Action: ActionEncrypt, Block: testCiphertext}, res)

	res = w.Handle(&Job{ID: "2", Action: ActionDecrypt, Key: testKey, Block: testCiphertext})
	assert.Equal(t, &Result{ID: "2", Action: ActionDecrypt, Block: testKey}, res)

	res = w.Handle(&Job{ID: "3", Action: "sign", Key: testKey, Block: testKey})
	assert.Equal(t, "3", res.ID)
	assert.Empty(t, res.Block)
	assert.Contains(t, res.Error, `unknown action "sign"`)

	res = w.Handle(&Job{ID: "4", Action: ActionDecrypt, Key: testKey, Block: "00"})
	assert.Empty(t, res.Block)
	assert.Contains(t, res.Error, "invalid length")
}

func TestWorker_HandleAssignsID(t *testing.T) {
	w := newTestWorker(t, &memPublisher{})
	job := &Job{Action: ActionEncrypt, Key: testKey, Block: "01"}
	res := w.Handle(job)

	_, err := uuid.Parse(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, job.ID, res.ID)
}

func TestWorker_ConsumeAcks(t *testing.T) {
	pub := &memPublisher{}
	w := newTestWorker(t, pub)

	delivery := rmq.NewTestDeliveryString(jobPayload(t, &Job{ID: "a", Action: ActionEncrypt, Key: testKey, Block: testKey}))
	w.Consume(delivery)

	assert.Equal(t, rmq.Acked, delivery.State)
	assert.Equal(t, &Result{ID: "a", Action: ActionEncrypt, Block: testCiphertext}, pub.last(t))
}

func TestWorker_ConsumeAcksCipherFailures(t *testing.T) {
	pub := &memPublisher{}
	w := newTestWorker(t, pub)

	delivery := rmq.NewTestDeliveryString(jobPayload(t, &Job{ID: "b", Action: ActionEncrypt, Key: "nothex", Block: testKey}))
	w.Consume(delivery)

	assert.Equal(t, rmq.Acked, delivery.State)
	res := pub.last(t)
	assert.Equal(t, "b", res.ID)
	assert.Contains(t, res.Error, "key is not valid hex")
}

func TestWorker_ConsumeRejectsGarbage(t *testing.T) {
	pub := &memPublisher{}
	w := newTestWorker(t, pub)

	delivery := rmq.NewTestDeliveryString("{not json")
	w.Consume(delivery)

	assert.Equal(t, rmq.Rejected, delivery.State)
	assert.Empty(t, pub.payloads)
}

func TestWorker_ConsumeRejectsOnPublishFailure(t *testing.T) {
	pub := &memPublisher{err: errors.New("redis down")}
	w := newTestWorker(t, pub)

	delivery := rmq.NewTestDeliveryString(jobPayload(t, &Job{Action: ActionEncrypt, Key: testKey, Block: testKey}))
	w.Consume(delivery)

	assert.Equal(t, rmq.Rejected, delivery.State)
}

func TestLogErrors(t *testing.T) {
	errChan := make(chan error, 2)
	errChan <- errors.New("timeout")
	errChan <- errors.New("boom")
	close(errChan)

	LogErrors(context.Background(), zaptest.NewLogger(t), errChan)
}

func TestLogErrors_StopsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		LogErrors(ctx, zaptest.NewLogger(t), errChan)
		close(done)
	}()

	errChan <- &rmq.ConsumeError{RedisErr: errors.New("timeout"), Count: 1}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LogErrors did not return after cancel")
	}
}

type fakeJobQueue struct {
	addErr  error
	started bool
	stopped bool
}

func (q *fakeJobQueue) StartConsuming(prefetchLimit int64, pollDuration time.Duration) error {
	q.started = true
	return nil
}

func (q *fakeJobQueue) StopConsuming() <-chan struct{} {
	q.stopped = true
	finished := make(chan struct{})
	close(finished)
	return finished
}

func (q *fakeJobQueue) AddConsumer(tag string, consumer rmq.Consumer) (string, error) {
	return tag, q.addErr
}

func TestRun_AddConsumerFailureStopsConsuming(t *testing.T) {
	jobs := &fakeJobQueue{addErr: errors.New("redis down")}
	q := &Queues{Conf: gosm4.DefaultAppConf().Conf.Queue, Jobs: jobs, Results: &memPublisher{}}

	err := q.Run(context.Background(), newTestWorker(t, &memPublisher{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add consumer")
	assert.True(t, jobs.started)
	assert.True(t, jobs.stopped)
}

func TestRun_StopsOnContextDone(t *testing.T) {
	jobs := &fakeJobQueue{}
	q := &Queues{Conf: gosm4.DefaultAppConf().Conf.Queue, Jobs: jobs, Results: &memPublisher{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, q.Run(ctx, newTestWorker(t, &memPublisher{})))
	assert.True(t, jobs.stopped)
}

func TestOpen_UnreachableRedis(t *testing.T) {
	conf := gosm4.DefaultAppConf().Conf.Queue
	conf.RedisAddr = "127.0.0.1:1"

	_, err := Open(conf, make(chan error, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach redis at 127.0.0.1:1")
}
