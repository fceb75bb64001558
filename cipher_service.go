/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gosm4

import (
	"crypto/cipher"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zhigui-projects/gosm4/sm4"
)

// maxCachedCiphers bounds the number of keys CipherService keeps expanded.
const maxCachedCiphers = 64

// CipherService runs single block SM4 operations, reusing the expanded
// round keys of recently seen keys.
type CipherService struct {
	logger  *zap.Logger
	mutex   sync.RWMutex
	ciphers map[string]*sm4.Cipher
}

var (
	serviceOnce sync.Once
	service     *CipherService
)

// GetCipherService returns the process wide service. It does not log.
func GetCipherService() *CipherService {
	serviceOnce.Do(func() {
		service = NewCipherService(zap.NewNop())
	})

	return service
}

func NewCipherService(logger *zap.Logger) *CipherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CipherService{
		logger:  logger,
		ciphers: make(map[string]*sm4.Cipher),
	}
}

func (cs *CipherService) BlockSize() int {
	return sm4.BlockSize
}

func (cs *CipherService) cipher(key []byte) (*sm4.Cipher, error) {
	if len(key) > sm4.KeySize {
		return nil, sm4.KeySizeError(len(key))
	}
	padded, err := sm4.ZeroPad(key, sm4.KeySize*8)
	if err != nil {
		return nil, err
	}
	id := string(padded)

	cs.mutex.RLock()
	c, ok := cs.ciphers[id]
	cs.mutex.RUnlock()
	if ok {
		return c, nil
	}

	c, err = sm4.NewCipher(padded)
	if err != nil {
		return nil, err
	}

	cs.mutex.Lock()
	defer cs.mutex.Unlock()
	if cached, ok := cs.ciphers[id]; ok {
		return cached, nil
	}
	if len(cs.ciphers) >= maxCachedCiphers {
		cs.logger.Debug("cipher cache full, dropping cached keys", zap.Int("size", len(cs.ciphers)))
		cs.ciphers = make(map[string]*sm4.Cipher)
	}
	cs.ciphers[id] = c
	return c, nil
}

// NewSm4Cipher returns the cipher bound to key. The same instance may be
// handed to other callers using the same key.
func (cs *CipherService) NewSm4Cipher(key []byte) (cipher.Block, error) {
	c, err := cs.cipher(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (cs *CipherService) EncryptBlock(key, block []byte) ([]byte, error) {
	c, err := cs.cipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bind encryption key")
	}
	out, err := c.EncryptBlock(block)
	if err != nil {
		return nil, errors.Wrap(err, "encrypt block failed")
	}
	cs.logger.Debug("block encrypted", zap.Int("in", len(block)))
	return out, nil
}

func (cs *CipherService) DecryptBlock(key, block []byte) ([]byte, error) {
	c, err := cs.cipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bind decryption key")
	}
	out, err := c.DecryptBlock(block)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt block failed")
	}
	cs.logger.Debug("block decrypted", zap.Int("in", len(block)))
	return out, nil
}

func (cs *CipherService) EncryptHex(key, block string) (string, error) {
	return cs.hexOp(key, block, cs.EncryptBlock)
}

func (cs *CipherService) DecryptHex(key, block string) (string, error) {
	return cs.hexOp(key, block, cs.DecryptBlock)
}

func (cs *CipherService) hexOp(key, block string, op func(key, block []byte) ([]byte, error)) (string, error) {
	k, err := hex.DecodeString(key)
	if err != nil {
		return "", errors.Wrap(err, "key is not valid hex")
	}
	b, err := hex.DecodeString(block)
	if err != nil {
		return "", errors.Wrap(err, "block is not valid hex")
	}
	out, err := op(k, b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

// RoundKeys returns the 32 round keys derived from key, in encryption order.
func (cs *CipherService) RoundKeys(key []byte) ([]uint32, error) {
	c, err := cs.cipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to bind key")
	}
	rk := c.RoundKeys()
	return rk[:], nil
}
