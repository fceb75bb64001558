/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sm4 implements the SM4 block cipher (GB/T 32907-2016).
//
// A Cipher transforms exactly one 16-byte block per call. Keys and plaintext
// blocks shorter than 16 bytes are left-padded with zero bytes. The S-box is a
// plain table lookup and is not constant-time.
package sm4

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

const (
	// BlockSize is the SM4 block size in bytes.
	BlockSize = 16
	// KeySize is the SM4 key size in bytes.
	KeySize = 16
	// Rounds is the number of rounds, and of round keys.
	Rounds = 32
)

// ErrInvalidLength is the cause of every length error returned by this package.
var ErrInvalidLength = errors.New("sm4: invalid length")

// KeySizeError is returned by NewCipher for keys longer than KeySize.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "sm4: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is an SM4 instance bound to one key. Its round keys are expanded on
// first use and are safe for concurrent use afterwards.
type Cipher struct {
	key      []byte
	once     sync.Once
	expanded uint32
	rk       *[Rounds]uint32
}

// NewCipher binds key to a new Cipher. Keys shorter than KeySize are
// left-padded with zero bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) > KeySize {
		return nil, KeySizeError(len(key))
	}
	padded, err := ZeroPad(key, KeySize*8)
	if err != nil {
		return nil, err
	}
	c := &Cipher{key: make([]byte, KeySize)}
	copy(c.key, padded)
	return c, nil
}

func (c *Cipher) roundKeys() *[Rounds]uint32 {
	c.once.Do(func() {
		rk := expandKey(c.key)
		c.rk = &rk
		atomic.StoreUint32(&c.expanded, 1)
	})
	return c.rk
}

// Expanded reports whether the round keys have been computed.
func (c *Cipher) Expanded() bool {
	return atomic.LoadUint32(&c.expanded) == 1
}

// RoundKeys returns a copy of the 32 round keys in encryption order.
func (c *Cipher) RoundKeys() [Rounds]uint32 {
	return *c.roundKeys()
}

// BlockSize returns the SM4 block size.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// EncryptBlock encrypts one block. A plaintext shorter than BlockSize is
// left-padded with zero bytes first.
func (c *Cipher) EncryptBlock(plaintext []byte) ([]byte, error) {
	if len(plaintext) > BlockSize {
		return nil, errors.Wrapf(ErrInvalidLength, "plaintext of %d bytes exceeds the block size", len(plaintext))
	}
	src, err := ZeroPad(plaintext, BlockSize*8)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, BlockSize)
	processBlock(c.roundKeys(), dst, src, false)
	return dst, nil
}

// DecryptBlock decrypts one block. The ciphertext must be exactly BlockSize
// bytes long; it is never padded.
func (c *Cipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != BlockSize {
		return nil, errors.Wrapf(ErrInvalidLength, "ciphertext must be %d bytes, got %d", BlockSize, len(ciphertext))
	}
	dst := make([]byte, BlockSize)
	processBlock(c.roundKeys(), dst, ciphertext, true)
	return dst, nil
}

// Encrypt encrypts the first block of src into dst, as cipher.Block does.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("sm4: input not full block")
	}
	if len(dst) < BlockSize {
		panic("sm4: output not full block")
	}
	processBlock(c.roundKeys(), dst, src, false)
}

// Decrypt decrypts the first block of src into dst, as cipher.Block does.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("sm4: input not full block")
	}
	if len(dst) < BlockSize {
		panic("sm4: output not full block")
	}
	processBlock(c.roundKeys(), dst, src, true)
}
