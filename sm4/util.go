/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm4

import (
	"math/bits"

	"github.com/pkg/errors"
)

// RotateLeft rotates w left by n bits. n is taken modulo 32, so a rotation
// by 0 or 32 returns w unchanged.
func RotateLeft(w uint32, n int) uint32 {
	return bits.RotateLeft32(w, n&31)
}

// ZeroPad left-pads data with zero bytes up to targetBits bits.
//
// If data already has the target length it is returned as is, without a copy.
// targetBits must be a positive multiple of 8 that is not shorter than data.
func ZeroPad(data []byte, targetBits int) ([]byte, error) {
	if targetBits <= 0 || targetBits%8 != 0 {
		return nil, errors.Wrapf(ErrInvalidLength, "padding target of %d bits is not a positive multiple of 8", targetBits)
	}
	size := targetBits / 8
	if len(data) == size {
		return data, nil
	}
	if len(data) > size {
		return nil, errors.Wrapf(ErrInvalidLength, "%d bytes do not fit in %d", len(data), size)
	}

	padded := make([]byte, size)
	copy(padded[size-len(data):], data)
	return padded, nil
}
