/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm4

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSBoxIsPermutation(t *testing.T) {
	var seen [256]bool
	for i := 0; i < 256; i++ {
		v := substituteByte(byte(i))
		assert.False(t, seen[v], "value %#02x appears twice", v)
		seen[v] = true
	}
}

func TestSubstituteByte_RowColumn(t *testing.T) {
	// row 0xe, column 0xf
	assert.Equal(t, byte(0x84), substituteByte(0xef))
	assert.Equal(t, byte(0xd6), substituteByte(0x00))
	assert.Equal(t, byte(0x48), substituteByte(0xff))
}

func TestSubstituteWord_KeepsByteOrder(t *testing.T) {
	w := substituteWord(0x00ef01ff)
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], w)
	assert.Equal(t, [4]byte{sBox[0x00], sBox[0xef], sBox[0x01], sBox[0xff]}, b)
}

func TestLinearTransformsDiffer(t *testing.T) {
	assert.Equal(t, uint32(1)^1<<13^1<<23, linearKeyExpansion(1))
	assert.Equal(t, uint32(1)^1<<2^1<<10^1<<18^1<<24, linearEncryption(1))
	assert.NotEqual(t, linearKeyExpansion(0xdeadbeef), linearEncryption(0xdeadbeef))
}

func TestExpandKey_PublishedRoundKeys(t *testing.T) {
	rk := expandKey(mustHex(t, testKey))
	assert.Equal(t, uint32(0xf12186f9), rk[0])
	assert.Equal(t, uint32(0x9124a012), rk[Rounds-1])
	assert.Equal(t, rk, expandKey(mustHex(t, testKey)))
}

func TestProcessBlock_RoundKeyOrder(t *testing.T) {
	key := mustHex(t, testKey)
	rk := expandKey(key)

	ct := make([]byte, BlockSize)
	processBlock(&rk, ct, key, false)
	assert.Equal(t, testCiphertext, hex.EncodeToString(ct))

	pt := make([]byte, BlockSize)
	processBlock(&rk, pt, ct, true)
	assert.Equal(t, key, pt)

	// feeding the keys forward again must not undo the encryption
	wrong := make([]byte, BlockSize)
	processBlock(&rk, wrong, ct, false)
	assert.NotEqual(t, key, wrong)

	var reversed [Rounds]uint32
	for i := range rk {
		reversed[i] = rk[Rounds-1-i]
	}
	viaReversed := make([]byte, BlockSize)
	processBlock(&reversed, viaReversed, ct, false)
	assert.Equal(t, key, viaReversed)
}

func TestProcessBlock_InPlace(t *testing.T) {
	key := mustHex(t, testKey)
	rk := expandKey(key)
	buf := append([]byte(nil), key...)
	processBlock(&rk, buf, buf, false)
	require.Equal(t, testCiphertext, hex.EncodeToString(buf))
}
