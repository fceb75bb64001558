/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm4

import "encoding/binary"

// fK holds the system parameters FK0..FK3.
var fK = [4]uint32{
	0xa3b1bac6, 0x56aa3350, 0x677d9197, 0xb27022dc,
}

// cK holds the fixed parameters CK0..CK31, one per key expansion round.
var cK = [Rounds]uint32{
	0x00070e15, 0x1c232a31, 0x383f464d, 0x545b6269,
	0x70777e85, 0x8c939aa1, 0xa8afb6bd, 0xc4cbd2d9,
	0xe0e7eef5, 0xfc030a11, 0x181f262d, 0x343b4249,
	0x50575e65, 0x6c737a81, 0x888f969d, 0xa4abb2b9,
	0xc0c7ced5, 0xdce3eaf1, 0xf8ff060d, 0x141b2229,
	0x30373e45, 0x4c535a61, 0x686f767d, 0x848b9299,
	0xa0a7aeb5, 0xbcc3cad1, 0xd8dfe6ed, 0xf4fb0209,
	0x10171e25, 0x2c333a41, 0x484f565d, 0x646b7279,
}

// linearKeyExpansion is the L' transform, only used while expanding the key.
func linearKeyExpansion(w uint32) uint32 {
	return w ^ RotateLeft(w, 13) ^ RotateLeft(w, 23)
}

// expandKey derives the round keys rk[0..31] from a 16-byte key, in the
// order encryption consumes them.
func expandKey(key []byte) [Rounds]uint32 {
	var k [Rounds + 4]uint32
	for i := 0; i < 4; i++ {
		k[i] = binary.BigEndian.Uint32(key[4*i:]) ^ fK[i]
	}

	var rk [Rounds]uint32
	for i := 0; i < Rounds; i++ {
		t := substituteWord(k[i+1] ^ k[i+2] ^ k[i+3] ^ cK[i])
		rk[i] = k[i] ^ linearKeyExpansion(t)
		k[i+4] = rk[i]
	}
	return rk
}
