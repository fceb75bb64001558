/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sm4

import "encoding/binary"

// linearEncryption is the L transform applied in every cipher round.
func linearEncryption(w uint32) uint32 {
	return w ^ RotateLeft(w, 2) ^ RotateLeft(w, 10) ^ RotateLeft(w, 18) ^ RotateLeft(w, 24)
}

// roundStep is the round function F: it mixes the three newest words with
// the round key and folds the result into the oldest word x0.
func roundStep(x0, x1, x2, x3, rk uint32) uint32 {
	return x0 ^ linearEncryption(substituteWord(x1^x2^x3^rk))
}

// processBlock runs the 32 rounds over src and writes the reversed final
// state to dst. With reverse set the round keys are consumed from rk[31]
// down to rk[0], which turns encryption into decryption.
func processBlock(rk *[Rounds]uint32, dst, src []byte, reverse bool) {
	var x [Rounds + 4]uint32
	x[0] = binary.BigEndian.Uint32(src[0:4])
	x[1] = binary.BigEndian.Uint32(src[4:8])
	x[2] = binary.BigEndian.Uint32(src[8:12])
	x[3] = binary.BigEndian.Uint32(src[12:16])

	for i := 0; i < Rounds; i++ {
		k := rk[i]
		if reverse {
			k = rk[Rounds-1-i]
		}
		x[i+4] = roundStep(x[i], x[i+1], x[i+2], x[i+3], k)
	}

	binary.BigEndian.PutUint32(dst[0:4], x[Rounds+3])
	binary.BigEndian.PutUint32(dst[4:8], x[Rounds+2])
	binary.BigEndian.PutUint32(dst[8:12], x[Rounds+1])
	binary.BigEndian.PutUint32(dst[12:16], x[Rounds])
}
