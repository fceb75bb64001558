package gosm4

import (
	"fmt"
)

// DemoKey is the key, and the plaintext, of the first example in GB/T 32907-2016.
const DemoKey = "0123456789abcdeffedcba9876543210"

// Demo encrypts DemoKey under itself and returns the hex ciphertext.
func Demo() (string, error) {
	return GetCipherService().EncryptHex(DemoKey, DemoKey)
}

func FormatRoundKeys(rk []uint32) []string {
	lines := make([]string, len(rk))
	for i, k := range rk {
		lines[i] = fmt.Sprintf("rk[%02d] = %08x", i, k)
	}
	return lines
}
