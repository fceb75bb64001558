package gosm4

import "crypto/cipher"

type BlockEncrypter interface {
	EncryptBlock(key, block []byte) ([]byte, error)
}

type BlockDecrypter interface {
	DecryptBlock(key, block []byte) ([]byte, error)
}

type BlockCrypter interface {
	BlockEncrypter
	BlockDecrypter
	BlockSize() int
}

// HexCrypter works on hex encoded keys and blocks, the form used by the
// command line and the job queue.
type HexCrypter interface {
	EncryptHex(key, block string) (string, error)
	DecryptHex(key, block string) (string, error)
}

// BlockFactory hands out key bound ciphers for use with crypto/cipher.
type BlockFactory interface {
	NewSm4Cipher(key []byte) (cipher.Block, error)
}

type CipherProvider interface {
	BlockCrypter
	HexCrypter
	BlockFactory
	RoundKeys(key []byte) ([]uint32, error)
}
