package ciphermodes

import (
	"errors"
)

// -----------------------------------------------------------------------------

var errInvalidPadding = errors.New("invalid padding")

// -----------------------------------------------------------------------------

// pkcs7Pad extends the data to a whole number of blocks. A full padding block is
// added when the data is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for idx := len(data); idx < len(padded); idx++ {
		padded[idx] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad removes the padding added by pkcs7Pad.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errInvalidPadding
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errInvalidPadding
	}
	for idx := len(data) - padLen; idx < len(data); idx++ {
		if data[idx] != byte(padLen) {
			return nil, errInvalidPadding
		}
	}
	return data[:len(data)-padLen], nil
}
