package ethereum

import (
	"encoding/hex"
	"math/big"

	"golang.org/x/crypto/sha3"
)

const (
	// payInstallmentSignature is the canonical signature of the contract
	// method that accepts an installment payment; the paid amount rides along
	// as the transaction value.
	payInstallmentSignature = "payInstallment()"

	// installmentAmountSignature is the canonical signature of the contract
	// method that returns the fixed installment amount in wei.
	installmentAmountSignature = "getInstallmentAmount()"

	// cancelTransactionSignature is the canonical signature of the contract
	// method that cancels a pending transaction by its unique code.
	cancelTransactionSignature = "cancelTransaction(string)"
)

// methodSelector returns the 4-byte selector for a canonical method
// signature, computed as the first four bytes of its Keccak-256 hash.
func methodSelector(signature string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))

	return h.Sum(nil)[:4]
}

// encodeCall returns the hex-encoded calldata for a method that takes no
// arguments.
func encodeCall(signature string) string {
	return "0x" + hex.EncodeToString(methodSelector(signature))
}

// encodeStringCall returns the hex-encoded calldata for a method that takes a
// single string argument. The argument is ABI-encoded as a dynamic type: a
// 32-byte offset to the data area, followed by the 32-byte length and the
// UTF-8 bytes right-padded to a 32-byte boundary.
func encodeStringCall(signature, arg string) string {
	offset := make([]byte, 32)
	big.NewInt(32).FillBytes(offset)

	length := make([]byte, 32)
	big.NewInt(int64(len(arg))).FillBytes(length)

	padded := len(arg)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}
	data := make([]byte, padded)
	copy(data, arg)

	calldata := methodSelector(signature)
	calldata = append(calldata, offset...)
	calldata = append(calldata, length...)
	calldata = append(calldata, data...)

	return "0x" + hex.EncodeToString(calldata)
}
