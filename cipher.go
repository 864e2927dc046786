// Package qryptic implements a PKCS#5 PBES2 style symmetric encryption facade.
// A Cipher pairs a block cipher algorithm with an operation mode, derives its key
// through a KeyMaker collaborator and keeps the initial vector and authentication
// material associated with the produced ciphertext.
package qryptic

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"

	"github.com/qryptic/qryptic/crypto/blockciphers"
	"github.com/qryptic/qryptic/crypto/ciphermodes"
)

// -----------------------------------------------------------------------------

// Algorithm identifies a block cipher algorithm.
type Algorithm int

const (
	AES Algorithm = iota
	Blowfish
	CAST128
	Camellia
	DESEDE3
	IDEA
	SEED
	Serpent
	Twofish
	UnknownAlgorithm
)

// Operation identifies a block cipher operation mode.
type Operation int

const (
	CBC Operation = iota
	CFB
	CTR
	EAX
	ECB
	GCM
	OFB
	UnknownOperation
)

// -----------------------------------------------------------------------------

// AlgorithmNames holds the canonical algorithm names, indexed by Algorithm.
var AlgorithmNames = []string{
	"AES",
	"Blowfish",
	"CAST-128",
	"Camellia",
	"DES-EDE3",
	"IDEA",
	"SEED",
	"Serpent",
	"Twofish",
}

// OperationCodes holds the canonical operation codes, indexed by Operation.
var OperationCodes = []string{
	"CBC",
	"CFB",
	"CTR",
	"EAX",
	"ECB",
	"GCM",
	"OFB",
}

// -----------------------------------------------------------------------------

// ResolveAlgorithm returns the algorithm matching the given name. The match is
// case-insensitive. UnknownAlgorithm is returned on no match.
func ResolveAlgorithm(name string) Algorithm {
	for idx := range AlgorithmNames {
		if strings.EqualFold(AlgorithmNames[idx], name) {
			return Algorithm(idx)
		}
	}
	return UnknownAlgorithm
}

// ResolveOperation returns the operation matching the given code. The match is
// case-insensitive. UnknownOperation is returned on no match.
func ResolveOperation(code string) Operation {
	for idx := range OperationCodes {
		if strings.EqualFold(OperationCodes[idx], code) {
			return Operation(idx)
		}
	}
	return UnknownOperation
}

// String returns the canonical algorithm name, or an empty string for
// UnknownAlgorithm.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(AlgorithmNames) {
		return ""
	}
	return AlgorithmNames[a]
}

// String returns the canonical operation code, or an empty string for
// UnknownOperation.
func (op Operation) String() string {
	if op < 0 || int(op) >= len(OperationCodes) {
		return ""
	}
	return OperationCodes[op]
}

// Authenticated returns true for modes that produce and verify their own
// authentication tag as part of the transform.
func (op Operation) Authenticated() bool {
	return op == EAX || op == GCM
}

// -----------------------------------------------------------------------------

// Cipher selects an algorithm and operation mode and holds the initial vector
// and authentication material of a single encryption or decryption. A Cipher
// instance must not be shared by concurrent operations.
type Cipher struct {
	algorithmName  string
	operationCode  string
	authentication []byte
	initialVector  []byte

	rg io.Reader
}

// -----------------------------------------------------------------------------

// New creates a cipher with the given algorithm and operation mode. Use
// New(qryptic.AES, qryptic.GCM) for the default authenticated setup.
func New(algorithm Algorithm, operation Operation) *Cipher {
	return NewWithRandom(algorithm, operation, nil)
}

// NewWithRandom creates a cipher that draws initial vectors from the given
// random generator reader. If rg is nil, crypto/rand.Reader is used.
func NewWithRandom(algorithm Algorithm, operation Operation, rg io.Reader) *Cipher {
	if rg == nil {
		rg = rand.Reader
	}
	c := Cipher{
		rg: rg,
	}
	c.SetAlgorithm(algorithm)
	c.SetOperation(operation)
	return &c
}

// -----------------------------------------------------------------------------

// Algorithm resolves the stored algorithm name against the registry.
func (c *Cipher) Algorithm() Algorithm {
	return ResolveAlgorithm(c.algorithmName)
}

// SetAlgorithm stores the canonical name of the given algorithm. The name is
// cleared when the value is out of range.
func (c *Cipher) SetAlgorithm(algorithm Algorithm) {
	c.algorithmName = algorithm.String()
}

// AlgorithmName returns the stored algorithm name as given.
func (c *Cipher) AlgorithmName() string {
	return c.algorithmName
}

// SetAlgorithmName stores the given name if the registry recognizes it, else
// the stored name is cleared.
func (c *Cipher) SetAlgorithmName(algorithmName string) {
	if ResolveAlgorithm(algorithmName) != UnknownAlgorithm {
		c.algorithmName = algorithmName
	} else {
		c.algorithmName = ""
	}
}

// Operation resolves the stored operation code against the registry.
func (c *Cipher) Operation() Operation {
	return ResolveOperation(c.operationCode)
}

// SetOperation stores the canonical code of the given operation. The code is
// cleared when the value is out of range.
func (c *Cipher) SetOperation(operation Operation) {
	c.operationCode = operation.String()
}

// OperationCode returns the stored operation code as given.
func (c *Cipher) OperationCode() string {
	return c.operationCode
}

// SetOperationCode stores the given code if the registry recognizes it, else
// the stored code is cleared.
func (c *Cipher) SetOperationCode(operationCode string) {
	if ResolveOperation(operationCode) != UnknownOperation {
		c.operationCode = operationCode
	} else {
		c.operationCode = ""
	}
}

// -----------------------------------------------------------------------------

// FullName returns the cipher identity in the form "AlgorithmName/OperationCode".
func (c *Cipher) FullName() string {
	return c.algorithmName + "/" + c.operationCode
}

// SetFullName parses a "AlgorithmName/OperationCode" string and applies both
// parts. A string that does not split into exactly two recognized parts leaves
// the cipher with no algorithm and no operation; there is no partial-success
// state.
func (c *Cipher) SetFullName(fullName string) {
	c.algorithmName = ""
	c.operationCode = ""

	parts := strings.Split(fullName, "/")
	if len(parts) != 2 {
		return
	}
	if ResolveAlgorithm(parts[0]) == UnknownAlgorithm || ResolveOperation(parts[1]) == UnknownOperation {
		return
	}
	c.algorithmName = parts[0]
	c.operationCode = parts[1]
}

// -----------------------------------------------------------------------------

// Authentication returns the stored authentication value: the tag produced by
// an authenticated operation during encryption, or an externally computed MAC
// for non-authenticated operations.
func (c *Cipher) Authentication() []byte {
	return c.authentication
}

// SetAuthentication stores the authentication value to use during decryption.
func (c *Cipher) SetAuthentication(authentication []byte) {
	c.authentication = authentication
}

// SetAuthenticationHex stores the hex decoded authentication value. Malformed
// hex yields an empty value.
func (c *Cipher) SetAuthenticationHex(authenticationHex string) {
	c.authentication = decodeHex(authenticationHex)
}

// AuthenticationHex returns the stored authentication value hex encoded.
func (c *Cipher) AuthenticationHex() string {
	return hex.EncodeToString(c.authentication)
}

// InitialVector returns the stored initial vector. It is auto-generated during
// encryption and must be carried over for decryption.
func (c *Cipher) InitialVector() []byte {
	return c.initialVector
}

// SetInitialVector stores the initial vector to use during decryption.
func (c *Cipher) SetInitialVector(initialVector []byte) {
	c.initialVector = initialVector
}

// SetInitialVectorHex stores the hex decoded initial vector. Malformed hex
// yields an empty value.
func (c *Cipher) SetInitialVectorHex(initialVectorHex string) {
	c.initialVector = decodeHex(initialVectorHex)
}

// InitialVectorHex returns the stored initial vector hex encoded.
func (c *Cipher) InitialVectorHex() string {
	return hex.EncodeToString(c.initialVector)
}

// -----------------------------------------------------------------------------

// ValidateKeyLength returns the nearest key length in bytes accepted by the
// selected algorithm: the requested length if accepted, otherwise the largest
// accepted length below it, or the smallest accepted length if the request is
// below the minimum. Zero is returned when no algorithm is selected.
func (c *Cipher) ValidateKeyLength(keyLength int) int {
	engine, ok := blockciphers.Lookup(c.algorithmName)
	if !ok {
		return 0
	}
	return engine.ValidKeySize(keyLength)
}

// -----------------------------------------------------------------------------

func (c *Cipher) resolveSuite() (blockciphers.Engine, ciphermodes.Mode, error) {
	engine, ok := blockciphers.Lookup(c.algorithmName)
	if !ok {
		return blockciphers.Engine{}, ciphermodes.Mode{}, ErrUnsupportedAlgorithm
	}
	mode, ok := ciphermodes.Lookup(c.operationCode)
	if !ok {
		return blockciphers.Engine{}, ciphermodes.Mode{}, ErrUnsupportedOperation
	}
	return engine, mode, nil
}

func decodeHex(s string) []byte {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return buf
}
