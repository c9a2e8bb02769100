package lottery

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidSignature is returned when a commitment signature cannot be recovered
var ErrInvalidSignature = errors.New("invalid commitment signature")

// Commitment holds the commit-reveal secrets and the hash submitted on-chain
type Commitment struct {
	RandomValue common.Hash
	Seed        common.Hash
	Hash        common.Hash
}

// NewCommitment draws two independent 32-byte secrets from r and computes their commit hash.
// Callers pass crypto/rand.Reader outside tests.
func NewCommitment(r io.Reader) (*Commitment, error) {
	var randomValue, seed common.Hash
	if _, err := io.ReadFull(r, randomValue[:]); err != nil {
		return nil, fmt.Errorf("failed to generate random value: %w", err)
	}
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}

	return &Commitment{
		RandomValue: randomValue,
		Seed:        seed,
		Hash:        CommitHash(randomValue, seed),
	}, nil
}

// CommitHash returns keccak256(randomValue ‖ seed), matching
// keccak256(abi.encodePacked(bytes32, bytes32)) in Solidity.
func CommitHash(randomValue, seed common.Hash) common.Hash {
	return crypto.Keccak256Hash(randomValue.Bytes(), seed.Bytes())
}

// VerifyCommitment checks that the revealed secrets match the committed hash
func VerifyCommitment(randomValue, seed, hash common.Hash) bool {
	return CommitHash(randomValue, seed) == hash
}

// SignCommitment produces an EIP-191 personal-sign signature over the 32 hash bytes.
// The recovery id is shifted to 27/28 as expected by ECDSA.recover on-chain.
func SignCommitment(hash common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(hash.Bytes()), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign commitment: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverSigner returns the address that produced a SignCommitment signature
func RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}

	s := make([]byte, len(sig))
	copy(s, sig)
	if s[crypto.RecoveryIDOffset] >= 27 {
		s[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(hash.Bytes()), s)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// EligibleAt returns the earliest time a reveal may happen for a commitment made at committedAt
func EligibleAt(committedAt time.Time, delay time.Duration) time.Time {
	return committedAt.Add(delay)
}
