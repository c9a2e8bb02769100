package lottery

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Verification is the outcome of re-deriving a completed draw
type Verification struct {
	CommitmentValid bool
	WinnersMatch    bool
	Derived         []common.Address
}

// Verify checks the revealed secrets against the commitment and re-derives the winners
// from the given ownership table, comparing them with the recorded winners in order.
func Verify(
	ctx context.Context,
	randomValue, seed, commitHash common.Hash,
	totalTickets uint64,
	n int,
	owners OwnerLookup,
	recorded []common.Address,
) (*Verification, error) {
	v := &Verification{CommitmentValid: VerifyCommitment(randomValue, seed, commitHash)}

	draw, err := DeriveWinners(ctx, randomValue, totalTickets, n, owners)
	if err != nil {
		return nil, err
	}
	v.Derived = draw.Winners

	if len(draw.Winners) != len(recorded) {
		return v, nil
	}
	for i := range recorded {
		if recorded[i] != draw.Winners[i] {
			return v, nil
		}
	}
	v.WinnersMatch = true

	return v, nil
}
