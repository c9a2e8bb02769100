package lottery

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ownerTable returns n distinct addresses 0x..01, 0x..02, ...
func ownerTable(n int) OwnerTable {
	table := make(OwnerTable, n)
	for i := range table {
		table[i] = common.HexToAddress(fmt.Sprintf("0x%040x", i+1))
	}
	return table
}

type countingLookup struct {
	table OwnerTable
	calls int
}

func (c *countingLookup) OwnerOf(ctx context.Context, index uint64) (common.Address, error) {
	c.calls++
	return c.table.OwnerOf(ctx, index)
}

type failingLookup struct{}

func (failingLookup) OwnerOf(context.Context, uint64) (common.Address, error) {
	return common.Address{}, errors.New("rpc unavailable")
}

func TestNewCommitment(t *testing.T) {
	src := bytes.NewReader(append(bytes.Repeat([]byte{0x01}, 32), bytes.Repeat([]byte{0x02}, 32)...))

	c, err := NewCommitment(src)
	require.NoError(t, err)

	assert.Equal(t, common.BytesToHash(bytes.Repeat([]byte{0x01}, 32)), c.RandomValue)
	assert.Equal(t, common.BytesToHash(bytes.Repeat([]byte{0x02}, 32)), c.Seed)

	packed := append(c.RandomValue.Bytes(), c.Seed.Bytes()...)
	assert.Equal(t, common.BytesToHash(crypto.Keccak256(packed)), c.Hash)
	assert.True(t, VerifyCommitment(c.RandomValue, c.Seed, c.Hash))
	assert.False(t, VerifyCommitment(c.Seed, c.RandomValue, c.Hash))
}

func TestNewCommitment_ShortEntropy(t *testing.T) {
	_, err := NewCommitment(bytes.NewReader(make([]byte, 40)))
	assert.Error(t, err)
}

func TestNewCommitment_Independent(t *testing.T) {
	a, err := NewCommitment(rand.Reader)
	require.NoError(t, err)
	b, err := NewCommitment(rand.Reader)
	require.NoError(t, err)

	assert.NotEqual(t, a.RandomValue, a.Seed)
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestSignCommitment(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	hash := CommitHash(common.HexToHash("0x01"), common.HexToHash("0x02"))
	sig, err := SignCommitment(hash, key)
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[crypto.RecoveryIDOffset])

	signer, err := RecoverSigner(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), signer)

	_, err = RecoverSigner(hash, sig[:10])
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestEligibleAt(t *testing.T) {
	committed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, committed.Add(5*time.Minute), EligibleAt(committed, 5*time.Minute))
}

func TestDeriveWinners_SevenTicketsThreeWinners(t *testing.T) {
	owners := ownerTable(7)
	randomValue := common.HexToHash("0x01")

	draw, err := DeriveWinners(context.Background(), randomValue, 7, 3, owners)
	require.NoError(t, err)
	require.Len(t, draw.Winners, 3)

	// 1 mod 7 selects ticket 1 first
	assert.Equal(t, uint64(1), draw.Indices[0])
	assert.Equal(t, owners[1], draw.Winners[0])

	distinct := map[common.Address]bool{}
	for _, w := range draw.Winners {
		assert.Contains(t, []common.Address(owners), w)
		distinct[w] = true
	}
	assert.Len(t, distinct, 3)

	again, err := DeriveWinners(context.Background(), randomValue, 7, 3, owners)
	require.NoError(t, err)
	assert.Equal(t, draw, again)
}

func TestDeriveWinners_FollowsHashChain(t *testing.T) {
	owners := ownerTable(5)
	randomValue := common.HexToHash("0x0badc0ffee")

	draw, err := DeriveWinners(context.Background(), randomValue, 5, 2, owners)
	require.NoError(t, err)

	current := randomValue
	for i, index := range draw.Indices {
		expected := new(big.Int).Mod(current.Big(), big.NewInt(5)).Uint64()
		assert.Equal(t, expected, index, "step %d", i)
		current = crypto.Keccak256Hash(current.Bytes(), owners[index].Bytes())
	}
}

func TestDeriveWinners_SkipsDuplicateOwners(t *testing.T) {
	a := common.HexToAddress("0xaa")
	b := common.HexToAddress("0xbb")
	// a owns 9 of 10 tickets, so most steps hit a duplicate
	owners := OwnerTable{a, a, a, a, a, a, a, a, a, b}

	draw, err := DeriveWinners(context.Background(), common.HexToHash("0x07"), 10, 2, owners)
	require.NoError(t, err)
	assert.ElementsMatch(t, []common.Address{a, b}, draw.Winners)
	assert.GreaterOrEqual(t, len(draw.Indices), 2)
}

func TestDeriveWinners_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := DeriveWinners(ctx, common.HexToHash("0x01"), 0, 3, ownerTable(1))
	assert.ErrorIs(t, err, ErrNoTickets)

	_, err = DeriveWinners(ctx, common.HexToHash("0x01"), 3, 0, ownerTable(3))
	assert.ErrorIs(t, err, ErrInvalidWinnerCount)

	lookup := &countingLookup{table: ownerTable(2)}
	_, err = DeriveWinners(ctx, common.HexToHash("0x01"), 2, 3, lookup)
	assert.ErrorIs(t, err, ErrDerivationExhausted)
	assert.Equal(t, StepBudget(3), lookup.calls)

	_, err = DeriveWinners(ctx, common.HexToHash("0x01"), 3, 1, failingLookup{})
	assert.ErrorContains(t, err, "rpc unavailable")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = DeriveWinners(cancelled, common.HexToHash("0x01"), 3, 1, ownerTable(3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTicketLedger(t *testing.T) {
	a := common.HexToAddress("0xaa")
	b := common.HexToAddress("0xbb")
	ledger := NewTicketLedger([]Purchase{
		{Buyer: a, Count: 2},
		{Buyer: b, Count: 0},
		{Buyer: b, Count: 3},
		{Buyer: a, Count: 1},
	})

	assert.Equal(t, uint64(6), ledger.Total())
	assert.Equal(t, 2, ledger.Participants())

	expected := []common.Address{a, a, b, b, b, a}
	for i, want := range expected {
		got, err := ledger.OwnerOf(context.Background(), uint64(i))
		require.NoError(t, err)
		assert.Equal(t, want, got, "index %d", i)
	}

	_, err := ledger.OwnerOf(context.Background(), 6)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, uint64(0), NewTicketLedger(nil).Total())
}

func TestMemoize(t *testing.T) {
	lookup := &countingLookup{table: ownerTable(3)}
	memo := Memoize(lookup)

	for range 3 {
		owner, err := memo.OwnerOf(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, lookup.table[2], owner)
	}
	assert.Equal(t, 1, lookup.calls)
}

func TestVerify(t *testing.T) {
	owners := ownerTable(7)
	randomValue := common.HexToHash("0x01")
	seed := common.HexToHash("0x02")
	hash := CommitHash(randomValue, seed)

	draw, err := DeriveWinners(context.Background(), randomValue, 7, 3, owners)
	require.NoError(t, err)

	v, err := Verify(context.Background(), randomValue, seed, hash, 7, 3, owners, draw.Winners)
	require.NoError(t, err)
	assert.True(t, v.CommitmentValid)
	assert.True(t, v.WinnersMatch)

	swapped := []common.Address{draw.Winners[1], draw.Winners[0], draw.Winners[2]}
	v, err = Verify(context.Background(), randomValue, seed, common.Hash{}, 7, 3, owners, swapped)
	require.NoError(t, err)
	assert.False(t, v.CommitmentValid)
	assert.False(t, v.WinnersMatch)
	assert.Equal(t, draw.Winners, v.Derived)
}
