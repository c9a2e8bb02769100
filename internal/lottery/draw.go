package lottery

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrNoTickets is returned when a draw is requested for a raffle without tickets
	ErrNoTickets = errors.New("no tickets to draw from")

	// ErrInvalidWinnerCount is returned when the requested winner count is not positive
	ErrInvalidWinnerCount = errors.New("invalid winner count")

	// ErrDerivationExhausted is returned when not enough distinct owners were found within the step budget
	ErrDerivationExhausted = errors.New("winner derivation exhausted its step budget")

	// ErrIndexOutOfRange is returned by owner tables for an index beyond the ticket count
	ErrIndexOutOfRange = errors.New("ticket index out of range")
)

//go:generate mockgen -source=draw.go -destination=../mocks/owner_lookup.go -package=mocks -mock_names=OwnerLookup=MockOwnerLookup

// OwnerLookup resolves the owner of a ticket index
type OwnerLookup interface {
	// OwnerOf returns the owner of the ticket at the given zero-based index
	OwnerOf(ctx context.Context, index uint64) (common.Address, error)
}

// Draw is the result of a winner derivation
type Draw struct {
	// Winners are the distinct winners in selection order
	Winners []common.Address
	// Indices are every visited ticket index, duplicates included
	Indices []uint64
}

// StepBudget returns the maximum number of owner lookups allowed when deriving n winners
func StepBudget(n int) int {
	return n*64 + 1024
}

// DeriveWinners walks the hash chain seeded by randomValue and collects n distinct ticket owners.
//
//	index_i     = seed_i mod totalTickets
//	seed_0      = randomValue
//	seed_{i+1}  = keccak256(seed_i ‖ owner(index_i))
//
// Duplicated owners are skipped without counting. The result is a pure function of the inputs.
// n must not exceed the number of distinct owners; otherwise ErrDerivationExhausted is
// returned once the step budget is spent.
func DeriveWinners(ctx context.Context, randomValue common.Hash, totalTickets uint64, n int, owners OwnerLookup) (*Draw, error) {
	if totalTickets == 0 {
		return nil, ErrNoTickets
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWinnerCount, n)
	}

	total := new(big.Int).SetUint64(totalTickets)
	current := randomValue
	seen := make(map[common.Address]struct{}, n)
	draw := &Draw{Winners: make([]common.Address, 0, n)}

	budget := StepBudget(n)
	for step := 0; len(draw.Winners) < n; step++ {
		if step >= budget {
			return nil, fmt.Errorf("%w: found %d of %d winners after %d steps",
				ErrDerivationExhausted, len(draw.Winners), n, step)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		index := new(big.Int).Mod(new(big.Int).SetBytes(current.Bytes()), total).Uint64()
		owner, err := owners.OwnerOf(ctx, index)
		if err != nil {
			return nil, fmt.Errorf("failed to look up owner of ticket %d: %w", index, err)
		}

		draw.Indices = append(draw.Indices, index)
		if _, ok := seen[owner]; !ok {
			seen[owner] = struct{}{}
			draw.Winners = append(draw.Winners, owner)
		}

		current = crypto.Keccak256Hash(current.Bytes(), owner.Bytes())
	}

	return draw, nil
}

// OwnerTable is an in-memory owner lookup where position i owns ticket i
type OwnerTable []common.Address

// OwnerOf implements OwnerLookup
func (t OwnerTable) OwnerOf(_ context.Context, index uint64) (common.Address, error) {
	if index >= uint64(len(t)) {
		return common.Address{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return t[index], nil
}

// Purchase is one ticket purchase in ledger order
type Purchase struct {
	Buyer common.Address
	Count uint64
}

// TicketLedger maps ticket indices to owners from purchases recorded off-chain.
// Purchases occupy consecutive index ranges in the order given.
type TicketLedger struct {
	buyers []common.Address
	ends   []uint64 // exclusive cumulative end index of each purchase
	unique int
}

// NewTicketLedger builds a ledger from purchases in on-chain order
func NewTicketLedger(purchases []Purchase) *TicketLedger {
	l := &TicketLedger{}
	seen := make(map[common.Address]struct{})

	var end uint64
	for _, p := range purchases {
		if p.Count == 0 {
			continue
		}
		end += p.Count
		l.buyers = append(l.buyers, p.Buyer)
		l.ends = append(l.ends, end)
		seen[p.Buyer] = struct{}{}
	}
	l.unique = len(seen)

	return l
}

// Total returns the number of tickets in the ledger
func (l *TicketLedger) Total() uint64 {
	if len(l.ends) == 0 {
		return 0
	}
	return l.ends[len(l.ends)-1]
}

// Participants returns the number of distinct buyers
func (l *TicketLedger) Participants() int {
	return l.unique
}

// OwnerOf implements OwnerLookup
func (l *TicketLedger) OwnerOf(_ context.Context, index uint64) (common.Address, error) {
	if index >= l.Total() {
		return common.Address{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	i := sort.Search(len(l.ends), func(i int) bool { return l.ends[i] > index })
	return l.buyers[i], nil
}

// Memoize caches lookups of the wrapped owner lookup. Safe for concurrent use.
func Memoize(lookup OwnerLookup) OwnerLookup {
	return &memoLookup{next: lookup, cache: make(map[uint64]common.Address)}
}

type memoLookup struct {
	next  OwnerLookup
	mu    sync.Mutex
	cache map[uint64]common.Address
}

func (m *memoLookup) OwnerOf(ctx context.Context, index uint64) (common.Address, error) {
	m.mu.Lock()
	owner, ok := m.cache[index]
	m.mu.Unlock()
	if ok {
		return owner, nil
	}

	owner, err := m.next.OwnerOf(ctx, index)
	if err != nil {
		return common.Address{}, err
	}

	m.mu.Lock()
	m.cache[index] = owner
	m.mu.Unlock()
	return owner, nil
}
