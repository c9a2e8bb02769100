package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/store/schema"
)

// CreateTicketPurchaseInput represents the data needed to record a ticket purchase
type CreateTicketPurchaseInput struct {
	RaffleID        string
	BuyerAddress    string
	Amount          string
	Count           int64
	BlockNumber     uint64
	TransactionHash string
}

// CreatePrizeInput represents a single prize awarded to a winner
type CreatePrizeInput struct {
	WinnerAddress string
	Amount        string
	Rank          int
}

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations
//
// Getters return (nil, nil) when the record does not exist.
type Store interface {
	// Transaction runs fn inside a database transaction. The Store passed to fn is bound to it.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	// LockRaffleType takes the per-type advisory lock until the surrounding transaction ends
	LockRaffleType(ctx context.Context, raffleType domain.RaffleType) error
	// GetRaffleForUpdate retrieves a raffle and holds a row lock until the surrounding transaction ends
	GetRaffleForUpdate(ctx context.Context, id string) (*schema.Raffle, error)

	// GetRaffleByID retrieves a raffle by its ID
	GetRaffleByID(ctx context.Context, id string) (*schema.Raffle, error)
	// GetRaffleByAddress retrieves a raffle by its contract address
	GetRaffleByAddress(ctx context.Context, address string) (*schema.Raffle, error)
	// GetOpenRafflesByType retrieves the ACTIVE and PENDING raffles of a type ordered by start time
	GetOpenRafflesByType(ctx context.Context, raffleType domain.RaffleType) ([]*schema.Raffle, error)
	// GetRafflesByStatus retrieves raffles in any of the given statuses ordered by start time
	GetRafflesByStatus(ctx context.Context, statuses ...domain.RaffleStatus) ([]*schema.Raffle, error)
	// GetPredecessor retrieves the raffle whose successor is the given raffle
	GetPredecessor(ctx context.Context, raffleID string) (*schema.Raffle, error)
	// GetCurrentRaffles retrieves ACTIVE raffles ending after now and all PENDING raffles
	GetCurrentRaffles(ctx context.Context, now time.Time) ([]*schema.Raffle, error)
	// CreateRaffle inserts a new raffle
	CreateRaffle(ctx context.Context, raffle *schema.Raffle) error
	// UpdateRaffle persists every column of the raffle. Callers hold the row lock.
	UpdateRaffle(ctx context.Context, raffle *schema.Raffle) error
	// SetNextRaffle links a raffle to its successor without writing any other column
	SetNextRaffle(ctx context.Context, raffleID, nextRaffleID string) error

	// CreateTicketPurchase records a purchase idempotently on (raffle, transaction hash).
	// It reports whether a new ticket row was inserted.
	CreateTicketPurchase(ctx context.Context, input CreateTicketPurchaseInput) (bool, error)
	// GetTicketsByRaffleID retrieves a raffle's tickets in on-chain order
	GetTicketsByRaffleID(ctx context.Context, raffleID string) ([]*schema.Ticket, error)

	// CreatePrizes records prizes idempotently on (raffle, winner)
	CreatePrizes(ctx context.Context, raffleID string, prizes []CreatePrizeInput) error
	// GetPrizesByRaffleID retrieves a raffle's prizes by rank
	GetPrizesByRaffleID(ctx context.Context, raffleID string) ([]*schema.Prize, error)
}
