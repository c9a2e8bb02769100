package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Idle connections never exceed the open connection cap
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Transaction runs fn inside a database transaction
func (s *pgStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// LockRaffleType takes a transaction-scoped advisory lock keyed by raffle type.
// Outside a transaction the lock is released as soon as the statement completes.
func (s *pgStore) LockRaffleType(ctx context.Context, raffleType domain.RaffleType) error {
	if err := s.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "raffle-type:"+string(raffleType)).Error; err != nil {
		return fmt.Errorf("failed to lock raffle type %s: %w", raffleType, err)
	}
	return nil
}

// GetRaffleForUpdate retrieves a raffle with SELECT ... FOR UPDATE
func (s *pgStore) GetRaffleForUpdate(ctx context.Context, id string) (*schema.Raffle, error) {
	var raffle schema.Raffle
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&raffle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock raffle: %w", err)
	}
	return &raffle, nil
}

// GetRaffleByID retrieves a raffle by its ID
func (s *pgStore) GetRaffleByID(ctx context.Context, id string) (*schema.Raffle, error) {
	var raffle schema.Raffle
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&raffle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	return &raffle, nil
}

// GetRaffleByAddress retrieves a raffle by its contract address
func (s *pgStore) GetRaffleByAddress(ctx context.Context, address string) (*schema.Raffle, error) {
	var raffle schema.Raffle
	err := s.db.WithContext(ctx).Where("address = ?", domain.NormalizeAddress(address)).First(&raffle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get raffle by address: %w", err)
	}
	return &raffle, nil
}

// GetOpenRafflesByType retrieves the ACTIVE and PENDING raffles of a type
func (s *pgStore) GetOpenRafflesByType(ctx context.Context, raffleType domain.RaffleType) ([]*schema.Raffle, error) {
	var raffles []*schema.Raffle
	err := s.db.WithContext(ctx).
		Where("type = ? AND status IN ?", raffleType, []domain.RaffleStatus{domain.RaffleStatusActive, domain.RaffleStatusPending}).
		Order("start_time ASC").
		Find(&raffles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get open raffles: %w", err)
	}
	return raffles, nil
}

// GetRafflesByStatus retrieves raffles in any of the given statuses
func (s *pgStore) GetRafflesByStatus(ctx context.Context, statuses ...domain.RaffleStatus) ([]*schema.Raffle, error) {
	var raffles []*schema.Raffle
	if len(statuses) == 0 {
		return raffles, nil
	}

	err := s.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("start_time ASC").
		Find(&raffles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get raffles by status: %w", err)
	}
	return raffles, nil
}

// GetPredecessor retrieves the raffle linked to the given raffle as its successor
func (s *pgStore) GetPredecessor(ctx context.Context, raffleID string) (*schema.Raffle, error) {
	var raffle schema.Raffle
	err := s.db.WithContext(ctx).Where("next_raffle_id = ?", raffleID).First(&raffle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get predecessor: %w", err)
	}
	return &raffle, nil
}

// GetCurrentRaffles retrieves ACTIVE raffles ending after now and all PENDING raffles
func (s *pgStore) GetCurrentRaffles(ctx context.Context, now time.Time) ([]*schema.Raffle, error) {
	var raffles []*schema.Raffle
	err := s.db.WithContext(ctx).
		Where("(status = ? AND end_time > ?) OR status = ?", domain.RaffleStatusActive, now, domain.RaffleStatusPending).
		Order("start_time ASC").
		Find(&raffles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current raffles: %w", err)
	}
	return raffles, nil
}

// CreateRaffle inserts a new raffle
func (s *pgStore) CreateRaffle(ctx context.Context, raffle *schema.Raffle) error {
	raffle.Address = domain.NormalizeAddress(raffle.Address)
	if err := s.db.WithContext(ctx).Create(raffle).Error; err != nil {
		return fmt.Errorf("failed to create raffle: %w", err)
	}
	return nil
}

// UpdateRaffle persists every column of the raffle
func (s *pgStore) UpdateRaffle(ctx context.Context, raffle *schema.Raffle) error {
	if err := s.db.WithContext(ctx).Save(raffle).Error; err != nil {
		return fmt.Errorf("failed to update raffle: %w", err)
	}
	return nil
}

// SetNextRaffle writes next_raffle_id only and leaves the ticket counters untouched
func (s *pgStore) SetNextRaffle(ctx context.Context, raffleID, nextRaffleID string) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Raffle{}).
		Where("id = ?", raffleID).
		Updates(map[string]interface{}{
			"next_raffle_id": nextRaffleID,
			"updated_at":     gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to link successor raffle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: raffle %s", domain.ErrNotFound, raffleID)
	}
	return nil
}

// CreateTicketPurchase records a purchase and updates the raffle counters when the row is new
func (s *pgStore) CreateTicketPurchase(ctx context.Context, input CreateTicketPurchaseInput) (bool, error) {
	created := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		buyer, err := upsertUser(tx, input.BuyerAddress)
		if err != nil {
			return err
		}

		ticket := schema.Ticket{
			RaffleID:        input.RaffleID,
			BuyerID:         buyer.ID,
			Amount:          input.Amount,
			Count:           input.Count,
			BlockNumber:     input.BlockNumber,
			TransactionHash: input.TransactionHash,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "raffle_id"}, {Name: "transaction_hash"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&ticket).Error; err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}

		// Duplicate delivery of the same purchase
		if ticket.ID == 0 {
			return nil
		}
		created = true

		// The ticket count is frozen once the commitment snapshot was taken
		if err := tx.Model(&schema.Raffle{}).
			Where("id = ?", input.RaffleID).
			Updates(map[string]interface{}{
				"total_tickets":      gorm.Expr("CASE WHEN committed_at IS NULL THEN total_tickets + ? ELSE total_tickets END", input.Count),
				"current_prize_pool": gorm.Expr("current_prize_pool + CAST(? AS numeric)", input.Amount),
				"total_participants": gorm.Expr("(SELECT COUNT(DISTINCT buyer_id) FROM tickets WHERE raffle_id = ?)", input.RaffleID),
				"updated_at":         gorm.Expr("now()"),
			}).Error; err != nil {
			return fmt.Errorf("failed to update raffle counters: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// GetTicketsByRaffleID retrieves a raffle's tickets in on-chain order
func (s *pgStore) GetTicketsByRaffleID(ctx context.Context, raffleID string) ([]*schema.Ticket, error) {
	var tickets []*schema.Ticket
	err := s.db.WithContext(ctx).
		Preload("Buyer").
		Where("raffle_id = ?", raffleID).
		Order("block_number ASC, id ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	return tickets, nil
}

// CreatePrizes records prizes idempotently on (raffle, winner)
func (s *pgStore) CreatePrizes(ctx context.Context, raffleID string, prizes []CreatePrizeInput) error {
	if len(prizes) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range prizes {
			winner, err := upsertUser(tx, p.WinnerAddress)
			if err != nil {
				return err
			}

			prize := schema.Prize{
				RaffleID: raffleID,
				UserID:   winner.ID,
				Amount:   p.Amount,
				Rank:     p.Rank,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "raffle_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Clauses(clause.Returning{Columns: []clause.Column{}}).
				Create(&prize).Error; err != nil {
				return fmt.Errorf("failed to create prize: %w", err)
			}
		}
		return nil
	})
}

// GetPrizesByRaffleID retrieves a raffle's prizes by rank
func (s *pgStore) GetPrizesByRaffleID(ctx context.Context, raffleID string) ([]*schema.Prize, error) {
	var prizes []*schema.Prize
	err := s.db.WithContext(ctx).
		Preload("Winner").
		Where("raffle_id = ?", raffleID).
		Order("rank ASC, id ASC").
		Find(&prizes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prizes: %w", err)
	}
	return prizes, nil
}

// upsertUser returns the user for an address, creating it lazily
func upsertUser(tx *gorm.DB, address string) (*schema.User, error) {
	user := schema.User{Address: domain.NormalizeAddress(address)}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if user.ID == 0 {
		if err := tx.Where("address = ?", user.Address).First(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to get existing user: %w", err)
		}
	}

	return &user, nil
}
