package schema

import "time"

// Ticket represents the tickets table - one row per on-chain purchase, immutable once created
type Ticket struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	RaffleID string `gorm:"column:raffle_id;not null;type:uuid;uniqueIndex:idx_tickets_raffle_tx,priority:1"`
	BuyerID  uint64 `gorm:"column:buyer_id;not null;index"`
	// Amount is the total cost of the purchase
	Amount      string `gorm:"column:amount;not null;type:numeric(78,0)"`
	Count       int64  `gorm:"column:count;not null"`
	BlockNumber uint64 `gorm:"column:block_number;not null;default:0"`
	// TransactionHash is the idempotency key of a purchase within a raffle
	TransactionHash string    `gorm:"column:transaction_hash;not null;type:varchar(66);uniqueIndex:idx_tickets_raffle_tx,priority:2"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`

	Buyer User `gorm:"foreignKey:BuyerID"`
}

// TableName specifies the table name for the Ticket model
func (Ticket) TableName() string {
	return "tickets"
}
