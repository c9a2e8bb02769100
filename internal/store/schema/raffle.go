package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-raffle/internal/domain"
)

// Raffle represents the raffles table - one row per deployed raffle contract
type Raffle struct {
	// ID is the raffle identifier (uuid generated before insert so job keys exist before commit)
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// Type is the raffle cadence (DAILY, WEEKLY, MONTHLY)
	Type domain.RaffleType `gorm:"column:type;not null;type:varchar(16);index:idx_raffles_type_status,priority:1"`
	// Address is the lower-cased contract address
	Address string `gorm:"column:address;not null;uniqueIndex;type:varchar(42)"`
	// Status is the lifecycle status
	Status domain.RaffleStatus `gorm:"column:status;not null;type:varchar(16);index:idx_raffles_type_status,priority:2"`
	// TokenAddress is the payment token, confirmed from the raffle_created event
	TokenAddress *string `gorm:"column:token_address;type:varchar(42)"`
	StartTime    time.Time `gorm:"column:start_time;not null"`
	EndTime      time.Time `gorm:"column:end_time;not null"`
	// Amounts are base-10 integers stored as numeric(78,0)
	TicketPrice         string `gorm:"column:ticket_price;not null;type:numeric(78,0)"`
	GuaranteedPrizePool string `gorm:"column:guaranteed_prize_pool;not null;type:numeric(78,0)"`
	CurrentPrizePool    string `gorm:"column:current_prize_pool;not null;type:numeric(78,0);default:0"`
	// NextRaffleID links to the successor raffle of the same type
	NextRaffleID   *string `gorm:"column:next_raffle_id;type:uuid"`
	IsDrawComplete bool    `gorm:"column:is_draw_complete;not null;default:false"`
	// Winners is {"addresses": [...], "prizes": [...]}
	Winners datatypes.JSON `gorm:"column:winners;type:jsonb"`
	// RunnersUp is a JSON array of addresses
	RunnersUp         datatypes.JSON `gorm:"column:runners_up;type:jsonb"`
	TotalParticipants int64          `gorm:"column:total_participants;not null;default:0"`
	// TotalTickets is the ticket counter; frozen as the draw snapshot at commit time
	TotalTickets int64 `gorm:"column:total_tickets;not null;default:0"`
	// RandomValue and Seed are the commit-reveal secrets (hex bytes32), written once
	RandomValue *string    `gorm:"column:random_value;type:varchar(66)" json:"-"`
	Seed        *string    `gorm:"column:seed;type:varchar(66)" json:"-"`
	CommitHash  *string    `gorm:"column:commit_hash;type:varchar(66)"`
	ActivatedAt *time.Time `gorm:"column:activated_at"`
	CommittedAt *time.Time `gorm:"column:committed_at"`
	DrawAt      *time.Time `gorm:"column:draw_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Raffle model
func (Raffle) TableName() string {
	return "raffles"
}

// RaffleWinners is the JSON layout of the winners column
type RaffleWinners struct {
	Addresses []string `json:"addresses"`
	Prizes    []string `json:"prizes"`
}
