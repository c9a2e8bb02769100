package schema

import "time"

// Prize represents the prizes table - one row per (raffle, winner), created after finalization
type Prize struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	RaffleID  string    `gorm:"column:raffle_id;not null;type:uuid;uniqueIndex:idx_prizes_raffle_user,priority:1"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:idx_prizes_raffle_user,priority:2"`
	Amount    string    `gorm:"column:amount;not null;type:numeric(78,0)"`
	Rank      int       `gorm:"column:rank;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`

	Winner User `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Prize model
func (Prize) TableName() string {
	return "prizes"
}
