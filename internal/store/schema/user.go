package schema

import "time"

// User represents the users table - one row per wallet address
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Address   string    `gorm:"column:address;not null;uniqueIndex;type:varchar(42)"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
