package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/params"
)

// RaffleType represents the cadence of a raffle
type RaffleType string

const (
	RaffleTypeDaily   RaffleType = "DAILY"
	RaffleTypeWeekly  RaffleType = "WEEKLY"
	RaffleTypeMonthly RaffleType = "MONTHLY"
)

// AllRaffleTypes lists every supported raffle type
var AllRaffleTypes = []RaffleType{RaffleTypeDaily, RaffleTypeWeekly, RaffleTypeMonthly}

// Valid checks if the raffle type is supported
func (t RaffleType) Valid() bool {
	return t == RaffleTypeDaily || t == RaffleTypeWeekly || t == RaffleTypeMonthly
}

// ParseRaffleType parses a raffle type case-insensitively
func ParseRaffleType(s string) (RaffleType, error) {
	t := RaffleType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRaffleType, s)
	}
	return t, nil
}

// RaffleStatus represents the lifecycle status of a raffle
type RaffleStatus string

const (
	RaffleStatusPending   RaffleStatus = "PENDING"
	RaffleStatusActive    RaffleStatus = "ACTIVE"
	RaffleStatusDrawing   RaffleStatus = "DRAWING"
	RaffleStatusCompleted RaffleStatus = "COMPLETED"
	RaffleStatusEnded     RaffleStatus = "ENDED"
)

// IsTerminal reports whether no further transition is possible
func (s RaffleStatus) IsTerminal() bool {
	return s == RaffleStatusCompleted || s == RaffleStatusEnded
}

// ContractStatus is the status string reported by the raffle contract's getRaffleInfo
type ContractStatus string

const (
	ContractStatusActive         ContractStatus = "Active"
	ContractStatusReadyToEnd     ContractStatus = "Ready to End"
	ContractStatusInvalid        ContractStatus = "Invalid - Refunds Available"
	ContractStatusDrawingPending ContractStatus = "Drawing Pending"
	ContractStatusCompleted      ContractStatus = "Completed"
)

// RaffleTypeConfig holds the static parameters of a raffle type
type RaffleTypeConfig struct {
	Type                RaffleType
	TicketPrice         *big.Int
	GuaranteedPrizePool *big.Int
	Duration            time.Duration
	// SuccessorCheckSchedule is the cron expression used to ensure a PENDING successor exists
	SuccessorCheckSchedule string
}

// ConfigFor returns the static configuration of a raffle type.
// Amounts use 18 decimals.
func ConfigFor(t RaffleType) (RaffleTypeConfig, error) {
	switch t {
	case RaffleTypeDaily:
		return RaffleTypeConfig{
			Type:                   t,
			TicketPrice:            ether(2),
			GuaranteedPrizePool:    ether(100),
			Duration:               300 * time.Second,
			SuccessorCheckSchedule: "0 */12 * * *",
		}, nil
	case RaffleTypeWeekly:
		return RaffleTypeConfig{
			Type:                   t,
			TicketPrice:            ether(10),
			GuaranteedPrizePool:    ether(500),
			Duration:               7 * 24 * time.Hour,
			SuccessorCheckSchedule: "0 0 * * *",
		}, nil
	case RaffleTypeMonthly:
		return RaffleTypeConfig{
			Type:                   t,
			TicketPrice:            ether(30),
			GuaranteedPrizePool:    ether(1500),
			Duration:               30 * 24 * time.Hour,
			SuccessorCheckSchedule: "0 0 * * *",
		}, nil
	default:
		return RaffleTypeConfig{}, fmt.Errorf("%w: %q", ErrInvalidRaffleType, t)
	}
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

// JobKind represents the kind of a delayed raffle job
type JobKind string

const (
	JobKindActivate JobKind = "activate"
	JobKindEnd      JobKind = "end"
	JobKindReveal   JobKind = "reveal"
)

// Valid checks if the job kind is supported
func (k JobKind) Valid() bool {
	return k == JobKindActivate || k == JobKindEnd || k == JobKindReveal
}

// RaffleJob is the payload of a delayed raffle job
type RaffleJob struct {
	Kind        JobKind   `json:"kind"`
	RaffleID    string    `json:"raffleId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// Key returns the stable job key used for duplicate detection
func (j RaffleJob) Key() string {
	return fmt.Sprintf("raffle-%s-%s", j.Kind, j.RaffleID)
}

// Delay returns how long to wait from now until the job is due, clamped to zero
func (j RaffleJob) Delay(now time.Time) time.Duration {
	d := j.ScheduledAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// NormalizeAddress lower-cases and trims a hex address
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// ParseAmount parses a base-10 integer amount
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	return v, nil
}
