package dto

import (
	"math/big"
	"strings"
	"time"

	"github.com/feral-file/ff-raffle/internal/store/schema"
)

// tokenDecimals is the number of decimals of the payment token
const tokenDecimals = 18

// Amount is a token amount as base units and as a decimal token string
type Amount struct {
	Wei     string `json:"wei"`
	Decimal string `json:"decimal"`
}

// RaffleSummary is the list representation of a raffle
type RaffleSummary struct {
	ID                string    `json:"id"`
	Type              string    `json:"type"`
	Address           string    `json:"address"`
	Status            string    `json:"status"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	TicketPrice       Amount    `json:"ticket_price"`
	CurrentPrizePool  Amount    `json:"current_prize_pool"`
	TotalTickets      int64     `json:"total_tickets"`
	TotalParticipants int64     `json:"total_participants"`
}

// RaffleListResponse represents the response for listing current raffles
type RaffleListResponse struct {
	Raffles []RaffleSummary `json:"raffles"`
}

// RaffleTiming holds the timestamps of a raffle
type RaffleTiming struct {
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CommittedAt *time.Time `json:"committed_at,omitempty"`
	DrawAt      *time.Time `json:"draw_at,omitempty"`
}

// RafflePricing holds the amounts of a raffle
type RafflePricing struct {
	TicketPrice         Amount `json:"ticket_price"`
	GuaranteedPrizePool Amount `json:"guaranteed_prize_pool"`
	CurrentPrizePool    Amount `json:"current_prize_pool"`
}

// RaffleStats holds the participation counters of a raffle
type RaffleStats struct {
	TotalParticipants int64 `json:"total_participants"`
	TotalTickets      int64 `json:"total_tickets"`
}

// Winner is a winning address with its prize
type Winner struct {
	Rank    int    `json:"rank"`
	Address string `json:"address"`
	Prize   Amount `json:"prize"`
}

// RaffleDraw holds the draw outcome of a raffle
type RaffleDraw struct {
	IsComplete bool     `json:"is_complete"`
	CommitHash *string  `json:"commit_hash,omitempty"`
	Winners    []Winner `json:"winners"`
	RunnersUp  []string `json:"runners_up"`
}

// RaffleResponse is the detailed view of a raffle
type RaffleResponse struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Address      string        `json:"address"`
	Status       string        `json:"status"`
	TokenAddress *string       `json:"token_address,omitempty"`
	NextRaffleID *string       `json:"next_raffle_id,omitempty"`
	Timing       RaffleTiming  `json:"timing"`
	Pricing      RafflePricing `json:"pricing"`
	Stats        RaffleStats   `json:"stats"`
	Draw         RaffleDraw    `json:"draw"`

	// PreviousRaffleID is the raffle this one succeeded
	PreviousRaffleID *string `json:"previous_raffle_id,omitempty"`
}

// WinnersResponse holds the winners recorded on-chain
type WinnersResponse struct {
	RaffleID  string   `json:"raffle_id"`
	Address   string   `json:"address"`
	Winners   []Winner `json:"winners"`
	RunnersUp []string `json:"runners_up"`
}

// VerificationResponse is the off-chain check of a completed draw
type VerificationResponse struct {
	RaffleID        string   `json:"raffle_id"`
	CommitHash      string   `json:"commit_hash"`
	TotalTickets    int64    `json:"total_tickets"`
	CommitmentValid bool     `json:"commitment_valid"`
	WinnersMatch    bool     `json:"winners_match"`
	RecordedWinners []string `json:"recorded_winners"`
	DerivedWinners  []string `json:"derived_winners"`
}

// MapRaffleToSummary maps a raffle row to its list representation
func MapRaffleToSummary(raffle *schema.Raffle) RaffleSummary {
	return RaffleSummary{
		ID:                raffle.ID,
		Type:              string(raffle.Type),
		Address:           raffle.Address,
		Status:            string(raffle.Status),
		StartTime:         raffle.StartTime,
		EndTime:           raffle.EndTime,
		TicketPrice:       NewAmount(raffle.TicketPrice),
		CurrentPrizePool:  NewAmount(raffle.CurrentPrizePool),
		TotalTickets:      raffle.TotalTickets,
		TotalParticipants: raffle.TotalParticipants,
	}
}

// MapRaffleToDTO maps a raffle row, its predecessor and its draw outcome to the detailed view.
// predecessor may be nil.
func MapRaffleToDTO(raffle, predecessor *schema.Raffle, winners []Winner, runnersUp []string) *RaffleResponse {
	resp := &RaffleResponse{
		ID:           raffle.ID,
		Type:         string(raffle.Type),
		Address:      raffle.Address,
		Status:       string(raffle.Status),
		TokenAddress: raffle.TokenAddress,
		NextRaffleID: raffle.NextRaffleID,
		Timing: RaffleTiming{
			StartTime:   raffle.StartTime,
			EndTime:     raffle.EndTime,
			ActivatedAt: raffle.ActivatedAt,
			CommittedAt: raffle.CommittedAt,
			DrawAt:      raffle.DrawAt,
		},
		Pricing: RafflePricing{
			TicketPrice:         NewAmount(raffle.TicketPrice),
			GuaranteedPrizePool: NewAmount(raffle.GuaranteedPrizePool),
			CurrentPrizePool:    NewAmount(raffle.CurrentPrizePool),
		},
		Stats: RaffleStats{
			TotalParticipants: raffle.TotalParticipants,
			TotalTickets:      raffle.TotalTickets,
		},
		Draw: RaffleDraw{
			IsComplete: raffle.IsDrawComplete,
			CommitHash: raffle.CommitHash,
			Winners:    []Winner{},
			RunnersUp:  []string{},
		},
	}

	if predecessor != nil {
		resp.PreviousRaffleID = &predecessor.ID
	}
	if winners != nil {
		resp.Draw.Winners = winners
	}
	if runnersUp != nil {
		resp.Draw.RunnersUp = runnersUp
	}

	return resp
}

// MapWinners zips winner addresses with their prizes. Missing prizes are reported as zero.
func MapWinners(addresses []string, prizes []string) []Winner {
	winners := make([]Winner, len(addresses))
	for i, addr := range addresses {
		prize := "0"
		if i < len(prizes) {
			prize = prizes[i]
		}
		winners[i] = Winner{
			Rank:    i + 1,
			Address: addr,
			Prize:   NewAmount(prize),
		}
	}
	return winners
}

// MapPrizes maps the persisted prizes of a raffle, ordered by rank
func MapPrizes(prizes []*schema.Prize) []Winner {
	winners := make([]Winner, len(prizes))
	for i, p := range prizes {
		winners[i] = Winner{
			Rank:    p.Rank,
			Address: p.Winner.Address,
			Prize:   NewAmount(p.Amount),
		}
	}
	return winners
}

// NewAmount formats a base-unit integer string as an amount
func NewAmount(wei string) Amount {
	v, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return Amount{Wei: wei, Decimal: wei}
	}
	return Amount{Wei: v.String(), Decimal: FormatUnits(v, tokenDecimals)}
}

// FormatUnits renders v / 10^decimals without trailing fractional zeros
func FormatUnits(v *big.Int, decimals int) string {
	sign := ""
	abs := new(big.Int).Set(v)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, base, new(big.Int))

	if frac.Sign() == 0 {
		return sign + whole.String()
	}

	fracStr := frac.String()
	fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")

	return sign + whole.String() + "." + fracStr
}
