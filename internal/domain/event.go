package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var txHashRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// EventEntity represents the entity type of an indexer webhook notification
type EventEntity string

const (
	EventEntityRaffleCreated            EventEntity = "raffle_created"
	EventEntityTicketsBought            EventEntity = "tickets_bought"
	EventEntityWinnerSelectionInitiated EventEntity = "winner_selection_initiated"
	EventEntityWinnersDrawn             EventEntity = "winners_drawn"
)

// Valid checks if the entity is handled
func (e EventEntity) Valid() bool {
	switch e {
	case EventEntityRaffleCreated,
		EventEntityTicketsBought,
		EventEntityWinnerSelectionInitiated,
		EventEntityWinnersDrawn:
		return true
	}
	return false
}

// FlexString accepts a JSON string or number and keeps its textual form
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// StringList accepts a JSON array or a postgres array literal such as "{a,b}"
type StringList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var raw []FlexString
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			out = append(out, string(r))
		}
		*l = out
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		return l.UnmarshalJSON([]byte(s))
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if s == "" {
		*l = []string{}
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(strings.TrimSpace(p), `"`))
	}
	*l = out
	return nil
}

// WebhookPayload is the notification body sent by the blockchain indexer
type WebhookPayload struct {
	Entity EventEntity `json:"entity"`
	Data   struct {
		New WebhookRecord `json:"new"`
	} `json:"data"`
}

// WebhookRecord is the row snapshot carried in a webhook notification
type WebhookRecord struct {
	RaffleAddress   string     `json:"raffle_address"`
	TicketPrice     FlexString `json:"ticket_price"`
	TokenAddress    string     `json:"token_address"`
	NumberOfTickets FlexString `json:"number_of_tickets"`
	TotalCost       FlexString `json:"total_cost"`
	Buyer           string     `json:"buyer"`
	BlockNumber     FlexString `json:"block_number"`
	TransactionHash string     `json:"transaction_hash"`
	TotalTickets    FlexString `json:"total_tickets"`
	Winners         StringList `json:"winners"`
	Prizes          StringList `json:"prizes"`
}

// RaffleEvent is the normalized event published to the event queue
type RaffleEvent struct {
	ID              string      `json:"id"`        // ULID assigned on receipt
	DedupKey        string      `json:"dedup_key"` // deterministic hash of the notification
	Entity          EventEntity `json:"entity"`
	RaffleAddress   string      `json:"raffle_address"`
	TicketPrice     string      `json:"ticket_price,omitempty"`
	TokenAddress    string      `json:"token_address,omitempty"`
	NumberOfTickets int64       `json:"number_of_tickets,omitempty"`
	TotalCost       string      `json:"total_cost,omitempty"`
	Buyer           string      `json:"buyer,omitempty"`
	BlockNumber     uint64      `json:"block_number,omitempty"`
	TransactionHash string      `json:"transaction_hash,omitempty"`
	TotalTickets    int64       `json:"total_tickets,omitempty"`
	Winners         []string    `json:"winners,omitempty"`
	Prizes          []string    `json:"prizes,omitempty"`
	ReceivedAt      time.Time   `json:"received_at"`
}

// NewRaffleEvent validates a webhook payload and converts it into a RaffleEvent.
// ID, DedupKey and ReceivedAt are left for the caller to assign.
func NewRaffleEvent(payload WebhookPayload) (*RaffleEvent, error) {
	if !payload.Entity.Valid() {
		return nil, fmt.Errorf("%w: unsupported entity %q", ErrValidation, payload.Entity)
	}

	rec := payload.Data.New
	if !common.IsHexAddress(rec.RaffleAddress) {
		return nil, fmt.Errorf("%w: invalid raffle_address %q", ErrValidation, rec.RaffleAddress)
	}

	event := &RaffleEvent{
		Entity:        payload.Entity,
		RaffleAddress: NormalizeAddress(rec.RaffleAddress),
	}

	switch payload.Entity {
	case EventEntityRaffleCreated:
		if rec.TokenAddress != "" {
			if !common.IsHexAddress(rec.TokenAddress) {
				return nil, fmt.Errorf("%w: invalid token_address %q", ErrValidation, rec.TokenAddress)
			}
			event.TokenAddress = NormalizeAddress(rec.TokenAddress)
		}
		if rec.TicketPrice != "" {
			if _, err := ParseAmount(string(rec.TicketPrice)); err != nil {
				return nil, err
			}
			event.TicketPrice = string(rec.TicketPrice)
		}

	case EventEntityTicketsBought:
		if !common.IsHexAddress(rec.Buyer) {
			return nil, fmt.Errorf("%w: invalid buyer %q", ErrValidation, rec.Buyer)
		}
		if !txHashRegex.MatchString(rec.TransactionHash) {
			return nil, fmt.Errorf("%w: invalid transaction_hash %q", ErrValidation, rec.TransactionHash)
		}
		count, err := strconv.ParseInt(string(rec.NumberOfTickets), 10, 64)
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("%w: invalid number_of_tickets %q", ErrValidation, rec.NumberOfTickets)
		}
		if _, err := ParseAmount(string(rec.TotalCost)); err != nil {
			return nil, err
		}
		var block uint64
		if rec.BlockNumber != "" {
			block, err = strconv.ParseUint(string(rec.BlockNumber), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid block_number %q", ErrValidation, rec.BlockNumber)
			}
		}
		event.Buyer = NormalizeAddress(rec.Buyer)
		event.TransactionHash = strings.ToLower(rec.TransactionHash)
		event.NumberOfTickets = count
		event.TotalCost = string(rec.TotalCost)
		event.BlockNumber = block

	case EventEntityWinnerSelectionInitiated:
		if rec.TotalTickets != "" {
			total, err := strconv.ParseInt(string(rec.TotalTickets), 10, 64)
			if err != nil || total < 0 {
				return nil, fmt.Errorf("%w: invalid total_tickets %q", ErrValidation, rec.TotalTickets)
			}
			event.TotalTickets = total
		}

	case EventEntityWinnersDrawn:
		for _, w := range rec.Winners {
			if !common.IsHexAddress(w) {
				return nil, fmt.Errorf("%w: invalid winner %q", ErrValidation, w)
			}
			event.Winners = append(event.Winners, NormalizeAddress(w))
		}
		for _, p := range rec.Prizes {
			if _, err := ParseAmount(p); err != nil {
				return nil, err
			}
			event.Prizes = append(event.Prizes, p)
		}
	}

	return event, nil
}
