package cache

// CurrentRafflesKey holds the list of open raffles
const CurrentRafflesKey = "raffles:current"

// RaffleKey holds the detail view of a raffle
func RaffleKey(raffleID string) string {
	return "raffle:" + raffleID
}

// WinnersKey holds the winners view of a raffle
func WinnersKey(raffleID string) string {
	return "raffle:" + raffleID + ":winners"
}

// VerificationKey holds the verification view of a raffle
func VerificationKey(raffleID string) string {
	return "raffle:" + raffleID + ":verification"
}

// RaffleKeys returns every key derived from the given raffles, including the open list
func RaffleKeys(raffleIDs ...string) []string {
	keys := []string{CurrentRafflesKey}
	for _, id := range raffleIDs {
		if id == "" {
			continue
		}
		keys = append(keys, RaffleKey(id), WinnersKey(id), VerificationKey(id))
	}
	return keys
}
