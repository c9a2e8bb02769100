package domain

import "time"

const (
	// ActivationLead is how long before the predecessor's end the successor is activated
	ActivationLead = 30 * time.Minute

	// DefaultRevealDelay is the minimum time between commitment and reveal
	DefaultRevealDelay = 5 * time.Minute

	// WinnerCount is the number of distinct winners drawn per raffle
	WinnerCount = 10

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
