package constants

const (
	MAX_WEBHOOK_BODY_BYTES = 1 << 20
	SERVICE_NAME           = "ff-raffle-api"
)
