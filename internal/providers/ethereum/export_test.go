package ethereum

const (
	FactoryABIJSON = factoryABIJSON
	RaffleABIJSON  = raffleABIJSON
)
