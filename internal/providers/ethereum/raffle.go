package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/domain"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/lottery"
)

var (
	// ErrReadOnly is returned by write operations when no signing key is configured
	ErrReadOnly = errors.New("contract gateway is read-only")

	// ErrDeploymentEventMissing is returned when a deployment receipt carries no RaffleDeployed log
	ErrDeploymentEventMissing = errors.New("raffle deployment event not found in receipt")
)

// DeployParams are the constructor arguments of a raffle contract
type DeployParams struct {
	TokenAddress common.Address
	TicketPrice  *big.Int
	Duration     time.Duration
	PrizePool    *big.Int
}

// RaffleInfo is the on-chain state summary of a raffle contract
type RaffleInfo struct {
	Status           domain.ContractStatus
	CurrentPrizePool *big.Int
	TimeLeft         time.Duration
	Participants     uint64
	NeedsFallback    bool
}

// RaffleWinners holds the winners recorded on-chain and their prizes
type RaffleWinners struct {
	Winners   []common.Address
	Prizes    []*big.Int
	RunnersUp []common.Address
}

// RaffleContract is the gateway to the raffle factory and raffle contracts
//
//go:generate mockgen -source=raffle.go -destination=../../mocks/raffle_contract.go -package=mocks -mock_names=RaffleContract=MockRaffleContract
type RaffleContract interface {
	// DeployRaffle deploys a raffle through the factory and returns its address
	DeployRaffle(ctx context.Context, params DeployParams) (common.Address, error)
	// Unpause opens a raffle for ticket sales
	Unpause(ctx context.Context, raffle common.Address) error
	// Pause closes a raffle for ticket sales
	Pause(ctx context.Context, raffle common.Address) error
	// Paused reports whether a raffle is paused
	Paused(ctx context.Context, raffle common.Address) (bool, error)
	// RaffleEndTime returns the end time recorded by the contract
	RaffleEndTime(ctx context.Context, raffle common.Address) (time.Time, error)
	// GetRaffleInfo returns the contract state summary
	GetRaffleInfo(ctx context.Context, raffle common.Address) (*RaffleInfo, error)
	// SubmitCommitment initiates winner selection with the commitment hash and its signature
	SubmitCommitment(ctx context.Context, raffle common.Address, commitHash common.Hash) error
	// RevealAndDraw reveals the committed secrets and records the winners
	RevealAndDraw(ctx context.Context, raffle common.Address, randomValue, seed common.Hash, winners []common.Address) error
	// GetWinners returns the winners, prizes and runners-up recorded on-chain
	GetWinners(ctx context.Context, raffle common.Address) (*RaffleWinners, error)
	// TicketOwner returns the owner of the ticket at index
	TicketOwner(ctx context.Context, raffle common.Address, index uint64) (common.Address, error)
}

// ContractConfig holds the addresses the gateway talks to
type ContractConfig struct {
	FactoryAddress common.Address
	TokenAddress   common.Address
}

type raffleContract struct {
	client     adapter.EthClient
	transactor *Transactor
	config     ContractConfig
	factoryABI abi.ABI
	raffleABI  abi.ABI
}

// NewRaffleContract creates a contract gateway. A nil transactor makes the gateway read-only.
func NewRaffleContract(client adapter.EthClient, transactor *Transactor, cfg ContractConfig) (RaffleContract, error) {
	factoryABI, err := abi.JSON(strings.NewReader(factoryABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse factory ABI: %w", err)
	}
	raffleABI, err := abi.JSON(strings.NewReader(raffleABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse raffle ABI: %w", err)
	}

	return &raffleContract{
		client:     client,
		transactor: transactor,
		config:     cfg,
		factoryABI: factoryABI,
		raffleABI:  raffleABI,
	}, nil
}

func (c *raffleContract) DeployRaffle(ctx context.Context, params DeployParams) (common.Address, error) {
	if c.transactor == nil {
		return common.Address{}, ErrReadOnly
	}

	token := params.TokenAddress
	if token == (common.Address{}) {
		token = c.config.TokenAddress
	}

	data, err := c.factoryABI.Pack("deployRaffle",
		token,
		params.TicketPrice,
		big.NewInt(int64(params.Duration/time.Second)),
		params.PrizePool)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack deployRaffle: %w", err)
	}

	receipt, err := c.transact(ctx, c.config.FactoryAddress, data)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: deployRaffle: %w", domain.ErrRemoteCall, err)
	}

	eventID := c.factoryABI.Events["RaffleDeployed"].ID
	for _, log := range receipt.Logs {
		if log.Address != c.config.FactoryAddress || len(log.Topics) < 2 || log.Topics[0] != eventID {
			continue
		}
		address := common.BytesToAddress(log.Topics[1].Bytes())
		logger.InfoCtx(ctx, "Raffle deployed",
			zap.String("address", address.Hex()),
			zap.String("txHash", receipt.TxHash.Hex()))
		return address, nil
	}

	return common.Address{}, fmt.Errorf("%w: %w", domain.ErrRemoteCall, ErrDeploymentEventMissing)
}

func (c *raffleContract) Unpause(ctx context.Context, raffle common.Address) error {
	return c.send(ctx, raffle, "unpause")
}

func (c *raffleContract) Pause(ctx context.Context, raffle common.Address) error {
	return c.send(ctx, raffle, "pause")
}

func (c *raffleContract) Paused(ctx context.Context, raffle common.Address) (bool, error) {
	out, err := c.call(ctx, raffle, "paused")
	if err != nil {
		return false, err
	}
	paused, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%w: unexpected paused output %T", domain.ErrRemoteCall, out[0])
	}
	return paused, nil
}

func (c *raffleContract) RaffleEndTime(ctx context.Context, raffle common.Address) (time.Time, error) {
	out, err := c.call(ctx, raffle, "raffleEndTime")
	if err != nil {
		return time.Time{}, err
	}
	end, ok := out[0].(*big.Int)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unexpected raffleEndTime output %T", domain.ErrRemoteCall, out[0])
	}
	return time.Unix(end.Int64(), 0).UTC(), nil
}

func (c *raffleContract) GetRaffleInfo(ctx context.Context, raffle common.Address) (*RaffleInfo, error) {
	out, err := c.call(ctx, raffle, "getRaffleInfo")
	if err != nil {
		return nil, err
	}

	status, ok1 := out[0].(string)
	prizePool, ok2 := out[1].(*big.Int)
	timeLeft, ok3 := out[2].(*big.Int)
	participants, ok4 := out[3].(*big.Int)
	needsFallback, ok5 := out[4].(bool)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil, fmt.Errorf("%w: unexpected getRaffleInfo output", domain.ErrRemoteCall)
	}

	return &RaffleInfo{
		Status:           domain.ContractStatus(status),
		CurrentPrizePool: prizePool,
		TimeLeft:         time.Duration(timeLeft.Int64()) * time.Second,
		Participants:     participants.Uint64(),
		NeedsFallback:    needsFallback,
	}, nil
}

func (c *raffleContract) SubmitCommitment(ctx context.Context, raffle common.Address, commitHash common.Hash) error {
	if c.transactor == nil {
		return ErrReadOnly
	}

	signature, err := c.transactor.SignHash(commitHash)
	if err != nil {
		return fmt.Errorf("failed to sign commitment: %w", err)
	}

	return c.send(ctx, raffle, "initiateWinnerSelection", commitHash, signature)
}

func (c *raffleContract) RevealAndDraw(ctx context.Context, raffle common.Address, randomValue, seed common.Hash, winners []common.Address) error {
	return c.send(ctx, raffle, "completeWinnerSelection", randomValue, seed, winners)
}

func (c *raffleContract) GetWinners(ctx context.Context, raffle common.Address) (*RaffleWinners, error) {
	out, err := c.call(ctx, raffle, "getWinners")
	if err != nil {
		return nil, err
	}
	winners, ok1 := out[0].([]common.Address)
	prizes, ok2 := out[1].([]*big.Int)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: unexpected getWinners output", domain.ErrRemoteCall)
	}

	out, err = c.call(ctx, raffle, "getRunnersUp")
	if err != nil {
		return nil, err
	}
	runnersUp, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected getRunnersUp output", domain.ErrRemoteCall)
	}

	return &RaffleWinners{
		Winners:   winners,
		Prizes:    prizes,
		RunnersUp: runnersUp,
	}, nil
}

func (c *raffleContract) TicketOwner(ctx context.Context, raffle common.Address, index uint64) (common.Address, error) {
	out, err := c.call(ctx, raffle, "ticketOwners", new(big.Int).SetUint64(index))
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: unexpected ticketOwners output %T", domain.ErrRemoteCall, out[0])
	}
	return owner, nil
}

// call executes a view function on a raffle contract and unpacks its outputs
func (c *raffleContract) call(ctx context.Context, raffle common.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.raffleABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &raffle, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrRemoteCall, method, err)
	}

	out, err := c.raffleABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s: %w", domain.ErrRemoteCall, method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty %s output", domain.ErrRemoteCall, method)
	}

	return out, nil
}

// send executes a state-changing function on a raffle contract
func (c *raffleContract) send(ctx context.Context, raffle common.Address, method string, args ...interface{}) error {
	if c.transactor == nil {
		return ErrReadOnly
	}

	data, err := c.raffleABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s: %w", method, err)
	}

	if _, err := c.transact(ctx, raffle, data); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrRemoteCall, method, err)
	}
	return nil
}

func (c *raffleContract) transact(ctx context.Context, to common.Address, data []byte) (*types.Receipt, error) {
	return c.transactor.Transact(ctx, to, data)
}

// contractOwnerLookup resolves ticket owners from the raffle contract
type contractOwnerLookup struct {
	contract RaffleContract
	raffle   common.Address
}

// NewContractOwnerLookup returns a memoized owner lookup backed by the raffle's ticketOwners view
func NewContractOwnerLookup(contract RaffleContract, raffle common.Address) lottery.OwnerLookup {
	return lottery.Memoize(&contractOwnerLookup{contract: contract, raffle: raffle})
}

func (l *contractOwnerLookup) OwnerOf(ctx context.Context, index uint64) (common.Address, error) {
	return l.contract.TicketOwner(ctx, l.raffle, index)
}
