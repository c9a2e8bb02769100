package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/feral-file/ff-raffle/internal/adapter"
	"github.com/feral-file/ff-raffle/internal/logger"
	"github.com/feral-file/ff-raffle/internal/lottery"
)

var (
	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrReceiptTimeout is returned when a receipt is not available within the configured timeout
	ErrReceiptTimeout = errors.New("timed out waiting for receipt")
)

// TransactorConfig holds the signer configuration
type TransactorConfig struct {
	PrivateKey          string
	ChainID             int64 // 0 resolves the chain ID from the node
	GasLimitMultiplier  float64
	ReceiptTimeout      time.Duration
	ReceiptPollInterval time.Duration
}

// Transactor signs and submits transactions and waits for their confirmation.
// The nonce is fetched from the node on every send; nothing is cached between calls.
type Transactor struct {
	client  adapter.EthClient
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	config  TransactorConfig
}

// NewTransactor creates a transactor for the given hex private key
func NewTransactor(ctx context.Context, client adapter.EthClient, cfg TransactorConfig) (*Transactor, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		chainID, err = client.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
	}

	if cfg.GasLimitMultiplier < 1 {
		cfg.GasLimitMultiplier = 1.2
	}
	if cfg.ReceiptTimeout == 0 {
		cfg.ReceiptTimeout = 3 * time.Minute
	}
	if cfg.ReceiptPollInterval == 0 {
		cfg.ReceiptPollInterval = 2 * time.Second
	}

	return &Transactor{
		client:  client,
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
		config:  cfg,
	}, nil
}

// Address returns the signer address
func (t *Transactor) Address() common.Address {
	return t.from
}

// SignHash signs a 32-byte hash with the EIP-191 personal-sign scheme
func (t *Transactor) SignHash(hash common.Hash) ([]byte, error) {
	return lottery.SignCommitment(hash, t.key)
}

// Transact sends a call to the contract and waits until it is mined successfully
func (t *Transactor) Transact(ctx context.Context, to common.Address, data []byte) (*types.Receipt, error) {
	nonce, err := t.client.PendingNonceAt(ctx, t.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := t.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	gas, err := t.client.EstimateGas(ctx, ethereum.CallMsg{
		From: t.from,
		To:   &to,
		Data: data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas = uint64(float64(gas) * t.config.GasLimitMultiplier)

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(t.chainID), t.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := t.client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Transaction sent",
		zap.String("txHash", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.Uint64("nonce", nonce))

	return t.waitReceipt(ctx, signed.Hash())
}

// waitReceipt polls for the receipt with exponential backoff bounded by the receipt timeout
func (t *Transactor) waitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.config.ReceiptPollInterval
	b.MaxInterval = 4 * t.config.ReceiptPollInterval
	b.MaxElapsedTime = t.config.ReceiptTimeout

	receipt, err := backoff.RetryWithData(func() (*types.Receipt, error) {
		receipt, err := t.client.TransactionReceipt(ctx, txHash)
		if err != nil {
			return nil, err
		}
		return receipt, nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, txHash.Hex())
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", ErrTransactionReverted, txHash.Hex())
	}

	return receipt, nil
}
