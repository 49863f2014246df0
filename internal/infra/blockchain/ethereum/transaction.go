package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gabapcia/landpay/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/landpay/internal/pkg/types"
	"github.com/gabapcia/landpay/internal/reconciler"
	"github.com/gabapcia/landpay/internal/verification"
)

type (
	// ReceiptResponse represents a transaction receipt returned by the
	// Ethereum JSON-RPC API. Only the fields the adapter inspects are mapped.
	ReceiptResponse struct {
		TransactionHash string    `json:"transactionHash"`
		BlockNumber     types.Hex `json:"blockNumber"`
		Status          types.Hex `json:"status"`
	}

	// TransactionResponse represents a transaction object returned by the
	// Ethereum JSON-RPC API. Only the fields the adapter inspects are mapped.
	TransactionResponse struct {
		Hash  string    `json:"hash"`
		From  string    `json:"from"`
		To    string    `json:"to"`
		Value types.Hex `json:"value"`
	}
)

// toReceipt converts a ReceiptResponse to a reconciler.Receipt.
func (r ReceiptResponse) toReceipt() reconciler.Receipt {
	return reconciler.Receipt{
		TxHash:      r.TransactionHash,
		BlockNumber: r.BlockNumber.Uint64(),
		Succeeded:   r.Status.Uint64() == 1,
	}
}

// chainError maps a JSON-RPC client failure onto the adapter error taxonomy.
// Errors reported by the node itself are protocol errors; anything else is a
// transport failure the caller may retry.
func chainError(err error) error {
	if errors.Is(err, jsonrpc.ErrProviderReturnedError) {
		return fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return fmt.Errorf("%w: %v", reconciler.ErrChainUnavailable, err)
}

// GasPrice fetches the current gas price from the node.
func (c *client) GasPrice(ctx context.Context) (*big.Int, error) {
	data, err := c.conn.Fetch(ctx, "eth_gasPrice")
	if err != nil {
		return nil, chainError(err)
	}

	var price types.Hex
	if err := json.Unmarshal(data, &price); err != nil {
		return nil, fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return price.Big(), nil
}

// PendingNonce fetches the transaction count of the sending account including
// transactions still in the mempool. The value is used as-is for the next
// submission; the node assigns it to exactly one transaction.
func (c *client) PendingNonce(ctx context.Context) (uint64, error) {
	data, err := c.conn.Fetch(ctx, "eth_getTransactionCount", c.account, "pending")
	if err != nil {
		return 0, chainError(err)
	}

	var nonce types.Hex
	if err := json.Unmarshal(data, &nonce); err != nil {
		return 0, fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return nonce.Uint64(), nil
}

// sendTransaction submits a transaction from the client account to the
// contract address with a fresh gas price and nonce, returning the
// transaction hash assigned by the node.
func (c *client) sendTransaction(ctx context.Context, value *big.Int, calldata string) (string, error) {
	gasPrice, err := c.GasPrice(ctx)
	if err != nil {
		return "", err
	}

	nonce, err := c.PendingNonce(ctx)
	if err != nil {
		return "", err
	}

	params := map[string]any{
		"from":     c.account,
		"to":       c.contractAddress,
		"gas":      types.HexFromUint64(c.gasLimit),
		"gasPrice": types.HexFromBig(gasPrice),
		"value":    types.HexFromBig(value),
		"nonce":    types.HexFromUint64(nonce),
		"data":     calldata,
	}

	data, err := c.conn.Fetch(ctx, "eth_sendTransaction", params)
	if err != nil {
		return "", chainError(err)
	}

	var txHash string
	if err := json.Unmarshal(data, &txHash); err != nil {
		return "", fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return txHash, nil
}

// SubmitTransfer invokes the contract payment method with the given amount
// of wei attached as the transaction value and returns the transaction hash.
func (c *client) SubmitTransfer(ctx context.Context, value *big.Int) (string, error) {
	return c.sendTransaction(ctx, value, encodeCall(payInstallmentSignature))
}

// SubmitCancellation invokes the contract cancellation method for the given
// unique code with zero value and returns the transaction hash.
func (c *client) SubmitCancellation(ctx context.Context, uniqueCode string) (string, error) {
	return c.sendTransaction(ctx, new(big.Int), encodeStringCall(cancelTransactionSignature, uniqueCode))
}

// InstallmentAmount reads the fixed installment amount in wei from the
// contract. The value is fetched from the node on every call and never cached.
func (c *client) InstallmentAmount(ctx context.Context) (*big.Int, error) {
	call := map[string]any{
		"to":   c.contractAddress,
		"data": encodeCall(installmentAmountSignature),
	}

	data, err := c.conn.Fetch(ctx, "eth_call", call, "latest")
	if err != nil {
		return nil, chainError(err)
	}

	var amount types.Hex
	if err := json.Unmarshal(data, &amount); err != nil {
		return nil, fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return amount.Big(), nil
}

// fetchReceipt looks up the receipt for the given transaction hash. It
// returns found=false when the transaction has not been mined yet.
func (c *client) fetchReceipt(ctx context.Context, txHash string) (ReceiptResponse, bool, error) {
	data, err := c.conn.Fetch(ctx, "eth_getTransactionReceipt", txHash)
	if err != nil {
		return ReceiptResponse{}, false, chainError(err)
	}

	if len(data) == 0 || string(data) == "null" {
		return ReceiptResponse{}, false, nil
	}

	var receipt ReceiptResponse
	if err := json.Unmarshal(data, &receipt); err != nil {
		return ReceiptResponse{}, false, fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return receipt, true, nil
}

// AwaitReceipt polls the node for the receipt of the given transaction hash
// until it is mined or the configured timeout elapses. Transient transport
// failures do not abort the wait: the transfer is already on the wire, so
// polling continues until the deadline. Only a protocol-level failure ends
// the wait early. It returns ErrReceiptTimeout when the transaction is still
// pending at the deadline.
func (c *client) AwaitReceipt(ctx context.Context, txHash string) (reconciler.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(c.receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, found, err := c.fetchReceipt(ctx, txHash)
		if found {
			return receipt.toReceipt(), nil
		}
		if err != nil && !errors.Is(err, reconciler.ErrChainUnavailable) && ctx.Err() == nil {
			return reconciler.Receipt{}, err
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return reconciler.Receipt{}, fmt.Errorf("%w: %s", reconciler.ErrReceiptTimeout, txHash)
			}

			return reconciler.Receipt{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ConfirmedTransfer looks up the mined state of a previously submitted
// transaction: its receipt status together with the transferred value. It
// returns ErrChainProtocol when the node does not know the transaction.
func (c *client) ConfirmedTransfer(ctx context.Context, txHash string) (verification.ConfirmedTransfer, error) {
	receipt, found, err := c.fetchReceipt(ctx, txHash)
	if err != nil {
		return verification.ConfirmedTransfer{}, err
	}
	if !found {
		return verification.ConfirmedTransfer{}, fmt.Errorf("%w: no receipt for %s", reconciler.ErrChainProtocol, txHash)
	}

	data, err := c.conn.Fetch(ctx, "eth_getTransactionByHash", txHash)
	if err != nil {
		return verification.ConfirmedTransfer{}, chainError(err)
	}

	if len(data) == 0 || string(data) == "null" {
		return verification.ConfirmedTransfer{}, fmt.Errorf("%w: transaction %s not found", reconciler.ErrChainProtocol, txHash)
	}

	var tx TransactionResponse
	if err := json.Unmarshal(data, &tx); err != nil {
		return verification.ConfirmedTransfer{}, fmt.Errorf("%w: %v", reconciler.ErrChainProtocol, err)
	}

	return verification.ConfirmedTransfer{
		TxHash:      receipt.TransactionHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		Succeeded:   receipt.Status.Uint64() == 1,
		Value:       tx.Value.Big(),
	}, nil
}
