package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/landpay/internal/ledger"
	"github.com/gabapcia/landpay/internal/reconciler"
	"github.com/gabapcia/landpay/internal/verification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// transactionColumns is the column list shared by every transaction select.
// Nullable chain references are coalesced to empty strings to match the
// in-memory model.
const transactionColumns = `
	id,
	unique_code,
	amount::text,
	status,
	is_verified,
	COALESCE(smart_contract_address, ''),
	COALESCE(smart_contract_tx_hash, ''),
	date,
	version
`

// scanTransaction reads a transaction row into the ledger model.
func scanTransaction(row pgx.Row) (ledger.Transaction, error) {
	var (
		t      ledger.Transaction
		amount string
		status string
	)

	err := row.Scan(
		&t.ID,
		&t.UniqueCode,
		&amount,
		&status,
		&t.IsVerified,
		&t.SmartContractAddress,
		&t.SmartContractTxHash,
		&t.Date,
		&t.Version,
	)
	if err != nil {
		return ledger.Transaction{}, err
	}

	t.Status = ledger.Status(status)

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transactions: parse stored amount: %w", err)
	}

	return t, nil
}

// UpsertTransaction inserts the transaction keyed by its unique code. When
// the code is already present the existing record is returned untouched; the
// uniqueness constraint lives in the table, so two concurrent inserts of the
// same code can never both create a record.
func (c *client) UpsertTransaction(ctx context.Context, t ledger.Transaction) (ledger.Transaction, bool, error) {
	tag, err := c.pool.Exec(
		ctx,
		`
			INSERT INTO transactions (id, unique_code, amount, status, is_verified, date, version)
			VALUES ($1, $2, $3::numeric, $4, $5, $6, 1)
			ON CONFLICT (unique_code) DO NOTHING
		`,
		t.ID, t.UniqueCode, t.Amount.String(), string(t.Status), t.IsVerified, t.Date,
	)
	if err != nil {
		return ledger.Transaction{}, false, fmt.Errorf("transactions: insert error %w", err)
	}

	created := tag.RowsAffected() > 0

	row := c.pool.QueryRow(
		ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE unique_code = $1`,
		t.UniqueCode,
	)

	stored, err := scanTransaction(row)
	if err != nil {
		return ledger.Transaction{}, false, fmt.Errorf("transactions: load after insert error %w", err)
	}

	return stored, created, nil
}

// GetTransaction loads a transaction by id. Returns ledger.ErrNotFound when
// no record exists.
func (c *client) GetTransaction(ctx context.Context, id uuid.UUID) (ledger.Transaction, error) {
	row := c.pool.QueryRow(
		ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`,
		id,
	)

	t, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transactions: query error %w", err)
	}

	return t, nil
}

// SetTransactionStatus moves a transaction from one status to another. The
// update is conditional on the stored status still being from, so a
// concurrent transition can never be overwritten.
func (c *client) SetTransactionStatus(ctx context.Context, id uuid.UUID, from, to ledger.Status) error {
	tag, err := c.pool.Exec(
		ctx,
		`
			UPDATE transactions
			SET status = $1, version = version + 1
			WHERE id = $2 AND status = $3
		`,
		string(to), id, string(from),
	)
	if err != nil {
		return fmt.Errorf("transactions: update status error %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := c.GetTransaction(ctx, id); err != nil {
			return err
		}

		return ledger.ErrInvalidStatusTransition
	}

	return nil
}

// SetChainRefs records the contract address and on-chain transaction hash.
// The hash column is write-once: the update applies only while no hash is
// stored, so a replayed submission can never overwrite the original one.
func (c *client) SetChainRefs(ctx context.Context, id uuid.UUID, contractAddress, txHash string) error {
	tag, err := c.pool.Exec(
		ctx,
		`
			UPDATE transactions
			SET smart_contract_address = $1, smart_contract_tx_hash = $2, version = version + 1
			WHERE id = $3 AND smart_contract_tx_hash IS NULL
		`,
		contractAddress, txHash, id,
	)
	if err != nil {
		return fmt.Errorf("transactions: set chain refs error %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := c.GetTransaction(ctx, id); err != nil {
			return err
		}

		return ledger.ErrChainRefsAlreadySet
	}

	return nil
}

// MarkTransactionVerified flips the verified flag for the transaction.
func (c *client) MarkTransactionVerified(ctx context.Context, id uuid.UUID) error {
	tag, err := c.pool.Exec(
		ctx,
		`
			UPDATE transactions
			SET is_verified = TRUE, version = version + 1
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return fmt.Errorf("transactions: mark verified error %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

// Ensure the client satisfies every consumed persistence interface at
// compile time.
var (
	_ ledger.Storage             = (*client)(nil)
	_ reconciler.LedgerStorage   = (*client)(nil)
	_ verification.LedgerStorage = (*client)(nil)
)
