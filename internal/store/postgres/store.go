package postgres

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/vaultkit/delegate-registry/internal/registry"
)

// Store is a Postgres-backed registry.Store. It mirrors the in-memory store's
// semantics: one row per identity, revocation clears the enabled flag and the
// row is never deleted. Schema lives in scripts/schema.sql.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a delegation store over an existing connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const upsertDelegation = `
INSERT INTO delegations (identity, kind, from_address, to_address, contract, token_id, amount, rights, enabled, updated_at)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8, $9, now())
ON CONFLICT (identity) DO UPDATE
SET amount = CASE WHEN EXCLUDED.enabled THEN EXCLUDED.amount ELSE delegations.amount END,
    enabled = EXCLUDED.enabled,
    updated_at = now()`

// SetDelegation implements registry.Store.
func (s *Store) SetDelegation(ctx context.Context, d registry.Delegation, enable bool) (common.Hash, error) {
	if err := registry.Validate(d); err != nil {
		return common.Hash{}, err
	}

	id := d.Identity()
	_, err := s.pool.Exec(ctx, upsertDelegation,
		id.Bytes(),
		int16(d.Type),
		d.From.Bytes(),
		d.To.Bytes(),
		d.Contract.Bytes(),
		numericFromBig(d.TokenID),
		numericFromBig(d.Amount),
		d.Rights.Bytes(),
		enable,
	)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to upsert delegation")
	}
	return id, nil
}

const selectRecord = `
SELECT kind, from_address, to_address, contract, token_id::text, amount::text, rights, enabled
FROM delegations
WHERE identity = $1`

// ReadRecord implements registry.Store. A row that was never written yields a
// TypeNone record and no error.
func (s *Store) ReadRecord(ctx context.Context, id common.Hash) (registry.Delegation, error) {
	d, err := scanDelegation(s.pool.QueryRow(ctx, selectRecord, id.Bytes()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return registry.Delegation{Type: registry.TypeNone}, nil
		}
		return registry.Delegation{}, errors.Wrap(err, "failed to read delegation")
	}
	return d, nil
}

const selectOutgoing = `
SELECT kind, from_address, to_address, contract, token_id::text, amount::text, rights, enabled
FROM delegations
WHERE from_address = $1 AND enabled`

// OutgoingDelegations implements registry.Store.
func (s *Store) OutgoingDelegations(ctx context.Context, from common.Address) ([]registry.Delegation, error) {
	rows, err := s.pool.Query(ctx, selectOutgoing, from.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delegations")
	}
	defer rows.Close()

	var out []registry.Delegation
	for rows.Next() {
		d, err := scanDelegation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan delegation")
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate delegations")
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelegation(row rowScanner) (registry.Delegation, error) {
	var (
		d        registry.Delegation
		kind     int16
		from     []byte
		to       []byte
		contract []byte
		tokenID  *string
		amount   *string
		rights   []byte
	)
	if err := row.Scan(&kind, &from, &to, &contract, &tokenID, &amount, &rights, &d.Enabled); err != nil {
		return registry.Delegation{}, err
	}
	d.Type = registry.DelegationType(kind)
	d.From = common.BytesToAddress(from)
	d.To = common.BytesToAddress(to)
	d.Contract = common.BytesToAddress(contract)
	d.Rights = common.BytesToHash(rights)
	var err error
	if d.TokenID, err = bigFromNumeric(tokenID); err != nil {
		return registry.Delegation{}, err
	}
	if d.Amount, err = bigFromNumeric(amount); err != nil {
		return registry.Delegation{}, err
	}
	return d, nil
}

// numericFromBig renders a big.Int for a NUMERIC column, keeping NULL for nil.
func numericFromBig(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func bigFromNumeric(v *string) (*big.Int, error) {
	if v == nil {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(*v, 10)
	if !ok {
		return nil, errors.Errorf("invalid numeric value %q", *v)
	}
	return n, nil
}
