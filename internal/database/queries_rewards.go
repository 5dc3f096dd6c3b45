package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Transaction reasons recorded in point_transactions
const (
	ReasonMessage     = "message"
	ReasonReaction    = "reaction"
	ReasonDaily       = "daily"
	ReasonSignup      = "signup"
	ReasonAdminGrant  = "admin_grant"
	ReasonAdminRemove = "admin_remove"
	ReasonRedeem      = "redeem"
)

// SignupBonus is credited once when a user enrols in the rewards program
const SignupBonus = 50

// GetStatus returns the user's account. A user without a row gets a zero
// balance in the lowest tier; the row is not created.
func (db *DB) GetStatus(ctx context.Context, userID string) (*Account, error) {
	acct, err := scanAccount(db.conn.QueryRowContext(ctx, accountQuery, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get reward account: %w", err)
	}
	if acct == nil {
		return &Account{UserID: userID, Tier: TierFor(0, db.tiers)}, nil
	}
	return acct, nil
}

// GrantPoints credits amount points, creating the account if needed, and
// recomputes the tier.
func (db *DB) GrantPoints(ctx context.Context, userID string, amount int, reason string) (*Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("grant of %d points: %w", amount, ErrInvalidInput)
	}

	var acct *Account
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		now := db.timestamp()
		if err := ensureAccount(ctx, tx, userID, db.tiers, now); err != nil {
			return err
		}
		var err error
		acct, err = db.applyDelta(ctx, tx, userID, amount, reason, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// RemovePoints deducts up to amount points without taking the balance below
// zero. It returns the updated account and the number of points removed.
func (db *DB) RemovePoints(ctx context.Context, userID string, amount int) (*Account, int, error) {
	if amount <= 0 {
		return nil, 0, fmt.Errorf("removal of %d points: %w", amount, ErrInvalidInput)
	}

	var acct *Account
	var removed int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanAccount(tx.QueryRowContext(ctx, accountQuery, userID))
		if err != nil {
			return fmt.Errorf("failed to read reward account: %w", err)
		}
		if current == nil {
			return fmt.Errorf("reward account %s: %w", userID, ErrNotFound)
		}

		removed = min(amount, current.Points)
		if removed == 0 {
			acct = current
			return nil
		}
		acct, err = db.applyDelta(ctx, tx, userID, -removed, ReasonAdminRemove, db.timestamp())
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return acct, removed, nil
}

// SpendPoints deducts cost points. The balance is re-read inside the
// transaction; if it is below cost nothing changes and
// ErrInsufficientBalance is returned.
func (db *DB) SpendPoints(ctx context.Context, userID string, cost int, reason string) (*Account, error) {
	if cost <= 0 {
		return nil, fmt.Errorf("spend of %d points: %w", cost, ErrInvalidInput)
	}

	var acct *Account
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		acct, err = db.spend(ctx, tx, userID, cost, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// ClaimDaily grants the daily bonus once per calendar day in the configured
// time zone. It returns the bonus and the updated account.
func (db *DB) ClaimDaily(ctx context.Context, userID string) (int, *Account, error) {
	var bonus int
	var acct *Account
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		now := db.timestamp()
		current, err := scanAccount(tx.QueryRowContext(ctx, accountQuery, userID))
		if err != nil {
			return fmt.Errorf("failed to read reward account: %w", err)
		}
		if current != nil && current.LastDaily != nil && sameDay(*current.LastDaily, now, db.loc) {
			return ErrAlreadyClaimedToday
		}
		if current == nil {
			if err := ensureAccount(ctx, tx, userID, db.tiers, now); err != nil {
				return err
			}
		}

		bonus = db.bonus()
		if _, err := tx.ExecContext(ctx, `UPDATE rewards SET last_daily = ? WHERE user_id = ?`, now, userID); err != nil {
			return fmt.Errorf("failed to record daily claim: %w", err)
		}
		acct, err = db.applyDelta(ctx, tx, userID, bonus, ReasonDaily, now)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return bonus, acct, nil
}

// NextDailyReset returns the start of the calendar day after t.
func (db *DB) NextDailyReset(t time.Time) time.Time {
	local := t.In(db.loc)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, db.loc)
}

// RecordActivity credits passive activity points at most once per cooldown.
// The cooldown is stored on the account so it survives restarts. A zero
// cooldown always grants.
func (db *DB) RecordActivity(ctx context.Context, userID string, amount int, reason string, cooldown time.Duration) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("activity grant of %d points: %w", amount, ErrInvalidInput)
	}

	granted := false
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		now := db.timestamp()
		current, err := scanAccount(tx.QueryRowContext(ctx, accountQuery, userID))
		if err != nil {
			return fmt.Errorf("failed to read reward account: %w", err)
		}
		if cooldown > 0 && current != nil && current.LastActivity != nil && now.Sub(*current.LastActivity) < cooldown {
			return nil
		}
		if current == nil {
			if err := ensureAccount(ctx, tx, userID, db.tiers, now); err != nil {
				return err
			}
		}
		if cooldown > 0 {
			if _, err := tx.ExecContext(ctx, `UPDATE rewards SET last_activity = ? WHERE user_id = ?`, now, userID); err != nil {
				return fmt.Errorf("failed to record activity: %w", err)
			}
		}
		if _, err := db.applyDelta(ctx, tx, userID, amount, reason, now); err != nil {
			return err
		}
		granted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return granted, nil
}

// Signup enrols the user and credits SignupBonus. Enrolling twice returns
// ErrAlreadyExists. Accounts created by passive activity can still enrol once.
func (db *DB) Signup(ctx context.Context, userID string) (*Account, error) {
	var acct *Account
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		now := db.timestamp()
		current, err := scanAccount(tx.QueryRowContext(ctx, accountQuery, userID))
		if err != nil {
			return fmt.Errorf("failed to read reward account: %w", err)
		}
		if current != nil && current.EnrolledAt != nil {
			return fmt.Errorf("reward account %s: %w", userID, ErrAlreadyExists)
		}
		if current == nil {
			if err := ensureAccount(ctx, tx, userID, db.tiers, now); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE rewards SET enrolled_at = ? WHERE user_id = ?`, now, userID); err != nil {
			return fmt.Errorf("failed to enrol user: %w", err)
		}
		acct, err = db.applyDelta(ctx, tx, userID, SignupBonus, ReasonSignup, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return acct, nil
}

// RecomputeAllTiers rewrites every account's tier from its balance and
// returns how many accounts moved.
func (db *DB) RecomputeAllTiers(ctx context.Context) (int, error) {
	changed := 0
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT user_id, points, loyalty_tier FROM rewards`)
		if err != nil {
			return fmt.Errorf("failed to query reward accounts: %w", err)
		}

		type update struct{ userID, tier string }
		var updates []update
		for rows.Next() {
			var userID, tier string
			var points int
			if err := rows.Scan(&userID, &points, &tier); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan reward account: %w", err)
			}
			if want := TierFor(points, db.tiers); want != tier {
				updates = append(updates, update{userID, want})
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		now := db.timestamp()
		for _, u := range updates {
			if _, err := tx.ExecContext(ctx,
				`UPDATE rewards SET loyalty_tier = ?, updated_at = ? WHERE user_id = ?`,
				u.tier, now, u.userID,
			); err != nil {
				return fmt.Errorf("failed to update tier for %s: %w", u.userID, err)
			}
		}
		changed = len(updates)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// ListTransactions returns the user's most recent balance changes
func (db *DB) ListTransactions(ctx context.Context, userID string, limit int) ([]PointTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT id, user_id, delta, balance_after, reason, created_at
		FROM point_transactions
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := db.conn.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query point transactions: %w", err)
	}
	defer rows.Close()

	var txs []PointTransaction
	for rows.Next() {
		var pt PointTransaction
		if err := rows.Scan(&pt.ID, &pt.UserID, &pt.Delta, &pt.BalanceAfter, &pt.Reason, &pt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan point transaction: %w", err)
		}
		txs = append(txs, pt)
	}
	return txs, rows.Err()
}

// --- Helpers ---

const accountQuery = `
	SELECT user_id, points, loyalty_tier, last_daily, last_activity, enrolled_at, created_at, updated_at
	FROM rewards
	WHERE user_id = ?
`

// withTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// spend deducts cost inside tx, failing with ErrInsufficientBalance when the
// account is missing or short.
func (db *DB) spend(ctx context.Context, tx *sql.Tx, userID string, cost int, reason string) (*Account, error) {
	current, err := scanAccount(tx.QueryRowContext(ctx, accountQuery, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to read reward account: %w", err)
	}
	if current == nil || current.Points < cost {
		have := 0
		if current != nil {
			have = current.Points
		}
		return nil, fmt.Errorf("need %d points, have %d: %w", cost, have, ErrInsufficientBalance)
	}
	return db.applyDelta(ctx, tx, userID, -cost, reason, db.timestamp())
}

// applyDelta changes the balance by delta, recomputes the tier and appends a
// point transaction. A debit that would go negative matches no row.
func (db *DB) applyDelta(ctx context.Context, tx *sql.Tx, userID string, delta int, reason string, now time.Time) (*Account, error) {
	result, err := tx.ExecContext(ctx,
		`UPDATE rewards SET points = points + ?, updated_at = ? WHERE user_id = ? AND points + ? >= 0`,
		delta, now, userID, delta,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update points: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("debit of %d points: %w", -delta, ErrInsufficientBalance)
	}

	var points int
	if err := tx.QueryRowContext(ctx, `SELECT points FROM rewards WHERE user_id = ?`, userID).Scan(&points); err != nil {
		return nil, fmt.Errorf("failed to read balance: %w", err)
	}

	tier := TierFor(points, db.tiers)
	if _, err := tx.ExecContext(ctx, `UPDATE rewards SET loyalty_tier = ? WHERE user_id = ?`, tier, userID); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO point_transactions (user_id, delta, balance_after, reason, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, delta, points, reason, now,
	); err != nil {
		return nil, fmt.Errorf("failed to record point transaction: %w", err)
	}

	acct, err := scanAccount(tx.QueryRowContext(ctx, accountQuery, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload reward account: %w", err)
	}
	return acct, nil
}

func ensureAccount(ctx context.Context, tx *sql.Tx, userID string, tiers []Tier, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO rewards (user_id, points, loyalty_tier, created_at, updated_at) VALUES (?, 0, ?, ?, ?)`,
		userID, TierFor(0, tiers), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reward account: %w", err)
	}
	return nil
}

// scanAccount returns nil, nil when no row matched
func scanAccount(row *sql.Row) (*Account, error) {
	var acct Account
	var lastDaily, lastActivity, enrolledAt sql.NullTime

	err := row.Scan(
		&acct.UserID, &acct.Points, &acct.Tier,
		&lastDaily, &lastActivity, &enrolledAt,
		&acct.CreatedAt, &acct.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastDaily.Valid {
		acct.LastDaily = &lastDaily.Time
	}
	if lastActivity.Valid {
		acct.LastActivity = &lastActivity.Time
	}
	if enrolledAt.Valid {
		acct.EnrolledAt = &enrolledAt.Time
	}
	return &acct, nil
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
