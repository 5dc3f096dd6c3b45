package database

import (
	"database/sql"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
-- Reward accounts, one per Discord user
CREATE TABLE IF NOT EXISTS rewards (
	user_id TEXT PRIMARY KEY,
	points INTEGER NOT NULL DEFAULT 0 CHECK(points >= 0),
	loyalty_tier TEXT NOT NULL DEFAULT 'Flirty Bronze',
	last_daily TIMESTAMP,
	last_activity TIMESTAMP,
	enrolled_at TIMESTAMP,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Every balance change, newest rows last
CREATE TABLE IF NOT EXISTS point_transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	delta INTEGER NOT NULL,
	balance_after INTEGER NOT NULL,
	reason TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_point_tx_user ON point_transactions(user_id, id);

-- Customer orders
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	item TEXT NOT NULL,
	quantity INTEGER NOT NULL CHECK(quantity > 0),
	status TEXT NOT NULL DEFAULT 'Pending',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, id);

-- Partner-submitted catalog entries
CREATE TABLE IF NOT EXISTS vendor_rewards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor_id TEXT NOT NULL,
	name TEXT NOT NULL,
	points_cost INTEGER NOT NULL CHECK(points_cost > 0),
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

-- Redemption log for staff follow-up
CREATE TABLE IF NOT EXISTS redemptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	entry_key TEXT NOT NULL,
	entry_name TEXT NOT NULL,
	cost INTEGER NOT NULL,
	balance_after INTEGER NOT NULL,
	voucher_code TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_redemptions_created ON redemptions(created_at);

-- Complaints, suggestions and reviews
CREATE TABLE IF NOT EXISTS feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL CHECK(kind IN ('complaint', 'suggestion', 'review')),
	user_id TEXT NOT NULL,
	body TEXT NOT NULL,
	rating INTEGER CHECK(rating IS NULL OR (rating BETWEEN 1 AND 5)),
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_kind ON feedback(kind, id);

-- Audit log
CREATE TABLE IF NOT EXISTS audit_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	action TEXT NOT NULL,
	user_id TEXT NOT NULL,
	timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	details TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_user ON audit_log(user_id);

-- Guild settings (per-server configuration)
CREATE TABLE IF NOT EXISTS guild_settings (
	guild_id TEXT PRIMARY KEY,
	admin_role_id TEXT,
	vendor_role_id TEXT,
	configured_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	configured_by TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type DB struct {
	conn  *sql.DB
	now   func() time.Time
	loc   *time.Location
	bonus func() int
	tiers []Tier
}

// Option configures a DB at construction time.
type Option func(*DB)

// WithClock overrides the time source used for timestamps and daily claims.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// WithLocation sets the time zone that defines a calendar day for daily claims.
func WithLocation(loc *time.Location) Option {
	return func(db *DB) {
		if loc != nil {
			db.loc = loc
		}
	}
}

// WithDailyBonus sets the inclusive range of the daily claim bonus.
func WithDailyBonus(min, max int) Option {
	return func(db *DB) {
		if min < 1 || max < min {
			return
		}
		db.bonus = func() int { return min + rand.IntN(max-min+1) }
	}
}

// WithTiers replaces the loyalty tier table. Tiers must be sorted by threshold.
func WithTiers(tiers []Tier) Option {
	return func(db *DB) {
		if len(tiers) > 0 {
			db.tiers = tiers
		}
	}
}

// New creates a new database connection and initializes the schema
func New(dbPath string, opts ...Option) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Initialize schema
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	db := &DB{
		conn:  conn,
		now:   time.Now,
		loc:   time.Local,
		tiers: DefaultTiers,
	}
	WithDailyBonus(1, 40)(db)
	for _, opt := range opts {
		opt(db)
	}

	return db, nil
}

// dsn builds the connection string. Every pooled connection gets the busy
// timeout and foreign keys, and every transaction takes the write lock at BEGIN.
func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_txlock=immediate&_busy_timeout=5000&_foreign_keys=on"
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Tiers returns the loyalty tier table in ascending threshold order.
func (db *DB) Tiers() []Tier {
	return db.tiers
}

func (db *DB) timestamp() time.Time {
	return db.now().UTC()
}

// Account is a user's reward account
type Account struct {
	UserID       string
	Points       int
	Tier         string
	LastDaily    *time.Time
	LastActivity *time.Time
	EnrolledAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PointTransaction records a single balance change
type PointTransaction struct {
	ID           int
	UserID       string
	Delta        int
	BalanceAfter int
	Reason       string
	CreatedAt    time.Time
}

// Order represents a customer order
type Order struct {
	ID        int
	UserID    string
	Item      string
	Quantity  int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogEntry is a redeemable reward, either built in or vendor submitted
type CatalogEntry struct {
	Key         string
	Name        string
	Cost        int
	Description string
	Emoji       string
	// Vendor entries only
	VendorEntryID int
	VendorID      string
	CreatedAt     time.Time
}

// Redemption represents a logged catalog redemption
type Redemption struct {
	ID           int
	UserID       string
	EntryKey     string
	EntryName    string
	Cost         int
	BalanceAfter int
	VoucherCode  string
	CreatedAt    time.Time
	// Populated by Redeem
	Tier string
}

// Feedback is a complaint, suggestion or review
type Feedback struct {
	ID        int
	Kind      string
	UserID    string
	Body      string
	Rating    *int
	CreatedAt time.Time
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID        int
	Action    string
	UserID    string
	Timestamp time.Time
	Details   string
}
