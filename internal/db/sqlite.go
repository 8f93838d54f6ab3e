package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/speech-subs/backend/internal/auth"
	"github.com/speech-subs/backend/internal/db/models"
)

// FreeConversionLimit is how many conversions a non-admin account gets.
const FreeConversionLimit = 2

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		conversions_used INTEGER NOT NULL DEFAULT 0,
		last_conversion_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

// CreateUser adds an account with a bcrypt-hashed password.
func (d *Database) CreateUser(username, password, role string) (int64, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	result, err := d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, ?)",
		username, hash, role,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	return d.scanUser(d.db.QueryRow(
		"SELECT id, username, password, role, conversions_used, last_conversion_at, created_at, updated_at FROM users WHERE username = ?",
		username,
	))
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	return d.scanUser(d.db.QueryRow(
		"SELECT id, username, password, role, conversions_used, last_conversion_at, created_at, updated_at FROM users WHERE id = ?",
		id,
	))
}

func (d *Database) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var lastConversion sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.ConversionsUsed, &lastConversion, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastConversion.Valid {
		u.LastConversionAt = &lastConversion.Time
	}
	return u, nil
}

// CanConvert reports whether the user may start another conversion.
// Admins are unlimited; everyone else gets FreeConversionLimit.
func (d *Database) CanConvert(u *models.User) bool {
	if u.Role == "admin" {
		return true
	}
	return u.ConversionsUsed < FreeConversionLimit
}

// IncrementUsage records one completed conversion for the user. The
// read-modify-write runs inside a transaction so concurrent completions
// cannot lose an increment.
func (d *Database) IncrementUsage(userID int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE users SET conversions_used = conversions_used + 1, last_conversion_at = ?, updated_at = ? WHERE id = ?",
		time.Now(), time.Now(), userID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Database) Close() error {
	return d.db.Close()
}
