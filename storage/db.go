package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/cusloyola/CAPSTONE-sub000/models"
)

var db *sql.DB

// InitDB opens the PostgreSQL connection the engines run against.
func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Pool sized for a small estimation office, not a public API.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// SaveSession stores a new session for a user. When allowMultipleSessions is
// false every existing session of the user is dropped first, so only one
// device stays logged in.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		if _, err := db.Exec(`DELETE FROM sessions WHERE user_id = $1`, session.UserID); err != nil {
			return fmt.Errorf("failed to delete existing user sessions: %v", err)
		}
	}

	insertQuery := `INSERT INTO sessions (user_id, session_id, host_name, ip_address, expires_at, created_at)
                    VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.Exec(insertQuery, session.UserID, session.SessionID, session.HostName, session.IPAddress, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %v", err)
	}
	return nil
}

// GetSessionBySessionID looks up one session row.
func GetSessionBySessionID(db *sql.DB, sessionID string) (*models.Session, error) {
	query := `SELECT session_id, user_id, host_name, ip_address, expires_at, created_at FROM sessions WHERE session_id = $1`

	var session models.Session
	err := db.QueryRow(query, sessionID).Scan(
		&session.SessionID, &session.UserID, &session.HostName, &session.IPAddress, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %v", err)
	}
	return &session, nil
}

// GetUserByEmail fetches the account row used by the login handler.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT id, email, password, first_name, last_name, role, created_at FROM users WHERE email = $1`

	var user models.User
	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	return &user, nil
}

// DeleteSession logs a session out.
func DeleteSession(db *sql.DB, sessionID string) error {
	result, err := db.Exec(`DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}
