package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var PostgresDB *sql.DB

// ConnectPostgres opens the PostgreSQL pool and waits for the database to
// accept connections, pinging once per second until waitTimeout elapses.
// The wait is a startup gate only; request-time failures are not retried.
func ConnectPostgres(postgresURI string, waitTimeout time.Duration, log *zap.Logger) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	if err := waitForPing(PostgresDB, waitTimeout, time.Second, log); err != nil {
		return err
	}
	log.Info("connected to PostgreSQL")

	return InitPostgresTables()
}

// waitForPing pings db once per interval until it answers or waitTimeout
// elapses, returning the last ping error on timeout.
func waitForPing(db *sql.DB, waitTimeout, interval time.Duration, log *zap.Logger) error {
	deadline := time.Now().Add(waitTimeout)
	for {
		err := db.Ping()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		log.Info("database not yet available, waiting", zap.Error(err))
		time.Sleep(interval)
	}
}

// InitPostgresTables creates all necessary tables if they don't exist.
func InitPostgresTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			is_superuser BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		// One token per user, reused across logins
		`CREATE TABLE IF NOT EXISTS tokens (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			token VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS tags (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS recipes (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			time_minutes INTEGER NOT NULL,
			price NUMERIC(5,2) NOT NULL,
			link TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_tags (
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (recipe_id, tag_id)
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id UUID NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id UUID NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			PRIMARY KEY (recipe_id, ingredient_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_token ON tokens(token)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_user_id ON tokens(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tags_user_id ON tags(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ingredients_user_id ON ingredients(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_recipe_id ON recipe_tags(recipe_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe_id ON recipe_ingredients(recipe_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// DisconnectPostgres closes the PostgreSQL connection.
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
