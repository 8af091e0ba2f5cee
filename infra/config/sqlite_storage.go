package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mstgnz/checkout/infra/logger"

	_ "github.com/mattn/go-sqlite3"
)

// ErrProjectNotFound is returned when no project is stored under a name
var ErrProjectNotFound = errors.New("project not found")

// Project holds the merchant credentials of one Paysera project
type Project struct {
	Name      string    `json:"name" validate:"required,max=64,slug"`
	ProjectID int       `json:"project_id" validate:"required,gt=0"`
	Password  string    `json:"-" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectStore persists merchant projects in SQLite
type ProjectStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// retryOperation executes a database operation with retry logic for SQLITE_BUSY errors
func (s *ProjectStore) retryOperation(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if !isBusy(err) {
			return err
		}

		lastErr = err
		if attempt < maxRetries {
			// 10ms, 20ms, 40ms
			backoff := time.Duration(10*(1<<attempt)) * time.Millisecond
			logger.Debug("SQLite busy, retrying", logger.LogContext{
				Fields: map[string]any{"backoff": backoff.String(), "attempt": attempt + 1},
			})
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("operation failed after %d retries, last error: %w", maxRetries+1, lastErr)
}

func isBusy(err error) bool {
	return strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked")
}

// NewProjectStore opens (or creates) the SQLite database at dbPath
func NewProjectStore(dbPath string) (*ProjectStore, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_timeout=20000&_txlock=immediate", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}

	store := &ProjectStore{
		db:   db,
		path: dbPath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("Project store initialized", logger.LogContext{
		Fields: map[string]any{"path": dbPath},
	})
	return store, nil
}

func (s *ProjectStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		project_id INTEGER NOT NULL,
		password TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(query)
	return err
}

// SaveProject inserts a project or replaces the credentials of an existing one
func (s *ProjectStore) SaveProject(ctx context.Context, p Project) error {
	if err := App().Validator.Struct(p); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	return s.retryOperation(func() error {
		query := `
		INSERT INTO projects (name, project_id, password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name)
		DO UPDATE SET
			project_id = excluded.project_id,
			password = excluded.password,
			updated_at = excluded.updated_at
		`

		if _, err := s.db.ExecContext(ctx, query, p.Name, p.ProjectID, p.Password, now, now); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		return nil
	}, 3)
}

// GetProject loads a project by name
func (s *ProjectStore) GetProject(ctx context.Context, name string) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p Project
	err := s.retryOperation(func() error {
		query := `
		SELECT name, project_id, password, created_at, updated_at
		FROM projects
		WHERE name = ?
		`

		err := s.db.QueryRowContext(ctx, query, name).
			Scan(&p.Name, &p.ProjectID, &p.Password, &p.CreatedAt, &p.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("failed to load project: %w", err)
		}
		return nil
	}, 3)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProjects returns every stored project ordered by name
func (s *ProjectStore) ListProjects(ctx context.Context) ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var projects []Project
	err := s.retryOperation(func() error {
		rows, err := s.db.QueryContext(ctx, `
		SELECT name, project_id, password, created_at, updated_at
		FROM projects
		ORDER BY name
		`)
		if err != nil {
			return fmt.Errorf("failed to query projects: %w", err)
		}
		defer rows.Close()

		projects = projects[:0]
		for rows.Next() {
			var p Project
			if err := rows.Scan(&p.Name, &p.ProjectID, &p.Password, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			projects = append(projects, p)
		}

		return rows.Err()
	}, 3)
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// DeleteProject removes a project by name
func (s *ProjectStore) DeleteProject(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.retryOperation(func() error {
		result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, name)
		if err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
		}
		return nil
	}, 3)
}

// Ping checks the database connection
func (s *ProjectStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *ProjectStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
