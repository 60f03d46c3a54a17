// Package records owns the students table and raw query execution
package records

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

type Student struct {
	ID              int64
	FirstName       string
	LastName        string
	Age             int
	Major           string
	GPA             float64
	MaritalStatus   string
	EducationStatus string
}

// Store executes SQL against a single SQLite connection. Calls are serialized.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	log *slog.Logger
}

func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &StorageError{Op: "create database directory", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open database", Err: err}
	}

	// an in-memory database lives and dies with its connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StorageError{Op: "ping database", Err: err}
	}

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) CreateSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		age INTEGER NOT NULL,
		major TEXT NOT NULL,
		gpa REAL NOT NULL,
		marital_status TEXT NOT NULL,
		education_status TEXT NOT NULL
	);`

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return &StorageError{Op: "create schema", Err: err}
	}
	return nil
}

// Seed inserts all students in one transaction and returns them with their
// assigned identifiers. A single invalid record rejects the whole batch.
func (s *Store) Seed(ctx context.Context, students []Student) ([]Student, error) {
	for i := range students {
		if err := students[i].Validate(); err != nil {
			return nil, &StorageError{Op: fmt.Sprintf("seed record %d", i+1), Err: err}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &StorageError{Op: "begin seed", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO students (first_name, last_name, age, major, gpa, marital_status, education_status)
	VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, &StorageError{Op: "prepare seed", Err: err}
	}
	defer stmt.Close()

	seeded := make([]Student, 0, len(students))
	for _, st := range students {
		res, err := stmt.ExecContext(ctx, st.FirstName, st.LastName, st.Age, st.Major, st.GPA, st.MaritalStatus, st.EducationStatus)
		if err != nil {
			return nil, &StorageError{Op: "insert student", Err: err}
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, &StorageError{Op: "insert student", Err: err}
		}
		st.ID = id
		seeded = append(seeded, st)
	}

	if err := tx.Commit(); err != nil {
		return nil, &StorageError{Op: "commit seed", Err: err}
	}

	s.log.Debug("seeded students", "count", len(seeded))
	return seeded, nil
}

// Query runs sqlText verbatim and returns every row in engine order.
func (s *Store) Query(ctx context.Context, sqlText string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("executing query", "sql", sqlText)

	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, &QueryError{SQL: sqlText, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{SQL: sqlText, Err: err}
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, &QueryError{SQL: sqlText, Err: err}
		}
		result = append(result, Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{SQL: sqlText, Err: err}
	}

	return result, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

// All returns every student ordered by id.
func (s *Store) All(ctx context.Context) ([]Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
	SELECT id, first_name, last_name, age, major, gpa, marital_status, education_status
	FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.ID, &st.FirstName, &st.LastName, &st.Age, &st.Major, &st.GPA, &st.MaritalStatus, &st.EducationStatus); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
