package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SeedStore is a SQLite-backed fixture catalog: book and person records
// used to seed an engine for a session. Circulation state (loans, holds)
// is never written here; it lives and dies with the process.
type SeedStore struct {
	db *sql.DB

	putBookStmt   *sql.Stmt
	putPersonStmt *sql.Stmt
}

// OpenSeedStore opens (or creates) the SQLite database at dbPath, applies
// schema migrations, and prepares common statements.
func OpenSeedStore(dbPath string) (*SeedStore, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	store := &SeedStore{db: db}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases prepared statements and closes the DB.
func (s *SeedStore) Close() error {
	if s.putBookStmt != nil {
		s.putBookStmt.Close()
	}
	if s.putPersonStmt != nil {
		s.putPersonStmt.Close()
	}
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            subject TEXT NOT NULL,
            category TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS people (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            password_hash TEXT NOT NULL DEFAULT ''
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (s *SeedStore) prepareStatements() error {
	var err error
	upsertBook := `INSERT INTO books(id,title,author,subject,category) VALUES(?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET title=excluded.title, author=excluded.author,
        subject=excluded.subject, category=excluded.category`
	if s.putBookStmt, err = s.db.Prepare(upsertBook); err != nil {
		return err
	}
	upsertPerson := `INSERT INTO people(id,name,email,phone,role,password_hash) VALUES(?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email,
        phone=excluded.phone, role=excluded.role, password_hash=excluded.password_hash`
	if s.putPersonStmt, err = s.db.Prepare(upsertPerson); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// CRUD helpers
// ---------------------------------------------------------------------------

// PutBook upserts one book record.
func (s *SeedStore) PutBook(b *Book) error {
	_, err := s.putBookStmt.Exec(b.ID, b.Title, b.Author, b.Subject, b.Category.String())
	return err
}

// PutPerson upserts one person record.
func (s *SeedStore) PutPerson(p *Person) error {
	_, err := s.putPersonStmt.Exec(p.ID, p.Name, p.Email, p.Phone, p.Role.String(), p.PasswordHash)
	return err
}

// Save writes every record in one transaction.
func (s *SeedStore) Save(books []*Book, people []*Person) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	bookStmt := tx.Stmt(s.putBookStmt)
	for _, b := range books {
		if _, err := bookStmt.Exec(b.ID, b.Title, b.Author, b.Subject, b.Category.String()); err != nil {
			return fmt.Errorf("save book %s: %w", b.ID, err)
		}
	}
	personStmt := tx.Stmt(s.putPersonStmt)
	for _, p := range people {
		if _, err := personStmt.Exec(p.ID, p.Name, p.Email, p.Phone, p.Role.String(), p.PasswordHash); err != nil {
			return fmt.Errorf("save person %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Books returns all stored book records ordered by ID.
func (s *SeedStore) Books() ([]*Book, error) {
	rows, err := s.db.Query(`SELECT id,title,author,subject,category FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		var b Book
		var category string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Subject, &category); err != nil {
			return nil, err
		}
		if b.Category, err = ParseCategory(category); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}

// People returns all stored person records ordered by ID.
func (s *SeedStore) People() ([]*Person, error) {
	rows, err := s.db.Query(`SELECT id,name,email,phone,role,password_hash FROM people ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*Person
	for rows.Next() {
		var p Person
		var role string
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &role, &p.PasswordHash); err != nil {
			return nil, err
		}
		if p.Role, err = ParseRole(role); err != nil {
			return nil, err
		}
		people = append(people, &p)
	}
	return people, rows.Err()
}

// LoadInto seeds an engine with every stored book and person. All books
// start available; loans and holds never round-trip through the store.
func (s *SeedStore) LoadInto(e *Engine) error {
	books, err := s.Books()
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	people, err := s.People()
	if err != nil {
		return fmt.Errorf("load people: %w", err)
	}
	for _, b := range books {
		e.AddBook(b)
	}
	for _, p := range people {
		if p.Role == RoleStaff {
			e.RegisterStaff(p)
		} else {
			e.RegisterBorrower(p)
		}
	}
	return nil
}
