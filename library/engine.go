package library

import (
	"sync"
	"time"
)

// Engine composes the catalog, the user directory, the hold queue, and the
// loan ledger into the circulation service. Business-rule violations are
// reported as boolean results, never as errors; each call runs under one
// mutex so no caller observes partial state.
type Engine struct {
	mu      sync.Mutex
	catalog *Catalog
	users   *Directory
	holds   *HoldQueue
	loans   *Ledger
}

// NewEngine builds an engine with empty stores.
func NewEngine() *Engine {
	return &Engine{
		catalog: NewCatalog(),
		users:   NewDirectory(),
		holds:   NewHoldQueue(),
		loans:   NewLedger(),
	}
}

// ------------------ Catalog pass-throughs ------------------

// AddBook inserts or overwrites a catalog record.
func (e *Engine) AddBook(b *Book) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog.Add(b)
}

// RemoveBook deletes the catalog record and returns it. An active loan on
// the book is left in place and keeps its snapshot of the loan period.
func (e *Engine) RemoveBook(bookID string) (*Book, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Remove(bookID)
}

// FindBook looks up a book by ID.
func (e *Engine) FindBook(bookID string) (*Book, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Find(bookID)
}

// SearchBooks matches keyword against titles, authors, and exact IDs.
func (e *Engine) SearchBooks(keyword string) []*Book {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.Search(keyword)
}

// ListBooks returns the whole catalog in catalog order.
func (e *Engine) ListBooks() []*Book {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.All()
}

// ------------------ Directory pass-throughs ------------------

// RegisterBorrower adds a person with the borrower role.
func (e *Engine) RegisterBorrower(p *Person) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.users.RegisterBorrower(p)
}

// RegisterStaff adds a person with the staff role.
func (e *Engine) RegisterStaff(p *Person) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.users.RegisterStaff(p)
}

// FindUser looks up a person by ID.
func (e *Engine) FindUser(id string) (*Person, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.users.Find(id)
}

// ListUsers returns everyone registered, borrowers and staff.
func (e *Engine) ListUsers() []*Person {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.users.All()
}

// CountUsers reports how many people carry the given role.
func (e *Engine) CountUsers(role Role) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.users.CountByRole(role)
}

// SetStaffPassword stores a bcrypt credential for a staff account. Only the
// CLI consults it; no circulation rule depends on a password.
func (e *Engine) SetStaffPassword(staffID, password string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.users.SetPassword(staffID, password)
}

// AuthenticateStaff verifies a staff password.
func (e *Engine) AuthenticateStaff(staffID, password string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.users.Authenticate(staffID, password)
}

// ------------------ Circulation ------------------

// IssueBook lends a book to a borrower, processed by a staff member. Every
// precondition must pass before anything mutates:
//
//  1. borrower exists and has the borrower role
//  2. staff exists and has the staff role
//  3. the book exists and is not already issued
//  4. the borrower is below their role's active-loan limit
//  5. if the book has pending holds, the borrower heads the queue
//
// On success the ledger opens a loan, the book is marked issued, and the
// borrower's hold on this book (if any) leaves the queue.
func (e *Engine) IssueBook(borrowerID, bookID, staffID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	borrower, ok := e.users.Find(borrowerID)
	if !ok || borrower.Role != RoleBorrower {
		return false
	}
	staff, ok := e.users.Find(staffID)
	if !ok || staff.Role != RoleStaff {
		return false
	}
	book, ok := e.catalog.Find(bookID)
	if !ok || book.Issued {
		return false
	}
	if len(e.loans.ActiveForBorrower(borrowerID)) >= borrower.Role.BorrowLimit() {
		return false
	}
	if holds := e.holds.ForBook(bookID); len(holds) > 0 && holds[0].BorrowerID != borrowerID {
		return false
	}

	e.loans.Open(borrower, book, staff)
	book.Issued = true
	e.holds.RemoveIfMatches(borrowerID, bookID)
	return true
}

// ReturnBook closes the active loan on the book and makes it available
// again. The hold queue is not consulted here; the next IssueBook call
// enforces queue-head priority.
func (e *Engine) ReturnBook(bookID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	book, ok := e.catalog.Find(bookID)
	if !ok || !book.Issued {
		return false
	}
	loan, ok := e.loans.ActiveForBook(bookID)
	if !ok {
		return false
	}
	e.loans.Close(loan)
	book.Issued = false
	return true
}

// RenewLoan extends the due date of the borrower's active loan on the book
// by one loan period. Fails when no such loan exists or it is overdue.
func (e *Engine) RenewLoan(borrowerID, bookID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	loan, ok := e.loans.ActiveForBook(bookID)
	if !ok || loan.BorrowerID != borrowerID {
		return false
	}
	_, ok = e.loans.Renew(loan)
	return ok
}

// PlaceHold queues a reservation. Holds are only accepted against books
// that are currently out: reserving an available copy is refused.
func (e *Engine) PlaceHold(borrowerID, bookID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	borrower, ok := e.users.Find(borrowerID)
	if !ok || borrower.Role != RoleBorrower {
		return false
	}
	book, ok := e.catalog.Find(bookID)
	if !ok || !book.Issued {
		return false
	}
	e.holds.Append(borrowerID, bookID)
	return true
}

// HoldsForBook lists the pending requests for a book in request order.
func (e *Engine) HoldsForBook(bookID string) []*HoldRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.holds.ForBook(bookID)
}

// ------------------ Reports ------------------

// OverdueLoans returns every active loan past due as of now.
func (e *Engine) OverdueLoans() []*Loan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loans.Overdue()
}

// UserLoanHistory returns the borrower's loans. Closed loans are not
// retained anywhere, so the history covers active loans only.
func (e *Engine) UserLoanHistory(borrowerID string) []*Loan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loans.ActiveForBorrower(borrowerID)
}

// LoanFor returns the active loan on a book, for display.
func (e *Engine) LoanFor(bookID string) (*Loan, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loans.ActiveForBook(bookID)
}

// DueIn formats how much time remains on a loan relative to now, negative
// when overdue.
func DueIn(l *Loan) time.Duration {
	return time.Until(l.DueAt)
}
