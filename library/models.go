package library

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Category decides how long a book may stay out on loan.
type Category int

const (
	CategoryTextbook Category = iota
	CategoryNovel
	CategoryReference
)

// loanPeriods maps each category to its loan period.
var loanPeriods = map[Category]time.Duration{
	CategoryTextbook:  14 * 24 * time.Hour,
	CategoryNovel:     21 * 24 * time.Hour,
	CategoryReference: 7 * 24 * time.Hour,
}

// LoanPeriod returns how long a book of this category may be kept out.
func (c Category) LoanPeriod() time.Duration { return loanPeriods[c] }

func (c Category) String() string {
	switch c {
	case CategoryTextbook:
		return "textbook"
	case CategoryNovel:
		return "novel"
	case CategoryReference:
		return "reference"
	}
	return "unknown"
}

// ParseCategory converts the stored form back into a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "textbook":
		return CategoryTextbook, nil
	case "novel":
		return CategoryNovel, nil
	case "reference":
		return CategoryReference, nil
	}
	return 0, fmt.Errorf("unknown book category %q", s)
}

// Role decides how many books a person may have out at once.
type Role int

const (
	RoleBorrower Role = iota
	RoleStaff
)

// borrowLimits maps each role to its simultaneous-loan ceiling.
var borrowLimits = map[Role]int{
	RoleBorrower: 3,
	RoleStaff:    10,
}

// BorrowLimit returns the maximum number of simultaneously active loans.
func (r Role) BorrowLimit() int { return borrowLimits[r] }

func (r Role) String() string {
	if r == RoleStaff {
		return "staff"
	}
	return "borrower"
}

// ParseRole converts the stored form back into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "borrower":
		return RoleBorrower, nil
	case "staff":
		return RoleStaff, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Book is a single physical copy in the catalog. Issued is true exactly
// while one active loan references the book.
type Book struct {
	ID       string
	Title    string
	Author   string
	Subject  string
	Category Category
	Issued   bool
}

// Person is a registered library user, borrower or staff. PasswordHash
// holds the bcrypt credential for staff accounts; circulation rules never
// look at it.
type Person struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         Role
	PasswordHash string
}

// Loan tracks one book checked out to one borrower. Entities are referenced
// by ID so the loan survives catalog removal of its book; Period snapshots
// the category policy at issue time for the same reason.
type Loan struct {
	ID         uuid.UUID
	BorrowerID string
	BookID     string
	StaffID    string
	IssuedAt   time.Time
	DueAt      time.Time
	ReturnedAt time.Time
	Period     time.Duration
}

// Overdue reports whether the loan is still open past its due date,
// evaluated against the wall clock.
func (l *Loan) Overdue() bool {
	return l.ReturnedAt.IsZero() && time.Now().After(l.DueAt)
}

// HoldRequest is a borrower's reservation for a book that is currently out.
type HoldRequest struct {
	BorrowerID  string
	BookID      string
	RequestedAt time.Time
}
