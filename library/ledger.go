package library

import (
	"time"

	"github.com/google/uuid"
)

// Ledger holds the currently active loans. Closed loans are dropped, so
// every query over the ledger reflects open circulation only.
type Ledger struct {
	active []*Loan
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Open creates a loan due one loan period from now and adds it to the
// active set. Eligibility checks are the caller's responsibility.
func (lg *Ledger) Open(borrower *Person, book *Book, staff *Person) *Loan {
	now := time.Now()
	period := book.Category.LoanPeriod()
	loan := &Loan{
		ID:         uuid.New(),
		BorrowerID: borrower.ID,
		BookID:     book.ID,
		StaffID:    staff.ID,
		IssuedAt:   now,
		DueAt:      now.Add(period),
		Period:     period,
	}
	lg.active = append(lg.active, loan)
	return loan
}

// Close stamps the return time and removes the loan from the active set.
func (lg *Ledger) Close(loan *Loan) {
	loan.ReturnedAt = time.Now()
	for i, l := range lg.active {
		if l == loan {
			lg.active = append(lg.active[:i], lg.active[i+1:]...)
			break
		}
	}
}

// Renew extends the due date by one loan period and returns the new due
// date. An overdue loan is refused with no mutation.
func (lg *Ledger) Renew(loan *Loan) (time.Time, bool) {
	if loan.Overdue() {
		return time.Time{}, false
	}
	loan.DueAt = loan.DueAt.Add(loan.Period)
	return loan.DueAt, true
}

// ActiveForBook returns the loan currently out against the book, if any.
func (lg *Ledger) ActiveForBook(bookID string) (*Loan, bool) {
	for _, l := range lg.active {
		if l.BookID == bookID {
			return l, true
		}
	}
	return nil, false
}

// ActiveForBorrower returns all loans the borrower currently has open.
func (lg *Ledger) ActiveForBorrower(borrowerID string) []*Loan {
	var loans []*Loan
	for _, l := range lg.active {
		if l.BorrowerID == borrowerID {
			loans = append(loans, l)
		}
	}
	return loans
}

// Overdue returns every active loan past its due date, judged against the
// wall clock at call time.
func (lg *Ledger) Overdue() []*Loan {
	var loans []*Loan
	for _, l := range lg.active {
		if l.Overdue() {
			loans = append(loans, l)
		}
	}
	return loans
}
