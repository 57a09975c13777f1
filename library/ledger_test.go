package library

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLoanPeriods(t *testing.T) {
	cases := []struct {
		category Category
		days     int
	}{
		{CategoryTextbook, 14},
		{CategoryNovel, 21},
		{CategoryReference, 7},
	}
	for _, tt := range cases {
		if got := tt.category.LoanPeriod(); got != time.Duration(tt.days)*24*time.Hour {
			t.Fatalf("%s: want %d days, got %v", tt.category, tt.days, got)
		}
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range []Category{CategoryTextbook, CategoryNovel, CategoryReference} {
		parsed, err := ParseCategory(c.String())
		if err != nil || parsed != c {
			t.Fatalf("category %v does not round-trip", c)
		}
	}
	if _, err := ParseCategory("comic"); err == nil {
		t.Fatalf("unknown category should error")
	}
	for _, r := range []Role{RoleBorrower, RoleStaff} {
		parsed, err := ParseRole(r.String())
		if err != nil || parsed != r {
			t.Fatalf("role %v does not round-trip", r)
		}
	}
}

func TestLedgerOpenClose(t *testing.T) {
	lg := NewLedger()
	borrower := &Person{ID: "BOR-0001", Role: RoleBorrower}
	staff := &Person{ID: "STF-0001", Role: RoleStaff}
	book := &Book{ID: "BK-001", Category: CategoryNovel}

	loan := lg.Open(borrower, book, staff)
	if loan.ID == uuid.Nil {
		t.Fatalf("open should assign a loan ID")
	}
	if want := loan.IssuedAt.Add(21 * 24 * time.Hour); !loan.DueAt.Equal(want) {
		t.Fatalf("due date: want %v, got %v", want, loan.DueAt)
	}
	if _, ok := lg.ActiveForBook("BK-001"); !ok {
		t.Fatalf("loan should be active after open")
	}

	lg.Close(loan)
	if loan.ReturnedAt.IsZero() {
		t.Fatalf("close must stamp the return time")
	}
	if _, ok := lg.ActiveForBook("BK-001"); ok {
		t.Fatalf("closed loan must leave the active set")
	}
	if len(lg.ActiveForBorrower("BOR-0001")) != 0 {
		t.Fatalf("closed loans are not retained")
	}
}

func TestLedgerRenew(t *testing.T) {
	lg := NewLedger()
	loan := lg.Open(&Person{ID: "B"}, &Book{ID: "BK", Category: CategoryReference}, &Person{ID: "S"})

	due, ok := lg.Renew(loan)
	if !ok {
		t.Fatalf("healthy loan should renew")
	}
	if want := loan.IssuedAt.Add(2 * 7 * 24 * time.Hour); !due.Equal(want) {
		t.Fatalf("renewal should extend by one period: want %v, got %v", want, due)
	}

	loan.DueAt = time.Now().Add(-time.Hour)
	before := loan.DueAt
	if _, ok := lg.Renew(loan); ok {
		t.Fatalf("overdue loan must not renew")
	}
	if !loan.DueAt.Equal(before) {
		t.Fatalf("refused renewal must not mutate the due date")
	}
}

func TestLedgerOverdue(t *testing.T) {
	lg := NewLedger()
	a := lg.Open(&Person{ID: "B1"}, &Book{ID: "BK-1", Category: CategoryTextbook}, &Person{ID: "S"})
	lg.Open(&Person{ID: "B2"}, &Book{ID: "BK-2", Category: CategoryTextbook}, &Person{ID: "S"})

	if len(lg.Overdue()) != 0 {
		t.Fatalf("fresh loans are not overdue")
	}

	a.DueAt = time.Now().Add(-48 * time.Hour)
	overdue := lg.Overdue()
	if len(overdue) != 1 || overdue[0].BookID != "BK-1" {
		t.Fatalf("overdue should report exactly the past-due loan")
	}

	// A closed loan is never overdue, whatever its due date was.
	lg.Close(a)
	if a.Overdue() {
		t.Fatalf("returned loan must not count as overdue")
	}
	if len(lg.Overdue()) != 0 {
		t.Fatalf("overdue is computed over active loans only")
	}
}
