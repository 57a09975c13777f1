package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"library-circulation/library"
)

// session drives one interactive circulation sitting. It owns the engine
// and the auto-ID counters; everything it prints comes from engine results.
type session struct {
	engine *library.Engine
	sc     *bufio.Scanner
	logger *zap.Logger

	bookSeq     int
	borrowerSeq int
	staffSeq    int
}

func runRepl(cfg config, logger *zap.Logger) error {
	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	s := &session{
		engine: engine,
		sc:     bufio.NewScanner(os.Stdin),
		logger: logger,
		// Counters pick up where the seeded stores left off.
		bookSeq:     len(engine.ListBooks()),
		borrowerSeq: engine.CountUsers(library.RoleBorrower),
		staffSeq:    engine.CountUsers(library.RoleStaff),
	}
	s.run()
	return nil
}

func (s *session) run() {
	fmt.Println("Welcome to the library circulation desk!")
	fmt.Println("Available commands:")
	fmt.Println("  Catalog: add book, remove book, search book, list books")
	fmt.Println("  Users: add borrower, add staff, list users")
	fmt.Println("  Circulation: issue, return, renew, hold, list holds")
	fmt.Println("  Reports: overdue, history")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(s.sc.Text())

		switch cmd {
		case "add book":
			s.handleAddBook()
		case "remove book":
			s.handleRemoveBook()
		case "search book":
			s.handleSearchBooks()
		case "list books":
			s.handleListBooks()
		case "add borrower":
			s.handleAddBorrower()
		case "add staff":
			s.handleAddStaff()
		case "list users":
			s.handleListUsers()
		case "issue":
			s.handleIssue()
		case "return":
			s.handleReturn()
		case "renew":
			s.handleRenew()
		case "hold":
			s.handleHold()
		case "list holds":
			s.handleListHolds()
		case "overdue":
			s.handleOverdue()
		case "history":
			s.handleHistory()
		case "exit":
			fmt.Println("Goodbye!")
			return
		case "":
			continue
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

// prompt reads one trimmed line after printing a label.
func (s *session) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// readPassword reads a password with terminal echo disabled.
func readPassword(label string) (string, error) {
	fmt.Print(label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// ------------------ Catalog handlers ------------------

func (s *session) handleAddBook() {
	title, ok := s.prompt("Title: ")
	if !ok {
		return
	}
	author, ok := s.prompt("Author: ")
	if !ok {
		return
	}
	subject, ok := s.prompt("Subject: ")
	if !ok {
		return
	}
	categoryStr, ok := s.prompt("Category (textbook/novel/reference): ")
	if !ok {
		return
	}
	category, err := library.ParseCategory(categoryStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	s.bookSeq++
	book := &library.Book{
		ID:       fmt.Sprintf("BK-%03d", s.bookSeq),
		Title:    title,
		Author:   author,
		Subject:  subject,
		Category: category,
	}
	s.engine.AddBook(book)
	s.logger.Debug("book added", zap.String("id", book.ID))
	fmt.Printf("Added book '%s' with ID %s (%s, %d-day loans)\n",
		book.Title, book.ID, book.Category, int(book.Category.LoanPeriod().Hours())/24)
}

func (s *session) handleRemoveBook() {
	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	removed, ok := s.engine.RemoveBook(bookID)
	if !ok {
		fmt.Printf("No book with ID %s was found\n", bookID)
		return
	}
	fmt.Printf("Removed '%s'\n", removed.Title)
}

func (s *session) handleSearchBooks() {
	query, ok := s.prompt("Query: ")
	if !ok {
		return
	}
	books := s.engine.SearchBooks(query)
	if len(books) == 0 {
		fmt.Printf("No books found matching '%s'.\n", query)
		return
	}
	fmt.Printf("Found %d book(s) matching '%s':\n", len(books), query)
	printBookTable(s.engine, books)
}

func (s *session) handleListBooks() {
	books := s.engine.ListBooks()
	if len(books) == 0 {
		fmt.Println("No books in library.")
		return
	}
	printBookTable(s.engine, books)
}

// ------------------ User handlers ------------------

func (s *session) handleAddBorrower() {
	name, ok := s.prompt("Name: ")
	if !ok {
		return
	}
	email, ok := s.prompt("Email: ")
	if !ok {
		return
	}
	phone, ok := s.prompt("Phone: ")
	if !ok {
		return
	}

	s.borrowerSeq++
	p := &library.Person{
		ID:    fmt.Sprintf("BOR-%04d", s.borrowerSeq),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	s.engine.RegisterBorrower(p)
	fmt.Printf("Registered borrower '%s' with ID %s\n", p.Name, p.ID)
}

func (s *session) handleAddStaff() {
	name, ok := s.prompt("Name: ")
	if !ok {
		return
	}
	email, ok := s.prompt("Email: ")
	if !ok {
		return
	}

	s.staffSeq++
	p := &library.Person{
		ID:    fmt.Sprintf("STF-%04d", s.staffSeq),
		Name:  name,
		Email: email,
	}
	s.engine.RegisterStaff(p)

	password, err := readPassword(fmt.Sprintf("Set password for %s: ", name))
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if password != "" {
		if err := s.engine.SetStaffPassword(p.ID, password); err != nil {
			fmt.Printf("Error setting password: %v\n", err)
			return
		}
	}
	fmt.Printf("Registered staff '%s' with ID %s\n", p.Name, p.ID)
}

func (s *session) handleListUsers() {
	people := s.engine.ListUsers()
	if len(people) == 0 {
		fmt.Println("No users registered.")
		return
	}

	fmt.Printf("%-10s %-25s %-10s %-25s %-15s\n", "ID", "Name", "Role", "Email", "Phone")
	fmt.Println(strings.Repeat("-", 90))
	for _, p := range people {
		fmt.Printf("%-10s %-25s %-10s %-25s %-15s\n",
			p.ID, truncateString(p.Name, 25), p.Role, truncateString(p.Email, 25), p.Phone)
	}
}

// ------------------ Circulation handlers ------------------

// verifyStaff prompts for the staff password when one is set. Issue and
// renew go through a staff member, so the desk gets a chance to check.
func (s *session) verifyStaff(staffID string) bool {
	staff, ok := s.engine.FindUser(staffID)
	if !ok || staff.PasswordHash == "" {
		return true
	}
	password, err := readPassword(fmt.Sprintf("Password for %s: ", staff.Name))
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return false
	}
	if !s.engine.AuthenticateStaff(staffID, password) {
		fmt.Println("Authentication failed.")
		return false
	}
	return true
}

func (s *session) handleIssue() {
	borrowerID, ok := s.prompt("Borrower ID: ")
	if !ok {
		return
	}
	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	staffID, ok := s.prompt("Staff ID: ")
	if !ok {
		return
	}
	if !s.verifyStaff(staffID) {
		return
	}

	if !s.engine.IssueBook(borrowerID, bookID, staffID) {
		fmt.Println("Issue failed: check IDs, availability, borrow limit, and hold queue.")
		return
	}
	s.logger.Info("book issued",
		zap.String("book", bookID), zap.String("borrower", borrowerID), zap.String("staff", staffID))

	if loan, ok := s.engine.LoanFor(bookID); ok {
		fmt.Printf("Issued %s to %s, due %s\n", bookID, borrowerID, loan.DueAt.Format("2006-01-02"))
	}
}

func (s *session) handleReturn() {
	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	if !s.engine.ReturnBook(bookID) {
		fmt.Println("Return failed: book unknown or not issued.")
		return
	}
	s.logger.Info("book returned", zap.String("book", bookID))
	fmt.Printf("Returned %s\n", bookID)

	// The queue is not served automatically; tell the desk who is next.
	if holds := s.engine.HoldsForBook(bookID); len(holds) > 0 {
		next := holds[0].BorrowerID
		if p, ok := s.engine.FindUser(next); ok {
			fmt.Printf("Next hold: %s (%s) — issue to them to honor the queue.\n", p.Name, next)
		} else {
			fmt.Printf("Next hold: %s\n", next)
		}
	} else {
		fmt.Println("Book is now available.")
	}
}

func (s *session) handleRenew() {
	borrowerID, ok := s.prompt("Borrower ID: ")
	if !ok {
		return
	}
	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	if !s.engine.RenewLoan(borrowerID, bookID) {
		fmt.Println("Renewal failed: no matching loan, or the loan is overdue.")
		return
	}
	if loan, ok := s.engine.LoanFor(bookID); ok {
		fmt.Printf("Renewed, now due %s\n", loan.DueAt.Format("2006-01-02"))
	}
}

func (s *session) handleHold() {
	borrowerID, ok := s.prompt("Borrower ID: ")
	if !ok {
		return
	}
	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	if !s.engine.PlaceHold(borrowerID, bookID) {
		fmt.Println("Hold failed: holds are only accepted on books currently out.")
		return
	}
	holds := s.engine.HoldsForBook(bookID)
	fmt.Printf("Hold placed. Position in queue: %d\n", len(holds))
}

func (s *session) handleListHolds() {
	bookID, ok := s.prompt("Book ID: ")
	if !ok {
		return
	}
	holds := s.engine.HoldsForBook(bookID)
	if len(holds) == 0 {
		fmt.Println("No holds for this book.")
		return
	}

	fmt.Printf("%-10s %-10s %-25s %-20s\n", "Position", "ID", "Name", "Requested")
	fmt.Println(strings.Repeat("-", 70))
	for i, hr := range holds {
		name := ""
		if p, ok := s.engine.FindUser(hr.BorrowerID); ok {
			name = p.Name
		}
		fmt.Printf("%-10d %-10s %-25s %-20s\n",
			i+1, hr.BorrowerID, truncateString(name, 25), hr.RequestedAt.Format("2006-01-02 15:04"))
	}
}

// ------------------ Report handlers ------------------

func (s *session) handleOverdue() {
	loans := s.engine.OverdueLoans()
	if len(loans) == 0 {
		fmt.Println("No overdue loans.")
		return
	}
	printLoanTable(s.engine, loans)
}

func (s *session) handleHistory() {
	borrowerID, ok := s.prompt("Borrower ID: ")
	if !ok {
		return
	}
	loans := s.engine.UserLoanHistory(borrowerID)
	if len(loans) == 0 {
		fmt.Println("No active loans for this borrower.")
		return
	}
	printLoanTable(s.engine, loans)
}

// ------------------ Formatting ------------------

func printBookTable(engine *library.Engine, books []*library.Book) {
	fmt.Printf("%-8s %-30s %-20s %-10s %-10s %-20s\n", "ID", "Title", "Author", "Category", "Status", "Borrower")
	fmt.Println(strings.Repeat("-", 105))

	for _, b := range books {
		status := "Available"
		borrowerInfo := "None"
		if b.Issued {
			status = "Out"
			if loan, ok := engine.LoanFor(b.ID); ok {
				if p, ok := engine.FindUser(loan.BorrowerID); ok {
					borrowerInfo = fmt.Sprintf("%s (%s)", p.Name, p.ID)
				} else {
					borrowerInfo = loan.BorrowerID
				}
			}
		}
		fmt.Printf("%-8s %-30s %-20s %-10s %-10s %-20s\n",
			b.ID,
			truncateString(b.Title, 30),
			truncateString(b.Author, 20),
			b.Category,
			status,
			truncateString(borrowerInfo, 20))
	}
}

func printLoanTable(engine *library.Engine, loans []*library.Loan) {
	fmt.Printf("%-10s %-25s %-8s %-12s %-12s %-10s\n", "Borrower", "Name", "Book", "Issued", "Due", "Overdue")
	fmt.Println(strings.Repeat("-", 85))
	for _, l := range loans {
		name := ""
		if p, ok := engine.FindUser(l.BorrowerID); ok {
			name = p.Name
		}
		overdue := "no"
		if l.Overdue() {
			overdue = fmt.Sprintf("%dd", int(-library.DueIn(l).Hours())/24)
		}
		fmt.Printf("%-10s %-25s %-8s %-12s %-12s %-10s\n",
			l.BorrowerID,
			truncateString(name, 25),
			l.BookID,
			l.IssuedAt.Format("2006-01-02"),
			l.DueAt.Format("2006-01-02"),
			overdue)
	}
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
