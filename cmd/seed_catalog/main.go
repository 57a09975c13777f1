package main

import (
	"fmt"
	"os"
	"strings"

	"library-circulation/library"
)

const defaultPassword = "circdesk"

// Demonstration catalog: ID prefix and zero-padded sequence match what the
// interactive session generates, so its counters line up after seeding.
var seedBooks = []*library.Book{
	{ID: "BK-001", Title: "Java Fundamentals", Author: "Evans", Subject: "CS", Category: library.CategoryTextbook},
	{ID: "BK-002", Title: "The Java Saga", Author: "Brown", Subject: "Fantasy", Category: library.CategoryNovel},
	{ID: "BK-003", Title: "Java API Handbook", Author: "Sun", Subject: "Vol1", Category: library.CategoryReference},
	{ID: "BK-004", Title: "1984", Author: "George Orwell", Subject: "Fiction", Category: library.CategoryNovel},
	{ID: "BK-005", Title: "Animal Farm", Author: "George Orwell", Subject: "Fiction", Category: library.CategoryNovel},
	{ID: "BK-006", Title: "The Art of War", Author: "Sun Tzu", Subject: "Strategy", Category: library.CategoryReference},
	{ID: "BK-007", Title: "Linear Algebra Done Right", Author: "Sheldon Axler", Subject: "Math", Category: library.CategoryTextbook},
	{ID: "BK-008", Title: "The Fellowship of the Ring", Author: "J.R.R. Tolkien", Subject: "Fantasy", Category: library.CategoryNovel},
	{ID: "BK-009", Title: "The Two Towers", Author: "J.R.R. Tolkien", Subject: "Fantasy", Category: library.CategoryNovel},
	{ID: "BK-010", Title: "Introduction to Algorithms", Author: "Cormen", Subject: "CS", Category: library.CategoryTextbook},
}

var seedBorrowers = []*library.Person{
	{ID: "BOR-0001", Name: "Sam Carter", Email: "sam@mail.com", Phone: "555-0001"},
	{ID: "BOR-0002", Name: "Alex Reed", Email: "alex@mail.com", Phone: "555-0002"},
	{ID: "BOR-0003", Name: "Kim Doyle", Email: "kim@mail.com", Phone: "555-0003"},
}

var seedStaff = []*library.Person{
	{ID: "STF-0001", Name: "R. Mueller", Email: "mueller@library.example"},
	{ID: "STF-0002", Name: "J. Ortiz", Email: "ortiz@library.example"},
}

func main() {
	dbPath := "catalog.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	// Start from a clean slate.
	fmt.Println("Cleaning up existing seed catalog files...")
	for _, file := range []string{dbPath, dbPath + "-shm", dbPath + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: could not remove %s: %v\n", file, err)
		}
	}

	// Run the fixtures through an engine so staff passwords get hashed the
	// same way the interactive session hashes them.
	engine := library.NewEngine()
	for _, b := range seedBooks {
		engine.AddBook(b)
	}
	for _, p := range seedBorrowers {
		engine.RegisterBorrower(p)
	}
	for _, p := range seedStaff {
		engine.RegisterStaff(p)
		if err := engine.SetStaffPassword(p.ID, defaultPassword); err != nil {
			fmt.Fprintf(os.Stderr, "Error hashing password for %s: %v\n", p.ID, err)
			os.Exit(1)
		}
	}

	store, err := library.OpenSeedStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating seed catalog: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Save(engine.ListBooks(), engine.ListUsers()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing seed catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nSeed catalog written to %s\n", dbPath)
	fmt.Printf("Books: %d | Borrowers: %d | Staff: %d (password: %q)\n\n",
		len(seedBooks), len(seedBorrowers), len(seedStaff), defaultPassword)

	fmt.Printf("%-8s %-35s %-20s %-10s\n", "ID", "Title", "Author", "Category")
	fmt.Println(strings.Repeat("-", 80))
	for _, b := range seedBooks {
		fmt.Printf("%-8s %-35s %-20s %-10s\n",
			b.ID, truncateString(b.Title, 35), truncateString(b.Author, 20), b.Category)
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
