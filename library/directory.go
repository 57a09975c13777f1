package library

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Directory owns the registry of people, borrowers and staff alike.
type Directory struct {
	people map[string]*Person
	order  []string
}

// NewDirectory returns an empty registry.
func NewDirectory() *Directory {
	return &Directory{people: make(map[string]*Person)}
}

func (d *Directory) register(p *Person, role Role) {
	p.Role = role
	if _, ok := d.people[p.ID]; !ok {
		d.order = append(d.order, p.ID)
	}
	d.people[p.ID] = p
}

// RegisterBorrower adds or overwrites a person tagged with the borrower role.
func (d *Directory) RegisterBorrower(p *Person) { d.register(p, RoleBorrower) }

// RegisterStaff adds or overwrites a person tagged with the staff role.
func (d *Directory) RegisterStaff(p *Person) { d.register(p, RoleStaff) }

// Find looks up a person by ID.
func (d *Directory) Find(id string) (*Person, bool) {
	p, ok := d.people[id]
	return p, ok
}

// All returns every registered person in registration order.
func (d *Directory) All() []*Person {
	people := make([]*Person, 0, len(d.order))
	for _, id := range d.order {
		people = append(people, d.people[id])
	}
	return people
}

// CountByRole reports how many registered people carry the given role.
func (d *Directory) CountByRole(role Role) int {
	n := 0
	for _, p := range d.people {
		if p.Role == role {
			n++
		}
	}
	return n
}

// SetPassword stores a bcrypt hash of the password on the person's record.
func (d *Directory) SetPassword(id, password string) error {
	p, ok := d.people[id]
	if !ok {
		return fmt.Errorf("no person with ID %s", id)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// Authenticate verifies a password against the stored hash. People with no
// password set never authenticate.
func (d *Directory) Authenticate(id, password string) bool {
	p, ok := d.people[id]
	if !ok || p.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}
