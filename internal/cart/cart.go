package cart

import (
	"errors"
	"slices"

	"menuplanner-backend/internal/models"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d DayOfWeek) Valid() bool {
	return slices.Contains(weekdays, d)
}

var (
	ErrInvalidDish   = errors.New("dishId is required")
	ErrInvalidDay    = errors.New("dayOfWeek must be one of MONDAY..SUNDAY")
	ErrInvalidPeople = errors.New("people must be between 1 and 100")
)

// Entry: sepetteki bir yemek seçimi (oturumda tutulur, veritabanına yazılmaz)
type Entry struct {
	ID        int       `json:"id"`
	DishID    uint      `json:"dishId"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	People    int       `json:"people"`
}

func (e Entry) Validate() error {
	if e.DishID == 0 {
		return ErrInvalidDish
	}
	if !e.DayOfWeek.Valid() {
		return ErrInvalidDay
	}
	if e.People < models.MinPeople || e.People > models.MaxPeople {
		return ErrInvalidPeople
	}
	return nil
}

// Cart holds the entries of one session. It is not safe for concurrent use;
// two requests of the same session simply overwrite each other.
type Cart struct {
	entries []Entry
}

func New(entries []Entry) *Cart {
	return &Cart{entries: slices.Clone(entries)}
}

func (c *Cart) Entries() []Entry {
	return slices.Clone(c.entries)
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Add appends e with id = max(existing ids)+1 and returns the stored entry.
func (c *Cart) Add(e Entry) Entry {
	maxID := 0
	for _, existing := range c.entries {
		maxID = max(maxID, existing.ID)
	}
	e.ID = maxID + 1
	c.entries = append(c.entries, e)
	return e
}

// Edit replaces dish, day and people of the entry with the given id.
func (c *Cart) Edit(id int, e Entry) (Entry, bool) {
	for i := range c.entries {
		if c.entries[i].ID != id {
			continue
		}
		c.entries[i].DishID = e.DishID
		c.entries[i].DayOfWeek = e.DayOfWeek
		c.entries[i].People = e.People
		return c.entries[i], true
	}
	return Entry{}, false
}

func (c *Cart) Remove(id int) bool {
	before := len(c.entries)
	c.entries = slices.DeleteFunc(c.entries, func(e Entry) bool { return e.ID == id })
	return len(c.entries) != before
}
