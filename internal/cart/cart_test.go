package cart

import "testing"

func TestAddGeneratesMaxPlusOne(t *testing.T) {
	c := New([]Entry{{ID: 4, DishID: 1, DayOfWeek: Monday, People: 2}})

	added := c.Add(Entry{DishID: 2, DayOfWeek: Friday, People: 3})
	if added.ID != 5 {
		t.Fatalf("expected id 5, got %d", added.ID)
	}

	c.Remove(4)
	c.Remove(5)
	if again := c.Add(Entry{DishID: 2, DayOfWeek: Friday, People: 3}); again.ID != 1 {
		t.Fatalf("expected ids to restart at 1 in an empty cart, got %d", again.ID)
	}
}

func TestEditKeepsID(t *testing.T) {
	c := New(nil)
	first := c.Add(Entry{DishID: 1, DayOfWeek: Monday, People: 2})

	edited, ok := c.Edit(first.ID, Entry{ID: 99, DishID: 3, DayOfWeek: Sunday, People: 6})
	if !ok {
		t.Fatal("expected edit to find the entry")
	}
	if edited.ID != first.ID || edited.DishID != 3 || edited.DayOfWeek != Sunday || edited.People != 6 {
		t.Fatalf("unexpected edited entry: %+v", edited)
	}

	if _, ok := c.Edit(42, Entry{DishID: 3, DayOfWeek: Sunday, People: 6}); ok {
		t.Fatal("expected edit of unknown id to fail")
	}
}

func TestRemove(t *testing.T) {
	c := New(nil)
	e := c.Add(Entry{DishID: 1, DayOfWeek: Monday, People: 2})

	if !c.Remove(e.ID) {
		t.Fatal("expected entry to be removed")
	}
	if c.Remove(e.ID) {
		t.Fatal("expected second removal to report false")
	}
	if !c.IsEmpty() {
		t.Fatal("expected cart to be empty")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := New(nil)
	c.Add(Entry{DishID: 1, DayOfWeek: Monday, People: 2})

	entries := c.Entries()
	entries[0].People = 50

	if c.Entries()[0].People != 2 {
		t.Fatal("mutating the returned slice must not change the cart")
	}
}

func TestEntryValidate(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"ok", Entry{DishID: 1, DayOfWeek: Tuesday, People: 1}, nil},
		{"upper bound", Entry{DishID: 1, DayOfWeek: Tuesday, People: 100}, nil},
		{"no dish", Entry{DayOfWeek: Tuesday, People: 1}, ErrInvalidDish},
		{"bad day", Entry{DishID: 1, DayOfWeek: "FUNDAY", People: 1}, ErrInvalidDay},
		{"zero people", Entry{DishID: 1, DayOfWeek: Tuesday, People: 0}, ErrInvalidPeople},
		{"too many people", Entry{DishID: 1, DayOfWeek: Tuesday, People: 101}, ErrInvalidPeople},
	}
	for _, tc := range cases {
		if got := tc.entry.Validate(); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
