package engine

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryAchievements   Category = "achievements"
	CategoryProjects       Category = "projects"
	CategoryCertifications Category = "certifications"
	CategoryBooks          Category = "books"
)

var AllCategories = []Category{CategoryAchievements, CategoryProjects, CategoryCertifications, CategoryBooks}

func ParseCategory(input string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(input)))
	switch c {
	case CategoryAchievements, CategoryProjects, CategoryCertifications, CategoryBooks:
		return c, nil
	case "achievement", "project", "certification", "cert", "certs", "book":
		return ParseCategory(pluralCategory(string(c)))
	default:
		return "", ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", input)}
	}
}

func pluralCategory(s string) string {
	switch s {
	case "cert", "certs", "certification":
		return string(CategoryCertifications)
	default:
		return s + "s"
	}
}

// Icon is the badge given to new items of the category.
func (c Category) Icon() string {
	switch c {
	case CategoryAchievements:
		return "🏆"
	case CategoryProjects:
		return "💼"
	case CategoryCertifications:
		return "📜"
	case CategoryBooks:
		return "📚"
	default:
		return "📦"
	}
}

// RewardXP is the INT-tagged XP granted when an item is added.
func (c Category) RewardXP() int {
	switch c {
	case CategoryProjects:
		return 30
	case CategoryCertifications:
		return 50
	case CategoryBooks:
		return 20
	default:
		return 0
	}
}

func (inv *Inventory) list(c Category) *[]Item {
	switch c {
	case CategoryAchievements:
		return &inv.Achievements
	case CategoryProjects:
		return &inv.Projects
	case CategoryCertifications:
		return &inv.Certifications
	case CategoryBooks:
		return &inv.Books
	default:
		return nil
	}
}

// Items returns the items of a category.
func (inv Inventory) Items(c Category) []Item {
	if p := inv.list(c); p != nil {
		return *p
	}
	return nil
}

func (s *session) addItem(c Category, name string) (Item, error) {
	list := s.st.Inventory.list(c)
	if list == nil {
		return Item{}, ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", c)}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		s.emit(toast("Please enter an item name", SeverityError))
		return Item{}, ValidationError{Field: "name", Reason: "item name is required"}
	}
	it := Item{ID: "inv_" + s.newID(), Name: name, Icon: c.Icon()}
	*list = append(*list, it)
	s.emit(toast(fmt.Sprintf("Added to %s: %s", c, name), SeveritySuccess))

	if xp := c.RewardXP(); xp > 0 {
		s.gainXP(xp, StatINT)
	}
	s.dirty = true
	return it, nil
}

func (s *session) deleteItem(c Category, id string) bool {
	list := s.st.Inventory.list(c)
	if list == nil {
		return false
	}
	for i := range *list {
		if (*list)[i].ID != id {
			continue
		}
		*list = append((*list)[:i], (*list)[i+1:]...)
		s.dirty = true
		return true
	}
	return false
}

const (
	vitMaxHPBonus = 5
	intMaxMPBonus = 3
)

// allocateStat spends one ability point on a base stat.
func (s *session) allocateStat(stat Stat) error {
	if !stat.IsValid() {
		return ValidationError{Field: "stat", Reason: fmt.Sprintf("unknown stat %q", stat)}
	}
	if s.st.AvailablePoints <= 0 {
		s.emit(Event{Kind: EventStatPointDenied})
		s.emit(toast("No ability points available!", SeverityWarning))
		return ErrNoPoints
	}

	s.st.Stats.Add(stat, 1)
	s.st.AvailablePoints--

	p := &s.st.Player
	switch stat {
	case StatVIT:
		p.MaxHP += vitMaxHPBonus
		p.HP = clamp(p.HP+vitMaxHPBonus, 0, p.MaxHP)
	case StatINT:
		p.MaxMP += intMaxMPBonus
		p.MP = clamp(p.MP+intMaxMPBonus, 0, p.MaxMP)
	}
	s.dirty = true
	return nil
}
