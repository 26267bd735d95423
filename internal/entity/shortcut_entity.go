package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShortcutKind string

const (
	ShortcutKindURL    ShortcutKind = "url"
	ShortcutKindSearch ShortcutKind = "search"
	ShortcutKindEntity ShortcutKind = "entity"
)

type EntityKind string

const (
	EntityKindNote     EntityKind = "note"
	EntityKindNotebook EntityKind = "notebook"
	EntityKindTag      EntityKind = "tag"
)

// ShortcutTarget is a closed set of shortcut destinations. Each variant
// carries exactly the fields it needs, so a shortcut can never be stored
// with a target field that its kind doesn't use.
type ShortcutTarget interface {
	Kind() ShortcutKind
}

type URLTarget struct {
	URL string
}

func (URLTarget) Kind() ShortcutKind { return ShortcutKindURL }

type SearchTarget struct {
	Query string
}

func (SearchTarget) Kind() ShortcutKind { return ShortcutKindSearch }

type EntityTarget struct {
	TargetId   uuid.UUID
	TargetKind EntityKind
}

func (EntityTarget) Kind() ShortcutKind { return ShortcutKindEntity }

type Shortcut struct {
	Id        uuid.UUID
	Name      string
	Target    ShortcutTarget
	UserId    uuid.UUID
	SortOrder int
	CreatedAt time.Time
	UpdatedAt *time.Time
}
