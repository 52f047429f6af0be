package domain

import "time"

// Model holds the columns shared by every mutable entity. Version is the
// optimistic concurrency token; repositories bump it on each update.
type Model struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Version   int64     `gorm:"not null" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) PrimaryKey() int64 { return m.ID }

func (m *Model) SetPrimaryKey(id int64) { m.ID = id }

func (m *Model) Revision() int64 { return m.Version }

func (m *Model) SetRevision(v int64) { m.Version = v }
