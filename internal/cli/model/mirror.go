package model

import (
	"strings"
	"time"
)

// LocalGroup: локальная копия созданной на сервере группы.
type LocalGroup struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Name      string    `gorm:"not null;index"`
	Members   string    `gorm:"not null"` // имена через запятую
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (LocalGroup) TableName() string { return "local_groups" }

// LocalFavorite: имя покемона, отмеченного как избранное с этого клиента.
type LocalFavorite struct {
	Name      string    `gorm:"primaryKey;type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (LocalFavorite) TableName() string { return "local_favorites" }

// MemberNames splits Members back into names.
func (g LocalGroup) MemberNames() []string {
	if g.Members == "" {
		return nil
	}
	return strings.Split(g.Members, ",")
}
