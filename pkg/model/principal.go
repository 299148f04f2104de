package model

import "time"

// Principal is an authenticated user of the admin panel. Principals are
// provisioned via the CLI; the server only ever reads them.
type Principal struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Principal) TableName() string {
	return "principals"
}
