package model

// Meta is a single key/value row for store-level markers, currently just
// the seed version the bootstrapper compares on startup.
type Meta struct {
	Key   string `gorm:"primaryKey;size:50"`
	Value string `gorm:"size:200"`
}

// TableName keeps the table singular; the default pluralizer mangles "meta".
func (Meta) TableName() string {
	return "meta"
}
