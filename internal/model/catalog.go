package model

// Store represents a shop that stocks items
type Store struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Items []Item `json:"items" gorm:"many2many:store_item;"`
}

// Item represents a product that can be stocked by stores and labelled with tags
type Item struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description *string  `json:"description,omitempty" gorm:"type:text"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Stores      []Store  `json:"stores" gorm:"many2many:store_item;"`
	Tags        []Tag    `json:"tags" gorm:"many2many:item_tag;"`
}

// Tag represents a label attached to items
type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Items []Item `json:"items" gorm:"many2many:item_tag;"`
}

// StoreItem is one row of the store/item membership table
type StoreItem struct {
	StoreID uint `gorm:"primaryKey;autoIncrement:false"`
	ItemID  uint `gorm:"primaryKey;autoIncrement:false"`
}

func (StoreItem) TableName() string {
	return "store_item"
}

// ItemTag is one row of the item/tag membership table
type ItemTag struct {
	ItemID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false"`
}

func (ItemTag) TableName() string {
	return "item_tag"
}

// All returns the models managed by migrations. Join tables are created from
// the many2many declarations.
func All() []interface{} {
	return []interface{}{&Store{}, &Item{}, &Tag{}}
}
