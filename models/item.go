package models

// Item is the single record managed by the service. The description travels
// as "deskripsi" on the wire and in storage, matching the browser front-end.
type Item struct {
	ID          int64  `json:"id" bson:"_id" gorm:"primaryKey;autoIncrement"`
	Item        string `json:"item" bson:"item" gorm:"column:item;not null"`
	Description string `json:"deskripsi" bson:"deskripsi" gorm:"column:deskripsi;not null"`
}

// TableName pins the relational table name.
func (Item) TableName() string {
	return "produk"
}

// ItemInput is the request body accepted by create and update.
type ItemInput struct {
	Item        string `json:"item"`
	Deskripsi   string `json:"deskripsi"`
	Description string `json:"description"`
}

// GetDescription prefers "deskripsi" and falls back to "description".
func (in ItemInput) GetDescription() string {
	if in.Deskripsi != "" {
		return in.Deskripsi
	}
	return in.Description
}
