package domain

import "time"

// Product is a catalog row created once per successful upload. The image bytes
// live on disk and its metadata in the document store; ImageMetadataID holds
// the hex id of that metadata record. Rows are never updated or deleted.
type Product struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:name" json:"name"`
	ImageMetadataID string    `gorm:"column:image_mongodb_id" json:"image_mongodb_id"`
	StockCount      int       `gorm:"column:stock_count" json:"stock_count"`
	Review          string    `gorm:"column:review" json:"review"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string { return "products" }
