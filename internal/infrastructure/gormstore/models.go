package gormstore

import (
	"time"

	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-catalog/internal/domain/product"
	"github.com/shopspring/decimal"
)

type productRecord struct {
	ID          int             `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Details     string          `gorm:"type:text"`
	Quantity    int             `gorm:"not null;default:0;check:quantity >= 0"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

func (productRecord) TableName() string { return "products" }

func toProductRecord(p *product.Product) productRecord {
	return productRecord{
		Name:        p.Name,
		Description: p.Description,
		Details:     p.Details,
		Quantity:    p.Quantity,
		Price:       p.Price,
	}
}

func (r productRecord) toDomain() product.Product {
	return product.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Details:     r.Details,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

type orderRecord struct {
	ID      int    `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"size:255;not null"`
	Address string `gorm:"size:255;not null"`
	City    string `gorm:"size:255;not null"`
	Country string `gorm:"size:255;not null"`
	Zip     string `gorm:"size:32"`
	Date    time.Time
	Lines   []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord keeps ProductID as a plain column: products can be deleted without touching orders.
type orderLineRecord struct {
	ID        int `gorm:"primaryKey;autoIncrement"`
	OrderID   int `gorm:"not null;index"`
	ProductID int `gorm:"not null;index"`
	Quantity  int `gorm:"not null;check:quantity > 0"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

func toOrderRecord(o *order.Order) orderRecord {
	lines := make([]orderLineRecord, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineRecord{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return orderRecord{
		Name:    o.Name,
		Address: o.Address,
		City:    o.City,
		Country: o.Country,
		Zip:     o.Zip,
		Date:    o.Date,
		Lines:   lines,
	}
}

func (r orderRecord) toDomain() order.Order {
	lines := make([]order.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, order.Line{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return order.Order{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		City:    r.City,
		Country: r.Country,
		Zip:     r.Zip,
		Date:    r.Date,
		Lines:   lines,
	}
}
