package domain

import "time"

// OrderLine — одна позиция заказа: товар и запрошенное количество.
// Один и тот же товар может встречаться в нескольких позициях.
type OrderLine struct {
	Product  *Product
	Quantity int
}

// ReceiptLine фиксирует одну позицию оформленного заказа.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	Cost        float64
}

// Receipt описывает оформленный заказ. Чеки живут только в памяти
// текущего запуска.
type Receipt struct {
	ID        string
	Lines     []ReceiptLine
	Total     float64
	CreatedAt time.Time
}
