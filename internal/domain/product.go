package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProductKind различает поведение товара при продаже и проверке остатков.
type ProductKind string

const (
	// ProductStandard — обычный товар со складским учётом.
	ProductStandard ProductKind = "standard"
	// ProductNonStocked — товар без складского учёта (лицензии, услуги):
	// всегда доступен, остаток не списывается.
	ProductNonStocked ProductKind = "non_stocked"
	// ProductLimited — товар со складским учётом и лимитом на один заказ.
	ProductLimited ProductKind = "limited"
)

// Product — позиция каталога. Вместо иерархии наследования варианты
// представлены тегом kind с общим набором полей; maximum значим только
// для ProductLimited.
type Product struct {
	name      string
	price     float64
	quantity  int
	active    bool
	kind      ProductKind
	promotion *Promotion
	maximum   int
}

// NewProduct создаёт обычный товар с начальным остатком. Товар активен с момента создания.
func NewProduct(name string, price float64, quantity int) (*Product, error) {
	return newProduct(name, price, quantity, ProductStandard, 0)
}

// NewNonStockedProduct создаёт товар без складского учёта. Остаток всегда равен нулю.
func NewNonStockedProduct(name string, price float64) (*Product, error) {
	return newProduct(name, price, 0, ProductNonStocked, 0)
}

// NewLimitedProduct создаёт товар с лимитом maximum на один заказ.
func NewLimitedProduct(name string, price float64, quantity, maximum int) (*Product, error) {
	return newProduct(name, price, quantity, ProductLimited, maximum)
}

func newProduct(name string, price float64, quantity int, kind ProductKind, maximum int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if price < 0 {
		return nil, ErrPriceNegative
	}
	if quantity < 0 {
		return nil, ErrQuantityInvalid
	}
	if kind == ProductLimited && maximum <= 0 {
		return nil, ErrMaximumInvalid
	}

	return &Product{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   true,
		kind:     kind,
		maximum:  maximum,
	}, nil
}

// Name возвращает имя товара.
func (p *Product) Name() string { return p.name }

// SetName задаёт имя товара. Имя не может быть пустым.
func (p *Product) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	p.name = name
	return nil
}

// Price возвращает цену за единицу.
func (p *Product) Price() float64 { return p.price }

// SetPrice задаёт цену за единицу. Цена не может быть отрицательной.
func (p *Product) SetPrice(price float64) error {
	if price < 0 {
		return ErrPriceNegative
	}
	p.price = price
	return nil
}

// Quantity возвращает текущий остаток.
func (p *Product) Quantity() int { return p.quantity }

// SetQuantity задаёт остаток. Нулевой остаток деактивирует товар со
// складским учётом. Для non-stocked товара остаток зафиксирован на нуле,
// любое другое значение отклоняется.
func (p *Product) SetQuantity(quantity int) error {
	if p.kind == ProductNonStocked {
		if quantity != 0 {
			return ErrQuantityFixed
		}
		return nil
	}
	if quantity < 0 {
		return ErrQuantityInvalid
	}

	p.quantity = quantity
	if p.quantity == 0 {
		p.Deactivate()
	}
	return nil
}

// IsActive сообщает, доступен ли товар для продажи.
func (p *Product) IsActive() bool { return p.active }

// SetActive задаёт флаг доступности товара.
func (p *Product) SetActive(active bool) { p.active = active }

// Activate помечает товар доступным. Повторная активация — явное
// административное действие, автоматически товар не восстанавливается.
func (p *Product) Activate() { p.active = true }

// Deactivate помечает товар недоступным.
func (p *Product) Deactivate() { p.active = false }

// Kind возвращает вид товара.
func (p *Product) Kind() ProductKind { return p.kind }

// IsStockTracked сообщает, ведётся ли для товара складской учёт.
func (p *Product) IsStockTracked() bool { return p.kind != ProductNonStocked }

// Promotion возвращает назначенную акцию или nil.
func (p *Product) Promotion() *Promotion { return p.promotion }

// SetPromotion назначает товару акцию. На товар действует не более одной акции.
func (p *Product) SetPromotion(promotion *Promotion) { p.promotion = promotion }

// ClearPromotion снимает акцию с товара.
func (p *Product) ClearPromotion() { p.promotion = nil }

// Maximum возвращает лимит на один заказ (0, если лимита нет).
func (p *Product) Maximum() int { return p.maximum }

// SetMaximum задаёт лимит на один заказ. Допустим только для ProductLimited.
func (p *Product) SetMaximum(maximum int) error {
	if p.kind != ProductLimited {
		return ErrMaximumNotSupported
	}
	if maximum <= 0 {
		return ErrMaximumInvalid
	}
	p.maximum = maximum
	return nil
}

// Buy продаёт quantity единиц товара и возвращает стоимость позиции с
// учётом акции. Для товара со складским учётом остаток уменьшается, при
// нуле товар деактивируется. Нехватка остатка возвращается ошибкой,
// а не печатается: validate-then-commit делает её недостижимой, но
// защитная проверка сохраняется.
func (p *Product) Buy(quantity int) (float64, error) {
	if quantity < 0 {
		return 0, ErrQuantityInvalid
	}

	if p.IsStockTracked() {
		if quantity > p.quantity {
			return 0, fmt.Errorf("%w: requested %d of %q, only %d in stock",
				ErrInsufficientStock, quantity, p.name, p.quantity)
		}
		if err := p.SetQuantity(p.quantity - quantity); err != nil {
			return 0, err
		}
	}

	if p.promotion != nil {
		return p.promotion.Apply(p, quantity), nil
	}
	return p.price * float64(quantity), nil
}

// Equal сравнивает товары по имени и цене. Остаток, активность и акция
// в идентичность не входят: повторная поставка того же товара по той же
// цене считается тем же товаром.
func (p *Product) Equal(other *Product) bool {
	if other == nil {
		return false
	}
	return p.name == other.name && p.price == other.price
}

// Less упорядочивает товары по возрастанию цены.
func (p *Product) Less(other *Product) bool {
	return p.price < other.price
}

// String возвращает каноничное текстовое представление товара:
// "<name>, Price: <price>, Quantity: <quantity>[, Promotion: <promo>][, Maximum: <max>]".
// Для non-stocked товара поле Quantity опускается.
func (p *Product) String() string {
	var b strings.Builder
	b.WriteString(p.name)
	b.WriteString(", Price: ")
	b.WriteString(strconv.FormatFloat(p.price, 'f', -1, 64))
	if p.kind != ProductNonStocked {
		b.WriteString(", Quantity: ")
		b.WriteString(strconv.Itoa(p.quantity))
	}
	if p.promotion != nil {
		b.WriteString(", Promotion: ")
		b.WriteString(p.promotion.Name())
	}
	if p.kind == ProductLimited {
		b.WriteString(", Maximum: ")
		b.WriteString(strconv.Itoa(p.maximum))
	}
	return b.String()
}
