package domain

import "strings"

// PromotionKind задаёт вид ценового правила.
type PromotionKind string

const (
	// PromotionSecondHalfPrice — каждая вторая единица за полцены.
	PromotionSecondHalfPrice PromotionKind = "second_half_price"
	// PromotionThirdOneFree — каждая третья единица бесплатно.
	PromotionThirdOneFree PromotionKind = "third_one_free"
	// PromotionPercentOff — фиксированная процентная скидка на всю позицию.
	PromotionPercentOff PromotionKind = "percent_off"
)

// Promotion — ценовое правило, применяемое к товару.
// Акция прикрепляется к товарам по указателю: изменение общей акции
// (имени или процента) затрагивает все товары, на которые она назначена.
type Promotion struct {
	name    string
	kind    PromotionKind
	percent int
}

// NewSecondHalfPrice создаёт акцию «каждая вторая единица за полцены».
func NewSecondHalfPrice(name string) (*Promotion, error) {
	return newPromotion(name, PromotionSecondHalfPrice, 0)
}

// NewThirdOneFree создаёт акцию «каждая третья единица бесплатно».
func NewThirdOneFree(name string) (*Promotion, error) {
	return newPromotion(name, PromotionThirdOneFree, 0)
}

// NewPercentOff создаёт акцию с процентной скидкой.
func NewPercentOff(name string, percent int) (*Promotion, error) {
	return newPromotion(name, PromotionPercentOff, percent)
}

func newPromotion(name string, kind PromotionKind, percent int) (*Promotion, error) {
	p := &Promotion{kind: kind}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetPercent(percent); err != nil {
		return nil, err
	}
	return p, nil
}

// Name возвращает имя акции.
func (p *Promotion) Name() string { return p.name }

// SetName задаёт имя акции. Имя не может быть пустым.
func (p *Promotion) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	p.name = name
	return nil
}

// Kind возвращает вид акции.
func (p *Promotion) Kind() PromotionKind { return p.kind }

// Percent возвращает процент скидки (значим только для PromotionPercentOff).
func (p *Promotion) Percent() int { return p.percent }

// SetPercent задаёт процент скидки в диапазоне [0, 100].
func (p *Promotion) SetPercent(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrPercentInvalid
	}
	p.percent = percent
	return nil
}

// Apply считает итоговую стоимость позиции с учётом акции.
// Нулевое количество даёт нулевую стоимость для любого вида акции.
func (p *Promotion) Apply(product *Product, quantity int) float64 {
	price := product.Price()
	n := quantity

	switch p.kind {
	case PromotionSecondHalfPrice:
		half := n / 2
		return float64(n-half)*price + float64(half)*price*0.5
	case PromotionThirdOneFree:
		return price * float64(n-n/3)
	case PromotionPercentOff:
		gross := price * float64(n)
		return gross - gross*float64(p.percent)/100
	default:
		return price * float64(n)
	}
}
