package domain

import "errors"

var (
	// Ошибка пустого имени товара или акции.
	ErrNameRequired = errors.New("name must be a non-empty string")
	// Ошибка отрицательной цены.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка некорректного количества (отрицательное значение).
	ErrQuantityInvalid = errors.New("quantity must be non-negative")
	// Ошибка попытки задать остаток non-stocked товару: он всегда равен нулю.
	ErrQuantityFixed = errors.New("non-stocked product quantity is fixed at zero")
	// Ошибка процента скидки вне диапазона [0, 100].
	ErrPercentInvalid = errors.New("percent must be between 0 and 100")
	// Ошибка некорректного лимита на заказ (должен быть > 0).
	ErrMaximumInvalid = errors.New("maximum must be greater than zero")
	// Ошибка лимита, заданного для товара без ограничения на заказ.
	ErrMaximumNotSupported = errors.New("maximum is only supported for limited products")
	// Ошибка пустого списка товаров при создании или замене каталога.
	ErrProductsRequired = errors.New("store requires at least one product")
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock — запрошено больше, чем есть на складе.
	ErrInsufficientStock = errors.New("quantity larger than what exists")
	// ErrOrderExceedsMaximum — суммарное количество в заказе превышает лимит товара.
	ErrOrderExceedsMaximum = errors.New("order exceeds maximum")
)

// invalidArgumentErrors перечисляет ошибки валидации входных данных.
var invalidArgumentErrors = []error{
	ErrNameRequired,
	ErrPriceNegative,
	ErrQuantityInvalid,
	ErrQuantityFixed,
	ErrPercentInvalid,
	ErrMaximumInvalid,
	ErrMaximumNotSupported,
	ErrProductsRequired,
}

// IsInvalidArgument проверяет, относится ли ошибка к семейству ошибок валидации аргументов.
func IsInvalidArgument(err error) bool {
	for _, sentinel := range invalidArgumentErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// IsInsufficientStock проверяет, является ли ошибка нехваткой остатка.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}

// IsOrderExceedsMaximum проверяет, является ли ошибка превышением лимита на заказ.
func IsOrderExceedsMaximum(err error) bool {
	return errors.Is(err, ErrOrderExceedsMaximum)
}
