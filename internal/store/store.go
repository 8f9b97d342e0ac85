// Package store содержит агрегат магазина: упорядоченный каталог товаров,
// проверку и оформление заказов, историю чеков.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/masterschool-weiterbildung/bestbuy/internal/domain"
)

// MetricsRecorder описывает метрики, которые агрегат обновляет при работе с заказами.
type MetricsRecorder interface {
	RecordOrderCommitted(total float64, units int)
	RecordValidationFailure(reason string)
	RecordInventoryUnits(units int)
}

// ListedProduct — активный товар вместе с его номером в выдаче.
// Нумерация начинается с 1 и служит ключом, по которому оболочка
// собирает заказ.
type ListedProduct struct {
	Index   int
	Product *domain.Product
}

// Store — единственный владелец каталога на время работы процесса.
// Порядок товаров сохраняется в порядке добавления и значим только для
// нумерации при выводе. Все операции защищены RWMutex, поэтому пара
// validate/commit безопасна и в многопоточном хосте через PlaceOrder.
type Store struct {
	mu       sync.RWMutex
	products []*domain.Product
	receipts []domain.Receipt
	logger   *log.Entry
	metrics  MetricsRecorder
}

// New создаёт магазин с начальным каталогом. Пустой каталог не допускается.
func New(products []*domain.Product, logger *log.Entry) (*Store, error) {
	return NewWithMetrics(products, nil, logger)
}

// NewWithMetrics создаёт магазин, обновляющий переданные метрики.
// metrics может быть nil: тогда запись метрик пропускается.
func NewWithMetrics(products []*domain.Product, metrics MetricsRecorder, logger *log.Entry) (*Store, error) {
	if len(products) == 0 {
		return nil, domain.ErrProductsRequired
	}
	if logger == nil {
		logger = log.New().WithField("component", "store")
	}

	s := &Store{
		products: make([]*domain.Product, len(products)),
		logger:   logger,
		metrics:  metrics,
	}
	copy(s.products, products)
	s.recordInventoryLocked()
	return s, nil
}

// AddProduct добавляет товар в конец каталога.
func (s *Store) AddProduct(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, product)
	s.recordInventoryLocked()
}

// RemoveProduct удаляет первый товар каталога, равный переданному
// (равенство — по имени и цене). Возвращает ErrProductNotFound, если
// такого товара нет.
func (s *Store) RemoveProduct(product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, candidate := range s.products {
		if candidate.Equal(product) {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.recordInventoryLocked()
			return nil
		}
	}
	return domain.ErrProductNotFound
}

// SetProducts заменяет каталог целиком. Пустой список отклоняется.
func (s *Store) SetProducts(products []*domain.Product) error {
	if len(products) == 0 {
		return domain.ErrProductsRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]*domain.Product, len(products))
	copy(s.products, products)
	s.recordInventoryLocked()
	return nil
}

// Products возвращает копию списка товаров в порядке каталога.
func (s *Store) Products() []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Product, len(s.products))
	copy(result, s.products)
	return result
}

// ActiveProducts возвращает активные товары, сохраняя порядок каталога.
func (s *Store) ActiveProducts() []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slice.FilterMap(s.products, func(idx int, src *domain.Product) (*domain.Product, bool) {
		return src, src.IsActive()
	})
}

// ListActiveProducts возвращает активные товары с номерами для вывода,
// начиная с 1. Неактивные товары пропускаются, порядок каталога сохраняется.
func (s *Store) ListActiveProducts() []ListedProduct {
	active := s.ActiveProducts()
	return slice.Map(active, func(idx int, src *domain.Product) ListedProduct {
		return ListedProduct{Index: idx + 1, Product: src}
	})
}

// TotalQuantity возвращает суммарный остаток по всем товарам каталога,
// включая неактивные.
func (s *Store) TotalQuantity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, product := range s.products {
		total += product.Quantity()
	}
	return total
}

// ValidateOrder проверяет заказ целиком: остатки для товаров со складским
// учётом и суммарные лимиты для limited-товаров (количество одного товара
// в разных позициях складывается). Проверка атомарна в смысле «всё или
// ничего»: любая ошибка отклоняет заказ без изменений состояния.
func (s *Store) ValidateOrder(lines []domain.OrderLine) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.validateOrderLocked(lines); err != nil {
		s.recordValidationFailure(err)
		return err
	}
	return nil
}

func (s *Store) validateOrderLocked(lines []domain.OrderLine) error {
	for _, line := range lines {
		if line.Quantity < 0 {
			return domain.ErrQuantityInvalid
		}
		if !line.Product.IsStockTracked() {
			continue
		}
		if line.Quantity > line.Product.Quantity() {
			return fmt.Errorf("%w: requested %d of %q, only %d in stock",
				domain.ErrInsufficientStock, line.Quantity, line.Product.Name(), line.Product.Quantity())
		}
	}

	// Лимит действует на заказ в целом, поэтому сначала суммируем позиции
	// одного товара.
	requested := make(map[*domain.Product]int)
	for _, line := range lines {
		if line.Product.Kind() == domain.ProductLimited {
			requested[line.Product] += line.Quantity
		}
	}
	for product, quantity := range requested {
		if quantity > product.Maximum() {
			return fmt.Errorf("%w: %s: maximum order is %d",
				domain.ErrOrderExceedsMaximum, product.Name(), product.Maximum())
		}
	}

	return nil
}

// CommitOrder оформляет заказ, считая его уже проверенным: повторной
// валидации нет, списание идёт позиция за позицией. Возвращает итоговую
// стоимость с учётом акций.
func (s *Store) CommitOrder(lines []domain.OrderLine) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, err := s.commitOrderLocked(lines)
	if err != nil {
		return 0, err
	}
	return receipt.Total, nil
}

// PlaceOrder выполняет проверку и оформление заказа под одной блокировкой,
// сохраняя гарантию «не продать больше, чем есть» и при конкурентном
// доступе. В отличие от ValidateOrder, остатки здесь сверяются с суммой
// позиций по каждому товару, поэтому оформление не может оборваться на
// середине со списанной частью заказа. Возвращает чек оформленного заказа.
func (s *Store) PlaceOrder(lines []domain.OrderLine) (domain.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateOrderLocked(lines); err != nil {
		s.recordValidationFailure(err)
		return domain.Receipt{}, err
	}
	if err := s.validateAggregateStockLocked(lines); err != nil {
		s.recordValidationFailure(err)
		return domain.Receipt{}, err
	}
	return s.commitOrderLocked(lines)
}

// validateAggregateStockLocked сверяет суммарное количество каждого товара
// со складским учётом по всем позициям заказа с его остатком. Попозиционная
// проверка в validateOrderLocked пропускает заказ, где две позиции одного
// товара по отдельности укладываются в остаток, а вместе — нет.
func (s *Store) validateAggregateStockLocked(lines []domain.OrderLine) error {
	requested := make(map[*domain.Product]int)
	for _, line := range lines {
		if line.Product.IsStockTracked() {
			requested[line.Product] += line.Quantity
		}
	}
	for product, quantity := range requested {
		if quantity > product.Quantity() {
			return fmt.Errorf("%w: requested %d of %q, only %d in stock",
				domain.ErrInsufficientStock, quantity, product.Name(), product.Quantity())
		}
	}
	return nil
}

func (s *Store) commitOrderLocked(lines []domain.OrderLine) (domain.Receipt, error) {
	receipt := domain.Receipt{
		ID:        uuid.NewString(),
		Lines:     make([]domain.ReceiptLine, 0, len(lines)),
		CreatedAt: time.Now().UTC(),
	}

	units := 0
	for _, line := range lines {
		cost, err := line.Product.Buy(line.Quantity)
		if err != nil {
			s.logger.WithError(err).WithField("product", line.Product.Name()).Warn("order commit failed")
			return domain.Receipt{}, err
		}
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{
			ProductName: line.Product.Name(),
			Quantity:    line.Quantity,
			Cost:        cost,
		})
		receipt.Total += cost
		units += line.Quantity
	}

	s.receipts = append(s.receipts, receipt)
	s.recordInventoryLocked()
	if s.metrics != nil {
		s.metrics.RecordOrderCommitted(receipt.Total, units)
	}

	s.logger.WithFields(log.Fields{
		"order_id": receipt.ID,
		"lines":    len(receipt.Lines),
		"total":    receipt.Total,
	}).Info("order committed")

	return receipt, nil
}

// Receipts возвращает чеки текущего запуска в порядке оформления.
func (s *Store) Receipts() []domain.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Receipt, len(s.receipts))
	copy(result, s.receipts)
	return result
}

func (s *Store) recordValidationFailure(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case domain.IsInsufficientStock(err):
		s.metrics.RecordValidationFailure("insufficient_stock")
	case domain.IsOrderExceedsMaximum(err):
		s.metrics.RecordValidationFailure("order_exceeds_maximum")
	default:
		s.metrics.RecordValidationFailure("invalid_argument")
	}
}

func (s *Store) recordInventoryLocked() {
	if s.metrics == nil {
		return
	}
	units := 0
	for _, product := range s.products {
		units += product.Quantity()
	}
	s.metrics.RecordInventoryUnits(units)
}
