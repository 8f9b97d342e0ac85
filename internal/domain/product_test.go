package domain_test

import (
	"testing"

	"github.com/masterschool-weiterbildung/bestbuy/internal/domain"
)

func TestNewProduct_Validation(t *testing.T) {
	if _, err := domain.NewProduct("", 10, 1); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for empty name, got %v", err)
	}
	if _, err := domain.NewProduct("x", -1, 1); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for negative price, got %v", err)
	}
	if _, err := domain.NewProduct("x", 10, -1); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for negative quantity, got %v", err)
	}
	if _, err := domain.NewLimitedProduct("x", 10, 1, 0); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for non-positive maximum, got %v", err)
	}
}

func TestProduct_Setters(t *testing.T) {
	product := newTestProduct(t, "x", 10, 5)

	if err := product.SetName(" "); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := product.SetPrice(-0.5); err == nil {
		t.Fatal("expected error for negative price")
	}
	if err := product.SetQuantity(-1); err == nil {
		t.Fatal("expected error for negative quantity")
	}

	if err := product.SetName("y"); err != nil {
		t.Fatalf("set name failed: %v", err)
	}
	if err := product.SetPrice(12.5); err != nil {
		t.Fatalf("set price failed: %v", err)
	}
	if err := product.SetQuantity(7); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if product.Name() != "y" || product.Price() != 12.5 || product.Quantity() != 7 {
		t.Fatalf("unexpected product state: %s", product)
	}
}

func TestProduct_SetQuantityZeroDeactivates(t *testing.T) {
	product := newTestProduct(t, "x", 10, 5)

	if err := product.SetQuantity(0); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if product.IsActive() {
		t.Fatal("expected product to deactivate at zero quantity")
	}

	// Обратной автоматической активации нет, только явное действие.
	if err := product.SetQuantity(3); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if product.IsActive() {
		t.Fatal("expected product to stay inactive until activated explicitly")
	}
	product.Activate()
	if !product.IsActive() {
		t.Fatal("expected product to be active after Activate")
	}
}

func TestProduct_BuyReducesStockAndDeactivatesAtZero(t *testing.T) {
	product := newTestProduct(t, "x", 10, 5)

	cost, err := product.Buy(5)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if !almostEqual(cost, 50) {
		t.Fatalf("expected cost 50, got %v", cost)
	}
	if product.Quantity() != 0 {
		t.Fatalf("expected quantity 0, got %d", product.Quantity())
	}
	if product.IsActive() {
		t.Fatal("expected product to deactivate after selling out")
	}
}

func TestProduct_BuyErrors(t *testing.T) {
	product := newTestProduct(t, "x", 10, 5)

	if _, err := product.Buy(-1); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for negative quantity, got %v", err)
	}
	if _, err := product.Buy(6); !domain.IsInsufficientStock(err) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	// Неудачная покупка не меняет остаток.
	if product.Quantity() != 5 {
		t.Fatalf("expected quantity 5 after failed buy, got %d", product.Quantity())
	}
}

func TestProduct_BuyWithPromotion(t *testing.T) {
	product := newTestProduct(t, "MacBook Air M2", 1450, 100)
	promo, err := domain.NewSecondHalfPrice("Second Half price!")
	if err != nil {
		t.Fatalf("new promotion failed: %v", err)
	}
	product.SetPromotion(promo)

	cost, err := product.Buy(6)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if !almostEqual(cost, 6525) {
		t.Fatalf("expected cost 6525, got %v", cost)
	}
	if product.Quantity() != 94 {
		t.Fatalf("expected quantity 94, got %d", product.Quantity())
	}
}

func TestNonStockedProduct_Buy(t *testing.T) {
	license, err := domain.NewNonStockedProduct("Windows License", 125)
	if err != nil {
		t.Fatalf("new non-stocked product failed: %v", err)
	}

	cost, err := license.Buy(1000)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if !almostEqual(cost, 125000) {
		t.Fatalf("expected cost 125000, got %v", cost)
	}
	if license.Quantity() != 0 {
		t.Fatalf("expected quantity to stay 0, got %d", license.Quantity())
	}
	if !license.IsActive() {
		t.Fatal("expected non-stocked product to stay active")
	}
}

func TestNonStockedProduct_SetQuantity(t *testing.T) {
	license, err := domain.NewNonStockedProduct("Windows License", 125)
	if err != nil {
		t.Fatalf("new non-stocked product failed: %v", err)
	}

	if err := license.SetQuantity(0); err != nil {
		t.Fatalf("setting zero quantity should succeed: %v", err)
	}
	if err := license.SetQuantity(5); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for non-zero quantity, got %v", err)
	}
}

func TestLimitedProduct_SetMaximum(t *testing.T) {
	shipping, err := domain.NewLimitedProduct("Shipping", 10, 250, 2)
	if err != nil {
		t.Fatalf("new limited product failed: %v", err)
	}

	if err := shipping.SetMaximum(0); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for zero maximum, got %v", err)
	}
	if err := shipping.SetMaximum(3); err != nil {
		t.Fatalf("set maximum failed: %v", err)
	}
	if shipping.Maximum() != 3 {
		t.Fatalf("expected maximum 3, got %d", shipping.Maximum())
	}

	plain := newTestProduct(t, "x", 10, 5)
	if err := plain.SetMaximum(2); !domain.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for standard product, got %v", err)
	}
}

// Идентичность товара определяется только именем и ценой: остаток,
// активность и акция в сравнении не участвуют.
func TestProduct_Equal(t *testing.T) {
	a := newTestProduct(t, "X", 10, 5)
	b := newTestProduct(t, "X", 10, 999)
	c := newTestProduct(t, "X", 11, 5)
	d := newTestProduct(t, "Y", 10, 5)

	if !a.Equal(b) {
		t.Fatal("products with same name and price should be equal")
	}
	if a.Equal(c) {
		t.Fatal("products with different prices should not be equal")
	}
	if a.Equal(d) {
		t.Fatal("products with different names should not be equal")
	}
	if a.Equal(nil) {
		t.Fatal("product should not equal nil")
	}
}

func TestProduct_Less(t *testing.T) {
	cheap := newTestProduct(t, "cheap", 10, 5)
	pricey := newTestProduct(t, "pricey", 20, 5)

	if !cheap.Less(pricey) {
		t.Fatal("expected cheap product to order before pricey one")
	}
	if pricey.Less(cheap) {
		t.Fatal("expected pricey product to order after cheap one")
	}
}

func TestProduct_String(t *testing.T) {
	plain := newTestProduct(t, "MacBook Air M2", 1450, 100)
	if got, want := plain.String(), "MacBook Air M2, Price: 1450, Quantity: 100"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	promo, err := domain.NewThirdOneFree("Third One Free!")
	if err != nil {
		t.Fatalf("new promotion failed: %v", err)
	}
	plain.SetPromotion(promo)
	if got, want := plain.String(), "MacBook Air M2, Price: 1450, Quantity: 100, Promotion: Third One Free!"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	license, err := domain.NewNonStockedProduct("Windows License", 125)
	if err != nil {
		t.Fatalf("new non-stocked product failed: %v", err)
	}
	if got, want := license.String(), "Windows License, Price: 125"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	license.SetPromotion(promo)
	if got, want := license.String(), "Windows License, Price: 125, Promotion: Third One Free!"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	shipping, err := domain.NewLimitedProduct("Shipping", 10, 250, 1)
	if err != nil {
		t.Fatalf("new limited product failed: %v", err)
	}
	if got, want := shipping.String(), "Shipping, Price: 10, Quantity: 250, Maximum: 1"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	shipping.SetPromotion(promo)
	if got, want := shipping.String(), "Shipping, Price: 10, Quantity: 250, Promotion: Third One Free!, Maximum: 1"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	fractional := newTestProduct(t, "Cable", 12.5, 3)
	if got, want := fractional.String(), "Cable, Price: 12.5, Quantity: 3"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
