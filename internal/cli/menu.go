// Package cli реализует текстовое меню магазина. Это тонкая оболочка над
// агрегатом store: вся логика проверки и оформления заказов живёт в ядре,
// здесь только ввод, вывод и повторные запросы после ошибок.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/masterschool-weiterbildung/bestbuy/internal/domain"
	"github.com/masterschool-weiterbildung/bestbuy/internal/store"
)

// Menu читает команды пользователя и вызывает операции магазина.
type Menu struct {
	store   *store.Store
	scanner *bufio.Scanner
	out     io.Writer
	logger  *log.Entry
}

// New создаёт меню поверх магазина с заданными потоками ввода и вывода.
func New(s *store.Store, in io.Reader, out io.Writer, logger *log.Entry) *Menu {
	if logger == nil {
		logger = log.New().WithField("component", "cli")
	}
	return &Menu{
		store:   s,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run выполняет цикл меню до выбора пункта Quit, конца ввода или отмены
// контекста. Ошибки валидации печатаются и приводят к повторному запросу,
// процесс из-за них не завершается.
func (m *Menu) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.printMenu()
		choice, ok := m.readLine()
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.listProducts()
		case "2":
			fmt.Fprintf(m.out, "Total of %d items in store\n\n", m.store.TotalQuantity())
		case "3":
			m.makeOrder()
		case "4":
			m.showReceipts()
		case "5":
			fmt.Fprintln(m.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Error with your choice! Try again!")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "   Store Menu")
	fmt.Fprintln(m.out, "   ----------")
	fmt.Fprintln(m.out, "1. List all products in store")
	fmt.Fprintln(m.out, "2. Show total amount in store")
	fmt.Fprintln(m.out, "3. Make an order")
	fmt.Fprintln(m.out, "4. Show past orders")
	fmt.Fprintln(m.out, "5. Quit")
	fmt.Fprint(m.out, "Please choose a number: ")
}

// listProducts выводит активные товары с их номерами и возвращает выдачу
// для выбора позиций заказа.
func (m *Menu) listProducts() []store.ListedProduct {
	listed := m.store.ListActiveProducts()
	fmt.Fprintln(m.out, "------")
	for _, item := range listed {
		fmt.Fprintf(m.out, "%d. %s\n", item.Index, item.Product)
	}
	fmt.Fprintln(m.out, "------")
	fmt.Fprintln(m.out)
	return listed
}

func (m *Menu) makeOrder() {
	listed := m.listProducts()
	byIndex := make(map[int]*domain.Product, len(listed))
	for _, item := range listed {
		byIndex[item.Index] = item.Product
	}

	fmt.Fprintln(m.out, "When you want to finish order, enter empty text.")
	var lines []domain.OrderLine
	for {
		product, quantity, done, ok := m.readOrderLine(byIndex)
		if !ok {
			continue
		}
		if done {
			break
		}
		lines = append(lines, domain.OrderLine{Product: product, Quantity: quantity})
		fmt.Fprintln(m.out, "Product added to list!")
		fmt.Fprintln(m.out)
	}

	if len(lines) == 0 {
		fmt.Fprintln(m.out)
		return
	}

	receipt, err := m.store.PlaceOrder(lines)
	if err != nil {
		fmt.Fprintf(m.out, "Error while making order! %v\n\n", err)
		return
	}

	fmt.Fprintln(m.out, "********")
	fmt.Fprintf(m.out, "Order made! Total payment: $%s\n\n", formatAmount(receipt.Total))
}

// readOrderLine запрашивает одну позицию заказа. done=true означает конец
// ввода заказа, ok=false — некорректный ввод, который нужно повторить.
func (m *Menu) readOrderLine(byIndex map[int]*domain.Product) (product *domain.Product, quantity int, done, ok bool) {
	fmt.Fprint(m.out, "Which product # do you want? ")
	rawProduct, alive := m.readLine()
	if !alive {
		return nil, 0, true, true
	}
	fmt.Fprint(m.out, "What amount do you want? ")
	rawQuantity, alive := m.readLine()
	if !alive {
		return nil, 0, true, true
	}

	if strings.TrimSpace(rawProduct) == "" || strings.TrimSpace(rawQuantity) == "" {
		return nil, 0, true, true
	}

	index, err := strconv.Atoi(strings.TrimSpace(rawProduct))
	if err != nil {
		fmt.Fprintln(m.out, "Error adding product!")
		fmt.Fprintln(m.out)
		return nil, 0, false, false
	}
	product, exists := byIndex[index]
	if !exists {
		fmt.Fprintln(m.out, "Error adding product!")
		fmt.Fprintln(m.out)
		return nil, 0, false, false
	}
	quantity, err = strconv.Atoi(strings.TrimSpace(rawQuantity))
	if err != nil {
		fmt.Fprintln(m.out, "Error adding product!")
		fmt.Fprintln(m.out)
		return nil, 0, false, false
	}

	return product, quantity, false, true
}

func (m *Menu) showReceipts() {
	receipts := m.store.Receipts()
	if len(receipts) == 0 {
		fmt.Fprintln(m.out, "No orders made yet.")
		fmt.Fprintln(m.out)
		return
	}

	fmt.Fprintln(m.out, "------")
	for _, receipt := range receipts {
		fmt.Fprintf(m.out, "Order %s (%s)\n", receipt.ID, receipt.CreatedAt.Format("2006-01-02 15:04:05"))
		for _, line := range receipt.Lines {
			fmt.Fprintf(m.out, "  %s x%d: $%s\n", line.ProductName, line.Quantity, formatAmount(line.Cost))
		}
		fmt.Fprintf(m.out, "  Total: $%s\n", formatAmount(receipt.Total))
	}
	fmt.Fprintln(m.out, "------")
	fmt.Fprintln(m.out)
}

func (m *Menu) readLine() (string, bool) {
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			m.logger.WithError(err).Warn("input read failed")
		}
		return "", false
	}
	return m.scanner.Text(), true
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
