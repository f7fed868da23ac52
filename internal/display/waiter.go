package display

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pos-system/internal/config"
	"pos-system/internal/domain"
	"pos-system/internal/logger"
)

type submitResult struct {
	order domain.Order
	err   error
}

// RunWaiter is the waiter-facing display: menu browsing, cart building,
// order submission and passive status notifications. One goroutine owns all
// state; stdin commands, broadcast events and submission responses are
// merged through a single select loop.
func RunWaiter(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("waiter-display")
	name := cfg.Display.Name
	if name == "" {
		name = "waiter-1"
	}
	client := NewClient(cfg.Display.ServerURL, name)
	cart := NewCart()

	menu, err := client.Menu(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	cart.SetMenu(menu)

	events, err := client.Subscribe(ctx)
	if err != nil {
		return err
	}
	lg.Info("display_started", map[string]any{"name": name, "menu_items": len(menu)})

	fmt.Println("waiter display - commands: menu, add <id>, + <n>, - <n>, rm <n>, note <text>, cart, submit, clear, quit")
	printMenu(menu)

	lines := readLines()
	results := make(chan submitResult, 1)
	submitting := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "quit" {
				return nil
			}
			if line == "submit" {
				if submitting {
					notice("submission already in flight")
					continue
				}
				req, err := cart.Submit()
				if err != nil {
					notice("%v", err)
					continue
				}
				submitting = true
				go func() {
					order, err := client.CreateOrder(ctx, req)
					results <- submitResult{order: order, err: err}
				}()
				continue
			}
			waiterCommand(line, cart, menu)

		case res := <-results:
			submitting = false
			if res.err != nil {
				// cart untouched; the operator retries with `submit`
				notice("submission failed: %v", res.err)
				continue
			}
			cart.Clear()
			fmt.Printf("order %s created, total $%.2f\n", res.order.Number, res.order.TotalAmount)

		case ev, ok := <-events:
			if !ok {
				notice("connection lost, reconnecting...")
				events, err = client.Resubscribe(ctx)
				if err != nil {
					return nil
				}
				if m, err := client.Menu(ctx); err == nil {
					menu = m
					cart.SetMenu(menu)
				}
				continue
			}
			switch ev.Name {
			case domain.EventMenuUpdated:
				m, err := client.Menu(ctx)
				if err != nil {
					notice("menu refresh failed: %v", err)
					continue
				}
				menu = m
				cart.SetMenu(menu)
				notice("menu updated (%d items)", len(menu))
			case domain.EventOrderUpdated:
				if ev.Order != nil {
					notice("order %s is now %s", ev.Order.Number, ev.Order.Status)
				}
			}
		}
	}
}

func waiterCommand(line string, cart *Cart, menu []domain.MenuItem) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "", "cart":
		printCart(cart)
	case "menu":
		printMenu(menu)
	case "add":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			notice("usage: add <menu-id>")
			return
		}
		if err := cart.Add(id); err != nil {
			notice("%v", err)
			return
		}
		printCart(cart)
	case "+", "-", "rm":
		n, err := strconv.Atoi(arg)
		if err != nil {
			notice("usage: %s <cart-line>", cmd)
			return
		}
		index := n - 1 // cart lines are shown 1-based
		switch cmd {
		case "+":
			err = cart.Increment(index)
		case "-":
			err = cart.Decrement(index)
		case "rm":
			err = cart.Remove(index)
		}
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			notice("no cart line %d", n)
			return
		}
		printCart(cart)
	case "note":
		cart.SetNotes(arg)
	case "clear":
		cart.Clear()
		fmt.Println("cart cleared")
	default:
		notice("unknown command %q", cmd)
	}
}

func printMenu(menu []domain.MenuItem) {
	category := ""
	for _, m := range menu {
		if m.Category != category {
			category = m.Category
			fmt.Printf("-- %s\n", category)
		}
		fmt.Printf("  %3d  %-24s $%.2f\n", m.ID, m.Name, m.Price)
	}
}

func printCart(cart *Cart) {
	items := cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for i, item := range items {
		fmt.Printf("  %d) %dx %-24s $%.2f\n", i+1, item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	if cart.Notes() != "" {
		fmt.Printf("  note: %s\n", cart.Notes())
	}
	fmt.Printf("  total: $%.2f\n", cart.Total())
}
