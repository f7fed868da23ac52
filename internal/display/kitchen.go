package display

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pos-system/internal/config"
	"pos-system/internal/domain"
	"pos-system/internal/logger"
)

type actionResult struct {
	order domain.Order
	err   error
}

// RunKitchen is the kitchen board: every open order as an actionable card,
// an audible signal on new arrivals, and one legal advance action per card.
// Same single-loop model as the waiter display; a transition request runs
// asynchronously, and the broadcast confirming it may well be applied before
// the request's own response - both are idempotent snapshot applications.
func RunKitchen(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("kitchen-display")
	name := cfg.Display.Name
	if name == "" {
		name = "kitchen-1"
	}
	client := NewClient(cfg.Display.ServerURL, name)
	rec := NewReconciler()
	filter := FilterOpen

	orders, err := client.OpenOrders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	rec.Bootstrap(orders)

	events, err := client.Subscribe(ctx)
	if err != nil {
		return err
	}
	lg.Info("display_started", map[string]any{"name": name, "open_orders": rec.Len()})

	fmt.Println("kitchen display - commands: board, advance <order-id>, filter <status|all>, quit")
	printBoard(rec, filter)

	lines := readLines()
	results := make(chan actionResult, 4)

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
			filter = kitchenCommand(ctx, line, client, rec, filter, results)

		case res := <-results:
			if res.err != nil {
				// nothing was applied locally; the card is unchanged
				notice("update failed: %v", res.err)
				continue
			}
			rec.Apply(domain.Event{Name: domain.EventOrderUpdated, Order: &res.order})
			printBoard(rec, filter)

		case ev, ok := <-events:
			if !ok {
				notice("connection lost, reconnecting...")
				events, err = client.Resubscribe(ctx)
				if err != nil {
					return nil
				}
				if orders, err := client.OpenOrders(ctx); err == nil {
					rec.Bootstrap(orders)
					printBoard(rec, filter)
				}
				continue
			}
			if ev.Name == domain.EventMenuUpdated {
				continue // the kitchen board has no menu view
			}
			created := rec.Apply(ev)
			if created && ev.Order != nil {
				// rings for missed-new_order updates too: an unknown order
				// is a new order as far as the kitchen is concerned
				fmt.Print("\a")
				notice("new order %s", ev.Order.Number)
			}
			printBoard(rec, filter)
		}
	}
}

func kitchenCommand(ctx context.Context, line string, client *Client, rec *Reconciler, filter Filter, results chan<- actionResult) Filter {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "", "board":
		printBoard(rec, filter)
	case "advance":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			notice("usage: advance <order-id>")
			return filter
		}
		order, ok := rec.Get(id)
		if !ok {
			notice("no order #%d on the board", id)
			return filter
		}
		target, ok := NextAction(order)
		if !ok {
			notice("order %s is already completed", order.Number)
			return filter
		}
		go func() {
			updated, err := client.UpdateStatus(ctx, id, target)
			results <- actionResult{order: updated, err: err}
		}()
	case "filter":
		switch arg {
		case "all":
			filter = FilterAll
		case "open", "":
			filter = FilterOpen
		default:
			status, err := domain.ParseStatus(arg)
			if err != nil {
				notice("unknown filter %q", arg)
				return filter
			}
			filter = FilterStatus(status)
		}
		printBoard(rec, filter)
	default:
		notice("unknown command %q", cmd)
	}
	return filter
}

func printBoard(rec *Reconciler, filter Filter) {
	orders := rec.Filtered(filter)
	fmt.Printf("== board: %d shown, %d pending ==\n", len(orders), rec.PendingCount())
	if len(orders) == 0 {
		fmt.Println("  (no orders)")
		return
	}
	for _, o := range orders {
		printOrder(o)
	}
}
