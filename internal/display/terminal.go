package display

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"pos-system/internal/domain"
)

// readLines feeds stdin lines to the display event loop. The channel closes
// on EOF.
func readLines() <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- strings.TrimSpace(sc.Text())
		}
	}()
	return lines
}

// notice prints a transient operator message. Errors here are never fatal:
// the loop keeps running.
func notice(format string, args ...any) {
	fmt.Printf("! "+format+"\n", args...)
}

func printOrder(o domain.Order) {
	next, hasNext := NextAction(o)
	fmt.Printf("  #%d %s  [%s]  $%.2f\n", o.ID, o.Number, o.Status, o.TotalAmount)
	for _, item := range o.Items {
		fmt.Printf("      %dx %-24s $%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	if o.Notes != "" {
		fmt.Printf("      note: %s\n", o.Notes)
	}
	if hasNext {
		fmt.Printf("      -> advance %d moves it to %q\n", o.ID, next)
	}
}
