package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

func renderProducts(out io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "No products found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQUANTITY")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Price, p.Quantity)
	}
	w.Flush()
}

func renderPurchases(out io.Writer, lines []ports.PurchaseLine) {
	if len(lines) == 0 {
		fmt.Fprintln(out, "No purchases found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TXN\tDATE\tCUSTOMER\tPRODUCT\tQTY\tUNIT PRICE\tTOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s (%s)\t%d\t%.2f\t%.2f\n",
			l.TransactionID, l.PurchasedAt.Format("2006-01-02 15:04"),
			l.CustomerName, l.ProductName, l.ProductID,
			l.Quantity, l.UnitPrice, l.Total)
	}
	w.Flush()
}

func renderSummary(out io.Writer, s *ports.CustomerSummary) {
	fmt.Fprintf(out, "Customer: %s %s (%s)\n", s.FirstName, s.LastName, s.Email)
	fmt.Fprintf(out, "Transactions: %d\n", s.TotalTransactions)
	fmt.Fprintf(out, "Items purchased: %d\n", s.TotalItems)
	fmt.Fprintf(out, "Total spent: %.2f\n", s.TotalSpent)
	if s.TotalTransactions > 0 {
		fmt.Fprintf(out, "Last purchase: %s\n", s.LastPurchase.Format("2006-01-02 15:04"))
	}
}

func renderSales(out io.Writer, rows []ports.ProductSales) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No products in the catalog.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tSALES\tUNITS SOLD\tREVENUE")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%d\t%d\t%.2f\n",
			r.ProductID, r.Name, r.Price, r.CurrentStock,
			r.TimesSold, r.QuantitySold, r.TotalRevenue)
	}
	w.Flush()
}

func renderPageFooter(out io.Writer, shown int, page ports.PageRequest, total int) {
	fmt.Fprintf(out, "Showing %d of %d\n", shown, total)
	if pages := page.TotalPages(total); pages > 0 {
		fmt.Fprintf(out, "Page %d of %d\n", page.Page, pages)
	}
}
