package cli

import (
	"context"
	"errors"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

func (a *App) historyMenu(ctx context.Context, sess *domain.Session) {
	adminTag := ""
	if !sess.IsAdmin() {
		adminTag = " (Admin Only)"
	}

	for {
		a.p.println("\n--- Customer History ---")
		a.p.println("1. Search Customer by Email")
		a.p.println("2. View Customer Purchase History")
		a.p.println("3. View Customer Purchase Summary")
		a.p.println("4. View Past Purchases" + adminTag)
		a.p.println("5. Return to Main Menu")

		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return
		}
		switch choice {
		case 1:
			a.findCustomerByEmail(ctx, sess)
		case 2:
			customerID := int64(a.p.intVal("Enter Customer ID: "))
			a.showPurchaseHistory(ctx, sess, customerID)
		case 3:
			customerID := int64(a.p.intVal("Enter Customer ID: "))
			a.showPurchaseSummary(ctx, sess, customerID)
		case 4:
			a.viewAllPurchases(ctx, sess)
		case 5:
			return
		default:
			a.p.println("Invalid choice!")
		}
	}
}

func (a *App) findCustomerByEmail(ctx context.Context, sess *domain.Session) {
	email := a.p.line("Enter customer email: ")

	customer, err := a.history.FindCustomerByEmail(ctx, sess, email)
	if err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			a.p.printf("No customer was found with the email: %s\n", email)
			return
		}
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.printf("Customer Found: %s (ID %d, %s, %s)\n",
		customer.FullName(), customer.ID, customer.Email, customer.Phone)
}

func (a *App) showPurchaseHistory(ctx context.Context, sess *domain.Session, customerID int64) {
	page := ports.PageRequest{Page: 1, PageSize: a.pageSize}

	for {
		lines, total, err := a.history.PurchaseHistory(ctx, sess, customerID, page)
		if err != nil {
			a.p.println(resolveError(err, a.logger))
			return
		}

		a.p.printf("\n--- Purchase History (Page %d) ---\n", page.Page)
		renderPurchases(a.p.out, lines)
		renderPageFooter(a.p.out, len(lines), page, total)

		if !a.pageNavigation(&page, total) {
			return
		}
	}
}

func (a *App) showPurchaseSummary(ctx context.Context, sess *domain.Session, customerID int64) {
	summary, err := a.history.PurchaseSummary(ctx, sess, customerID)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.println("\n--- Purchase Summary ---")
	renderSummary(a.p.out, summary)
}

func (a *App) viewAllPurchases(ctx context.Context, sess *domain.Session) {
	page := ports.PageRequest{Page: 1, PageSize: a.pageSize}

	for {
		lines, total, err := a.history.AllPurchases(ctx, sess, page)
		if err != nil {
			a.p.println(resolveError(err, a.logger))
			return
		}

		a.p.printf("\n--- Past Purchases (Page %d) ---\n", page.Page)
		renderPurchases(a.p.out, lines)
		renderPageFooter(a.p.out, len(lines), page, total)

		if !a.pageNavigation(&page, total) {
			return
		}
	}
}

// pageNavigation reads the shared next/previous/return menu. It returns false
// when the operator leaves the paginated view.
func (a *App) pageNavigation(page *ports.PageRequest, total int) bool {
	a.p.println("\n--- Navigation ---")
	a.p.println("1. Next Page")
	a.p.println("2. Previous Page")
	a.p.println("3. Return to Previous Menu")

	for {
		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return false
		}
		switch choice {
		case 1:
			if page.Page >= page.TotalPages(total) {
				a.p.println("Already on the last page.")
				continue
			}
			page.Page++
			return true
		case 2:
			if page.Page <= 1 {
				a.p.println("Already on the first page.")
				continue
			}
			page.Page--
			return true
		case 3:
			return false
		default:
			a.p.println("Invalid choice!")
		}
	}
}
