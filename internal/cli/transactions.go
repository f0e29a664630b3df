package cli

import (
	"context"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

func (a *App) transactionMenu(ctx context.Context, sess *domain.Session) {
	adminTag := ""
	if !sess.IsAdmin() {
		adminTag = " (Admin Only)"
	}

	for {
		a.p.println("\n--- Complete Transactions ---")
		a.p.println("1. Add a New Client" + adminTag)
		a.p.println("2. Search for Products")
		a.p.println("3. Make a Purchase")
		a.p.println("4. View Customer Purchase History")
		a.p.println("5. View Customer Purchase Summary")
		a.p.println("6. Return to Main Menu")

		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return
		}
		switch choice {
		case 1:
			a.addClient(ctx, sess)
		case 2:
			a.searchProducts(ctx, sess)
		case 3:
			a.makePurchase(ctx, sess)
		case 4:
			customerID := int64(a.p.intVal("Enter Customer ID: "))
			a.showPurchaseHistory(ctx, sess, customerID)
		case 5:
			customerID := int64(a.p.intVal("Enter Customer ID: "))
			a.showPurchaseSummary(ctx, sess, customerID)
		case 6:
			return
		default:
			a.p.println("Invalid choice!")
		}
	}
}

func (a *App) addClient(ctx context.Context, sess *domain.Session) {
	a.p.println("\n--- Add a New Client ---")
	input := ports.AddClientInput{
		FirstName: a.p.line("First Name: "),
		LastName:  a.p.line("Last Name: "),
		Email:     a.p.line("Email: "),
		Phone:     a.p.line("Phone (XXX-XXX-XXXX): "),
	}

	client, err := a.purchases.AddClient(ctx, sess, input)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.println("Client added successfully.")
	a.p.printf("Assigned Person ID: %d\n", client.ID)
	a.p.println("Please use this ID when making a purchase.")
}

func (a *App) makePurchase(ctx context.Context, sess *domain.Session) {
	a.p.println("\n--- Make a Purchase ---")

	// Non-admins purchase for themselves; admins may purchase on behalf of a
	// customer.
	customerID := sess.UserID()
	if sess.IsAdmin() {
		customerID = int64(a.p.intVal("Enter Customer ID: "))
	}

	term := a.p.line("Enter product name (or press Enter to see all products): ")
	products, err := a.catalog.SearchProducts(ctx, sess, ports.SearchCriteria{Name: term, InStockOnly: true})
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.println("\n--- Available Products ---")
	renderProducts(a.p.out, products)
	if len(products) == 0 {
		return
	}

	input := ports.PurchaseInput{
		CustomerID: customerID,
		ProductID:  a.p.line("\nEnter Product ID to purchase: "),
		Quantity:   a.p.intVal("Enter Quantity: "),
	}

	result, err := a.purchases.MakePurchase(ctx, sess, input)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.println("\nPurchase completed successfully!")
	a.p.printf("Transaction ID: %d\n", result.Purchase.TransactionID)
	a.p.printf("%d x %s at %.2f each\n", result.Purchase.Quantity, result.ProductName, result.Purchase.UnitPrice)
	a.p.printf("Total: %.2f\n", result.Total)
	a.p.printf("Remaining stock: %d\n", result.Remaining)
}
