package cli

import (
	"context"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

func (a *App) productMenu(ctx context.Context, sess *domain.Session) {
	adminTag := ""
	if !sess.IsAdmin() {
		adminTag = " (Admin Only)"
	}

	for {
		a.p.println("\n--- Manage Products ---")
		a.p.println("1. View Products (Paginated)")
		a.p.println("2. Search Products")
		a.p.println("3. View Product Sales Analysis" + adminTag)
		a.p.println("4. Add New Product" + adminTag)
		a.p.println("5. Modify Existing Product" + adminTag)
		a.p.println("6. Remove Product" + adminTag)
		a.p.println("7. Return to Main Menu")

		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return
		}
		switch choice {
		case 1:
			a.viewProductsPaginated(ctx, sess)
		case 2:
			a.searchProducts(ctx, sess)
		case 3:
			a.salesAnalysis(ctx, sess)
		case 4:
			a.addProduct(ctx, sess)
		case 5:
			a.modifyProduct(ctx, sess)
		case 6:
			a.removeProduct(ctx, sess)
		case 7:
			return
		default:
			a.p.println("Invalid choice!")
		}
	}
}

func (a *App) viewProductsPaginated(ctx context.Context, sess *domain.Session) {
	page := ports.PageRequest{
		Page:          1,
		PageSize:      a.pageSize,
		SortColumn:    "id",
		SortDirection: ports.SortAsc,
	}

	for {
		products, total, err := a.catalog.ListProducts(ctx, sess, page)
		if err != nil {
			a.p.println(resolveError(err, a.logger))
			return
		}

		a.p.printf("\n--- Products (Page %d) ---\n", page.Page)
		renderProducts(a.p.out, products)
		renderPageFooter(a.p.out, len(products), page, total)

		a.p.println("\n--- Navigation ---")
		a.p.println("1. Next Page")
		a.p.println("2. Previous Page")
		a.p.println("3. Change Sort Order")
		a.p.println("4. Return to Product Menu")

		choice := a.p.choice("Enter your choice: ")
		if a.p.closed() {
			return
		}
		switch choice {
		case 1:
			if page.Page >= page.TotalPages(total) {
				a.p.println("Already on the last page.")
			} else {
				page.Page++
			}
		case 2:
			if page.Page <= 1 {
				a.p.println("Already on the first page.")
			} else {
				page.Page--
			}
		case 3:
			page.SortColumn, page.SortDirection = a.chooseSort()
			page.Page = 1
		case 4:
			return
		default:
			a.p.println("Invalid choice!")
		}
	}
}

func (a *App) chooseSort() (string, string) {
	a.p.println("\n--- Sort By ---")
	a.p.println("1. Product ID")
	a.p.println("2. Product Name")
	a.p.println("3. Price")
	a.p.println("4. Quantity")

	column := "id"
	switch a.p.choice("Enter your choice: ") {
	case 2:
		column = "name"
	case 3:
		column = "price"
	case 4:
		column = "quantity"
	case 1:
	default:
		a.p.println("Invalid choice. Using default sort.")
	}

	a.p.println("\n--- Sort Direction ---")
	a.p.println("1. Ascending")
	a.p.println("2. Descending")

	direction := ports.SortAsc
	if a.p.choice("Enter your choice: ") == 2 {
		direction = ports.SortDesc
	}
	return column, direction
}

func (a *App) searchProducts(ctx context.Context, sess *domain.Session) {
	a.p.println("\n--- Search Products ---")
	criteria := ports.SearchCriteria{
		Name:     a.p.line("Enter product name (or press Enter to skip): "),
		MinPrice: a.p.optionalFloat("Enter minimum price (or press Enter to skip): "),
		MaxPrice: a.p.optionalFloat("Enter maximum price (or press Enter to skip): "),
	}
	criteria.InStockOnly = a.p.yesNo("Show only in-stock items? (y/n): ")

	products, err := a.catalog.SearchProducts(ctx, sess, criteria)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}

	a.p.println("\n--- Search Results ---")
	renderProducts(a.p.out, products)
	if len(products) > 0 {
		a.p.printf("Found %d products matching your criteria.\n", len(products))
	}
}

func (a *App) salesAnalysis(ctx context.Context, sess *domain.Session) {
	rows, err := a.catalog.SalesAnalysis(ctx, sess)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.println("\n--- Product Sales Analysis ---")
	renderSales(a.p.out, rows)
}

func (a *App) addProduct(ctx context.Context, sess *domain.Session) {
	a.p.println("\n--- Add New Product ---")
	input := ports.AddProductInput{
		ID:       a.p.line("Enter Product ID: "),
		Name:     a.p.line("Enter Product Name: "),
		Price:    a.p.floatVal("Enter Price: "),
		Quantity: a.p.intVal("Enter Quantity: "),
	}

	product, err := a.catalog.AddProduct(ctx, sess, input)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.printf("Product %s added successfully.\n", product.ID)
}

func (a *App) modifyProduct(ctx context.Context, sess *domain.Session) {
	a.p.println("\n--- Modify Existing Product ---")
	input := ports.UpdateProductInput{
		ID: a.p.line("Enter Product ID: "),
	}

	if name := a.p.line("New name (or press Enter to keep current): "); name != "" {
		input.Name = &name
	}
	input.Price = a.p.optionalFloat("New price (or press Enter to keep current): ")
	if text := a.p.line("New quantity (or press Enter to keep current): "); text != "" {
		quantity := a.p.parseIntOrPrompt(text, "New quantity: ")
		input.Quantity = &quantity
	}

	product, err := a.catalog.UpdateProduct(ctx, sess, input)
	if err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.printf("Product %s updated: price %.2f, quantity %d.\n", product.ID, product.Price, product.Quantity)
}

func (a *App) removeProduct(ctx context.Context, sess *domain.Session) {
	a.p.println("\n--- Remove Product ---")
	productID := a.p.line("Enter Product ID: ")
	if !a.p.yesNo("Remove product " + productID + "? (y/n): ") {
		a.p.println("Removal cancelled.")
		return
	}

	if err := a.catalog.RemoveProduct(ctx, sess, productID); err != nil {
		a.p.println(resolveError(err, a.logger))
		return
	}
	a.p.printf("Product %s removed successfully.\n", productID)
}
