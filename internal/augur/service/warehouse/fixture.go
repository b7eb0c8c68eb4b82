package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// The seed is a compact, deterministic cut of the classic Northwind sales
// dataset. The numbers that matter are stable facts of the data, not of
// the generator: Germany has exactly 11 customers, the USA has the most
// (13), Margaret Peacock handles the most orders, Plutzer supplies the
// most products, and Côte de Blaye, Thüringer Rostbratwurst and Raclette
// Courdavault lead revenue in that order.

var fixtureSchema = []string{
	`CREATE TABLE customers (
		customer_id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		contact_name TEXT,
		country TEXT NOT NULL,
		city TEXT
	)`,
	`CREATE TABLE employees (
		employee_id INTEGER PRIMARY KEY,
		last_name TEXT NOT NULL,
		first_name TEXT NOT NULL,
		title TEXT
	)`,
	`CREATE TABLE categories (
		category_id INTEGER PRIMARY KEY,
		category_name TEXT NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE suppliers (
		supplier_id INTEGER PRIMARY KEY,
		company_name TEXT NOT NULL,
		country TEXT
	)`,
	`CREATE TABLE products (
		product_id INTEGER PRIMARY KEY,
		product_name TEXT NOT NULL,
		supplier_id INTEGER NOT NULL REFERENCES suppliers(supplier_id),
		category_id INTEGER NOT NULL REFERENCES categories(category_id),
		unit_price REAL NOT NULL,
		units_in_stock INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE orders (
		order_id INTEGER PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(customer_id),
		employee_id INTEGER NOT NULL REFERENCES employees(employee_id),
		order_date TEXT NOT NULL,
		freight REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE order_details (
		order_id INTEGER NOT NULL REFERENCES orders(order_id),
		product_id INTEGER NOT NULL REFERENCES products(product_id),
		unit_price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		discount REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (order_id, product_id)
	)`,
	`CREATE INDEX idx_orders_customer ON orders(customer_id)`,
	`CREATE INDEX idx_orders_employee ON orders(employee_id)`,
	`CREATE INDEX idx_order_details_product ON order_details(product_id)`,
}

type customerSeed struct {
	id, company, contact, country, city string
}

var customerSeeds = []customerSeed{
	// Germany: exactly 11.
	{"ALFKI", "Alfreds Futterkiste", "Maria Anders", "Germany", "Berlin"},
	{"BLAUS", "Blauer See Delikatessen", "Hanna Moos", "Germany", "Mannheim"},
	{"DRACD", "Drachenblut Delikatessen", "Sven Ottlieb", "Germany", "Aachen"},
	{"FRANK", "Frankenversand", "Peter Franken", "Germany", "München"},
	{"KOENE", "Königlich Essen", "Philip Cramer", "Germany", "Brandenburg"},
	{"LEHMS", "Lehmanns Marktstand", "Renate Messner", "Germany", "Frankfurt a.M."},
	{"MORGK", "Morgenstern Gesundkost", "Alexander Feuer", "Germany", "Leipzig"},
	{"OTTIK", "Ottilies Käseladen", "Henriette Pfalzheim", "Germany", "Köln"},
	{"QUICK", "QUICK-Stop", "Horst Kloss", "Germany", "Cunewalde"},
	{"TOMSP", "Toms Spezialitäten", "Karin Josephs", "Germany", "Münster"},
	{"WANDK", "Die Wandernde Kuh", "Rita Müller", "Germany", "Stuttgart"},
	// USA: 13, the largest group.
	{"GREAL", "Great Lakes Food Market", "Howard Snyder", "USA", "Eugene"},
	{"HUNGC", "Hungry Coyote Import Store", "Yoshi Latimer", "USA", "Elgin"},
	{"LAZYK", "Lazy K Kountry Store", "John Steel", "USA", "Walla Walla"},
	{"LETSS", "Let's Stop N Shop", "Jaime Yorres", "USA", "San Francisco"},
	{"LONEP", "Lonesome Pine Restaurant", "Fran Wilson", "USA", "Portland"},
	{"OLDWO", "Old World Delicatessen", "Rene Phillips", "USA", "Anchorage"},
	{"RATTC", "Rattlesnake Canyon Grocery", "Paula Wilson", "USA", "Albuquerque"},
	{"SAVEA", "Save-a-lot Markets", "Jose Pavarotti", "USA", "Boise"},
	{"SPLIR", "Split Rail Beer & Ale", "Art Braunschweiger", "USA", "Lander"},
	{"THEBI", "The Big Cheese", "Liz Nixon", "USA", "Portland"},
	{"THECR", "The Cracker Box", "Liu Wong", "USA", "Butte"},
	{"TRAIH", "Trail's Head Gourmet Provisioners", "Helvetius Nagy", "USA", "Kirkland"},
	{"WHITC", "White Clover Markets", "Karl Jablonski", "USA", "Seattle"},
	// The rest of the world, all below 11.
	{"VINET", "Vins et alcools Chevalier", "Paul Henriot", "France", "Reims"},
	{"PARIS", "Paris spécialités", "Marie Bertrand", "France", "Paris"},
	{"BLONP", "Blondesddsl père et fils", "Frédérique Citeaux", "France", "Strasbourg"},
	{"AROUT", "Around the Horn", "Thomas Hardy", "UK", "London"},
	{"BSBEV", "B's Beverages", "Victoria Ashworth", "UK", "London"},
	{"HANAR", "Hanari Carnes", "Mario Pontes", "Brazil", "Rio de Janeiro"},
	{"QUEDE", "Que Delícia", "Bernardo Batista", "Brazil", "Rio de Janeiro"},
	{"ANATR", "Ana Trujillo Emparedados y helados", "Ana Trujillo", "Mexico", "México D.F."},
	{"ANTON", "Antonio Moreno Taquería", "Antonio Moreno", "Mexico", "México D.F."},
	{"BOLID", "Bólido Comidas preparadas", "Martín Sommer", "Spain", "Madrid"},
	{"BOTTM", "Bottom-Dollar Markets", "Elizabeth Lincoln", "Canada", "Tsawassen"},
	{"ERNSH", "Ernst Handel", "Roland Mendel", "Austria", "Graz"},
	{"BERGS", "Berglunds snabbköp", "Christina Berglund", "Sweden", "Luleå"},
	{"MAGAA", "Magazzini Alimentari Riuniti", "Giovanni Rovelli", "Italy", "Bergamo"},
}

type employeeSeed struct {
	id                  int
	lastName, firstName string
	title               string
}

var employeeSeeds = []employeeSeed{
	{1, "Davolio", "Nancy", "Sales Representative"},
	{2, "Fuller", "Andrew", "Vice President, Sales"},
	{3, "Leverling", "Janet", "Sales Representative"},
	{4, "Peacock", "Margaret", "Sales Representative"},
	{5, "Buchanan", "Steven", "Sales Manager"},
	{6, "Suyama", "Michael", "Sales Representative"},
	{7, "King", "Robert", "Sales Representative"},
	{8, "Callahan", "Laura", "Inside Sales Coordinator"},
	{9, "Dodsworth", "Anne", "Sales Representative"},
}

type categorySeed struct {
	id          int
	name, descr string
}

var categorySeeds = []categorySeed{
	{1, "Beverages", "Soft drinks, coffees, teas, beers, and ales"},
	{2, "Condiments", "Sweet and savory sauces, relishes, spreads, and seasonings"},
	{3, "Confections", "Desserts, candies, and sweet breads"},
	{4, "Dairy Products", "Cheeses"},
	{5, "Grains/Cereals", "Breads, crackers, pasta, and cereal"},
	{6, "Meat/Poultry", "Prepared meats"},
	{7, "Produce", "Dried fruit and bean curd"},
	{8, "Seafood", "Seaweed and fish"},
}

type supplierSeed struct {
	id            int
	name, country string
}

var supplierSeeds = []supplierSeed{
	{1, "Exotic Liquids", "UK"},
	{2, "New Orleans Cajun Delights", "USA"},
	{3, "Grandma Kelly's Homestead", "USA"},
	{4, "Tokyo Traders", "Japan"},
	{5, "Aux joyeux ecclésiastiques", "France"},
	{6, "Plutzer Lebensmittelgroßmärkte AG", "Germany"},
	{7, "Gai pâturage", "France"},
	{8, "Pavlova, Ltd.", "Australia"},
}

type productSeed struct {
	id         int
	name       string
	supplierID int
	categoryID int
	price      float64
	stock      int
}

// Plutzer (supplier 6) carries five products, more than anyone else.
var productSeeds = []productSeed{
	{1, "Chai", 1, 1, 18.00, 39},
	{2, "Chang", 1, 1, 19.00, 17},
	{3, "Aniseed Syrup", 1, 2, 10.00, 13},
	{4, "Chef Anton's Cajun Seasoning", 2, 2, 22.00, 53},
	{5, "Grandma's Boysenberry Spread", 3, 2, 25.00, 120},
	{6, "Uncle Bob's Organic Dried Pears", 3, 7, 30.00, 15},
	{7, "Ikura", 4, 8, 31.00, 31},
	{8, "Mishi Kobe Niku", 4, 6, 97.00, 29},
	{9, "Longlife Tofu", 4, 7, 10.00, 4},
	{10, "Côte de Blaye", 5, 1, 263.50, 17},
	{11, "Chartreuse verte", 5, 1, 18.00, 69},
	{12, "Thüringer Rostbratwurst", 6, 6, 123.79, 0},
	{13, "Rössle Sauerkraut", 6, 7, 45.60, 26},
	{14, "Wimmers gute Semmelknödel", 6, 5, 33.25, 22},
	{15, "Rhönbräu Klosterbier", 6, 1, 7.75, 125},
	{16, "Original Frankfurter grüne Soße", 6, 2, 13.00, 32},
	{17, "Raclette Courdavault", 7, 4, 55.00, 79},
	{18, "Camembert Pierrot", 7, 4, 34.00, 19},
	{19, "Pavlova", 8, 3, 17.45, 29},
	{20, "Carnarvon Tigers", 8, 8, 62.50, 42},
}

// Revenue leaders: included on fixed strides with quantities that keep
// their totals far above anything the rotation can accumulate.
const (
	productCoteDeBlaye = 10
	productThueringer  = 12
	productRaclette    = 17
)

// employeeOrderShare flattens into one employee id per order, Margaret
// Peacock (4) first with the largest share.
var employeeOrderShare = []struct {
	employeeID int
	orders     int
}{
	{4, 40}, {3, 31}, {1, 29}, {8, 27}, {2, 20}, {7, 14}, {6, 12}, {9, 10}, {5, 7},
}

const (
	firstOrderID   = 10248
	orderDaySpread = 3
)

// seed creates the schema and loads the dataset inside one transaction.
func (w *Warehouse) seed(ctx context.Context) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ddl := range fixtureSchema {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	for _, c := range customerSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO customers (customer_id, company_name, contact_name, country, city) VALUES (?, ?, ?, ?, ?)`,
			c.id, c.company, c.contact, c.country, c.city); err != nil {
			return fmt.Errorf("customer insert failed: %w", err)
		}
	}
	for _, e := range employeeSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO employees (employee_id, last_name, first_name, title) VALUES (?, ?, ?, ?)`,
			e.id, e.lastName, e.firstName, e.title); err != nil {
			return fmt.Errorf("employee insert failed: %w", err)
		}
	}
	for _, c := range categorySeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (category_id, category_name, description) VALUES (?, ?, ?)`,
			c.id, c.name, c.descr); err != nil {
			return fmt.Errorf("category insert failed: %w", err)
		}
	}
	for _, s := range supplierSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO suppliers (supplier_id, company_name, country) VALUES (?, ?, ?)`,
			s.id, s.name, s.country); err != nil {
			return fmt.Errorf("supplier insert failed: %w", err)
		}
	}
	for _, p := range productSeeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (product_id, product_name, supplier_id, category_id, unit_price, units_in_stock) VALUES (?, ?, ?, ?, ?, ?)`,
			p.id, p.name, p.supplierID, p.categoryID, p.price, p.stock); err != nil {
			return fmt.Errorf("product insert failed: %w", err)
		}
	}

	if err := seedOrders(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}

func seedOrders(ctx context.Context, tx *sql.Tx) error {
	var employees []int
	for _, share := range employeeOrderShare {
		for i := 0; i < share.orders; i++ {
			employees = append(employees, share.employeeID)
		}
	}

	prices := make(map[int]float64, len(productSeeds))
	for _, p := range productSeeds {
		prices[p.id] = p.price
	}

	// Rotation products exclude the three revenue leaders so their
	// totals come only from the fixed strides below.
	var rotation []int
	for _, p := range productSeeds {
		if p.id == productCoteDeBlaye || p.id == productThueringer || p.id == productRaclette {
			continue
		}
		rotation = append(rotation, p.id)
	}

	start := time.Date(1996, 7, 4, 0, 0, 0, 0, time.UTC)

	for i, employeeID := range employees {
		orderID := firstOrderID + i
		customer := customerSeeds[i%len(customerSeeds)]
		orderDate := start.AddDate(0, 0, i*orderDaySpread).Format("2006-01-02")
		freight := float64(5+(i%40)) + 0.45

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO orders (order_id, customer_id, employee_id, order_date, freight) VALUES (?, ?, ?, ?, ?)`,
			orderID, customer.id, employeeID, orderDate, freight); err != nil {
			return fmt.Errorf("order insert failed: %w", err)
		}

		insertDetail := func(productID, quantity int) error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_details (order_id, product_id, unit_price, quantity, discount) VALUES (?, ?, ?, ?, 0)`,
				orderID, productID, prices[productID], quantity)
			if err != nil {
				return fmt.Errorf("order detail insert failed: %w", err)
			}
			return nil
		}

		lines := 1 + i%2
		for line := 0; line < lines; line++ {
			productID := rotation[(i*5+line)%len(rotation)]
			quantity := 1 + (i+3*line)%10
			if err := insertDetail(productID, quantity); err != nil {
				return err
			}
		}

		if i%5 == 0 {
			if err := insertDetail(productCoteDeBlaye, 20); err != nil {
				return err
			}
		}
		if i%7 == 0 {
			if err := insertDetail(productThueringer, 25); err != nil {
				return err
			}
		}
		if i%9 == 0 {
			if err := insertDetail(productRaclette, 30); err != nil {
				return err
			}
		}
	}

	return nil
}
