package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/smartpos/smartposgo/internal/config"
	"github.com/smartpos/smartposgo/internal/database"
	"github.com/smartpos/smartposgo/internal/models"
	"github.com/smartpos/smartposgo/internal/store"
	"github.com/smartpos/smartposgo/internal/utils"
)

func main() {
	fmt.Println("🌱 SmartPOS Demo Data Seeder")
	fmt.Println("=" + string(make([]rune, 60)))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	st := store.NewDBStore(db)
	fmt.Println("🔨 Running database migrations...")
	if err := st.Init(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	// Check if data already exists
	existing, err := st.GetProducts()
	if err != nil {
		log.Fatalf("❌ Failed to inspect products: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", len(existing))
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE transaction_items CASCADE")
		db.Exec("TRUNCATE TABLE transactions CASCADE")
		db.Exec("TRUNCATE TABLE cart_items CASCADE")
		db.Exec("TRUNCATE TABLE pending_mutations CASCADE")
		db.Exec("TRUNCATE TABLE products CASCADE")
		db.Exec("TRUNCATE TABLE customers CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("📦 Creating demo data...")
	fmt.Println()

	// 1. Products
	fmt.Println("🛒 Creating products...")
	products := []models.Product{
		{ID: uuid.NewString(), Name: "Basmati Rice 5kg", SKU: "GRN-001", Barcode: "8901001000017", Category: "Grocery", Price: "1250", Cost: "1040", Stock: 40, MinStock: 10, IsActive: true},
		{ID: uuid.NewString(), Name: "Cooking Oil 1L", SKU: "GRN-002", Barcode: "8901001000024", Category: "Grocery", Price: "560", Cost: "475", Stock: 60, MinStock: 15, IsActive: true},
		{ID: uuid.NewString(), Name: "Milk 1L", SKU: "DRY-001", Barcode: "8901001000031", Category: "Dairy", Price: "230", Cost: "195", Stock: 80, MinStock: 20, IsActive: true},
		{ID: uuid.NewString(), Name: "Eggs (dozen)", SKU: "DRY-002", Barcode: "8901001000048", Category: "Dairy", Price: "340", Cost: "290", Stock: 50, MinStock: 10, IsActive: true},
		{ID: uuid.NewString(), Name: "Green Tea 50 bags", SKU: "BEV-001", Barcode: "8901001000055", Category: "Beverages", Price: "420", Cost: "350", Stock: 35, MinStock: 8, IsActive: true},
		{ID: uuid.NewString(), Name: "Dish Soap 500ml", SKU: "HOM-001", Barcode: "8901001000062", Category: "Household", Price: "180", Cost: "140", Stock: 45, MinStock: 10, IsActive: true},
	}
	if err := st.SaveProducts(products); err != nil {
		log.Fatalf("❌ Failed to create products: %v", err)
	}
	for _, p := range products {
		fmt.Printf("   ✓ %s (%s)\n", p.Name, p.SKU)
	}
	fmt.Printf("✅ Created %d products\n\n", len(products))

	// 2. Customers
	fmt.Println("👥 Creating customers...")
	customers := []models.Customer{
		{ID: uuid.NewString(), Name: "Ahmed Khan", Phone: "+92 300 1234567", Email: "ahmed.khan@example.com", CreditBalance: "0", TotalPurchases: "0"},
		{ID: uuid.NewString(), Name: "Sara Malik", Phone: "+92 321 7654321", Email: "sara.malik@example.com", CreditBalance: "0", TotalPurchases: "0"},
		{ID: uuid.NewString(), Name: "Bilal Sheikh", Phone: "+92 333 1112223", CreditBalance: "0", TotalPurchases: "0"},
	}
	if err := st.SaveCustomers(customers); err != nil {
		log.Fatalf("❌ Failed to create customers: %v", err)
	}
	fmt.Printf("✅ Created %d customers\n\n", len(customers))

	// 3. Cashier account
	fmt.Println("🔑 Creating cashier account (cashier@smartpos.local / cashier123)...")
	hash, err := utils.HashPassword("cashier123")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	cashier := models.User{
		ID:        uuid.NewString(),
		Email:     "cashier@smartpos.local",
		Password:  hash,
		FirstName: "Demo",
		LastName:  "Cashier",
		Role:      "cashier",
		IsActive:  true,
	}
	if err := st.PutUser(cashier); err != nil {
		log.Fatalf("❌ Failed to create cashier: %v", err)
	}
	fmt.Println("✅ Cashier created")

	// 4. Store profile
	settings := models.StoreSettings{
		StoreName:    "SmartPOS Demo Store",
		StoreAddress: "12 Main Boulevard, Lahore",
		StorePhone:   "+92 42 1234567",
		TaxRate:      17,
	}
	if err := st.PutSetting(models.SettingStoreInfo, settings); err != nil {
		log.Fatalf("❌ Failed to save store settings: %v", err)
	}
	fmt.Println("✅ Store profile saved")

	fmt.Println()
	fmt.Println("🎉 Demo data ready")
}
