package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopzone-io/shopzone-backend/config"
	"github.com/shopzone-io/shopzone-backend/internal/app/model"
	"github.com/shopzone-io/shopzone-backend/internal/app/repository"
	"github.com/shopzone-io/shopzone-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected sheet layout, first row is the header:
// category | product name | price | rating | fast_delivery | in_stock | quantity | seller | image | description
const expectedColumns = 10

type catalogRow struct {
	category string
	product  model.Product
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readCatalogFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// Categories are created on first sight, keyed by slug
	categoryIDs := make(map[string]uint)
	imported := 0
	failed := 0

	for _, row := range rows {
		categorySlug := slugify(row.category)

		categoryID, seen := categoryIDs[categorySlug]
		if !seen {
			existing, err := categoryRepo.FindBySlug(categorySlug)
			if err == nil {
				categoryID = existing.ID
			} else {
				category := model.Category{Name: row.category, Slug: categorySlug}
				if err := categoryRepo.Create(&category); err != nil {
					log.Fatal("Failed to create category:", err)
				}
				categoryID = category.ID
			}
			categoryIDs[categorySlug] = categoryID
		}

		if err := productRepo.Create(&row.product); err != nil {
			failed++
			continue
		}
		if err := categoryRepo.AssignProduct(row.product.ID, categoryID); err != nil {
			log.Fatal("Failed to assign product to category:", err)
		}

		imported++
		if imported%100 == 0 {
			fmt.Printf("Imported %d products...\n", imported)
		}
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d (failed: %d)\n", imported, failed)
}

func readCatalogFromXLSX(filePath string) ([]catalogRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var catalog []catalogRow
	slugCounter := make(map[string]int)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < expectedColumns {
			skippedCount++
			continue
		}

		category := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		ratingStr := strings.TrimSpace(row[3])
		fastDeliveryStr := strings.TrimSpace(row[4])
		inStockStr := strings.TrimSpace(row[5])
		quantityStr := strings.TrimSpace(row[6])
		seller := strings.TrimSpace(row[7])
		image := strings.TrimSpace(row[8])
		description := strings.TrimSpace(row[9])

		if category == "" || name == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		rating, _ := strconv.ParseFloat(ratingStr, 64)
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity < 0 {
			quantity = 10
		}

		// Slug collisions get a numeric suffix
		baseSlug := slugify(name)
		slug := baseSlug
		if count, exists := slugCounter[baseSlug]; exists {
			slugCounter[baseSlug] = count + 1
			slug = fmt.Sprintf("%s-%d", baseSlug, count+1)
		} else {
			slugCounter[baseSlug] = 1
		}

		product := model.Product{
			Name:         name,
			Slug:         slug,
			Description:  splitParagraphs(description),
			Price:        price,
			Rating:       rating,
			FastDelivery: parseBool(fastDeliveryStr),
			InStock:      parseBool(inStockStr),
			Quantity:     quantity,
			Seller:       seller,
			Image:        image,
		}

		catalog = append(catalog, catalogRow{category: category, product: product})
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(catalog))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return catalog, nil
}

// slugify builds a URL slug from a display name
func slugify(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

// splitParagraphs turns a pipe-separated description cell into paragraphs
func splitParagraphs(raw string) model.Description {
	if raw == "" {
		return nil
	}

	var paragraphs model.Description
	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
