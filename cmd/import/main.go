package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/mariyae/catalog-backend/internal/app/service"
	"github.com/mariyae/catalog-backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/import/main.go <products.xlsx|products.csv>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Initialize(logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
	})

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatal("Failed to read file:", err)
	}

	repos, closeDB, err := repository.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer closeDB()

	bulkService := service.NewBulkService(repos.Products, cfg.Import.BatchSize)
	filename := filepath.Base(filePath)

	fmt.Printf("Reading products from %s\n", filename)
	parsed, err := bulkService.ParseFile(bytes.NewReader(data), filename)
	if err != nil {
		log.Fatal("Failed to parse file:", err)
	}

	for _, rowErr := range parsed.Errors {
		fmt.Printf("  row %d: %s\n", rowErr.Row, rowErr.Error)
	}
	fmt.Printf("\nTotal valid products: %d\n", len(parsed.Products))
	fmt.Printf("Total row errors: %d\n", len(parsed.Errors))

	if len(parsed.Products) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("\nDo you want to proceed with the import? (yes/no): ")
	var response string
	fmt.Scanln(&response)
	if response != "yes" && response != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	fmt.Printf("\nImporting in batches of %d...\n", cfg.Import.BatchSize)
	result, err := bulkService.ImportFile(context.Background(), bytes.NewReader(data), filename)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}

	for _, bulkErr := range result.Errors {
		fmt.Printf("  product %d: %s\n", bulkErr.Index, bulkErr.Error)
	}
	fmt.Printf("\nCreated: %d, failed: %d\n", result.Created, result.Failed)
	if result.Failed == 0 {
		fmt.Println("Import completed successfully!")
	}
}
