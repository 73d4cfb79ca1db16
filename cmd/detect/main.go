package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"nutrient-bot/config"
	app "nutrient-bot/internal/application"
	"nutrient-bot/internal/container"
	"nutrient-bot/internal/infrastructure/storage"
)

func main() {
	imagePath := flag.String("image", "", "Path to a crop or leaf image")
	phone := flag.String("phone", "", "Mobile number for the WhatsApp link")
	email := flag.String("email", "", "Recipient of the email alert")
	user := flag.String("user", "", "Caller ID stored with the record")
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Shared()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	imageData, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatalf("Failed to read image: %v", err)
	}

	records, closeRecords, err := container.OpenRecordStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer closeRecords()

	c := container.New(cfg, storage.NewMemoryUserRepository(), records)

	req := app.NutrientRequest{
		Image:        imageData,
		MobileNumber: *phone,
		Email:        *email,
	}
	if *user != "" {
		req.UserID = user
	}

	out, err := c.NutrientService.Analyze(context.Background(), req)
	if err != nil {
		closeRecords()
		log.Fatalf("Analysis failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out.Result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
