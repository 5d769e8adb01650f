package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/adam"
	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	config := model.DefaultConfig()
	config.DataDir = "./adam_data/library"

	a, err := adam.NewAdam(dbConfig, config)
	if err != nil {
		log.Fatalf("Failed to create adam: %v", err)
	}
	defer a.Close()

	sessionID := "basic-example"

	messages := []string{
		"Reunión con María sobre el proyecto FinOps el 15/03/2024",
		"¿Qué sabes de María?",
	}

	for _, message := range messages {
		fmt.Printf("\n> %s\n", message)

		result, err := a.ProcessMessage(message, sessionID)
		if err != nil {
			log.Fatalf("Failed to process message: %v", err)
		}

		fmt.Printf("Adam: %s\n", result.Response)
		fmt.Printf("Category: %s\n", result.Category)

		for _, entity := range result.Entities {
			fmt.Printf("  entity: %s (%s, %.1f)\n", entity.Name, entity.Type, entity.Confidence)
		}

		for _, insight := range result.Insights {
			fmt.Printf("  insight [%s/%s]: %s (%s)\n", insight.Type, insight.Priority, insight.Message, insight.Suggestion)
		}
	}

	summary, err := a.GetMemorySummary(sessionID, 7)
	if err != nil {
		log.Fatalf("Failed to get memory summary: %v", err)
	}

	fmt.Printf("\n%s\n", summary.Summary)
	for _, entity := range summary.TopEntities {
		fmt.Printf("  %s (%s): %d menciones\n", entity.Name, entity.Type, entity.MentionCount)
	}

	fmt.Println("\nBasic example completed successfully!")
}
