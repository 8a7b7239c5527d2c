// Package main seeds a fresh database: it provisions the sequence counters
// every posting depends on and, optionally, a pair of demo customers with
// active wallets for local development.
package main

import (
	"context"
	"flag"
	"log"

	"aurum/internal/config"
	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/services/sequence"
	"aurum/internal/services/wallet"
)

func main() {
	demo := flag.Bool("demo", false, "also create demo customers and wallets")
	flag.Parse()

	config.LoadEnv()
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repo := repositories.NewLedgerRepository(repositories.DB)

	for _, name := range models.SequenceNames {
		err := repo.CreateSequence(&models.Sequence{Name: name, Value: 0})
		if err != nil {
			log.Printf("sequence %q already provisioned: %v", name, err)
			continue
		}
		log.Printf("sequence %q created", name)
	}

	if !*demo {
		return
	}

	allocator := sequence.NewAllocator(repo)
	wallets := wallet.NewService(repo, repositories.CacheService, allocator)
	ctx := context.Background()

	for _, c := range []models.Customer{
		{FullName: "Alice Demo", Cpf: "11122233344", Status: models.StatusActive},
		{FullName: "Bob Demo", Cpf: "55566677788", Status: models.StatusActive},
	} {
		customer := c
		if err := repo.CreateCustomer(&customer); err != nil {
			log.Printf("customer %s already exists: %v", customer.Cpf, err)
			continue
		}

		w, err := wallets.CreateWallet(ctx, customer.ID)
		if err != nil {
			log.Fatalf("Failed to create wallet for %s: %v", customer.FullName, err)
		}
		if err := wallets.UpdateStatus(ctx, w.ID, models.StatusActive); err != nil {
			log.Fatalf("Failed to activate wallet %d: %v", w.ID, err)
		}
		log.Printf("customer %q seeded with wallet %d", customer.FullName, w.ID)
	}
}
