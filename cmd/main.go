package main

import (
	"context"
	"os"

	"mflix-catalog/internal/catalog/adapter/cli"
	"mflix-catalog/internal/di"
)

func main() {
	cli.Bootstrap = func(ctx context.Context) (*cli.Services, error) {
		container, err := di.Bootstrap(ctx)
		if err != nil {
			return nil, err
		}
		return &cli.Services{
			Catalog: container.CatalogUsecase,
			Config:  container.Config,
			Log:     container.Logger,
			Close:   container.Close,
		}, nil
	}

	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
