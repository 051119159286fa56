package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/reactivekit/spark/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const arityKey = "arity"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the typed arity wrappers for ⚡ spark",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityKey,
				Usage: "Highest dependency arity to generate",
				Value: 8,
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for typed started")
	defer func() {
		log.Printf("Codegen for typed finished in %v", time.Since(start))
	}()

	arity := cmd.Uint(arityKey)
	log.Printf("Arity: %d", arity)

	contents := templates.TypedGen(int(arity))
	return os.WriteFile("typed/typed.go", []byte(contents), 0644)
}
