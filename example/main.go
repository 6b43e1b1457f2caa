package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/callflow"
	"github.com/meikuraledutech/callflow/format"
	"github.com/meikuraledutech/callflow/postgres"
	"github.com/meikuraledutech/callflow/render"
	"github.com/sirupsen/logrus"
)

const script = `Agent: Thanks for reaching out about the Pro plan. What would make this an easy yes?
Client: Honestly I'm worried [OBJECTION: too expensive] and a bit [EMOTION: hesitant]
Agent: That makes sense. Teams your size usually recover the cost within a quarter.
Client: How long does onboarding take? [QUESTION: onboarding time] [CUE: wants credibility]
Agent: Most customers are live in a week, and we'll assign a dedicated specialist.
Client: [EMOTION: relieved]
Agent: Shall I send over the agreement so we can lock in this month's pricing?`

func main() {
	ctx := context.Background()
	log := logrus.New()

	// ── Compile ───────────────────────────────────────────────────────
	g := callflow.Build(script)
	fmt.Printf("compiled %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))

	for _, name := range format.Names() {
		f, _ := format.Lookup(name)
		out, err := f.Format(g)
		if err != nil {
			log.Fatalf("format %s: %v", name, err)
		}
		fmt.Printf("\n── %s ──\n%s", name, out)
	}

	// ── Render (optional) ─────────────────────────────────────────────
	renderer := render.New(render.Options{Logger: log})
	if renderer.Available() {
		description, _ := format.DOT{}.Format(g)
		img, err := renderer.Render(ctx, string(description), render.SVG)
		if err != nil {
			log.Fatalf("render: %v", err)
		}
		if err := os.WriteFile("callflow.svg", img, 0o644); err != nil {
			log.Fatalf("write: %v", err)
		}
		fmt.Println("\nrendered callflow.svg")
	} else {
		log.Warn("graphviz not installed, skipping render")
	}

	// ── Persist (optional) ────────────────────────────────────────────
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Warn("DATABASE_URL is not set, skipping storage")
		return
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Wire up the postgres implementation behind the Store interface.
	var store callflow.Store = postgres.New(pool)

	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}

	saved, err := store.SaveGraph(ctx, &callflow.Record{
		Graph:    *g,
		Script:   script,
		Metadata: map[string]string{"objective": "Negotiate and finalize product purchase", "framework": "spin"},
	})
	if err != nil {
		log.Fatalf("save graph: %v", err)
	}
	fmt.Printf("\ngraph saved: %s\n", saved.ID)

	result, err := store.GetGraph(ctx, saved.ID)
	if err != nil {
		log.Fatalf("get graph: %v", err)
	}
	fmt.Println("\ngraph retrieved:")
	printJSON(result)

	if err := store.DeleteGraph(ctx, saved.ID); err != nil {
		log.Fatalf("delete: %v", err)
	}
	fmt.Println("\ngraph deleted")
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
