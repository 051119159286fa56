package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	spark "github.com/reactivekit/spark"
)

func main() {
	log.Print("Starting spark layers benchmark, please wait...")
	defer log.Print("Finished spark layers benchmark")

	cfgs := []layersTestConfig{
		{
			name:           "simple component",
			width:          10,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       2,
			readFraction:   0.2,
			iterations:     600_000,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			nSources:       6,
			readFraction:   0.2,
			iterations:     15_000,
		},
		{
			name:           "large web app",
			width:          1000,
			totalLayers:    12,
			staticFraction: 0.95,
			nSources:       4,
			readFraction:   1,
			iterations:     7_000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       25,
			readFraction:   1,
			iterations:     3_000,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			nSources:       3,
			readFraction:   1,
			iterations:     500,
		},
		{
			name:           "very dynamic",
			width:          100,
			totalLayers:    15,
			staticFraction: 0.5,
			nSources:       6,
			readFraction:   1,
			iterations:     2_000,
		},
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"framework", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time", "updateRate", "title",
	})

	const testRepeats = 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)
		rt := spark.New()
		graph := makeLayeredGraph(rt, counter, cfg)

		runOnce := func() int {
			return runLayeredGraph(graph, cfg)
		}
		// warm up
		runOnce()

		best := results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, i+1, testRepeats)
			*counter = 0
			start := time.Now()
			sum := runOnce()
			duration := time.Since(start)
			if duration < best.duration {
				best = results{sum: sum, count: *counter, duration: duration}
			}
		}

		updateRate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		tbl.Append([]string{
			"spark",
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(updateRate)),
			makeTitle(cfg),
		})

		rt.Dispose()
	}
	tbl.Render()
}

type layersTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes with a fixed dependency set
	nSources       int64   // number of sources feeding each node
	readFraction   float64 // fraction of leaves read back per iteration
	iterations     int64   // number of test iterations
}

type results struct {
	sum      int
	count    int64
	duration time.Duration
}

type layeredGraph struct {
	rt      *spark.Runtime
	sources []*spark.WriteableSignal[int]
	layers  [][]*spark.ReadonlySignal[int]
}

func makeTitle(cfg layersTestConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

func makeLayeredGraph(rt *spark.Runtime, counter *int64, cfg layersTestConfig) *layeredGraph {
	random := rand.New(rand.NewSource(0))

	sources := make([]*spark.WriteableSignal[int], cfg.width)
	for i := range sources {
		sources[i] = spark.Signal(rt, i)
	}

	prevRow := make([]func() int, len(sources))
	for i, s := range sources {
		s := s
		prevRow[i] = func() int { return s.Value() }
	}

	layers := make([][]*spark.ReadonlySignal[int], cfg.totalLayers-1)
	for l := range layers {
		row := make([]*spark.ReadonlySignal[int], len(prevRow))
		nextRow := make([]func() int, len(prevRow))
		for myDex := range prevRow {
			mySources := make([]func() int, 0, cfg.nSources)
			for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
				mySources = append(mySources, prevRow[(myDex+sourceDex)%len(prevRow)])
			}

			var c *spark.ReadonlySignal[int]
			if random.Float64() < cfg.staticFraction {
				c = spark.Computed(rt, func() int {
					*counter++
					sum := 0
					for _, source := range mySources {
						sum += source()
					}
					return sum
				})
			} else {
				// dynamic node: whether the tail sources are read at all
				// depends on the first source's parity
				first, tail := mySources[0], mySources[1:]
				c = spark.Computed(rt, func() int {
					*counter++
					sum := first()
					if sum%2 == 0 {
						for _, source := range tail {
							sum += source()
						}
					}
					return sum
				})
			}
			row[myDex] = c
			cc := c
			nextRow[myDex] = func() int { return cc.Value() }
		}
		layers[l] = row
		prevRow = nextRow
	}

	return &layeredGraph{rt: rt, sources: sources, layers: layers}
}

// runLayeredGraph writes one source per iteration and reads a sampled subset
// of the leaves, returning their final sum.
func runLayeredGraph(graph *layeredGraph, cfg layersTestConfig) int {
	random := rand.New(rand.NewSource(0))
	leaves := graph.layers[len(graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := removeElems(leaves, skipCount, random)

	for i := 0; i < int(cfg.iterations); i++ {
		sourceDex := i % len(graph.sources)
		graph.sources[sourceDex].SetValue(i + sourceDex)

		for _, leaf := range readLeaves {
			leaf.Value()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func removeElems[T any](src []T, rmCount int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < rmCount; i++ {
		rmDex := random.Intn(len(out))
		out[rmDex] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
