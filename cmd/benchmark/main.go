package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	spark "github.com/reactivekit/spark"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkPropagate(true)
}

func benchmarkPropagate(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Spark Signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := spark.New(spark.WithOnError(func(err error) {
				log.Panic(err)
			}))
			src := spark.Signal(rt, 1)
			for i := 0; i < w; i++ {
				last := func() int { return src.Value() }
				for j := 0; j < h; j++ {
					prev := last
					c := spark.Computed(rt, func() int {
						return prev() + 1
					})
					last = func() int { return c.Value() }
				}

				final := last
				spark.Effect(rt, func() spark.CleanupFunc {
					final()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})

			rt.Dispose()
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
