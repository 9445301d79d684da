package main

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/puddle/v2"
	"github.com/pior/adc/proto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultBenchLine = "BINF AAAB IDFAKECIDFAKECIDFAKECIDFAKECIDFAKECIDF NIbench\\suser SL3 SS1073741824 SUTCP4,UDP4 VEadc\\s0.1"

func newBenchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure parse + format throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := runBench(cmd.Context(), benchConfig{
				Line:     v.GetString("line"),
				Legacy:   v.GetBool("legacy"),
				Workers:  v.GetInt("workers"),
				Duration: v.GetDuration("duration"),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "workers:     %d\n", result.Workers)
			fmt.Fprintf(out, "operations:  %d\n", result.Ops)
			fmt.Fprintf(out, "elapsed:     %s\n", result.Elapsed.Round(time.Millisecond))
			fmt.Fprintf(out, "throughput:  %.0f ops/s\n", result.OpsPerSecond())
			fmt.Fprintf(out, "bytes out:   %d\n", result.Bytes)
			return nil
		},
	}

	cmd.Flags().String("line", defaultBenchLine, "line to parse and format, without terminator")
	cmd.Flags().Int("workers", 4, "number of concurrent workers")
	cmd.Flags().Duration("duration", 2*time.Second, "how long to run")
	return cmd
}

type benchConfig struct {
	Line     string
	Legacy   bool
	Workers  int
	Duration time.Duration
}

type benchResult struct {
	Workers int
	Ops     uint64
	Bytes   uint64
	Elapsed time.Duration
}

func (r benchResult) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ops) / r.Elapsed.Seconds()
}

// runBench parses and formats config.Line in a loop on every worker. Format
// buffers come from a pool holding one buffer per worker.
func runBench(ctx context.Context, config benchConfig) (benchResult, error) {
	if config.Workers <= 0 {
		return benchResult{}, fmt.Errorf("workers must be > 0, got %d", config.Workers)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Fail fast on a line that does not parse.
	if _, err := proto.Parse(config.Line, config.Legacy); err != nil {
		return benchResult{}, err
	}

	pool, err := puddle.NewPool(&puddle.Config[*bytes.Buffer]{
		Constructor: func(context.Context) (*bytes.Buffer, error) {
			return bytes.NewBuffer(make([]byte, 0, 2*len(config.Line))), nil
		},
		Destructor: func(*bytes.Buffer) {},
		MaxSize:    int32(config.Workers),
	})
	if err != nil {
		return benchResult{}, err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, config.Duration)
	defer cancel()

	var ops, written atomic.Uint64
	var failure error
	var failureOnce sync.Once

	log.Info().Int("workers", config.Workers).Dur("duration", config.Duration).Msg("starting benchmark")

	start := time.Now()
	var wg sync.WaitGroup
	for range config.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				n, err := benchOnce(ctx, pool, config.Line, config.Legacy)
				if err != nil {
					if ctx.Err() == nil {
						failureOnce.Do(func() { failure = err })
						cancel()
					}
					return
				}
				ops.Add(1)
				written.Add(uint64(n))
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if failure != nil {
		return benchResult{}, failure
	}

	stat := pool.Stat()
	log.Debug().
		Int64("acquires", stat.AcquireCount()).
		Int64("empty_acquires", stat.EmptyAcquireCount()).
		Int32("buffers", stat.TotalResources()).
		Msg("buffer pool")

	return benchResult{
		Workers: config.Workers,
		Ops:     ops.Load(),
		Bytes:   written.Load(),
		Elapsed: elapsed,
	}, nil
}

func benchOnce(ctx context.Context, pool *puddle.Pool[*bytes.Buffer], line string, legacy bool) (int, error) {
	res, err := pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer res.Release()

	cmd, err := proto.Parse(line, legacy)
	if err != nil {
		return 0, err
	}

	buf := res.Value()
	buf.Reset()
	buf.Write(cmd.AppendFormat(buf.AvailableBuffer(), cmd.From, legacy))
	return buf.Len(), nil
}
