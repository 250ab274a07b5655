package perf

import (
	"fmt"
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tbruckner/dMQ/cmd/util"
	"github.com/tbruckner/dMQ/remoting/common"
)

var (
	// PerfCmd is a simple latency benchmark against the configured endpoints
	PerfCmd = &cobra.Command{
		Use:   "perf",
		Short: "Performance testing tool for broker endpoints",
		Long: util.WrapString("Fires a configurable number of requests at the " +
			"configured endpoints from multiple goroutines and reports the " +
			"latency distribution."),
		RunE:    run,
		PreRunE: processConfig,
	}
)

func init() {
	PerfCmd.Flags().Int("requests", 1000, util.WrapString("Total number of requests to send"))
	PerfCmd.Flags().Int("threads", 10, util.WrapString("Number of concurrent senders"))
	PerfCmd.Flags().Int32("code", 0, util.WrapString("The operation code to invoke"))
	PerfCmd.Flags().Int("body-size", 64, util.WrapString("Size of the request body in bytes"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	return util.BindCommandFlags(cmd)
}

func run(_ *cobra.Command, _ []string) error {
	util.InitClientConfig()

	conf := util.GetClientConfig()
	common.InitLoggers(conf.LogLevel)

	fmt.Println("Performance testing tool for broker endpoints")
	fmt.Println(conf.String())

	t, err := util.GetTransport()
	if err != nil {
		return err
	}
	if err := t.Connect(*conf); err != nil {
		return err
	}
	defer t.Close()

	requests := viper.GetInt("requests")
	threads := viper.GetInt("threads")
	code := viper.GetInt32("code")
	body := make([]byte, viper.GetInt("body-size"))

	timer := gometrics.NewTimer()
	errors := gometrics.NewCounter()

	var wg sync.WaitGroup
	perThread := requests / threads

	start := time.Now()
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perThread; j++ {
				timer.Time(func() {
					if _, err := t.Invoke(code, body, nil); err != nil {
						errors.Inc(1)
					}
				})
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	// Report
	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Println()
	fmt.Printf("requests  : %d (%d failed)\n", timer.Count(), errors.Count())
	fmt.Printf("elapsed   : %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("rate      : %.1f req/s\n", float64(timer.Count())/elapsed.Seconds())
	fmt.Printf("mean      : %s\n", time.Duration(int64(timer.Mean())))
	fmt.Printf("p50       : %s\n", time.Duration(int64(ps[0])))
	fmt.Printf("p95       : %s\n", time.Duration(int64(ps[1])))
	fmt.Printf("p99       : %s\n", time.Duration(int64(ps[2])))
	fmt.Printf("max       : %s\n", time.Duration(timer.Max()))
	return nil
}
