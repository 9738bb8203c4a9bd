package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"

	. "github.com/aweeraman/AIND-Isolation/internal/helpers"
	"github.com/aweeraman/AIND-Isolation/internal/server"
	"github.com/aweeraman/AIND-Isolation/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const defaultAddr = ":8002"

var (
	rootCmd = &cobra.Command{
		Use:           "server",
		Short:         "Streams Isolation games between configured agents over a websocket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}

	configPath string
	addr       string

	logger = NewConsoleLogger()
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "tournament YAML config listing the agents (defaults to the built-in lineup)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to $ISOLATION_ADDR or "+defaultAddr+")")
}

func serve(cmd *cobra.Command, args []string) error {
	config := tournament.DefaultConfig()
	if configPath != "" {
		var err Error
		config, err = tournament.LoadConfig(configPath)
		if !IsNil(err) {
			return err
		}
	}

	if addr == "" {
		addr = os.Getenv("ISOLATION_ADDR")
	}
	if addr == "" {
		addr = defaultAddr
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	s := server.New(config, logger, registry)

	logger.Info().Str("addr", addr).Int("agents", len(config.Agents)).Msg("serving")
	return Wrap(http.ListenAndServe(addr, s.Router()))
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
			os.Exit(1)
		}
	}()

	err := rootCmd.Execute()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
