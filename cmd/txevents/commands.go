package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"txevents/internal/httpapi"
	"txevents/internal/props"
	"txevents/internal/publish"
	"txevents/pkg/types"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin HTTP API (events, listeners, properties, metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			httpapi.SetLogger(a.log)
			httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins)
			deps := httpapi.Deps{Publisher: a.publisher, Properties: a.assembler}
			if m := a.recent(); m != nil {
				deps.Recent = m
			}
			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(deps),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", cfg.Addr).Strs("listeners", a.publisher.Listeners()).Msg("txevents listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Graceful shutdown (Ctrl+C / SIGTERM)
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(stop)
			select {
			case err := <-errCh:
				return err
			case <-stop:
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("graceful shutdown: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address (default :8089)")
	if err := v.BindPFlag("addr", cmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
	return cmd
}

func newPropertiesCmd(v *viper.Viper) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Print the effective properties (defaults overlaid by overrides)",
		Example: "  txevents properties\n" +
			"  txevents properties --name present.properties --search-path ./conf",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var p props.ConfigProperties
			if name != "" {
				p = a.loader.LoadDefaults(name)
			} else {
				p = a.assembler.ConfigProperties()
			}
			out := cmd.OutOrStdout()
			for _, k := range p.Keys() {
				val, _ := p.Get(k)
				fmt.Fprintf(out, "%s=%s\n", k, val)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Load only this resource instead of defaults + overrides")
	return cmd
}

func newPublishCmd(v *viper.Viper) *cobra.Command {
	var (
		kind        string
		tx          string
		participant string
		fields      map[string]string
	)
	cmd := &cobra.Command{
		Use:     "publish",
		Short:   "Publish one event to the configured listeners",
		Example: "  txevents publish --kind transaction_heuristic --tx tm42 --field outcome=mixed",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := types.ParseKind(kind)
			if err != nil {
				return err
			}
			if tx == "" {
				return fmt.Errorf("--tx is required")
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			e := types.NewTransactionEvent(k, uuid.NewString(), tx, participant, time.Now().UTC(), fields)
			printResults(cmd, a.publisher.Publish(e))
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(types.KindTransactionCommitted), "Event kind")
	cmd.Flags().StringVar(&tx, "tx", "", "Transaction id")
	cmd.Flags().StringVar(&participant, "participant", "", "Participant URI")
	cmd.Flags().StringToStringVar(&fields, "field", nil, "Extra event field key=value (repeatable)")
	return cmd
}

func printResults(cmd *cobra.Command, results []publish.Result) {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "no listeners")
		return
	}
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(out, "%s: ok\n", r.Listener)
			continue
		}
		fmt.Fprintf(out, "%s: %v\n", r.Listener, r.Err)
	}
}

func newListenersCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "listeners",
		Short: "List linked providers and the listeners the config enables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			enabled := map[string]bool{}
			for _, l := range a.publisher.Listeners() {
				enabled[l] = true
			}
			out := cmd.OutOrStdout()
			for _, p := range publish.Providers() {
				mark := " "
				if enabled[p] {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s\n", mark, p)
			}
			return nil
		},
	}
}
