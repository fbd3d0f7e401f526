package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lemonberrylabs/evalexpr/pkg/api"
	grpcapi "github.com/lemonberrylabs/evalexpr/pkg/api/grpc"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tokenizer over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}
	cmd.Flags().Int("port", 0, "HTTP server port (default 8787, env PORT)")
	cmd.Flags().Int("grpc-port", 0, "gRPC server port (default 8788, env GRPC_PORT)")
	cmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	cfg := a.cfg
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.HTTP.Port = v
	}
	if v, _ := cmd.Flags().GetInt("grpc-port"); v != 0 {
		cfg.GRPC.Port = v
	}
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.HTTP.Host = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	server := api.New(cfg)
	grpcServer := grpcapi.New(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr())
		return grpcServer.Serve(cfg.GRPCAddr())
	})
	g.Go(func() error {
		log.Printf("evalexpr listening on %s (max input %d bytes)", cfg.HTTPAddr(), cfg.MaxInputBytes)
		return server.Listen(cfg.HTTPAddr())
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		grpcServer.GracefulStop()
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
