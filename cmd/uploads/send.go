package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sir_venger/upload_demo/pkg/uploadclient"
)

func sendCmd() *cobra.Command {
	var (
		server, mode, name, attribute string
		quiet                         bool
	)

	cmd := &cobra.Command{
		Use:   "send FILE",
		Short: "Upload a local file to a running service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(args[0])
			}

			var opts []uploadclient.Option
			if !quiet {
				opts = append(opts, uploadclient.WithProgress(cmd.OutOrStdout()))
			}
			req := uploadclient.Request{FileName: name, Reader: f, Size: info.Size()}
			if cmd.Flags().Changed("attribute") {
				req.AnotherAttribute = &attribute
			}

			res, err := send(cmd.Context(), uploadclient.New(opts...), mode, server, req)
			if err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("server answered %d: %s", res.Status, res.Body)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Body)
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:8080", "service base URL")
	cmd.Flags().StringVarP(&mode, "mode", "m", "stream", "upload mode: stream, completed or bytes")
	cmd.Flags().StringVarP(&name, "name", "n", "", "destination file name (default: base name of FILE)")
	cmd.Flags().StringVar(&attribute, "attribute", "", "optional anotherAttribute value (stream, completed)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "disable progress output")

	return cmd
}

func send(ctx context.Context, cli uploadclient.Client, mode, server string, req uploadclient.Request) (uploadclient.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch mode {
	case "stream":
		return cli.Stream(ctx, server, req)
	case "completed":
		return cli.Completed(ctx, server, req)
	case "bytes":
		return cli.Bytes(ctx, server, req)
	default:
		return uploadclient.Result{}, fmt.Errorf("unknown mode %q", mode)
	}
}
