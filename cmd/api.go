package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// APIGet performs a direct GET against the proxy and prints the raw response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("path argument is required")
	}

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return err
	}

	return r.printAPIResponse(resp.StatusCode, resp.IsJSON, resp.JSONData, resp.Body, cmd.Bool("pretty"))
}

// APIPost performs a direct POST with a JSON body against the proxy.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("path argument is required")
	}

	resp, err := r.api.Post(ctx, path, []byte(cmd.String("data")))
	if err != nil {
		return err
	}

	return r.printAPIResponse(resp.StatusCode, resp.IsJSON, resp.JSONData, resp.Body, cmd.Bool("pretty"))
}

// APIPut performs a direct PUT with a JSON body against the proxy.
func (r *Runner) APIPut(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("path argument is required")
	}

	resp, err := r.api.Put(ctx, path, []byte(cmd.String("data")))
	if err != nil {
		return err
	}

	return r.printAPIResponse(resp.StatusCode, resp.IsJSON, resp.JSONData, resp.Body, cmd.Bool("pretty"))
}

func (r *Runner) printAPIResponse(status int, isJSON bool, jsonData any, body []byte, pretty bool) error {
	if status < 200 || status >= 300 {
		r.writePlainln("✗ Status: %d", status)
	}
	if isJSON {
		return r.writeJSON(jsonData, pretty)
	}
	return r.writePlainln("%s", body)
}
