// Command reference is a minimal notifier plugin. It appends every
// notification as a JSON line to $FLOWRPG_REFERENCE_LOG, or to
// flowrpg-notifications.jsonl in the temp dir.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-plugin"

	notifyrpc "flowrpg/internal/modules/notify/adapter/out/rpc"
)

type server struct {
	mu   sync.Mutex
	path string
}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{Name: "reference", Version: "1.0.0"}, nil
}

func (s *server) Notify(_ context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.NotifyResponse, error) {
	if in.Title == "" {
		return &notifyrpc.NotifyResponse{Accepted: false, Detail: "title is required"}, nil
	}
	line, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return nil, fmt.Errorf("append notification: %w", err)
	}
	return &notifyrpc.NotifyResponse{Accepted: true}, nil
}

func main() {
	path := os.Getenv("FLOWRPG_REFERENCE_LOG")
	if path == "" {
		path = filepath.Join(os.TempDir(), "flowrpg-notifications.jsonl")
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{path: path}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
