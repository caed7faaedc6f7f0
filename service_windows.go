//go:build windows

// Windows service support for the panel bridge, using
// github.com/kardianos/service for Start/Stop lifecycle handling.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kardianos/service"
)

// Program implements service.Interface, bridging the service manager's
// Start/Stop calls to run().
type Program struct {
	ctx    context.Context
	cancel context.CancelFunc
	exit   chan struct{}
}

// Start launches the bridge in a goroutine and returns immediately, as the
// service manager requires.
func (p *Program) Start(s service.Service) error {
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.exit = make(chan struct{})
	go func() {
		defer close(p.exit)
		run(p.ctx)
	}()
	return nil
}

// Stop signals shutdown and waits for the bridge to drain.
func (p *Program) Stop(s service.Service) error {
	p.cancel()
	select {
	case <-p.exit:
		return nil
	case <-time.After(60 * time.Second):
		return fmt.Errorf("timeout waiting for service to stop")
	}
}

// ServiceConfig returns the Windows service definition.
func ServiceConfig() *service.Config {
	return &service.Config{
		Name:        "PSAIPanelBridge",
		DisplayName: "AI Image Panel Bridge",
		Description: "Local bridge server for the AI image preview/apply panel",
		Option: service.KeyValue{
			"StartType": "automatic",
		},
	}
}

// RunAsService runs under the service manager when not started
// interactively. Returns true if the service path was taken.
func RunAsService() (bool, error) {
	s, err := service.New(&Program{}, ServiceConfig())
	if err != nil {
		return false, fmt.Errorf("creating service: %w", err)
	}
	if service.Interactive() {
		return false, nil
	}
	if err := s.Run(); err != nil {
		return true, fmt.Errorf("service run failed: %w", err)
	}
	return true, nil
}

// HandleServiceCommand processes install/uninstall/start/stop commands.
// Returns true if a command was handled and the process should exit.
func HandleServiceCommand(args []string) bool {
	if len(args) < 2 {
		return false
	}
	cmd := args[1]
	switch cmd {
	case "install", "uninstall", "start", "stop", "restart":
	default:
		return false
	}

	s, err := service.New(&Program{}, ServiceConfig())
	if err != nil {
		fmt.Printf("Failed to create service: %v\n", err)
		return true
	}
	if err := service.Control(s, cmd); err != nil {
		fmt.Printf("Failed to %s service: %v\n", cmd, err)
		return true
	}
	fmt.Printf("Service %s: ok\n", cmd)
	return true
}
