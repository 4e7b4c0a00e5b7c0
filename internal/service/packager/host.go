package packager

import (
	"context"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/playnite-extensions/pext-release/internal/logger"
)

// runningProcesses returns the subset of names that match a running executable.
// Names compare case-insensitively, as on Windows.
func runningProcesses(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	processList, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]string, len(names))
	for _, name := range names {
		wanted[strings.ToLower(name)] = name
	}

	var running []string

	for _, process := range processList {
		name, ok := wanted[strings.ToLower(process.Executable())]
		if !ok {
			continue
		}

		running = append(running, name)
		delete(wanted, strings.ToLower(name))
	}

	return running, nil
}

// warnIfHostRunning logs when a host application may hold the copied assemblies open.
func warnIfHostRunning(ctx context.Context, names []string) {
	running, err := runningProcesses(names)
	if err != nil {
		logger.DebugKV(ctx, "Unable to list processes", "error", err)
		return
	}

	if len(running) > 0 {
		logger.WarnKV(ctx, "Host application is running, copied assemblies may be locked",
			"processes", running)
	}
}
