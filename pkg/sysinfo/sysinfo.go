/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sysinfo.go
Description: Host metadata for Mercy. Provider reads hostname, CPU, kernel release,
and process count through gopsutil. Reporter renders a single field (or all of them)
as display text for the info category.
*/

package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// Sentinel texts returned for handled failures
const (
	MsgUnableToGather = "Unable to gather system information"
)

// Fields accepted by the system_info protocol, in display order
var Fields = []string{"hostname", "cpu_cores", "cpu_speed", "os_release", "proc", "all"}

// Provider implements interfaces.SystemInfoProvider using gopsutil
type Provider struct{}

// NewProvider creates a host-backed provider
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Hostname(ctx context.Context) (string, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	return info.Hostname, nil
}

func (p *Provider) CPUCores(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// CPUSpeed returns the nominal speed of the first CPU in MHz
func (p *Provider) CPUSpeed(ctx context.Context) (uint64, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if len(infos) == 0 {
		return 0, fmt.Errorf("no cpu information reported")
	}
	return uint64(infos[0].Mhz), nil
}

func (p *Provider) OSRelease(ctx context.Context) (string, error) {
	return host.KernelVersionWithContext(ctx)
}

func (p *Provider) ProcessCount(ctx context.Context) (uint64, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.Procs, nil
}

// Reporter renders provider values as display lines
type Reporter struct {
	provider interfaces.SystemInfoProvider
}

// NewReporter creates a reporter over provider
func NewReporter(provider interfaces.SystemInfoProvider) *Reporter {
	return &Reporter{provider: provider}
}

// Report renders one field. Unknown fields are a handled result; provider
// failures are returned as environment errors.
func (r *Reporter) Report(ctx context.Context, field string) (interfaces.TransformResult, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "all" {
		return r.all(ctx)
	}

	render, ok := r.renderers()[field]
	if !ok {
		return interfaces.Unsupported(MsgUnableToGather), nil
	}
	line, err := render(ctx)
	if err != nil {
		return interfaces.TransformResult{}, fmt.Errorf("%w: %s: %v", interfaces.ErrEnvironment, field, err)
	}
	return interfaces.Ok(line), nil
}

func (r *Reporter) all(ctx context.Context) (interfaces.TransformResult, error) {
	renderers := r.renderers()
	lines := make([]string, 0, len(Fields)-1)
	for _, field := range Fields[:len(Fields)-1] {
		line, err := renderers[field](ctx)
		if err != nil {
			return interfaces.TransformResult{}, fmt.Errorf("%w: %s: %v", interfaces.ErrEnvironment, field, err)
		}
		lines = append(lines, line)
	}
	return interfaces.Ok(strings.Join(lines, "\n")), nil
}

func (r *Reporter) renderers() map[string]func(context.Context) (string, error) {
	return map[string]func(context.Context) (string, error){
		"hostname": func(ctx context.Context) (string, error) {
			v, err := r.provider.Hostname(ctx)
			return fmt.Sprintf("Hostname: %s", v), err
		},
		"cpu_cores": func(ctx context.Context) (string, error) {
			v, err := r.provider.CPUCores(ctx)
			return fmt.Sprintf("Number of CPU cores: %d", v), err
		},
		"cpu_speed": func(ctx context.Context) (string, error) {
			v, err := r.provider.CPUSpeed(ctx)
			return fmt.Sprintf("CPU Speed: %d MHz", v), err
		},
		"os_release": func(ctx context.Context) (string, error) {
			v, err := r.provider.OSRelease(ctx)
			return fmt.Sprintf("Operating System Release Version: %s", v), err
		},
		"proc": func(ctx context.Context) (string, error) {
			v, err := r.provider.ProcessCount(ctx)
			return fmt.Sprintf("Number of Processes: %d", v), err
		},
	}
}
