// Package discovery checks host liveness with ICMP echo requests.
package discovery

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-ping/ping"
	"github.com/rs/zerolog/log"

	"github.com/skulk-project/skulk/pkg/output"
)

// Config controls a liveness check.
type Config struct {
	Count      int
	Timeout    time.Duration
	Privileged bool
}

// Pinger is the slice of go-ping's pinger the checker needs; tests
// substitute a fake.
type Pinger interface {
	Run() error
	Stop()
	Statistics() *ping.Statistics

	SetPrivileged(bool)
	SetCount(int)
	SetTimeout(time.Duration)
}

type pingerFactory func(host string) (Pinger, error)

// Liveness pings hosts one at a time.
type Liveness struct {
	out        output.Output
	cfg        Config
	newPinger  pingerFactory
	privileged bool
}

// NewLiveness creates a checker. A privileged request is downgraded when the
// process lacks root on unix, since raw ICMP sockets would fail anyway.
func NewLiveness(out output.Output, cfg Config) *Liveness {
	if cfg.Count < 1 {
		cfg.Count = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	privileged := cfg.Privileged
	if privileged && runtime.GOOS != "windows" && os.Geteuid() != 0 {
		log.Warn().Msg("privileged ping requested without root, falling back to unprivileged UDP ping")
		privileged = false
	}

	return &Liveness{
		out: out,
		cfg: cfg,
		newPinger: func(host string) (Pinger, error) {
			p, err := ping.NewPinger(host)
			if err != nil {
				return nil, err
			}
			return &pingerAdapter{p: p}, nil
		},
		privileged: privileged,
	}
}

// Check reports whether the host answered at least one echo request before
// the timeout or ctx was canceled.
func (l *Liveness) Check(ctx context.Context, host string) (bool, error) {
	pinger, err := l.newPinger(host)
	if err != nil {
		return false, fmt.Errorf("creating pinger for %s: %w", host, err)
	}

	pinger.SetPrivileged(l.privileged)
	pinger.SetCount(l.cfg.Count)
	pinger.SetTimeout(l.cfg.Timeout)

	opCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout+500*time.Millisecond)
	defer cancel()
	go func() {
		<-opCtx.Done()
		pinger.Stop()
	}()

	if err := pinger.Run(); err != nil {
		return false, fmt.Errorf("pinging %s: %w", host, err)
	}

	stats := pinger.Statistics()
	alive := stats != nil && stats.PacketsRecv > 0
	if alive {
		l.out.Info(fmt.Sprintf("[+] Host is up: %s", host))
	} else {
		l.out.Info(fmt.Sprintf("[-] No ping reply from %s", host))
	}
	return alive, nil
}

type pingerAdapter struct {
	p *ping.Pinger
}

func (a *pingerAdapter) Run() error                   { return a.p.Run() }
func (a *pingerAdapter) Stop()                        { a.p.Stop() }
func (a *pingerAdapter) Statistics() *ping.Statistics { return a.p.Statistics() }
func (a *pingerAdapter) SetPrivileged(v bool)         { a.p.SetPrivileged(v) }
func (a *pingerAdapter) SetCount(c int)               { a.p.Count = c }
func (a *pingerAdapter) SetTimeout(t time.Duration)   { a.p.Timeout = t }
