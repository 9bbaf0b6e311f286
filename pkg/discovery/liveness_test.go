package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-ping/ping"
	"github.com/stretchr/testify/require"

	"github.com/skulk-project/skulk/pkg/output"
)

type recorder struct {
	infos []string
}

func (r *recorder) Info(message string)       { r.infos = append(r.infos, message) }
func (r *recorder) Error(err error)           {}
func (r *recorder) Warning(message string)    {}
func (r *recorder) Result(name string, d any) {}
func (r *recorder) Diag(level output.OutputLevel, message string, metadata map[string]any) {}

type fakePinger struct {
	recv       int
	runErr     error
	privileged bool
	count      int
	timeout    time.Duration
	stopped    bool
}

func (f *fakePinger) Run() error { return f.runErr }
func (f *fakePinger) Stop()      { f.stopped = true }
func (f *fakePinger) Statistics() *ping.Statistics {
	return &ping.Statistics{PacketsSent: f.count, PacketsRecv: f.recv}
}
func (f *fakePinger) SetPrivileged(v bool)       { f.privileged = v }
func (f *fakePinger) SetCount(c int)             { f.count = c }
func (f *fakePinger) SetTimeout(t time.Duration) { f.timeout = t }

func newTestLiveness(rec *recorder, p *fakePinger) *Liveness {
	return &Liveness{
		out:       rec,
		cfg:       Config{Count: 2, Timeout: time.Second},
		newPinger: func(host string) (Pinger, error) { return p, nil },
	}
}

func TestCheckAlive(t *testing.T) {
	rec := &recorder{}
	p := &fakePinger{recv: 1}

	alive, err := newTestLiveness(rec, p).Check(context.Background(), "192.0.2.1")
	require.NoError(t, err)
	require.True(t, alive)
	require.Equal(t, []string{"[+] Host is up: 192.0.2.1"}, rec.infos)
	require.Equal(t, 2, p.count)
	require.Equal(t, time.Second, p.timeout)
}

func TestCheckNoReply(t *testing.T) {
	rec := &recorder{}
	p := &fakePinger{recv: 0}

	alive, err := newTestLiveness(rec, p).Check(context.Background(), "192.0.2.1")
	require.NoError(t, err)
	require.False(t, alive)
	require.Equal(t, []string{"[-] No ping reply from 192.0.2.1"}, rec.infos)
}

func TestCheckRunError(t *testing.T) {
	rec := &recorder{}
	p := &fakePinger{runErr: errors.New("socket: operation not permitted")}

	_, err := newTestLiveness(rec, p).Check(context.Background(), "192.0.2.1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "192.0.2.1")
}

func TestCheckFactoryError(t *testing.T) {
	l := &Liveness{
		out:       &recorder{},
		cfg:       Config{Count: 1, Timeout: time.Second},
		newPinger: func(host string) (Pinger, error) { return nil, errors.New("bad host") },
	}

	_, err := l.Check(context.Background(), "not a host")
	require.Error(t, err)
}

func TestNewLivenessSanitizesConfig(t *testing.T) {
	l := NewLiveness(&recorder{}, Config{Count: 0, Timeout: -1})
	require.Equal(t, 1, l.cfg.Count)
	require.Equal(t, 3*time.Second, l.cfg.Timeout)
}
