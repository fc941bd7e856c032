/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in anonymous usage events and crash reports.
// Nothing leaves the machine unless the user opted in and an endpoint is
// configured.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/version"
)

// Config holds runtime configuration for telemetry and crash uploads.
//
// Environment variables (read by FromEnv):
//   - DSP_TELEMETRY_OPT_IN: 1/true/yes/on enables sending
//   - DSP_TELEMETRY_URL: endpoint receiving JSON events
//   - DSP_CRASH_UPLOAD_URL: endpoint receiving plain text crash reports
//   - DSP_TELEMETRY_TIMEOUT_MS: request timeout, default 1500
//   - DSP_TELEMETRY_DEBUG: log every send attempt at debug level
type Config struct {
	OptIn        bool
	EventsURL    string
	CrashURL     string
	Timeout      time.Duration
	DebugLogging bool
}

const (
	defaultTimeout = 1500 * time.Millisecond
	queueSize      = 64
	flushCap       = 2 * time.Second
)

func FromEnv() Config {
	cfg := Config{
		OptIn:        parseBool(os.Getenv("DSP_TELEMETRY_OPT_IN")),
		EventsURL:    strings.TrimSpace(os.Getenv("DSP_TELEMETRY_URL")),
		CrashURL:     strings.TrimSpace(os.Getenv("DSP_CRASH_UPLOAD_URL")),
		Timeout:      defaultTimeout,
		DebugLogging: os.Getenv("DSP_TELEMETRY_DEBUG") != "",
	}
	if ms, err := strconv.Atoi(strings.TrimSpace(os.Getenv("DSP_TELEMETRY_TIMEOUT_MS"))); err == nil && ms > 0 {
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	return cfg
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// payload is the wire form of one event. Props must never carry user data.
type payload struct {
	Name    string         `json:"name"`
	Session string         `json:"session"`
	TS      string         `json:"ts"`
	Version string         `json:"version"`
	OS      string         `json:"os"`
	Arch    string         `json:"arch"`
	Props   map[string]any `json:"props,omitempty"`
}

// Stats counts delivery outcomes of a client.
type Stats struct {
	Sent    int64
	Failed  int64
	Dropped int64
}

// Client delivers events from a bounded queue on a background goroutine.
// Event never blocks; a full queue drops the event. Each client carries a
// random session id and no user or machine identifier.
type Client struct {
	cfg     Config
	log     *slog.Logger
	cli     *http.Client
	session string

	q       chan payload
	pending sync.WaitGroup
	stop    chan struct{}
	once    sync.Once
	closed  atomic.Bool

	sent, failed, dropped atomic.Int64
}

// New constructs a client and starts its sender.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg:     cfg,
		log:     applog.WithComponent("telemetry"),
		cli:     &http.Client{Timeout: cfg.Timeout},
		session: uuid.NewString(),
		q:       make(chan payload, queueSize),
		stop:    make(chan struct{}),
	}
	go c.loop()
	return c
}

// Session returns the anonymous id attached to this client's events.
func (c *Client) Session() string {
	if c == nil {
		return ""
	}
	return c.session
}

// Enabled reports whether events are sent at all.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Stats returns a snapshot of the delivery counters.
func (c *Client) Stats() Stats {
	return Stats{Sent: c.sent.Load(), Failed: c.failed.Load(), Dropped: c.dropped.Load()}
}

// Event queues an event if the client is enabled. Safe for concurrent use.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" || c.closed.Load() {
		return
	}
	p := payload{
		Name:    name,
		Session: c.session,
		TS:      time.Now().UTC().Format(time.RFC3339Nano),
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if len(props) > 0 {
		p.Props = make(map[string]any, len(props))
		for k, v := range props {
			p.Props[k] = v
		}
	}
	c.pending.Add(1)
	select {
	case c.q <- p:
	default:
		c.pending.Done()
		c.dropped.Add(1)
	}
}

// UploadCrash posts a crash report to the crash endpoint if opted in.
// The upload runs in the background; Flush waits for it.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	body := append([]byte(nil), report...)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		c.deliver("crash report", c.cfg.CrashURL, "text/plain; charset=utf-8", body)
	}()
}

// Flush waits until queued events and uploads are delivered, ctx is done or
// a short cap elapses, whichever comes first.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	t := time.NewTimer(flushCap)
	defer t.Stop()
	select {
	case <-done:
	case <-ctx.Done():
	case <-t.C:
	}
	if c.cfg.DebugLogging {
		st := c.Stats()
		c.log.Debug("telemetry flushed", slog.Int64("sent", st.Sent), slog.Int64("failed", st.Failed), slog.Int64("dropped", st.Dropped))
	}
}

// Close stops the sender. Events still queued are discarded.
func (c *Client) Close() {
	c.once.Do(func() {
		c.closed.Store(true)
		close(c.stop)
	})
}

func (c *Client) loop() {
	for {
		select {
		case <-c.stop:
			for {
				select {
				case <-c.q:
					c.pending.Done()
					c.dropped.Add(1)
				default:
					return
				}
			}
		case p := <-c.q:
			body, err := json.Marshal(p)
			if err == nil {
				c.deliver("event "+p.Name, c.cfg.EventsURL, "application/json", body)
			} else {
				c.failed.Add(1)
			}
			c.pending.Done()
		}
	}
}

func (c *Client) deliver(what, url, contentType string, body []byte) {
	err := c.post(url, contentType, body)
	if err != nil {
		c.failed.Add(1)
	} else {
		c.sent.Add(1)
	}
	if !c.cfg.DebugLogging {
		return
	}
	if err != nil {
		c.log.Debug("telemetry send failed", slog.String("what", what), slog.Any("err", err))
		return
	}
	c.log.Debug("telemetry sent", slog.String("what", what))
}

func (c *Client) post(url, contentType string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry endpoint returned %s", resp.Status)
	}
	return nil
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

func std() *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		defaultClient = New(FromEnv())
	}
	return defaultClient
}

// NewDefault installs a client built from cfg as the package default,
// closing the one it replaces.
func NewDefault(cfg Config) {
	c := New(cfg)
	defaultMu.Lock()
	old := defaultClient
	defaultClient = c
	defaultMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Enabled reports whether the default client sends events.
func Enabled() bool { return std().Enabled() }

// Event queues an event on the default client.
func Event(name string, props map[string]any) { std().Event(name, props) }

// UploadCrash uploads a crash report through the default client.
func UploadCrash(report []byte) { std().UploadCrash(report) }

// Flush waits for the default client's pending deliveries.
func Flush(ctx context.Context) { std().Flush(ctx) }
