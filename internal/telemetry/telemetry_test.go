/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector is a fake endpoint recording request bodies per path.
type collector struct {
	mu     sync.Mutex
	bodies map[string][][]byte
	types  map[string]string
	status int
}

func newCollector(t *testing.T, status int) (*collector, *httptest.Server) {
	t.Helper()
	c := &collector{bodies: map[string][][]byte{}, types: map[string]string{}, status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.bodies[r.URL.Path] = append(c.bodies[r.URL.Path], b)
		c.types[r.URL.Path] = r.Header.Get("Content-Type")
		c.mu.Unlock()
		w.WriteHeader(c.status)
	}))
	t.Cleanup(srv.Close)
	return c, srv
}

func (c *collector) got(path string) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.bodies[path]...)
}

func (c *collector) contentType(path string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.types[path]
}

func TestEventIsDeliveredWithSession(t *testing.T) {
	col, srv := newCollector(t, http.StatusNoContent)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: 2 * time.Second})
	defer c.Close()
	require.True(t, c.Enabled())
	require.NotEmpty(t, c.Session())

	c.Event("project_opened", map[string]any{"files": 7})
	c.Flush(context.Background())

	bodies := col.got("/events")
	require.Len(t, bodies, 1)
	var p payload
	require.NoError(t, json.Unmarshal(bodies[0], &p))
	assert.Equal(t, "project_opened", p.Name)
	assert.Equal(t, c.Session(), p.Session)
	assert.NotEmpty(t, p.TS)
	assert.EqualValues(t, 7, p.Props["files"])
	assert.Equal(t, "application/json", col.contentType("/events"))
	assert.Equal(t, Stats{Sent: 1}, c.Stats())
}

func TestSessionsDifferPerClient(t *testing.T) {
	a, b := New(Config{}), New(Config{})
	defer a.Close()
	defer b.Close()
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestUploadCrashPostsPlainText(t *testing.T) {
	col, srv := newCollector(t, http.StatusOK)
	c := New(Config{OptIn: true, CrashURL: srv.URL + "/crash", Timeout: 2 * time.Second})
	defer c.Close()
	assert.False(t, c.Enabled(), "events stay off without an events URL")

	c.UploadCrash([]byte("panic: boom"))
	c.Flush(context.Background())

	bodies := col.got("/crash")
	require.Len(t, bodies, 1)
	assert.Equal(t, "panic: boom", string(bodies[0]))
	assert.Contains(t, col.contentType("/crash"), "text/plain")
}

func TestNothingIsSentWithoutOptIn(t *testing.T) {
	col, srv := newCollector(t, http.StatusOK)
	c := New(Config{EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash", Timeout: time.Second})
	defer c.Close()
	require.False(t, c.Enabled())

	c.Event("ui_started", nil)
	c.UploadCrash([]byte("ignored"))
	c.Flush(context.Background())
	assert.Empty(t, col.got("/events"))
	assert.Empty(t, col.got("/crash"))
}

func TestEmptyEventNameIsIgnored(t *testing.T) {
	col, srv := newCollector(t, http.StatusOK)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: time.Second})
	defer c.Close()
	c.Event("", nil)
	c.Flush(context.Background())
	assert.Empty(t, col.got("/events"))
}

func TestFailuresAreCounted(t *testing.T) {
	_, srv := newCollector(t, http.StatusInternalServerError)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: time.Second, DebugLogging: true})
	defer c.Close()
	c.Event("snapshot_exported", nil)
	c.Flush(context.Background())
	assert.Equal(t, int64(1), c.Stats().Failed)

	// Unreachable endpoint.
	d := New(Config{OptIn: true, EventsURL: "http://127.0.0.1:1/events", CrashURL: "http://127.0.0.1:1/crash", Timeout: 50 * time.Millisecond, DebugLogging: true})
	defer d.Close()
	d.Event("err", map[string]any{"a": 1})
	d.UploadCrash([]byte("oops"))
	d.Flush(context.Background())
	assert.Equal(t, int64(2), d.Stats().Failed)
	assert.Zero(t, d.Stats().Sent)
}

func TestEventAfterCloseIsDropped(t *testing.T) {
	col, srv := newCollector(t, http.StatusOK)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: time.Second})
	c.Close()
	c.Close()
	c.Event("late", nil)
	c.Flush(context.Background())
	assert.Empty(t, col.got("/events"))
}

func TestFlushHonoursContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { <-block }))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})
	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: 5 * time.Second})
	defer c.Close()
	c.Event("slow", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	c.Flush(ctx)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFromEnvAndDefaultClient(t *testing.T) {
	t.Setenv("DSP_TELEMETRY_OPT_IN", "yes")
	t.Setenv("DSP_TELEMETRY_URL", " http://127.0.0.1:0 ")
	t.Setenv("DSP_CRASH_UPLOAD_URL", "")
	t.Setenv("DSP_TELEMETRY_TIMEOUT_MS", "100")

	cfg := FromEnv()
	assert.True(t, cfg.OptIn)
	assert.Equal(t, "http://127.0.0.1:0", cfg.EventsURL)
	assert.Equal(t, 100*time.Millisecond, cfg.Timeout)

	NewDefault(cfg)
	t.Cleanup(func() { NewDefault(Config{}) })
	assert.True(t, Enabled())

	t.Setenv("DSP_TELEMETRY_TIMEOUT_MS", "soon")
	assert.Equal(t, defaultTimeout, FromEnv().Timeout)
}
