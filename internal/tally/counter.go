package tally

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Counts is the running tally of one attendance window.
type Counts struct {
	WindowID string           `json:"attendance_window_id"`
	Total    int64            `json:"total"`
	ByMethod map[string]int64 `json:"by_method"`
}

// Counter keeps per-window tallies. Incr counts each student at most once
// per window, so redelivered events do not inflate the totals.
type Counter interface {
	Incr(ctx context.Context, ev Event) (counted bool, err error)
	Get(ctx context.Context, windowID string) (Counts, error)
}

const (
	fieldTotal   = "total"
	methodPrefix = "method:"
)

// incrOnce adds the student to the window's seen set and bumps the hash only
// when the student is new. KEYS: hash, set. ARGV: student, method.
var incrOnce = redis.NewScript(`
if redis.call('SADD', KEYS[2], ARGV[1]) == 1 then
	redis.call('HINCRBY', KEYS[1], 'total', 1)
	redis.call('HINCRBY', KEYS[1], 'method:' .. ARGV[2], 1)
	return 1
end
return 0
`)

// RedisCounter stores tallies in a hash per window.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter creates a counter using keys under prefix.
func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	if prefix == "" {
		prefix = "attendsync:window:"
	}
	return &RedisCounter{client: client, prefix: prefix}
}

func (c *RedisCounter) hashKey(windowID string) string { return c.prefix + windowID }
func (c *RedisCounter) seenKey(windowID string) string { return c.prefix + windowID + ":students" }

func (c *RedisCounter) Incr(ctx context.Context, ev Event) (bool, error) {
	n, err := incrOnce.Run(ctx, c.client,
		[]string{c.hashKey(ev.WindowID), c.seenKey(ev.WindowID)},
		ev.StudentID, ev.VerificationMethod,
	).Int()
	if err != nil {
		return false, fmt.Errorf("tally incr %s: %w", ev.WindowID, err)
	}
	return n == 1, nil
}

func (c *RedisCounter) Get(ctx context.Context, windowID string) (Counts, error) {
	fields, err := c.client.HGetAll(ctx, c.hashKey(windowID)).Result()
	if err != nil {
		return Counts{}, fmt.Errorf("tally get %s: %w", windowID, err)
	}
	out := Counts{WindowID: windowID, ByMethod: map[string]int64{}}
	for field, raw := range fields {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Counts{}, fmt.Errorf("tally field %s: %w", field, err)
		}
		if field == fieldTotal {
			out.Total = v
		} else if method, ok := strings.CutPrefix(field, methodPrefix); ok {
			out.ByMethod[method] = v
		}
	}
	return out, nil
}

// MemoryCounter keeps tallies in process.
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]*Counts
	seen   map[string]map[string]struct{}
}

// NewMemoryCounter creates an empty counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: map[string]*Counts{}, seen: map[string]map[string]struct{}{}}
}

func (c *MemoryCounter) Incr(ctx context.Context, ev Event) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	students, ok := c.seen[ev.WindowID]
	if !ok {
		students = map[string]struct{}{}
		c.seen[ev.WindowID] = students
	}
	if _, dup := students[ev.StudentID]; dup {
		return false, nil
	}
	students[ev.StudentID] = struct{}{}
	counts, ok := c.counts[ev.WindowID]
	if !ok {
		counts = &Counts{WindowID: ev.WindowID, ByMethod: map[string]int64{}}
		c.counts[ev.WindowID] = counts
	}
	counts.Total++
	counts.ByMethod[ev.VerificationMethod]++
	return true, nil
}

func (c *MemoryCounter) Get(ctx context.Context, windowID string) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return Counts{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Counts{WindowID: windowID, ByMethod: map[string]int64{}}
	if counts, ok := c.counts[windowID]; ok {
		out.Total = counts.Total
		for m, n := range counts.ByMethod {
			out.ByMethod[m] = n
		}
	}
	return out, nil
}
