/*Package metrics sends counters and timers to a datadog agent, or to debug
logs when no agent is configured.

Naming convention of keys:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err / *.failure
*/
package metrics

import (
	"strings"
	"time"

	"github.com/x-xyz/claimscore/base/env"
	"github.com/x-xyz/claimscore/base/log"
)

// Ender stops a timer started by BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpSum(key string, val float64, tags ...string)

	// BumpTime starts a timer, usually used as
	//
	//     defer met.BumpTime("fetch.time").End()
	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as key prefix
func New(pkgName string) Service {
	return &metrics{
		pkgName: pkgName,
		tags:    baseTags(),
	}
}

func baseTags() []string {
	tags := []string{}
	for _, t := range [][2]string{
		{"pod", env.PodName()},
		{"env", env.EnvName()},
		{"app", env.AppName()},
	} {
		if t[1] != "" {
			tags = append(tags, t[0]+":"+t[1])
		}
	}
	return tags
}

type metrics struct {
	pkgName string
	tags    []string
}

func (m *metrics) key(key string) string {
	return m.pkgName + "." + key
}

// BumpSum bumps the sum for the given key
func (m *metrics) BumpSum(key string, val float64, tags ...string) {
	defer m.recover("bumpsum", key)
	if err := client().Count(m.key(key), int64(val), m.withTags(tags), 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val}).Warn("BumpSum failed")
	}
}

func (m *metrics) BumpTime(key string, tags ...string) Ender {
	return &timer{
		m:     m,
		key:   key,
		tags:  m.withTags(tags),
		start: time.Now(),
	}
}

func (m *metrics) recover(typ, key string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "type": typ, "key": m.key(key)}).Error("metric panic")
	}
}

// withTags turns k1, v1, k2, v2 pairs into datadog k:v tags, a trailing key
// without value is dropped
func (m *metrics) withTags(pairs []string) []string {
	if len(pairs)%2 != 0 {
		log.Log().WithField("tags", strings.Join(pairs, ",")).Warn("odd tag list")
		pairs = pairs[:len(pairs)-1]
	}
	res := make([]string, 0, len(m.tags)+len(pairs)/2)
	res = append(res, m.tags...)
	for i := 0; i < len(pairs); i += 2 {
		res = append(res, pairs[i]+":"+pairs[i+1])
	}
	return res
}

type timer struct {
	m     *metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timer) End() {
	defer t.m.recover("bumptime", t.key)
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	if err := client().TimeInMilliseconds(t.m.key(t.key), ms, t.tags, 1); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key, "val": ms}).Warn("BumpTime failed")
	}
}
