package metrics

import (
	"strings"
	"sync"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"
	"github.com/x-xyz/claimscore/base/log"
)

const (
	defaultDdPort = "8125"
	// buffer counters before sending to statsd
	bufferMetrics = 10
)

type statsCli interface {
	Count(name string, value int64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

var (
	initOnce = sync.Once{}
	ddClient statsCli
)

func client() statsCli {
	initOnce.Do(func() {
		ddClient = dial(viper.GetString("datadog_host"))
	})
	return ddClient
}

// dial connects to the agent at host, host without port uses the dogstatsd default
func dial(host string) statsCli {
	if host == "" {
		return &logClient{}
	}
	if !strings.Contains(host, ":") {
		host = host + ":" + defaultDdPort
	}
	log.Log().WithField("addr", host).Info("connecting to datadog agent")
	cli, err := statsd.NewBuffered(host, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": host, "err": err}).Error("statsd.NewBuffered failed")
		return &logClient{}
	}
	return cli
}

// logClient writes metrics to debug logs
type logClient struct{}

func (lc *logClient) Count(name string, value int64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric count")
	return nil
}

func (lc *logClient) TimeInMilliseconds(name string, value float64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "time_ms": value, "tags": tags}).Debug("metric time")
	return nil
}
