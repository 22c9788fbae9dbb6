package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts delivered transactions by message path
// and ABCI result code and observes how long they take.
type Metrics struct {
	txs     *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var _ tescrow.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors with
// the given registerer.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tescrow",
			Subsystem: "tx",
			Name:      "delivered_total",
			Help:      "Total delivered transactions segmented by message path and result code.",
		}, []string{"path", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tescrow",
			Subsystem: "tx",
			Name:      "deliver_duration_seconds",
			Help:      "Latency distribution of delivered transactions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	for _, c := range []prometheus.Collector{m.txs, m.latency} {
		if err := reg.Register(c); err != nil {
			return Metrics{}, errors.Wrap(errors.ErrHuman, err.Error())
		}
	}
	return m, nil
}

// Check just passes the request along
func (m Metrics) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (*tescrow.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver records the outcome of the transaction. A panic is counted with
// the ErrPanic code before it continues up the chain.
func (m Metrics) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (res *tescrow.DeliverResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			m.observe(tx, errors.ErrPanic, start)
			panic(r)
		}
		m.observe(tx, err, start)
	}()
	return next.Deliver(ctx, db, tx)
}

func (m Metrics) observe(tx tescrow.Tx, err error, start time.Time) {
	path := tescrow.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
}
