package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "medassist"

// Metrics agrupa los collectors del servicio. Todos los métodos aceptan receiver nil
// para que los tests y el modo embebido no tengan que instanciarlo.
type Metrics struct {
	registry *prometheus.Registry

	dosesGenerated      prometheus.Counter
	alarmsScheduled     prometheus.Counter
	alarmsFailed        prometheus.Counter
	alarmsDelivered     *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	reminderQueries     prometheus.Counter

	activeMedications prometheus.Gauge
	pendingDoses      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		dosesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doses_generated_total",
			Help:      "Dose events produced by the schedule generator.",
		}),
		alarmsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_scheduled_total",
			Help:      "One-shot alarms accepted by the scheduling gateway.",
		}),
		alarmsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_failed_total",
			Help:      "One-shot alarms the scheduling gateway rejected.",
		}),
		alarmsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_delivered_total",
			Help:      "Fired alarms by delivery result.",
		}, []string{"channel", "result"}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Persistence gateway failures by operation and key.",
		}, []string{"op", "key"}),
		reminderQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_queries_total",
			Help:      "Today's reminders computations (memo misses).",
		}),
		activeMedications: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_medications",
			Help:      "Medications currently in active status.",
		}),
		pendingDoses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_doses",
			Help:      "Dose events still in SCHEDULED status.",
		}),
	}

	reg.MustRegister(
		m.dosesGenerated,
		m.alarmsScheduled,
		m.alarmsFailed,
		m.alarmsDelivered,
		m.persistenceFailures,
		m.reminderQueries,
		m.activeMedications,
		m.pendingDoses,
	)
	return m
}

// Handler expone /metrics con el registry propio.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) DosesGenerated(n int) {
	if m == nil {
		return
	}
	m.dosesGenerated.Add(float64(n))
}

func (m *Metrics) AlarmScheduled(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.alarmsFailed.Inc()
		return
	}
	m.alarmsScheduled.Inc()
}

func (m *Metrics) AlarmDelivered(channel string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.alarmsDelivered.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) PersistenceFailure(op, key string) {
	if m == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(op, key).Inc()
}

func (m *Metrics) ReminderQuery() {
	if m == nil {
		return
	}
	m.reminderQueries.Inc()
}

// SetInventory actualiza los gauges de estado; se alimenta del listener del servicio.
func (m *Metrics) SetInventory(activeMedications, pendingDoses int) {
	if m == nil {
		return
	}
	m.activeMedications.Set(float64(activeMedications))
	m.pendingDoses.Set(float64(pendingDoses))
}
