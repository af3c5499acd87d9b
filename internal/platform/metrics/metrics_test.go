package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	m.DosesGenerated(3)
	m.AlarmScheduled(nil)
	m.AlarmDelivered("log", nil)
	m.PersistenceFailure("load", "k")
	m.ReminderQuery()
	m.SetInventory(1, 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCounters(t *testing.T) {
	m := New()

	m.DosesGenerated(6)
	m.AlarmScheduled(nil)
	m.AlarmScheduled(errors.New("past due"))
	m.AlarmDelivered("telegram", nil)
	m.AlarmDelivered("telegram", errors.New("down"))
	m.PersistenceFailure("load", "medassist:medications")
	m.SetInventory(2, 9)

	assert.Equal(t, 6.0, testutil.ToFloat64(m.dosesGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alarmsScheduled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alarmsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alarmsDelivered.WithLabelValues("telegram", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alarmsDelivered.WithLabelValues("telegram", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistenceFailures.WithLabelValues("load", "medassist:medications")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.activeMedications))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.pendingDoses))
}

func TestHandler_ExposesNamespace(t *testing.T) {
	m := New()
	m.DosesGenerated(1)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "medassist_doses_generated_total 1")
}
