package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	h, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestHTTPMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestSessionMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"ActivationsTotal", ActivationsTotal},
		{"ActivationDuration", ActivationDuration},
		{"AnchorResolutionsTotal", AnchorResolutionsTotal},
		{"NavigationsTotal", NavigationsTotal},
		{"RefreshesTotal", RefreshesTotal},
		{"DeactivationsTotal", DeactivationsTotal},
		{"SessionActive", SessionActive},
		{"PlaylistEntries", PlaylistEntries},
		{"FolderEntriesListed", FolderEntriesListed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestWatcherMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"WatcherEventsTotal", WatcherEventsTotal},
		{"WatcherErrors", WatcherErrors},
		{"WatchedDirectories", WatchedDirectories},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestSessionMetricOperations(t *testing.T) {
	t.Run("ActivationsTotal increments by result", func(t *testing.T) {
		c := ActivationsTotal.WithLabelValues("success")
		before := counterValue(t, c)
		c.Inc()
		if got := counterValue(t, c); got != before+1 {
			t.Errorf("ActivationsTotal = %v, want %v", got, before+1)
		}
	})

	t.Run("NavigationsTotal increments by command and result", func(t *testing.T) {
		c := NavigationsTotal.WithLabelValues("next", "played")
		before := counterValue(t, c)
		c.Add(2)
		if got := counterValue(t, c); got != before+2 {
			t.Errorf("NavigationsTotal = %v, want %v", got, before+2)
		}
	})

	t.Run("SessionActive toggles", func(t *testing.T) {
		SessionActive.Set(1)
		if got := gaugeValue(t, SessionActive); got != 1 {
			t.Errorf("SessionActive = %v, want 1", got)
		}
		SessionActive.Set(0)
		if got := gaugeValue(t, SessionActive); got != 0 {
			t.Errorf("SessionActive = %v, want 0", got)
		}
	})

	t.Run("PlaylistEntries set", func(t *testing.T) {
		PlaylistEntries.Set(12)
		if got := gaugeValue(t, PlaylistEntries); got != 12 {
			t.Errorf("PlaylistEntries = %v, want 12", got)
		}
	})

	t.Run("ActivationDuration observe", func(_ *testing.T) {
		ActivationDuration.Observe(0.004)
	})
}

func TestInitializeMetrics(t *testing.T) {
	SetVolumeLabels([]string{"music"})
	defer SetVolumeLabels(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("InitializeMetrics panicked: %v", r)
		}
	}()
	InitializeMetrics()

	// Pre-populated series start at zero rather than being absent.
	for _, method := range []string{"uri", "name", "default", "none"} {
		if got := counterValue(t, AnchorResolutionsTotal.WithLabelValues(method)); got < 0 {
			t.Errorf("AnchorResolutionsTotal{%s} = %v", method, got)
		}
	}
}

func TestSetVolumeLabelsCopies(t *testing.T) {
	labels := []string{"music", "videos"}
	SetVolumeLabels(labels)
	defer SetVolumeLabels(nil)

	labels[0] = "changed"
	if volumeLabels[0] != "music" {
		t.Errorf("volumeLabels[0] = %q, want %q", volumeLabels[0], "music")
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	t.Run("ObserveOperation records errors", func(t *testing.T) {
		errs := FilesystemOperationErrors.WithLabelValues("observer-test", "stat")
		before := counterValue(t, errs)

		obs.ObserveOperation("observer-test", "stat", 0.001, nil)
		if got := counterValue(t, errs); got != before {
			t.Errorf("errors after success = %v, want %v", got, before)
		}

		obs.ObserveOperation("observer-test", "stat", 0.001, errors.New("boom"))
		if got := counterValue(t, errs); got != before+1 {
			t.Errorf("errors after failure = %v, want %v", got, before+1)
		}

		if n := histogramCount(t, FilesystemOperationDuration.WithLabelValues("observer-test", "stat")); n != 2 {
			t.Errorf("duration sample count = %d, want 2", n)
		}
	})

	t.Run("retry counters", func(t *testing.T) {
		obs.ObserveRetryAttempt("readdir", "observer-test")
		obs.ObserveRetrySuccess("readdir", "observer-test")
		obs.ObserveRetryFailure("readdir", "observer-test")
		obs.ObserveStaleError("readdir", "observer-test")
		obs.ObserveRetryDuration("readdir", "observer-test", 0.2)

		for name, c := range map[string]prometheus.Counter{
			"attempts": FilesystemRetryAttempts.WithLabelValues("readdir", "observer-test"),
			"success":  FilesystemRetrySuccess.WithLabelValues("readdir", "observer-test"),
			"failures": FilesystemRetryFailures.WithLabelValues("readdir", "observer-test"),
			"stale":    FilesystemStaleErrors.WithLabelValues("readdir", "observer-test"),
		} {
			if got := counterValue(t, c); got != 1 {
				t.Errorf("%s = %v, want 1", name, got)
			}
		}
	})
}

func TestAppInfoMetric(t *testing.T) {
	SetAppInfo("1.0.0", "abc123", "go1.25")
	if got := gaugeValue(t, AppInfo.WithLabelValues("1.0.0", "abc123", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}

func TestMetricsConcurrentAccess(t *testing.T) {
	done := make(chan bool, 10)

	for i := 0; i < 10; i++ {
		go func(id int) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Goroutine %d panicked: %v", id, r)
				}
				done <- true
			}()

			HTTPRequestsTotal.WithLabelValues("POST", "/api/next", "200").Inc()
			NavigationsTotal.WithLabelValues("next", "played").Inc()
			WatcherEventsTotal.WithLabelValues("create").Inc()
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func BenchmarkNavigationMetrics(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NavigationsTotal.WithLabelValues("next", "played").Inc()
	}
}
