package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordToggle(t *testing.T) {
	before := testutil.ToFloat64(ToggleTotal.WithLabelValues("video", "on"))
	RecordToggle("video", true)
	RecordToggle("video", false)
	assert.Equal(t, before+1, testutil.ToFloat64(ToggleTotal.WithLabelValues("video", "on")))
}

func TestRecordUpload(t *testing.T) {
	before := testutil.ToFloat64(UploadTotal.WithLabelValues("image", "failure"))
	RecordUpload("image", false)
	assert.Equal(t, before+1, testutil.ToFloat64(UploadTotal.WithLabelValues("image", "failure")))
}

func TestSetBreakerState(t *testing.T) {
	SetBreakerState("minio", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("minio")))
}

func TestObserveFeed(t *testing.T) {
	assert.NotPanics(t, func() {
		ObserveFeed("videos", time.Now(), nil)
		ObserveFeed("videos", time.Now(), errors.New("boom"))
	})
}
