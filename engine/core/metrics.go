package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/anima-assets/engine/containers"
)

// AVG_COUNT is the number of recent loads the average is taken over.
const AVG_COUNT = 30

// LoadMetrics keeps load counts and a rolling average of load durations.
type LoadMetrics struct {
	mutex    sync.Mutex
	times    *containers.RingQueue[time.Duration]
	loads    int
	failures int
}

func NewLoadMetrics() *LoadMetrics {
	return &LoadMetrics{
		times: containers.NewRingQueue[time.Duration](AVG_COUNT),
	}
}

// Record adds one load. Only successful loads count towards the average.
func (m *LoadMetrics) Record(elapsed time.Duration, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err != nil {
		m.failures++
		return
	}
	m.loads++
	m.times.Push(elapsed)
}

// Average is the mean duration of the last AVG_COUNT successful loads.
func (m *LoadMetrics) Average() time.Duration {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	values := m.times.Values()
	if len(values) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range values {
		sum += v
	}
	return sum / time.Duration(len(values))
}

// Counts returns the number of successful and failed loads.
func (m *LoadMetrics) Counts() (int, int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.loads, m.failures
}
