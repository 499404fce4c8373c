package debug

import (
	"fmt"
	"os"
	"sync"
)

// SlotStateReader exposes the fields of one voice slot needed for a
// sample-by-sample synthesis trace, without pulling in the ymf271 package
// (avoids an import cycle, since ymf271 itself depends on debug).
type SlotStateReader interface {
	GetSlotState(slot int) (active bool, envState uint8, volume int32, algorithm uint8, waveform uint8)
}

// SampleSnapshot is one sample's worth of chip-level state passed to
// LogSample.
type SampleSnapshot struct {
	Sample     uint64
	TimerA     uint8
	TimerB     uint8
	Status     uint8
	EndStatus  uint16
}

// SampleLogger writes a per-sample synthesis trace to a file. Useful for
// diffing register-write sequences against a known-good recording when
// chasing an envelope or sync-broadcast discrepancy.
type SampleLogger struct {
	file         *os.File
	maxSamples   uint64
	startSample  uint64 // start logging after this many samples
	currentCount uint64
	totalSamples uint64
	enabled      bool
	mu           sync.Mutex

	slots SlotStateReader
}

// NewSampleLogger creates a new sample logger.
// maxSamples: maximum number of samples to log (0 = unlimited).
// startSample: start logging after this many samples (0 = start immediately).
func NewSampleLogger(filename string, maxSamples uint64, startSample uint64, slots SlotStateReader) (*SampleLogger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample log file: %w", err)
	}

	logger := &SampleLogger{
		file:        file,
		maxSamples:  maxSamples,
		startSample: startSample,
		enabled:     true,
		slots:       slots,
	}

	fmt.Fprintf(file, "Sample-by-Sample Synthesis Log\n")
	fmt.Fprintf(file, "==============================\n\n")
	if startSample > 0 {
		fmt.Fprintf(file, "Start sample offset: %d\n", startSample)
	}
	if maxSamples > 0 {
		fmt.Fprintf(file, "Max samples to log: %d\n", maxSamples)
	}
	fmt.Fprintf(file, "\nFormat: Sample | TimerA | TimerB | Status | EndStatus | active slots (idx:env:vol:alg:wave)\n\n")

	return logger, nil
}

// LogSample logs chip-level timer/status state plus every active slot's
// envelope/volume/algorithm/waveform for one sample.
func (l *SampleLogger) LogSample(snap *SampleSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}

	l.totalSamples++

	if l.totalSamples <= l.startSample {
		return
	}
	if l.maxSamples > 0 && l.currentCount >= l.maxSamples {
		l.enabled = false
		return
	}
	l.currentCount++

	fmt.Fprintf(l.file, "Sample %8d | TimA:%02X | TimB:%02X | Status:%02X | End:%04X | ",
		snap.Sample, snap.TimerA, snap.TimerB, snap.Status, snap.EndStatus)

	if l.slots != nil {
		for i := 0; i < 48; i++ {
			active, envState, volume, algorithm, waveform := l.slots.GetSlotState(i)
			if active {
				fmt.Fprintf(l.file, "%d:%d:%d:%d:%d ", i, envState, volume, algorithm, waveform)
			}
		}
	}
	fmt.Fprintln(l.file)
}

// SetEnabled enables or disables logging.
func (l *SampleLogger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// Toggle toggles logging on/off.
func (l *SampleLogger) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = !l.enabled
}

// Close closes the log file.
func (l *SampleLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.enabled = false

	if l.file != nil {
		fmt.Fprintf(l.file, "\n\nLog complete. Total samples logged: %d\n", l.currentCount)
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// IsEnabled returns whether logging is enabled.
func (l *SampleLogger) IsEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled && (l.maxSamples == 0 || l.currentCount < l.maxSamples)
}

// GetStatus returns the current logging status.
func (l *SampleLogger) GetStatus() (enabled bool, currentCount uint64, totalSamples uint64, maxSamples uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled, l.currentCount, l.totalSamples, l.maxSamples
}
