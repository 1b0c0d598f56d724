package score

import "strings"

// HumanThreshold is an exported constant or variable used by the verification engine.
//
// Scores below it classify as bot; verification passes only at or above it.
const HumanThreshold = 50

const (
	penaltySuspiciousAgent  = 30
	penaltyNonStandardAgent = 20
	penaltyTooFast          = 40
	penaltyTooSlow          = 20
	penaltyNoMouse          = 25
	penaltyRoboticTiming    = 30
	penaltyNoFingerprints   = 15

	minInteractionMillis = 500
	maxInteractionMillis = 120000
	minMouseMovements    = 5
	minTimingVariance    = 100
	browserMarker        = "Mozilla"
)

var automationMarkers = []string{
	"headless",
	"phantom",
	"selenium",
	"puppeteer",
	"bot",
	"crawler",
	"spider",
}

// Signals defines a public type used by goCaptcha APIs.
//
// Signals instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// Zero values are scored as given, not skipped: a caller that omits
// InteractionMillis, MouseMovements, Timings, or the fingerprints collects
// the corresponding penalties. Only UserAgent checks are skipped when the
// field is empty.
type Signals struct {
	UserAgent         string    `json:"userAgent"`
	InteractionMillis float64   `json:"interactionTime"`
	MouseMovements    int       `json:"mouseMovements"`
	Timings           []float64 `json:"timings"`
	CanvasFingerprint string    `json:"canvasFingerprint"`
	WebGLFingerprint  string    `json:"webglFingerprint"`
}

// Result defines a public type used by goCaptcha APIs.
//
// Result instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Result struct {
	IsBot   bool
	Score   int
	Reasons []string
}

// Evaluate describes the evaluate operation and its observable behavior.
//
// Evaluate never returns an error; every check is independent and cumulative.
// Evaluate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Evaluate(signals Signals) Result {
	value := 100
	var reasons []string

	if signals.UserAgent != "" {
		lowered := strings.ToLower(signals.UserAgent)
		for _, marker := range automationMarkers {
			if strings.Contains(lowered, marker) {
				value -= penaltySuspiciousAgent
				reasons = append(reasons, "suspicious user agent")
				break
			}
		}
		if !strings.Contains(signals.UserAgent, browserMarker) {
			value -= penaltyNonStandardAgent
			reasons = append(reasons, "non-standard user agent")
		}
	}

	if signals.InteractionMillis < minInteractionMillis {
		value -= penaltyTooFast
		reasons = append(reasons, "completed too quickly")
	} else if signals.InteractionMillis > maxInteractionMillis {
		value -= penaltyTooSlow
		reasons = append(reasons, "took too long")
	}

	if signals.MouseMovements < minMouseMovements {
		value -= penaltyNoMouse
		reasons = append(reasons, "insufficient mouse activity")
	}

	if len(signals.Timings) > 2 {
		intervals := make([]float64, 0, len(signals.Timings)-1)
		for i := 1; i < len(signals.Timings); i++ {
			intervals = append(intervals, signals.Timings[i]-signals.Timings[i-1])
		}
		if variance(intervals) < minTimingVariance {
			value -= penaltyRoboticTiming
			reasons = append(reasons, "robotic timing pattern")
		}
	}

	if signals.CanvasFingerprint == "" || signals.WebGLFingerprint == "" {
		value -= penaltyNoFingerprints
		reasons = append(reasons, "missing browser fingerprints")
	}

	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return Result{
		IsBot:   value < HumanThreshold,
		Score:   value,
		Reasons: reasons,
	}
}

// variance is the population variance: mean squared deviation with divisor n.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var squared float64
	for _, v := range values {
		d := v - mean
		squared += d * d
	}
	return squared / float64(len(values))
}
