package textutil

// NeutralDurationScore is returned when either duration is unknown:
// insufficient evidence, neither penalized nor rewarded.
const NeutralDurationScore = 0.7

// DurationScore rates how closely two track durations (in seconds) agree,
// returning a value in [0, 1]. A duration of zero or less counts as unknown.
//
// The bands encode that short fades and edits commonly shift duration by
// single-digit seconds, while large differences usually indicate a different
// edit or version entirely.
func DurationScore(localSeconds, remoteSeconds int) float64 {
	if localSeconds <= 0 || remoteSeconds <= 0 {
		return NeutralDurationScore
	}
	diff := localSeconds - remoteSeconds
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 5:
		return 1.0
	case diff <= 15:
		return 0.8
	case diff <= 30:
		return 0.5
	default:
		return 0.2
	}
}
