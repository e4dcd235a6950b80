package monitor

// ShouldNotify decides whether a run with the given consecutive-failure
// count warrants a notification. The first notification fires exactly at
// the notifyAfter-th consecutive failure; afterwards notifications repeat
// whenever (failures + notifyAfter) lands on a multiple of notifyEvery.
//
// Both thresholds are validated at monitor construction, so callers can
// assume notifyAfter >= 1 and notifyEvery >= 1 here.
func ShouldNotify(failures, notifyAfter, notifyEvery int) bool {
	if failures < notifyAfter {
		return false
	}
	if failures == notifyAfter {
		return true
	}
	return (failures+notifyAfter)%notifyEvery == 0
}
