package recurrence

// Callers reports how many Execute calls are waiting on the catch-up.
func (uc *RunCatchUpUseCase) Callers() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.callers
}
