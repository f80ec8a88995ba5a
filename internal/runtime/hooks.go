package runtime

// SessionHooks are optional callbacks for conditions the session absorbs
// instead of returning. They run while the session is locked and must not call
// back into it.
type SessionHooks struct {
	// OnDegrade is called once, when the session switches to degraded mode.
	OnDegrade func(reason error)

	// OnDrop is called for every tuple that is discarded.
	OnDrop func(mp string, reason error)
}

// Merge combines two SessionHooks. The hooks from other run after those of h.
func (h SessionHooks) Merge(other SessionHooks) SessionHooks {
	return SessionHooks{
		OnDegrade: chainDegradeHooks(h.OnDegrade, other.OnDegrade),
		OnDrop:    chainDropHooks(h.OnDrop, other.OnDrop),
	}
}

func chainDegradeHooks(a, b func(error)) func(error) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(reason error) {
		a(reason)
		b(reason)
	}
}

func chainDropHooks(a, b func(string, error)) func(string, error) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(mp string, reason error) {
		a(mp, reason)
		b(mp, reason)
	}
}

func (h SessionHooks) degraded(reason error) {
	if h.OnDegrade != nil {
		h.OnDegrade(reason)
	}
}

func (h SessionHooks) dropped(mp string, reason error) {
	if h.OnDrop != nil {
		h.OnDrop(mp, reason)
	}
}
