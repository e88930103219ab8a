package bind

// BindStop binds callback to event on every element in the set, but only
// calls it once the event has stopped occurring for the duration given by
// speed. Every occurrence restarts the wait, and the callback receives the
// last event seen.
//
// The speed is resolved once, when binding. Even with a zero duration the
// callback runs as a separate task on the loop, never from within the
// handler of the triggering event.
//
// Each element gets its own timer, so events on one element never affect
// another.
func (s Set) BindStop(event string, callback Callback, speed Speed) Set {
	return s.Each(func(el *Element) {
		delay := Resolve(speed, el.loop.speeds)
		log := el.log(event, delay)
		st := &slot{}

		el.Bind(event, func(e Event) {
			if st.cancel() {
				log.Debug("stop timer reset")
			}

			st.arm(el.loop, delay, func() {
				log.Debug("stop timer fired")
				callback(el, e)
			})
		})
	})
}
