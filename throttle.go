package bind

// BindThrottle binds callback to event on every element in the set, limiting
// how often it is called.
//
// When the element is idle, an occurrence calls callback immediately and
// starts a cooldown of the duration given by speed. Occurrences during the
// cooldown are not passed on straight away; instead each one restarts the
// cooldown, and when it finally runs out callback is called once more with
// the last of those events. A single isolated occurrence therefore results in
// a single call.
//
// The speed is resolved once, when binding. Each element gets its own
// cooldown, so events on one element never affect another.
func (s Set) BindThrottle(event string, callback Callback, speed Speed) Set {
	return s.Each(func(el *Element) {
		delay := Resolve(speed, el.loop.speeds)
		log := el.log(event, delay)
		st := &slot{}

		el.Bind(event, func(e Event) {
			if !st.active() {
				log.Debug("throttle leading call")
				callback(el, e)

				st.arm(el.loop, delay, func() {
					log.Debug("throttle cooldown expired")
				})

				return
			}

			st.arm(el.loop, delay, func() {
				log.Debug("throttle trailing call")
				callback(el, e)
			})
		})
	})
}
