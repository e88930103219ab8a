// Package bind provides two event timing binders on top of a simple event
// target model.
//
// BindStop waits until an event has stopped occurring before calling back,
// which suits things like validating a form field once the user stops typing.
// BindThrottle calls back straight away on the first occurrence, then at most
// once more after activity settles, which suits things like scroll or resize
// handlers.
//
// Elements, their handlers, and all timers live on a Loop. Handlers and timer
// expiries run one at a time on the goroutine running the loop, so callbacks
// never need their own locking.
//
//	loop := bind.NewLoop()
//	go loop.Run(ctx)
//
//	input := loop.Element("email")
//	bind.Of(input).BindStop("keyup", validate, bind.Millis(300))
//
//	input.Trigger("keyup", "a")
package bind
