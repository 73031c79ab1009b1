// Package signal provides a reactive value cell.
//
// A Signal holds one value of type T. Set replaces it and, when the new value
// differs from the old one, notifies two kinds of listeners:
//
//   - Watch callbacks run synchronously on the goroutine that called Set, in
//     registration order. They are meant for cheap derived-state
//     recomputation and must not write back to the signal they watch.
//   - Subscribers receive values over a buffered channel. Delivery never
//     blocks Set: when a subscriber's buffer is full the oldest queued value
//     is dropped, so a slow reader always catches up to the latest value.
//
// # Usage
//
//	count := signal.New(0)
//	stop := count.Watch(func(v int) { fmt.Println("count:", v) })
//	defer stop()
//
//	sub := count.Subscribe(ctx)
//	defer sub.Close()
//
//	count.Set(1)
//	latest := <-sub.Receive()
//
// Equality defaults to reflect.DeepEqual and can be replaced with WithEqual.
// After Close, Set still stores values but no listener is notified.
package signal
