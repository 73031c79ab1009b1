// Package availability answers "is this value already in use?" for async
// validation rules, most commonly username uniqueness.
//
// A Checker is consulted from a suite through Test, which registers an async
// test on the field:
//
//	checker := availability.NewRedisChecker(client)
//
//	s := suite.New(func(s *suite.Context, m Signup) {
//	    s.Apply(suite.Required("username", m.Username, "Username is required"))
//	    availability.Test(s, "username", m.Username, "Username is already taken", checker)
//	})
//
// MemoryChecker keeps reservations in process and can simulate network
// latency with WithLatency. RedisChecker stores them in a Redis set so every
// instance of a service shares the same view.
//
// # Error Handling
//
// Backend failures are returned joined with ErrCheckFailed. Inside a suite
// they reject the async test, which a form reports as an error message on
// the field instead of treating the value as taken.
package availability
