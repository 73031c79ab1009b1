// Package redis connects to the Redis server that backs shared availability
// checks such as username reservations.
//
// # Usage
//
//	cfg, err := config.Load[redis.Config]()
//	if err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	probe := redis.Healthcheck(client)
//	if err := probe(ctx); err != nil {
//	    // not healthy
//	}
//
// # Errors
//
// Connection failures are reported with errors.Join so both the sentinel
// (ErrRedisNotReady, ErrFailedToParseRedisConnString) and the driver error
// can be matched with errors.Is.
package redis
