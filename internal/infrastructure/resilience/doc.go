/*
Package resilience provides a circuit breaker for calls to remote dependencies.

The registry loader wraps every remote fetch in a Breaker so that an
unreachable registry host fails reloads immediately instead of waiting out
the retry schedule on every attempt.

# States

	Closed --[ReadyToTrip]-> Open --[Cooldown]-> Half-Open --[MaxRequests successes]-> Closed
	                                               |
	                                           [failure]
	                                               v
	                                             Open

# Usage

	breaker := resilience.New("registry", resilience.Settings{
		Cooldown:    30 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailures(5),
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	err := breaker.Execute(ctx, func(ctx context.Context) error {
		return fetch(ctx)
	})
*/
package resilience
