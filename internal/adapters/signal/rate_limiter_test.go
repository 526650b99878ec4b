package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	req := require.New(t)
	rl := NewRateLimiter(2, time.Minute)

	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))
	req.True(rl.Allow("c2"), "limits are per connection")
	req.Equal(2, rl.len())

	rl.Forget("c1")
	req.Equal(1, rl.len())
	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))
}

func TestRateLimiter_Refills(t *testing.T) {
	req := require.New(t)
	rl := NewRateLimiter(2, 100*time.Millisecond)

	req.True(rl.Allow("c1"))
	req.True(rl.Allow("c1"))
	req.False(rl.Allow("c1"))

	time.Sleep(70 * time.Millisecond)
	req.True(rl.Allow("c1"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	req := require.New(t)
	for _, rl := range []*RateLimiter{NewRateLimiter(0, time.Second), NewRateLimiter(5, 0)} {
		req.Nil(rl)
		for i := 0; i < 100; i++ {
			req.True(rl.Allow("c1"))
		}
		rl.Forget("c1")
	}
}
