// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterKeepsThrottledClients(t *testing.T) {
	rl := NewRateLimiter(2)
	rl.maxClients = 3
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	require.True(t, rl.allow("203.0.113.7", now))
	require.True(t, rl.allow("203.0.113.7", now))
	require.False(t, rl.allow("203.0.113.7", now), "burst is exhausted")

	for i := 0; i < 10; i++ {
		client := fmt.Sprintf("10.0.0.%d", i)
		assert.True(t, rl.allow(client, now.Add(time.Second)), client)
		assert.LessOrEqual(t, len(rl.clients), rl.maxClients)
	}
	assert.False(
		t, rl.allow("203.0.113.7", now.Add(2*time.Second)),
		"a flood of new clients does not reset a throttled bucket",
	)
}

func TestRateLimiterEvictsLeastThrottled(t *testing.T) {
	rl := NewRateLimiter(3)
	rl.maxClients = 2
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.True(t, rl.allow("a", now))
	}
	require.True(t, rl.allow("b", now))
	require.True(t, rl.allow("c", now))
	assert.Len(t, rl.clients, 2)
	assert.Contains(t, rl.clients, "a", "a has no tokens left")
	assert.NotContains(t, rl.clients, "b")
}

func TestRateLimiterDropsRefilledBuckets(t *testing.T) {
	rl := NewRateLimiter(60)
	rl.maxClients = 2
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	require.True(t, rl.allow("a", now))
	require.True(t, rl.allow("b", now))
	later := now.Add(time.Minute)
	require.True(t, rl.allow("c", later))
	assert.Len(t, rl.clients, 1, "a and b are refilled by now")
}
