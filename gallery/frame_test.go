package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameCoalescerKeepsLatest(t *testing.T) {
	var f FrameCoalescer
	var applied []int

	for i := 1; i <= 5; i++ {
		i := i
		f.Schedule(func() { applied = append(applied, i) })
	}
	assert.True(t, f.Pending())
	assert.Empty(t, applied, "nothing runs before the frame")

	assert.True(t, f.Flush())
	assert.Equal(t, []int{5}, applied)
	assert.False(t, f.Flush(), "second flush in the same frame has nothing to do")

	assert.Equal(t, FrameStats{Scheduled: 5, Replaced: 4, Committed: 1}, f.Stats())
}

func TestFrameCoalescerCancel(t *testing.T) {
	var f FrameCoalescer
	ran := false
	f.Schedule(func() { ran = true })

	assert.True(t, f.Cancel())
	assert.False(t, f.Cancel())
	assert.False(t, f.Flush())
	assert.False(t, ran)
}

func TestFrameCoalescerIgnoresNil(t *testing.T) {
	var f FrameCoalescer
	f.Schedule(nil)
	assert.False(t, f.Pending())
}
