// internal/intake/steps_test.go
package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorStartsAtFirstStep(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, StepPracticeInfo, n.Current())
	assert.False(t, n.CanSubmit())
}

func TestNavigatorPrevClampsAtFirstStep(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, StepPracticeInfo, n.Prev())
	assert.Equal(t, StepPracticeInfo, n.Current())
}

func TestNavigatorNextClampsAtReview(t *testing.T) {
	n := NewNavigator()
	for i := 0; i < 10; i++ {
		n.Next()
	}
	assert.Equal(t, StepReview, n.Current())

	// One more next stays put
	assert.Equal(t, StepReview, n.Next())
}

func TestNavigatorCanSubmitOnlyAtReview(t *testing.T) {
	n := NewNavigator()
	for n.Current() < StepReview {
		assert.False(t, n.CanSubmit())
		n.Next()
	}
	assert.True(t, n.CanSubmit())

	n.Prev()
	assert.False(t, n.CanSubmit())
}

func TestNavigatorGotoClamps(t *testing.T) {
	n := NewNavigator()

	assert.Equal(t, StepPayers, n.Goto(StepPayers))
	assert.Equal(t, StepPracticeInfo, n.Goto(0))
	assert.Equal(t, StepReview, n.Goto(42))
}

func TestStepNames(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, "Basic Info", n.Name())
	n.Goto(StepReview)
	assert.Equal(t, "Review", n.Name())
}
