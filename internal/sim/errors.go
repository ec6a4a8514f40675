package sim

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("sim error at t=%.4f (step %d): %s", e.Time, e.Step, e.Message)
}
