package main

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"procurement/pkg/logger"
)

func TestWaitForStop(t *testing.T) {
	t.Run("signal", func(t *testing.T) {
		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGTERM

		assert.Equal(t, 0, waitForStop(logger.Nop(), quit, make(chan error)))
	})

	t.Run("listen failure", func(t *testing.T) {
		serverErr := make(chan error, 1)
		serverErr <- errors.New("address already in use")

		assert.Equal(t, 1, waitForStop(logger.Nop(), make(chan os.Signal), serverErr))
	})
}
