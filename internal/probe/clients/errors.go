package client

import (
	"errors"
)

var ErrUnexpectedStatus = errors.New("unexpected status from receiver")
var ErrReceiverDown = errors.New("receiver unavailable")
