//go:build !linux

package rawscan

import "errors"

func newRawConn() (packetConn, error) {
	return nil, errors.New("SYN scanning is only supported on linux")
}
