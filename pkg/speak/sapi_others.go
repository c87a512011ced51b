//go:build !windows
// +build !windows

package astispeak

import (
	"context"

	"github.com/pkg/errors"
)

var errSAPIUnavailable = errors.New("astispeak: sapi is only available on windows")

type sapi struct{}

func newSAPI() *sapi {
	return &sapi{}
}

func (s *sapi) init() error { return errSAPIUnavailable }

func (s *sapi) close() error { return nil }

func (s *sapi) voices() ([]Voice, error) { return nil, errSAPIUnavailable }

func (s *sapi) say(ctx context.Context, text string, p properties) error {
	return errSAPIUnavailable
}

func (s *sapi) save(ctx context.Context, text, path string, p properties) error {
	return errSAPIUnavailable
}
