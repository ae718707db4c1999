// internal/repository/mocks/helpers.go
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// result は ret[i] を T として取り出す (nil は T のゼロ値)
func result[T any](ret mock.Arguments, i int) T {
	var zero T
	if v := ret.Get(i); v != nil {
		return v.(T)
	}
	return zero
}
